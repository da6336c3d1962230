package calendar

import "time"

// StubCalendar returns a fixed set of days, for tests.
type StubCalendar struct {
	Days []time.Time
}

func NewStubCalendar(days ...time.Time) *StubCalendar {
	return &StubCalendar{Days: days}
}

func (s *StubCalendar) BusinessDays(year int, month time.Month) []time.Time {
	var days []time.Time
	for _, d := range s.Days {
		if d.Year() == year && d.Month() == month {
			days = append(days, d)
		}
	}
	return days
}

func (s *StubCalendar) Reset() {
	s.Days = nil
}
