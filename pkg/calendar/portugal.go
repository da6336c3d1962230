package calendar

import "time"

// PortugalCalendar knows the Portuguese national holidays and yields the
// business days of a month: Monday to Friday, holidays excluded.
type PortugalCalendar struct{}

func NewPortugalCalendar() *PortugalCalendar {
	return &PortugalCalendar{}
}

func (c *PortugalCalendar) BusinessDays(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	var days []time.Time
	for d := first; d.Before(next); d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			days = append(days, d)
		}
	}
	return days
}

// IsWorkingDay reports whether the date is a weekday and not a national holiday.
func (c *PortugalCalendar) IsWorkingDay(date time.Time) bool {
	if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
		return false
	}
	return !c.IsHoliday(date)
}

// IsHoliday reports whether the date is a Portuguese national holiday.
func (c *PortugalCalendar) IsHoliday(date time.Time) bool {
	for _, h := range nationalHolidays(date.Year()) {
		if h.Month() == date.Month() && h.Day() == date.Day() {
			return true
		}
	}
	return false
}

// nationalHolidays returns the national holidays of the given year: ten fixed
// dates plus Good Friday, Easter Sunday, and Corpus Christi.
func nationalHolidays(year int) []time.Time {
	easter := easterSunday(year)
	fixed := []struct {
		month time.Month
		day   int
	}{
		{time.January, 1},   // Ano Novo
		{time.April, 25},    // Dia da Liberdade
		{time.May, 1},       // Dia do Trabalhador
		{time.June, 10},     // Dia de Portugal
		{time.August, 15},   // Assunção de Nossa Senhora
		{time.October, 5},   // Implantação da República
		{time.November, 1},  // Todos os Santos
		{time.December, 1},  // Restauração da Independência
		{time.December, 8},  // Imaculada Conceição
		{time.December, 25}, // Natal
	}

	holidays := make([]time.Time, 0, len(fixed)+3)
	for _, f := range fixed {
		holidays = append(holidays, time.Date(year, f.month, f.day, 0, 0, 0, 0, time.UTC))
	}
	holidays = append(holidays,
		easter.AddDate(0, 0, -2), // Sexta-feira Santa
		easter,                   // Páscoa
		easter.AddDate(0, 0, 60), // Corpo de Deus
	)
	return holidays
}

// easterSunday computes Easter for the Gregorian calendar
// (Meeus/Jones/Butcher algorithm).
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := (h+l-7*m+114)%31 + 1
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
}
