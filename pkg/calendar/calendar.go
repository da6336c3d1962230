package calendar

import "time"

// Calendar supplies the eligible days of a reporting period.
type Calendar interface {
	// BusinessDays returns the working days of the given month, sorted
	// ascending, at midnight UTC.
	BusinessDays(year int, month time.Month) []time.Time
}
