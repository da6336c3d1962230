package event_bus

import "time"

// ExpenseReportGenerated is published after a monthly expense report has been
// generated and stored.
type ExpenseReportGenerated struct {
	Uid      string
	Year     int
	Month    time.Month
	DayCount int
	Total    float64
	MaxTotal float64
}

// ExpenseReportDeleted is published after a stored report has been removed.
type ExpenseReportDeleted struct {
	Uid string
}
