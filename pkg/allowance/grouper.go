package allowance

import (
	"sort"
	"time"
)

// GroupConsecutive partitions days into maximal runs of calendar-adjacent
// dates. Concatenating the returned trips reproduces the input sorted by
// date. The input slice is not mutated.
func GroupConsecutive(days []Day) []Trip {
	if len(days) == 0 {
		return nil
	}

	sorted := make([]Day, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var trips []Trip
	trip := Trip{sorted[0]}
	for _, day := range sorted[1:] {
		if isNextDay(trip[len(trip)-1].Date, day.Date) {
			trip = append(trip, day)
		} else {
			trips = append(trips, trip)
			trip = Trip{day}
		}
	}
	trips = append(trips, trip)
	return trips
}

// isNextDay reports whether curr is the calendar day immediately after prev.
func isNextDay(prev, curr time.Time) bool {
	next := prev.AddDate(0, 0, 1)
	return next.Year() == curr.Year() && next.YearDay() == curr.YearDay()
}
