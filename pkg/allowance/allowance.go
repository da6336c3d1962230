package allowance

import "time"

// Tier is the percentage of the nominal daily rate a declared day contributes
// to the monthly total. The zero value means the day has not been categorized
// yet; a categorized day carries exactly one tier.
type Tier int

const (
	TierNone          Tier = 0
	TierQuarter       Tier = 25
	TierHalf          Tier = 50
	TierThreeQuarters Tier = 75
	TierFull          Tier = 100
)

// Multiplier returns the fraction of the daily rate this tier is worth.
func (t Tier) Multiplier() float64 {
	return float64(t) / 100
}

// Day is a single declared travel day. The Selector creates it with a date
// and a nominal rate; the Categorizer fills in tier, timestamps, objective,
// location, and trip id.
type Day struct {
	Date      time.Time
	Rate      float64
	Tier      Tier
	Start     time.Time
	End       time.Time
	Objective string
	Location  string
	TripId    int
}

// Weekday returns the day's weekday name.
func (d Day) Weekday() string {
	return d.Date.Weekday().String()
}

// Trip is a maximal run of calendar-consecutive days, sorted ascending.
type Trip []Day
