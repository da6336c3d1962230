package allowance

import "math"

// Total computes the realized total of categorized days at the given daily
// rate: each tier's day count times the rate times the tier fraction, rounded
// to 2 decimals. This mirrors the expense map template's own computation and
// is the single source of truth for both the selector's search and the
// reported figure.
func Total(days []Day, rate float64) float64 {
	var full, threeQuarters, half, quarter int
	for _, day := range days {
		switch day.Tier {
		case TierFull:
			full++
		case TierThreeQuarters:
			threeQuarters++
		case TierHalf:
			half++
		case TierQuarter:
			quarter++
		}
	}

	total := float64(full)*rate*1.0 +
		float64(threeQuarters)*rate*0.75 +
		float64(half)*rate*0.50 +
		float64(quarter)*rate*0.25
	return Round2(total)
}

// Round2 rounds a currency amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
