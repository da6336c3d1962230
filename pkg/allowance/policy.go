package allowance

import (
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time attached to trip days.
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses a "15:04" string.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time of day %q: %w", s, err)
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// At places the clock time on the given date, in the date's location.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

// Policy holds the numeric constants of the selection and tiering behavior.
type Policy struct {
	// AvgTierYield is the expected fraction of the full daily rate a selected
	// day converts to once trip-position tiers are applied. Seeds the day
	// count estimate of the selector's search.
	AvgTierYield float64
	// FirstDayFullProb is the probability that the first day of a multi-day
	// trip gets the 100% tier; otherwise it gets 75%. 1.0 is deterministic.
	FirstDayFullProb float64
	// LastDayHalfProb is the probability that the last day of a multi-day
	// trip gets the 50% tier; otherwise it gets 25%. 0.0 is deterministic.
	LastDayHalfProb float64
	// TripStart and TripEnd are the departure and return clock times attached
	// to every trip day.
	TripStart TimeOfDay
	TripEnd   TimeOfDay
}

// DefaultPolicy returns the deterministic tiering policy: single, first and
// middle days at 100%, last day of a multi-day trip at 25%.
func DefaultPolicy() Policy {
	return Policy{
		AvgTierYield:     0.80,
		FirstDayFullProb: 1.0,
		LastDayHalfProb:  0.0,
		TripStart:        TimeOfDay{Hour: 9},
		TripEnd:          TimeOfDay{Hour: 18},
	}
}

// worstTier returns the most expensive tier position i of an n-day trip can
// realize under this policy. Used to upper-bound candidate selections so the
// final draw can never overshoot the budget.
func (p Policy) worstTier(i, n int) Tier {
	switch {
	case n == 1:
		return TierFull
	case i == n-1:
		if p.LastDayHalfProb > 0 {
			return TierHalf
		}
		return TierQuarter
	default:
		return TierFull
	}
}
