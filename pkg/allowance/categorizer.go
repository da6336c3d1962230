package allowance

import "math/rand"

// Categorizer assigns each day of each trip a percentage tier based on its
// position, the trip's departure and return timestamps, an objective drawn
// from the configured pool (one per trip), the location, and the trip's
// sequence index.
type Categorizer struct {
	policy     Policy
	objectives []string
	location   string
	rng        *rand.Rand
}

func NewCategorizer(policy Policy, objectives []string, location string, rng *rand.Rand) *Categorizer {
	return &Categorizer{policy: policy, objectives: objectives, location: location, rng: rng}
}

// Categorize returns the flat list of categorized days, trips in input order,
// days ascending within each trip. The input trips are not mutated.
func (c *Categorizer) Categorize(trips []Trip) []Day {
	var days []Day
	for tripId, trip := range trips {
		objective := c.objectives[c.rng.Intn(len(c.objectives))]
		n := len(trip)
		for i, day := range trip {
			day.Tier = c.tierFor(i, n)
			day.Start = c.policy.TripStart.At(day.Date)
			day.End = c.policy.TripEnd.At(day.Date)
			day.Objective = objective
			day.Location = c.location
			day.TripId = tripId
			days = append(days, day)
		}
	}
	return days
}

// tierFor implements the position policy: a single-day trip and the first and
// middle days of a longer trip are full days; the last day is a quarter day.
// The probabilistic variant may demote a first day to 75% or promote a last
// day to 50%.
func (c *Categorizer) tierFor(i, n int) Tier {
	switch {
	case n == 1:
		return TierFull
	case i == 0:
		if c.policy.FirstDayFullProb >= 1 || c.rng.Float64() < c.policy.FirstDayFullProb {
			return TierFull
		}
		return TierThreeQuarters
	case i == n-1:
		if c.policy.LastDayHalfProb > 0 && c.rng.Float64() < c.policy.LastDayHalfProb {
			return TierHalf
		}
		return TierQuarter
	default:
		return TierFull
	}
}
