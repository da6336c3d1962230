package allowance

import (
	"math/rand"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

// Selector chooses which eligible days to declare so that the realized total
// stays as close to the monthly cap as possible without exceeding it. All
// randomness comes from the injected rand source, so the selection is
// reproducible from a seed.
type Selector struct {
	policy Policy
	rng    *rand.Rand
}

func NewSelector(policy Policy, rng *rand.Rand) *Selector {
	return &Selector{policy: policy, rng: rng}
}

// Select picks a subset of the eligible days at the given daily rate and
// returns it sorted ascending, uncategorized, together with the worst-case
// realized total of the selection. An empty selection with total 0 is a
// valid outcome when the budget admits no day at all.
//
// The search shuffles the eligible days, estimates a day count from the
// budget and the average tier yield, probes a bounded neighborhood of counts,
// and then greedily extends the best candidate one consecutive pair or one
// single day at a time while the budget holds.
func (s *Selector) Select(eligible []time.Time, maxDaily, maxTotal float64) ([]Day, float64) {
	if len(eligible) == 0 {
		return nil, 0
	}

	pool := make([]time.Time, len(eligible))
	copy(pool, eligible)
	s.rng.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	estimate := int(maxTotal / (maxDaily * s.policy.AvgTierYield))
	if estimate > len(pool) {
		estimate = len(pool)
	}

	low := estimate - 3
	if low < 1 {
		low = 1
	}
	high := estimate + 5
	if high > len(pool) {
		high = len(pool)
	}

	bestCount := 0
	bestTotal := 0.0
	for count := low; count <= high; count++ {
		total := s.worstCaseTotal(pool[:count], maxDaily)
		if total <= maxTotal && total > bestTotal {
			bestCount = count
			bestTotal = total
		}
	}
	log.Debugf("day selection: estimate=%d tested=[%d,%d] best=%d total=%.2f", estimate, low, high, bestCount, bestTotal)

	selected, bestTotal := s.extend(pool[:bestCount], pool[bestCount:], maxDaily, maxTotal, bestTotal)
	return toDays(selected, maxDaily), bestTotal
}

// extend grows the selection while the budget holds. Consecutive pairs are
// preferred over singles: the second day of a fresh pair lands on a reduced
// tier, which spends the remaining budget more efficiently than opening
// another full-rate single-day trip.
func (s *Selector) extend(selected, remaining []time.Time, maxDaily, maxTotal, currentTotal float64) ([]time.Time, float64) {
	pool := append([]time.Time(nil), remaining...)

	for len(pool) > 0 {
		added := false

		if i, j, ok := findConsecutivePair(pool); ok {
			candidate := append(append([]time.Time(nil), selected...), pool[i], pool[j])
			total := s.worstCaseTotal(candidate, maxDaily)
			if total <= maxTotal && total > currentTotal {
				selected = candidate
				currentTotal = total
				pool = removeIndices(pool, i, j)
				added = true
			}
		}

		if !added {
			for i := range pool {
				candidate := append(append([]time.Time(nil), selected...), pool[i])
				total := s.worstCaseTotal(candidate, maxDaily)
				if total <= maxTotal && total > currentTotal {
					selected = candidate
					currentTotal = total
					pool = removeIndices(pool, i)
					added = true
					break
				}
			}
		}

		if !added {
			break
		}
	}

	return selected, currentTotal
}

// worstCaseTotal values the candidate dates under the maximal realization of
// the tier policy (every probabilistic choice forced to the higher tier).
// Accepting candidates against this bound guarantees the final categorization
// draw never exceeds the budget.
func (s *Selector) worstCaseTotal(dates []time.Time, rate float64) float64 {
	days := toDays(dates, rate)
	trips := GroupConsecutive(days)

	categorized := make([]Day, 0, len(days))
	for _, trip := range trips {
		n := len(trip)
		for i, day := range trip {
			day.Tier = s.policy.worstTier(i, n)
			categorized = append(categorized, day)
		}
	}
	return Total(categorized, rate)
}

// findConsecutivePair returns the indices of the first two calendar-adjacent
// dates in the pool.
func findConsecutivePair(pool []time.Time) (int, int, bool) {
	for i := 0; i < len(pool); i++ {
		for j := 0; j < len(pool); j++ {
			if i != j && isNextDay(pool[i], pool[j]) {
				return i, j, true
			}
		}
	}
	return 0, 0, false
}

// removeIndices returns the pool without the given indices.
func removeIndices(pool []time.Time, indices ...int) []time.Time {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	out := make([]time.Time, 0, len(pool)-len(indices))
	for i, d := range pool {
		if !drop[i] {
			out = append(out, d)
		}
	}
	return out
}

// toDays wraps dates into uncategorized day records at the given rate,
// sorted ascending.
func toDays(dates []time.Time, rate float64) []Day {
	days := make([]Day, 0, len(dates))
	for _, d := range dates {
		days = append(days, Day{Date: d, Rate: rate})
	}
	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	return days
}
