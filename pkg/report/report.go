package report

import (
	"time"

	"github.com/JMMonte/Accounting-suite/pkg/allowance"
)

// Report is a generated monthly expense map: the declared travel days of a
// single month with their tiers, plus the budget parameters and realized total.
type Report struct {
	Id        int
	Uid       string
	Year      int
	Month     time.Month
	MaxDaily  float64
	MaxTotal  float64
	Total     float64
	Days      []allowance.Day
	CreatedAt time.Time
}
