package report

import (
	"github.com/JMMonte/Accounting-suite/pkg/allowance"
)

// Layout is the row block of the spreadsheet template the declared days are
// mapped onto. Rows before StartRow hold the header, rows after MaxRow hold
// the totals and signature block.
type Layout struct {
	StartRow int
	MaxRow   int
}

// Capacity returns how many day records fit in the template block.
func (l Layout) Capacity() int {
	return l.MaxRow - l.StartRow + 1
}

// Row is one declared day flattened to the template's columns: the date,
// objective, location, start and return day/time pairs, and a single tier
// indicator column set to "1" with the others blank.
type Row struct {
	RowNumber   int
	Date        string
	Objective   string
	Location    string
	StartDay    string
	StartTime   string
	ReturnDay   string
	ReturnTime  string
	Full        string
	ThreeQuarts string
	Half        string
	Quarter     string
}

// BuildRows maps categorized days onto template rows, in date order, starting
// at the layout's first row. Days beyond the template's capacity are dropped;
// the count of dropped records is returned alongside the rows.
func BuildRows(days []allowance.Day, layout Layout) ([]Row, int) {
	capacity := layout.Capacity()
	dropped := 0
	if len(days) > capacity {
		dropped = len(days) - capacity
		days = days[:capacity]
	}

	rows := make([]Row, 0, len(days))
	for i, day := range days {
		row := Row{
			RowNumber:  layout.StartRow + i,
			Date:       day.Date.Format("2006-01-02"),
			Objective:  day.Objective,
			Location:   day.Location,
			StartDay:   day.Start.Format("02/01/2006"),
			StartTime:  day.Start.Format("15:04"),
			ReturnDay:  day.End.Format("02/01/2006"),
			ReturnTime: day.End.Format("15:04"),
		}
		switch day.Tier {
		case allowance.TierFull:
			row.Full = "1"
		case allowance.TierThreeQuarters:
			row.ThreeQuarts = "1"
		case allowance.TierHalf:
			row.Half = "1"
		case allowance.TierQuarter:
			row.Quarter = "1"
		}
		rows = append(rows, row)
	}
	return rows, dropped
}
