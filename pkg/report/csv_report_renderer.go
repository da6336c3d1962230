package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	log "github.com/sirupsen/logrus"
)

// CsvReportRenderer flattens a report to CSV using the same column order as
// the spreadsheet template.
type CsvReportRenderer struct {
	layout Layout
}

func NewCsvReportRenderer(layout Layout) *CsvReportRenderer {
	return &CsvReportRenderer{layout: layout}
}

// RenderReport renders the report's day rows plus a totals footer. The second
// return value is the number of day records dropped because they did not fit
// the template block.
func (t *CsvReportRenderer) RenderReport(report Report) (string, int, error) {
	rows, dropped := BuildRows(report.Days, t.layout)
	if dropped > 0 {
		log.Warnf("report %s: %d day(s) did not fit the template and were dropped", report.Uid, dropped)
	}

	data := make([][]string, 0, len(rows)+2)
	data = append(data, []string{
		"Data",
		"Mapa deslocação / Objectivo",
		"Local onde foram prestados",
		"Início Dia",
		"Início Hora",
		"Regresso Dia",
		"Regresso Hora",
		"100%",
		"75%",
		"50%",
		"25%",
	})
	for _, row := range rows {
		data = append(data, []string{
			row.Date,
			row.Objective,
			row.Location,
			row.StartDay,
			row.StartTime,
			row.ReturnDay,
			row.ReturnTime,
			row.Full,
			row.ThreeQuarts,
			row.Half,
			row.Quarter,
		})
	}
	data = append(data, []string{
		"Total",
		"", "", "", "", "", "", "", "", "",
		strconv.FormatFloat(report.Total, 'f', 2, 64),
	})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		if err := writer.Write(row); err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", 0, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", 0, err
	}

	return b.String(), dropped, nil
}
