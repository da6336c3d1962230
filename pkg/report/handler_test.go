package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JMMonte/Accounting-suite/internal/event_bus"
	"github.com/JMMonte/Accounting-suite/pkg/calendar"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupHandlerTest(t *testing.T) (*Handler, func()) {
	cal := calendar.NewStubCalendar(
		date(2025, time.June, 2),
		date(2025, time.June, 3),
		date(2025, time.June, 4),
		date(2025, time.June, 5),
		date(2025, time.June, 6),
	)
	service, teardown := setupService(t, cal, event_bus.NewEventBus())
	renderer := NewCsvReportRenderer(Layout{StartRow: 10, MaxRow: 35})
	return NewReportHandler(service, renderer, 65, 1000), teardown
}

func generateTestReport(t *testing.T, handler *Handler, body string) ReportDTO {
	req := httptest.NewRequest(http.MethodPost, "/api/report", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.GenerateReport(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	var reportDTO ReportDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reportDTO))
	return reportDTO
}

func TestHandler_GenerateReport(t *testing.T) {
	t.Run("should generate a report with explicit caps", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		reportDTO := generateTestReport(t, handler, `{"year":2025,"month":6,"maxDaily":60,"maxTotal":300}`)

		assert.NotEmpty(t, reportDTO.Uid)
		assert.Equal(t, 2025, reportDTO.Year)
		assert.Equal(t, 6, reportDTO.Month)
		assert.Equal(t, 255.0, reportDTO.Total)
		assert.Len(t, reportDTO.Days, 5)
	})

	t.Run("should fall back to configured default caps", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		reportDTO := generateTestReport(t, handler, `{"year":2025,"month":6}`)

		assert.Equal(t, 65.0, reportDTO.MaxDaily)
		assert.Equal(t, 1000.0, reportDTO.MaxTotal)
	})

	t.Run("should reject invalid parameters with 400", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		req := httptest.NewRequest(http.MethodPost, "/api/report", bytes.NewBufferString(`{"year":1999,"month":6}`))
		w := httptest.NewRecorder()

		handler.GenerateReport(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_GetReport(t *testing.T) {
	t.Run("should return the report as CSV when requested", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()
		reportDTO := generateTestReport(t, handler, `{"year":2025,"month":6,"maxDaily":60,"maxTotal":300}`)

		req := httptest.NewRequest(http.MethodGet, "/api/report/"+reportDTO.Uid, nil)
		req.Header.Set("Accept", "text/csv")
		req = mux.SetURLVars(req, map[string]string{"reportUid": reportDTO.Uid})
		w := httptest.NewRecorder()

		handler.GetReport(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.Equal(t, "0", w.Header().Get("X-Dropped-Records"))
		lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
		// header + 5 days + totals footer
		assert.Len(t, lines, 7)
		assert.True(t, strings.HasPrefix(lines[0], "Data,"))
		assert.True(t, strings.HasPrefix(lines[len(lines)-1], "Total,"))
	})

	t.Run("should return 404 for an unknown report", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		req := httptest.NewRequest(http.MethodGet, "/api/report/missing", nil)
		req = mux.SetURLVars(req, map[string]string{"reportUid": "missing"})
		w := httptest.NewRecorder()

		handler.GetReport(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestHandler_DeleteReport(t *testing.T) {
	handler, teardown := setupHandlerTest(t)
	defer teardown()
	reportDTO := generateTestReport(t, handler, `{"year":2025,"month":6,"maxDaily":60,"maxTotal":300}`)

	req := httptest.NewRequest(http.MethodDelete, "/api/report/"+reportDTO.Uid, nil)
	req = mux.SetURLVars(req, map[string]string{"reportUid": reportDTO.Uid})
	w := httptest.NewRecorder()

	handler.DeleteReport(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
