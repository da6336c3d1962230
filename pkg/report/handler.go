package report

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/JMMonte/Accounting-suite/internal/rest"
	"github.com/JMMonte/Accounting-suite/pkg/allowance"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type GenerateRequestDTO struct {
	Year     int     `json:"year"`
	Month    int     `json:"month"`
	MaxDaily float64 `json:"maxDaily,omitempty"`
	MaxTotal float64 `json:"maxTotal,omitempty"`
}

type ReportDTO struct {
	Uid       string   `json:"uid"`
	Year      int      `json:"year"`
	Month     int      `json:"month"`
	MaxDaily  float64  `json:"maxDaily"`
	MaxTotal  float64  `json:"maxTotal"`
	Total     float64  `json:"total"`
	Days      []DayDTO `json:"days,omitempty"`
	CreatedAt string   `json:"createdAt"`
}

type DayDTO struct {
	Date      string  `json:"date"`
	Weekday   string  `json:"weekday"`
	Tier      int     `json:"tier"`
	Amount    float64 `json:"amount"`
	Start     string  `json:"start"`
	End       string  `json:"end"`
	Objective string  `json:"objective"`
	Location  string  `json:"location"`
	TripId    int     `json:"tripId"`
}

type Handler struct {
	service         Service
	renderer        *CsvReportRenderer
	defaultMaxDaily float64
	defaultMaxTotal float64
}

func NewReportHandler(service Service, renderer *CsvReportRenderer, defaultMaxDaily, defaultMaxTotal float64) *Handler {
	return &Handler{
		service:         service,
		renderer:        renderer,
		defaultMaxDaily: defaultMaxDaily,
		defaultMaxTotal: defaultMaxTotal,
	}
}

// GenerateReport creates the expense report for the requested month. Caps
// missing from the request fall back to the configured defaults.
func (handler *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	log.Debug("Generating expense report")
	w.Header().Set("Content-Type", "application/json")

	var requestDTO GenerateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&requestDTO); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if requestDTO.MaxDaily == 0 {
		requestDTO.MaxDaily = handler.defaultMaxDaily
	}
	if requestDTO.MaxTotal == 0 {
		requestDTO.MaxTotal = handler.defaultMaxTotal
	}

	report, err := handler.service.Generate(
		r.Context(),
		requestDTO.Year,
		time.Month(requestDTO.Month),
		requestDTO.MaxDaily,
		requestDTO.MaxTotal,
	)
	if err != nil {
		if errors.Is(err, ErrInvalidPeriod) || errors.Is(err, ErrInvalidDailyCap) || errors.Is(err, ErrInvalidTotalCap) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(rest.ErrorResponse{
				Error:   "Invalid report parameters",
				Details: err.Error(),
			})
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(ReportToDTO(report)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// ListReports returns summaries of all stored reports.
func (handler *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing expense reports")
	w.Header().Set("Content-Type", "application/json")

	reports, err := handler.service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	reportsDTO := make([]ReportDTO, 0, len(reports))
	for _, report := range reports {
		reportsDTO = append(reportsDTO, ReportToDTO(report))
	}
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(reportsDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// GetReport returns one report as JSON, or as CSV in the template's column
// order when the client asks for text/csv.
func (handler *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	uid := vars["reportUid"]

	report, err := handler.service.Get(r.Context(), uid)
	if err != nil {
		if errors.Is(err, ErrReportNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	if strings.Contains(r.Header.Get("Accept"), "text/csv") {
		csvData, dropped, err := handler.renderer.RenderReport(report)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("X-Dropped-Records", strconv.Itoa(dropped))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csvData)); err != nil {
			log.Errorf("failed to write csv response: %v", err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(ReportToDTO(report)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// DeleteReport removes a stored report.
func (handler *Handler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	log.Debug("Deleting expense report")
	vars := mux.Vars(r)
	uid := vars["reportUid"]

	deleted, err := handler.service.Delete(r.Context(), uid)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if !deleted {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func ReportToDTO(report Report) ReportDTO {
	daysDTO := make([]DayDTO, 0, len(report.Days))
	for _, day := range report.Days {
		daysDTO = append(daysDTO, DayToDTO(day))
	}
	return ReportDTO{
		Uid:       report.Uid,
		Year:      report.Year,
		Month:     int(report.Month),
		MaxDaily:  report.MaxDaily,
		MaxTotal:  report.MaxTotal,
		Total:     report.Total,
		Days:      daysDTO,
		CreatedAt: report.CreatedAt.Format(time.RFC3339),
	}
}

func DayToDTO(day allowance.Day) DayDTO {
	return DayDTO{
		Date:      day.Date.Format("2006-01-02"),
		Weekday:   day.Weekday(),
		Tier:      int(day.Tier),
		Amount:    allowance.Round2(day.Rate * day.Tier.Multiplier()),
		Start:     day.Start.Format("2006-01-02 15:04"),
		End:       day.End.Format("2006-01-02 15:04"),
		Objective: day.Objective,
		Location:  day.Location,
		TripId:    day.TripId,
	}
}
