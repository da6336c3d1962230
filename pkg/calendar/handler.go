package calendar

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/JMMonte/Accounting-suite/internal/rest"
	log "github.com/sirupsen/logrus"
)

type BusinessDayDTO struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
}

type Handler struct {
	calendar Calendar
}

func NewHandler(calendar Calendar) *Handler {
	return &Handler{calendar}
}

// GetBusinessDays returns the working days of the requested month.
func (handler *Handler) GetBusinessDays(w http.ResponseWriter, r *http.Request) {
	log.Debug("Listing business days")
	w.Header().Set("Content-Type", "application/json")

	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid year",
			Details: "year must be an integer",
		})
		return
	}
	monthNumber, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil || monthNumber < 1 || monthNumber > 12 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(rest.ErrorResponse{
			Error:   "Invalid month",
			Details: "month must be an integer between 1 and 12",
		})
		return
	}

	days := handler.calendar.BusinessDays(year, time.Month(monthNumber))
	daysDTO := make([]BusinessDayDTO, 0, len(days))
	for _, day := range days {
		daysDTO = append(daysDTO, BusinessDayDTO{
			Date:    day.Format("2006-01-02"),
			Weekday: day.Weekday().String(),
		})
	}

	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(daysDTO); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
