package app

import (
	"github.com/JMMonte/Accounting-suite/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Calendar
	r.HandleFunc("/api/calendar/business-days", deps.CalendarHandler.GetBusinessDays).
		Queries("year", "{year}", "month", "{month}").Methods("GET")

	// Expense reports
	r.HandleFunc("/api/report", deps.ReportHandler.GenerateReport).Methods("POST")
	r.HandleFunc("/api/report", deps.ReportHandler.ListReports).Methods("GET")
	r.HandleFunc("/api/report/{reportUid}", deps.ReportHandler.GetReport).Methods("GET")
	r.HandleFunc("/api/report/{reportUid}", deps.ReportHandler.DeleteReport).Methods("DELETE")
}
