package app

import (
	"fmt"

	"github.com/JMMonte/Accounting-suite/internal/activity"
	"github.com/JMMonte/Accounting-suite/internal/config"
	"github.com/JMMonte/Accounting-suite/internal/event_bus"
	"github.com/JMMonte/Accounting-suite/internal/utils"
	"github.com/JMMonte/Accounting-suite/pkg/allowance"
	"github.com/JMMonte/Accounting-suite/pkg/calendar"
	"github.com/JMMonte/Accounting-suite/pkg/report"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus      *event_bus.EventBus
	ActivityTrail *activity.Trail

	Calendar        calendar.Calendar
	CalendarHandler *calendar.Handler

	ReportRepo        report.Repository
	ReportService     report.Service
	CsvReportRenderer *report.CsvReportRenderer
	ReportHandler     *report.Handler

	Clock utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.ActivityTrail = activity.NewTrail(deps.EventBus)

	deps.Calendar = calendar.NewPortugalCalendar()
	deps.CalendarHandler = calendar.NewHandler(deps.Calendar)

	policy, err := policyFromConfig(cfg.Allowance)
	if err != nil {
		return nil, err
	}

	deps.Clock = &utils.SystemClock{}
	deps.ReportRepo = report.NewReportRepo(db)
	deps.ReportService = report.NewReportService(
		deps.Calendar,
		deps.ReportRepo,
		policy,
		cfg.Client.Objectives,
		cfg.Client.Address,
		cfg.Company.Nipc,
		deps.Clock,
		deps.EventBus,
	)
	deps.CsvReportRenderer = report.NewCsvReportRenderer(report.Layout{
		StartRow: cfg.Export.StartRow,
		MaxRow:   cfg.Export.MaxRow,
	})
	deps.ReportHandler = report.NewReportHandler(
		deps.ReportService,
		deps.CsvReportRenderer,
		cfg.Allowance.MaxDailyDefault,
		cfg.Allowance.MaxTotalDefault,
	)

	return deps, nil
}

func policyFromConfig(cfg config.Allowance) (allowance.Policy, error) {
	tripStart, err := allowance.ParseTimeOfDay(cfg.TripStartTime)
	if err != nil {
		return allowance.Policy{}, fmt.Errorf("invalid trip start time: %w", err)
	}
	tripEnd, err := allowance.ParseTimeOfDay(cfg.TripEndTime)
	if err != nil {
		return allowance.Policy{}, fmt.Errorf("invalid trip end time: %w", err)
	}
	return allowance.Policy{
		AvgTierYield:     cfg.AvgTierYield,
		FirstDayFullProb: cfg.FirstDayFullProb,
		LastDayHalfProb:  cfg.LastDayHalfProb,
		TripStart:        tripStart,
		TripEnd:          tripEnd,
	}, nil
}
