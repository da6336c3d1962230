package report

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/JMMonte/Accounting-suite/internal/event_bus"
	"github.com/JMMonte/Accounting-suite/internal/utils"
	"github.com/JMMonte/Accounting-suite/pkg/allowance"
	"github.com/JMMonte/Accounting-suite/pkg/calendar"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

var ErrInvalidPeriod = errors.New("invalid reporting period")
var ErrInvalidDailyCap = errors.New("daily cap out of range")
var ErrInvalidTotalCap = errors.New("total cap out of range")
var ErrNoObjectives = errors.New("no trip objectives configured")

const (
	yearMin     = 2020
	yearMax     = 2100
	maxDailyMin = 1
	maxDailyMax = 100
	maxTotalMin = 1
	maxTotalMax = 5000
)

type Service interface {
	Generate(ctx context.Context, year int, month time.Month, maxDaily, maxTotal float64) (Report, error)
	Get(ctx context.Context, uid string) (Report, error)
	List(ctx context.Context) ([]Report, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type ServiceImpl struct {
	cal        calendar.Calendar
	repo       Repository
	policy     allowance.Policy
	objectives []string
	location   string
	seedKey    string
	clock      utils.Clock
	eventBus   *event_bus.EventBus
}

// NewReportService wires the generation pipeline. seedKey identifies the
// company (its tax id) and pins the random seed, so regenerating the same
// period yields the same report.
func NewReportService(
	cal calendar.Calendar,
	repo Repository,
	policy allowance.Policy,
	objectives []string,
	location string,
	seedKey string,
	clock utils.Clock,
	eventBus *event_bus.EventBus,
) Service {
	return &ServiceImpl{
		cal:        cal,
		repo:       repo,
		policy:     policy,
		objectives: objectives,
		location:   location,
		seedKey:    seedKey,
		clock:      clock,
		eventBus:   eventBus,
	}
}

// Generate runs the full pipeline for one month: business days, day
// selection within the caps, trip grouping, tier categorization, valuation,
// and storage.
func (s *ServiceImpl) Generate(ctx context.Context, year int, month time.Month, maxDaily, maxTotal float64) (Report, error) {
	if year < yearMin || year > yearMax || month < time.January || month > time.December {
		return Report{}, ErrInvalidPeriod
	}
	if maxDaily < maxDailyMin || maxDaily > maxDailyMax {
		return Report{}, ErrInvalidDailyCap
	}
	if maxTotal < maxTotalMin || maxTotal > maxTotalMax {
		return Report{}, ErrInvalidTotalCap
	}
	if len(s.objectives) == 0 {
		return Report{}, ErrNoObjectives
	}

	rng := rand.New(rand.NewSource(allowance.Seed(year, month, s.seedKey)))
	eligible := s.cal.BusinessDays(year, month)
	log.Debugf("generating report for %d-%02d: %d eligible days, caps %.2f/%.2f",
		year, int(month), len(eligible), maxDaily, maxTotal)

	selected, _ := allowance.NewSelector(s.policy, rng).Select(eligible, maxDaily, maxTotal)
	trips := allowance.GroupConsecutive(selected)
	days := allowance.NewCategorizer(s.policy, s.objectives, s.location, rng).Categorize(trips)
	total := allowance.Total(days, maxDaily)

	report := Report{
		Uid:       uuid.New().String(),
		Year:      year,
		Month:     month,
		MaxDaily:  maxDaily,
		MaxTotal:  maxTotal,
		Total:     total,
		Days:      days,
		CreatedAt: s.clock.Now(),
	}
	stored, err := s.repo.Store(ctx, report)
	if err != nil {
		return Report{}, fmt.Errorf("failed to store report: %w", err)
	}

	// The report is already committed; a failed event only costs the audit
	// trail entry, so it is logged and not returned to the caller.
	err = s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		"expense_report.generated",
		event_bus.ExpenseReportGenerated{
			Uid:      stored.Uid,
			Year:     stored.Year,
			Month:    stored.Month,
			DayCount: len(stored.Days),
			Total:    stored.Total,
			MaxTotal: stored.MaxTotal,
		},
	))
	if err != nil {
		log.Errorf("failed to publish report generated event: %v", err)
	}

	return stored, nil
}

func (s *ServiceImpl) Get(ctx context.Context, uid string) (Report, error) {
	return s.repo.Get(ctx, uid)
}

func (s *ServiceImpl) List(ctx context.Context) ([]Report, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Delete(ctx context.Context, uid string) (bool, error) {
	deleted, err := s.repo.Delete(ctx, uid)
	if err != nil {
		return false, err
	}
	if !deleted {
		return false, nil
	}

	err = s.eventBus.Publish(event_bus.NewEvent(
		ctx,
		"expense_report.deleted",
		event_bus.ExpenseReportDeleted{Uid: uid},
	))
	if err != nil {
		log.Errorf("failed to publish report deleted event: %v", err)
	}
	return true, nil
}
