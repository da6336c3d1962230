package report

import (
	"context"
	"testing"
	"time"

	"github.com/JMMonte/Accounting-suite/internal/event_bus"
	"github.com/JMMonte/Accounting-suite/internal/utils"
	"github.com/JMMonte/Accounting-suite/pkg/allowance"
	"github.com/JMMonte/Accounting-suite/pkg/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var repoStub = NewStubReportRepo()

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setupService(t *testing.T, cal calendar.Calendar, bus *event_bus.EventBus) (Service, func()) {
	clock := &utils.MockClock{FixedNow: date(2025, time.July, 1)}
	service := NewReportService(
		cal,
		repoStub,
		allowance.DefaultPolicy(),
		[]string{"Reunião com cliente", "Visita técnica"},
		"Rua do Cliente 1, Porto",
		"509876543",
		clock,
		bus,
	)
	return service, func() {
		t.Log("Teardown after test")
		repoStub.Reset()
	}
}

func TestServiceImpl_Generate(t *testing.T) {
	t.Run("should generate and store a report within the caps", func(t *testing.T) {
		cal := calendar.NewStubCalendar(
			date(2025, time.June, 2),
			date(2025, time.June, 3),
			date(2025, time.June, 4),
			date(2025, time.June, 5),
			date(2025, time.June, 6),
		)
		service, teardown := setupService(t, cal, event_bus.NewEventBus())
		defer teardown()

		// when
		report, err := service.Generate(context.Background(), 2025, time.June, 60, 300)

		// then
		require.NoError(t, err)
		assert.NotEmpty(t, report.Uid)
		assert.Equal(t, 2025, report.Year)
		assert.Equal(t, time.June, report.Month)
		assert.Len(t, report.Days, 5)
		assert.Equal(t, 255.0, report.Total)
		assert.LessOrEqual(t, report.Total, report.MaxTotal)

		stored, err := service.Get(context.Background(), report.Uid)
		require.NoError(t, err)
		assert.Equal(t, report.Total, stored.Total)
		assert.Len(t, stored.Days, 5)
	})

	t.Run("should produce the same selection when regenerated for the same period", func(t *testing.T) {
		cal := calendar.NewStubCalendar(weekdayDates(2025, time.July)...)
		service, teardown := setupService(t, cal, event_bus.NewEventBus())
		defer teardown()

		first, err := service.Generate(context.Background(), 2025, time.July, 65, 1000)
		require.NoError(t, err)
		second, err := service.Generate(context.Background(), 2025, time.July, 65, 1000)
		require.NoError(t, err)

		require.Len(t, second.Days, len(first.Days))
		for i := range first.Days {
			assert.Equal(t, first.Days[i].Date, second.Days[i].Date)
			assert.Equal(t, first.Days[i].Tier, second.Days[i].Tier)
		}
		assert.Equal(t, first.Total, second.Total)
		assert.NotEqual(t, first.Uid, second.Uid)
	})

	t.Run("should return an empty report when the budget admits no day", func(t *testing.T) {
		cal := calendar.NewStubCalendar(date(2025, time.June, 2))
		service, teardown := setupService(t, cal, event_bus.NewEventBus())
		defer teardown()

		report, err := service.Generate(context.Background(), 2025, time.June, 60, 5)

		require.NoError(t, err)
		assert.Empty(t, report.Days)
		assert.Equal(t, 0.0, report.Total)
	})

	t.Run("should publish an event after generating", func(t *testing.T) {
		cal := calendar.NewStubCalendar(date(2025, time.June, 2))
		bus := event_bus.NewEventBus()
		var published []event_bus.ExpenseReportGenerated
		event_bus.SubscribeTyped(bus, "expense_report.generated", func(e event_bus.EventT[event_bus.ExpenseReportGenerated]) error {
			published = append(published, e.Data)
			return nil
		})
		service, teardown := setupService(t, cal, bus)
		defer teardown()

		report, err := service.Generate(context.Background(), 2025, time.June, 60, 300)

		require.NoError(t, err)
		require.Len(t, published, 1)
		assert.Equal(t, report.Uid, published[0].Uid)
		assert.Equal(t, report.Total, published[0].Total)
		assert.Equal(t, 1, published[0].DayCount)
	})

	t.Run("should reject invalid parameters", func(t *testing.T) {
		cal := calendar.NewStubCalendar()
		service, teardown := setupService(t, cal, event_bus.NewEventBus())
		defer teardown()

		_, err := service.Generate(context.Background(), 2019, time.June, 60, 300)
		assert.ErrorIs(t, err, ErrInvalidPeriod)

		_, err = service.Generate(context.Background(), 2025, time.June, 0, 300)
		assert.ErrorIs(t, err, ErrInvalidDailyCap)

		_, err = service.Generate(context.Background(), 2025, time.June, 60, 9000)
		assert.ErrorIs(t, err, ErrInvalidTotalCap)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	t.Run("should delete a stored report and publish an event", func(t *testing.T) {
		cal := calendar.NewStubCalendar(date(2025, time.June, 2))
		bus := event_bus.NewEventBus()
		var deletedUids []string
		event_bus.SubscribeTyped(bus, "expense_report.deleted", func(e event_bus.EventT[event_bus.ExpenseReportDeleted]) error {
			deletedUids = append(deletedUids, e.Data.Uid)
			return nil
		})
		service, teardown := setupService(t, cal, bus)
		defer teardown()

		report, err := service.Generate(context.Background(), 2025, time.June, 60, 300)
		require.NoError(t, err)

		deleted, err := service.Delete(context.Background(), report.Uid)
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, []string{report.Uid}, deletedUids)

		_, err = service.Get(context.Background(), report.Uid)
		assert.ErrorIs(t, err, ErrReportNotFound)
	})

	t.Run("should report false for an unknown uid", func(t *testing.T) {
		service, teardown := setupService(t, calendar.NewStubCalendar(), event_bus.NewEventBus())
		defer teardown()

		deleted, err := service.Delete(context.Background(), "missing")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}

func weekdayDates(year int, month time.Month) []time.Time {
	var days []time.Time
	for d := date(year, month, 1); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			days = append(days, d)
		}
	}
	return days
}
