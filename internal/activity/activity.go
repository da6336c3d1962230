package activity

import (
	"github.com/JMMonte/Accounting-suite/internal/event_bus"
	log "github.com/sirupsen/logrus"
)

// Trail is a log-only activity trail. It subscribes to report lifecycle
// events and writes one structured log line per activity. Nothing is
// persisted.
type Trail struct {
	unsubscribe []func()
}

func NewTrail(bus *event_bus.EventBus) *Trail {
	t := &Trail{}

	t.unsubscribe = append(t.unsubscribe, event_bus.SubscribeTyped[event_bus.ExpenseReportGenerated](
		bus,
		"expense_report.generated",
		func(e event_bus.EventT[event_bus.ExpenseReportGenerated]) error {
			log.WithFields(log.Fields{
				"report":   e.Data.Uid,
				"period":   e.Data.Month.String(),
				"year":     e.Data.Year,
				"days":     e.Data.DayCount,
				"total":    e.Data.Total,
				"maxTotal": e.Data.MaxTotal,
			}).Info("expense report generated")
			return nil
		},
	))

	t.unsubscribe = append(t.unsubscribe, event_bus.SubscribeTyped[event_bus.ExpenseReportDeleted](
		bus,
		"expense_report.deleted",
		func(e event_bus.EventT[event_bus.ExpenseReportDeleted]) error {
			log.WithField("report", e.Data.Uid).Info("expense report deleted")
			return nil
		},
	))

	return t
}

// Close removes the trail's subscriptions from the bus.
func (t *Trail) Close() {
	for _, unsub := range t.unsubscribe {
		unsub()
	}
	t.unsubscribe = nil
}
