package metrics

import (
	"context"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/event"
	"github.com/vistalabs/vista/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all events
func (e *EventMetricsCollector) Register(bus event.Bus) {
	for _, eventType := range []event.Type{event.ProductionCompleted, event.StockRestocked} {
		bus.Subscribe(eventType, e.HandleEvent)
	}
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch evt.Type {
	case event.ProductionCompleted:
		p, err := event.DecodePayload[domain.ProductionCompletedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadUndecoded, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		UnitsProduced.WithLabelValues(p.ProductID).Add(float64(p.UnitsProduced))

	case event.StockRestocked:
		p, err := event.DecodePayload[domain.StockRestockedPayload](evt.Payload)
		if err != nil {
			log.Debug(LogMsgPayloadUndecoded, "type", evt.Type, "error", err)
			EventHandlerErrors.WithLabelValues(string(evt.Type)).Inc()
			return nil
		}
		Restocks.WithLabelValues(string(p.Kind)).Inc()
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}
