package sse

import (
	"context"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/event"
	"github.com/vistalabs/vista/internal/logger"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub) *Subscriber {
	return &Subscriber{hub: hub}
}

// Register subscribes the bridge to production and restock events
func (s *Subscriber) Register(bus event.Bus) {
	bus.Subscribe(event.ProductionCompleted, s.handleProductionCompleted)
	bus.Subscribe(event.StockRestocked, s.handleStockRestocked)
	logger.Info(LogMsgSubscriberRegistered, "types", KnownEventTypes)
}

// Undecodable payloads are logged and dropped. Returning an error would make
// the resilient publisher replay the event to every other subscriber.
func (s *Subscriber) handleProductionCompleted(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)
	p, err := event.DecodePayload[domain.ProductionCompletedPayload](evt.Payload)
	if err != nil {
		log.Warn(LogMsgPayloadUndecoded, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeProductionCompleted, ProductionCompletedPayload{
		RunID:         p.RunID,
		ProductID:     p.ProductID,
		ProductName:   p.ProductName,
		UnitsProduced: p.UnitsProduced,
		UnitCost:      p.UnitCost,
	})
	log.Debug(LogMsgEventBroadcast, "event_type", EventTypeProductionCompleted, "run_id", p.RunID)

	if low := p.LowPackaging; low != nil && low.MinStock != nil {
		s.hub.Broadcast(EventTypeLowStock, LowStockPayload{
			PackagingID: low.ID,
			Name:        low.Name,
			Stock:       low.Stock,
			MinStock:    *low.MinStock,
			RunID:       p.RunID,
		})
		log.Debug(LogMsgEventBroadcast, "event_type", EventTypeLowStock, "packaging_id", low.ID)
	}
	return nil
}

func (s *Subscriber) handleStockRestocked(ctx context.Context, evt event.Event) error {
	p, err := event.DecodePayload[domain.StockRestockedPayload](evt.Payload)
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgPayloadUndecoded, "event_type", evt.Type, "error", err)
		return nil
	}

	s.hub.Broadcast(EventTypeStockRestocked, StockRestockedPayload{
		Kind:       p.Kind,
		ResourceID: p.ResourceID,
		Name:       p.Name,
		Added:      p.Added,
		NewStock:   p.NewStock,
	})
	logger.FromContext(ctx).Debug(LogMsgEventBroadcast, "event_type", EventTypeStockRestocked, "resource_id", p.ResourceID)
	return nil
}
