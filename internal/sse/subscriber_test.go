package sse

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/event"
)

func TestSubscriber_ForwardsBusEvents(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub).Register(bus)

	client := hub.Register(nil)
	waitForClients(t, hub, 1)

	minStock := 50
	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.Event{
		Type: event.ProductionCompleted,
		Payload: domain.ProductionCompletedPayload{
			RunID:         "run-1",
			ProductID:     "cream",
			UnitsProduced: 10,
			LowPackaging:  &domain.Packaging{ID: "jar", Name: "100ml Jar", Stock: 40, MinStock: &minStock},
		},
	}))

	completed := receive(t, client)
	assert.Equal(t, EventTypeProductionCompleted, completed.Type)
	assert.Equal(t, "run-1", completed.Payload.(ProductionCompletedPayload).RunID)

	low := receive(t, client)
	assert.Equal(t, EventTypeLowStock, low.Type)
	assert.Equal(t, LowStockPayload{PackagingID: "jar", Name: "100ml Jar", Stock: 40, MinStock: 50, RunID: "run-1"}, low.Payload)

	// Restocks arrive as maps after a dead-letter replay
	require.NoError(t, bus.Publish(ctx, event.Event{
		Type:    event.StockRestocked,
		Payload: map[string]interface{}{"kind": "ingredient", "resource_id": "gly", "added": 500.0, "new_stock": 1500.0},
	}))
	restock := receive(t, client)
	assert.Equal(t, EventTypeStockRestocked, restock.Type)
	assert.Equal(t, "gly", restock.Payload.(StockRestockedPayload).ResourceID)
}

func TestSubscriber_SkipsLowStockWhenAboveMinimum(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub).Register(bus)
	client := hub.Register([]string{EventTypeLowStock, EventTypeStockRestocked})
	waitForClients(t, hub, 1)

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, event.Event{
		Type:    event.ProductionCompleted,
		Payload: domain.ProductionCompletedPayload{RunID: "run-2"},
	}))
	require.NoError(t, bus.Publish(ctx, event.Event{Type: event.StockRestocked, Payload: "not a payload"}))
	require.NoError(t, bus.Publish(ctx, event.Event{
		Type:    event.StockRestocked,
		Payload: domain.StockRestockedPayload{ResourceID: "jar"},
	}))

	// The first event this client sees is the restock
	assert.Equal(t, EventTypeStockRestocked, receive(t, client).Type)
}
