package sse

import "github.com/vistalabs/vista/internal/domain"

// ProductionCompletedPayload is the stream view of a committed run
type ProductionCompletedPayload struct {
	RunID         string  `json:"run_id"`
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	UnitsProduced int     `json:"units_produced"`
	UnitCost      float64 `json:"unit_cost"`
}

// StockRestockedPayload mirrors a catalog restock
type StockRestockedPayload struct {
	Kind       domain.LineKind `json:"kind"`
	ResourceID string          `json:"resource_id"`
	Name       string          `json:"name"`
	Added      float64         `json:"added"`
	NewStock   float64         `json:"new_stock"`
}

// LowStockPayload flags packaging under its configured minimum
type LowStockPayload struct {
	PackagingID string `json:"packaging_id"`
	Name        string `json:"name"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
	RunID       string `json:"run_id"`
}

// KnownEventTypes lists the types a client may filter on
var KnownEventTypes = []string{
	EventTypeProductionCompleted,
	EventTypeStockRestocked,
	EventTypeLowStock,
}
