package domain

// ProductionCompletedPayload is published after a run is committed
type ProductionCompletedPayload struct {
	RunID            string    `json:"run_id"`
	ProductID        string    `json:"product_id"`
	ProductName      string    `json:"product_name"`
	UnitsProduced    int       `json:"units_produced"`
	BatchVolumeUnits float64   `json:"batch_volume_units"`
	UnitCost         float64   `json:"unit_cost"`
	Mutations        Mutations `json:"mutations"`
	// LowPackaging is set when the run left packaging below its minimum stock
	LowPackaging *Packaging `json:"low_packaging,omitempty"`
	Timestamp    int64      `json:"timestamp"`
}

// StockRestockedPayload is published after a catalog restock
type StockRestockedPayload struct {
	Kind       LineKind `json:"kind"`
	ResourceID string   `json:"resource_id"`
	Name       string   `json:"name"`
	Added      float64  `json:"added"`
	NewStock   float64  `json:"new_stock"`
	Timestamp  int64    `json:"timestamp"`
}
