package domain

import "time"

// Ingredient is a raw material held in stock.
type Ingredient struct {
	ID              string      `json:"id" msgpack:"id"`
	Name            string      `json:"name" msgpack:"name"`
	// Stock is held in base units: g, ml or pcs.
	Stock           float64     `json:"stock" msgpack:"stock"`
	DisplayUnit     DisplayUnit `json:"display_unit" msgpack:"display_unit"`
	CostPerBaseUnit float64     `json:"cost_per_base_unit" msgpack:"cost_per_base_unit"`
	UpdatedAt       time.Time   `json:"updated_at,omitempty" msgpack:"updated_at,omitempty"`
}

// Packaging is a container that holds one finished unit of product.
type Packaging struct {
	ID           string    `json:"id" msgpack:"id"`
	Name         string    `json:"name" msgpack:"name"`
	CapacityMl   float64   `json:"capacity_ml" msgpack:"capacity_ml"`
	Stock        int       `json:"stock" msgpack:"stock"`
	CostPerPiece float64   `json:"cost_per_piece" msgpack:"cost_per_piece"`
	MinStock     *int      `json:"min_stock,omitempty" msgpack:"min_stock,omitempty"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" msgpack:"updated_at,omitempty"`
}

// BelowMinimum reports whether stock dropped under the configured minimum.
func (p Packaging) BelowMinimum() bool {
	return p.MinStock != nil && p.Stock < *p.MinStock
}

// FormulaItem is one ingredient line of a product formula. The amount is given
// in the ingredient's base unit per 1000 ml (or g) of finished product.
type FormulaItem struct {
	IngredientID        string  `json:"ingredient_id" msgpack:"ingredient_id"`
	AmountPerUnitVolume float64 `json:"amount_per_unit_volume" msgpack:"amount_per_unit_volume"`
}

// Product is a finished good made from a formula and filled into packaging.
type Product struct {
	ID          string        `json:"id" msgpack:"id"`
	Name        string        `json:"name" msgpack:"name"`
	Category    string        `json:"category,omitempty" msgpack:"category,omitempty"`
	Formula     []FormulaItem `json:"formula" msgpack:"formula"`
	PackagingID string        `json:"packaging_id" msgpack:"packaging_id"`
	SalePrice   float64       `json:"sale_price" msgpack:"sale_price"`
	Stock       int           `json:"stock" msgpack:"stock"`
	UpdatedAt   time.Time     `json:"updated_at,omitempty" msgpack:"updated_at,omitempty"`
}

// IngredientIDs returns the distinct ingredient ids referenced by the formula,
// in formula order.
func (p Product) IngredientIDs() []string {
	seen := make(map[string]struct{}, len(p.Formula))
	ids := make([]string, 0, len(p.Formula))
	for _, item := range p.Formula {
		if _, ok := seen[item.IngredientID]; ok {
			continue
		}
		seen[item.IngredientID] = struct{}{}
		ids = append(ids, item.IngredientID)
	}
	return ids
}
