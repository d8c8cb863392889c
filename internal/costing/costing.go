// Package costing computes per-unit manufacturing cost from a product formula
// and its packaging.
package costing

import (
	"github.com/shopspring/decimal"

	"github.com/vistalabs/vista/internal/domain"
)

// Breakdown details how a unit cost was obtained.
type Breakdown struct {
	ProductID string  `json:"product_id"`
	UnitCost  float64 `json:"unit_cost"`
	// LiquidCost is the formula cost per 1000 ml (or g) of product.
	LiquidCost    float64 `json:"liquid_cost"`
	VolumeRatio   float64 `json:"volume_ratio"`
	PackagingCost float64 `json:"packaging_cost"`
	// MissingIngredients lists formula references that did not resolve and
	// therefore contributed nothing.
	MissingIngredients []string `json:"missing_ingredients,omitempty"`
	InvalidPackaging   bool     `json:"invalid_packaging,omitempty"`
}

// ComputeUnitCost returns the cost of one finished unit.
// A product without valid packaging costs 0.
func ComputeUnitCost(product domain.Product, packaging *domain.Packaging, ingredients map[string]domain.Ingredient) float64 {
	return ComputeUnitCostDetail(product, packaging, ingredients).UnitCost
}

// ComputeUnitCostDetail is ComputeUnitCost with the intermediate values.
func ComputeUnitCostDetail(product domain.Product, packaging *domain.Packaging, ingredients map[string]domain.Ingredient) Breakdown {
	b := Breakdown{ProductID: product.ID}
	if packaging == nil || packaging.CapacityMl <= 0 {
		b.InvalidPackaging = true
		return b
	}

	liquid := decimal.Zero
	for _, item := range product.Formula {
		ing, ok := ingredients[item.IngredientID]
		if !ok {
			b.MissingIngredients = append(b.MissingIngredients, item.IngredientID)
			continue
		}
		liquid = liquid.Add(decimal.NewFromFloat(ing.CostPerBaseUnit).Mul(decimal.NewFromFloat(item.AmountPerUnitVolume)))
	}

	ratio := decimal.NewFromFloat(packaging.CapacityMl).Div(decimal.NewFromFloat(domain.ReferenceVolumeMl))
	piece := decimal.NewFromFloat(packaging.CostPerPiece)

	b.LiquidCost = liquid.InexactFloat64()
	b.VolumeRatio = ratio.InexactFloat64()
	b.PackagingCost = piece.InexactFloat64()
	b.UnitCost = liquid.Mul(ratio).Add(piece).InexactFloat64()
	return b
}

// Margin returns sale price minus unit cost.
func Margin(salePrice, unitCost float64) float64 {
	return decimal.NewFromFloat(salePrice).Sub(decimal.NewFromFloat(unitCost)).InexactFloat64()
}
