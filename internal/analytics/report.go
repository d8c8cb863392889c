// Package analytics derives financial figures from a store snapshot.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vistalabs/vista/internal/costing"
	"github.com/vistalabs/vista/internal/domain"
)

// MoneyPlaces is the number of decimals money values are rounded to on output
const MoneyPlaces = 2

var (
	hundred         = decimal.NewFromInt(100)
	referenceVolume = decimal.NewFromFloat(domain.ReferenceVolumeMl)
	maxBatchUnits   = decimal.NewFromInt(domain.MaxBatchUnits)
)

// ProductFigures are the per-product numbers of a report
type ProductFigures struct {
	ProductID    string  `json:"product_id"`
	Name         string  `json:"name"`
	Category     string  `json:"category,omitempty"`
	Stock        int     `json:"stock"`
	SalePrice    float64 `json:"sale_price"`
	UnitCost     float64 `json:"unit_cost"`
	Margin       float64 `json:"margin"`
	MarginPct    float64 `json:"margin_pct"`
	StockValue   float64 `json:"stock_value"`
	Projected    float64 `json:"projected_profit"`
	MaxUnits     int     `json:"max_producible_units"`
	LimitedBy    string  `json:"limited_by,omitempty"`
	Unprofitable bool    `json:"unprofitable,omitempty"`
}

// LowStock is packaging below its configured minimum
type LowStock struct {
	PackagingID string `json:"packaging_id"`
	Name        string `json:"name"`
	Stock       int    `json:"stock"`
	MinStock    int    `json:"min_stock"`
}

// Totals are the inventory valuations of a report
type Totals struct {
	IngredientValue    float64 `json:"ingredient_value"`
	PackagingValue     float64 `json:"packaging_value"`
	FinishedGoodsValue float64 `json:"finished_goods_value"`
	InventoryValue     float64 `json:"inventory_value"`
	ProjectedProfit    float64 `json:"projected_profit"`
}

// Report is the financial overview of the store
type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Products    []ProductFigures `json:"products"`
	Totals      Totals           `json:"totals"`
	LowStock    []LowStock       `json:"low_stock"`
}

// Build computes a report. Products are ordered by name.
func Build(s domain.Snapshot) Report {
	r := Report{
		GeneratedAt: s.TakenAt,
		Products:    make([]ProductFigures, 0, len(s.Products)),
		LowStock:    []LowStock{},
	}

	ingredientValue := decimal.Zero
	for _, ing := range s.Ingredients {
		ingredientValue = ingredientValue.Add(decimal.NewFromFloat(ing.Stock).Mul(decimal.NewFromFloat(ing.CostPerBaseUnit)))
	}

	packagingValue := decimal.Zero
	for _, pkg := range s.Packaging {
		packagingValue = packagingValue.Add(decimal.NewFromInt(int64(pkg.Stock)).Mul(decimal.NewFromFloat(pkg.CostPerPiece)))
		if pkg.BelowMinimum() {
			r.LowStock = append(r.LowStock, LowStock{PackagingID: pkg.ID, Name: pkg.Name, Stock: pkg.Stock, MinStock: *pkg.MinStock})
		}
	}
	sort.Slice(r.LowStock, func(i, j int) bool { return r.LowStock[i].Name < r.LowStock[j].Name })

	finished := decimal.Zero
	projected := decimal.Zero
	for _, p := range s.Products {
		var pkg *domain.Packaging
		if found, ok := s.Packaging[p.PackagingID]; ok {
			pkg = &found
		}
		unitCost := decimal.NewFromFloat(costing.ComputeUnitCost(p, pkg, s.Ingredients))
		sale := decimal.NewFromFloat(p.SalePrice)
		margin := sale.Sub(unitCost)
		stock := decimal.NewFromInt(int64(p.Stock))

		f := ProductFigures{
			ProductID:    p.ID,
			Name:         p.Name,
			Category:     p.Category,
			Stock:        p.Stock,
			SalePrice:    p.SalePrice,
			UnitCost:     money(unitCost),
			Margin:       money(margin),
			StockValue:   money(stock.Mul(unitCost)),
			Projected:    money(stock.Mul(margin)),
			Unprofitable: margin.Sign() < 0,
		}
		if sale.Sign() > 0 {
			f.MarginPct = money(margin.Div(sale).Mul(hundred))
		}
		f.MaxUnits, f.LimitedBy = maxProducible(p, pkg, s.Ingredients)
		r.Products = append(r.Products, f)

		finished = finished.Add(stock.Mul(unitCost))
		projected = projected.Add(stock.Mul(margin))
	}
	sort.Slice(r.Products, func(i, j int) bool {
		if r.Products[i].Name == r.Products[j].Name {
			return r.Products[i].ProductID < r.Products[j].ProductID
		}
		return r.Products[i].Name < r.Products[j].Name
	})

	r.Totals = Totals{
		IngredientValue:    money(ingredientValue),
		PackagingValue:     money(packagingValue),
		FinishedGoodsValue: money(finished),
		InventoryValue:     money(ingredientValue.Add(packagingValue).Add(finished)),
		ProjectedProfit:    money(projected),
	}
	return r
}

// maxProducible returns how many units current stock allows and the id of
// the resource that limits it. Unresolvable products can make nothing. The
// count is capped at domain.MaxBatchUnits, the most a single run can make;
// LimitedBy stays the scarcest resource.
func maxProducible(p domain.Product, pkg *domain.Packaging, ingredients map[string]domain.Ingredient) (int, string) {
	if pkg == nil || pkg.CapacityMl <= 0 {
		return 0, p.PackagingID
	}
	ratio := decimal.NewFromFloat(pkg.CapacityMl).Div(referenceVolume)

	perUnit := make(map[string]decimal.Decimal, len(p.Formula))
	for _, item := range p.Formula {
		perUnit[item.IngredientID] = perUnit[item.IngredientID].Add(decimal.NewFromFloat(item.AmountPerUnitVolume).Mul(ratio))
	}

	best, limit := decimal.NewFromInt(int64(pkg.Stock)), pkg.ID
	for _, id := range p.IngredientIDs() {
		ing, ok := ingredients[id]
		if !ok {
			return 0, id
		}
		need := perUnit[id]
		if need.Sign() <= 0 {
			continue
		}
		if n := decimal.NewFromFloat(ing.Stock).Div(need).Floor(); n.LessThan(best) {
			best, limit = n, id
		}
	}
	switch {
	case best.IsNegative():
		return 0, limit
	case best.GreaterThan(maxBatchUnits):
		return domain.MaxBatchUnits, limit
	}
	return int(best.IntPart()), limit
}

func money(d decimal.Decimal) float64 {
	return d.Round(MoneyPlaces).InexactFloat64()
}
