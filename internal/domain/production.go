package domain

import "time"

// ProductionSnapshot is the read view a production simulation or execution
// works on. Packaging is nil when the product's packaging does not resolve.
type ProductionSnapshot struct {
	Product     Product               `json:"product"`
	Packaging   *Packaging            `json:"packaging,omitempty"`
	Ingredients map[string]Ingredient `json:"ingredients"`
}

// LineItem is one resource requirement of a production run.
// Display values are expressed in the resource's display unit, base values in
// its storage unit.
type LineItem struct {
	Kind          LineKind    `json:"kind"`
	ResourceID    string      `json:"resource_id"`
	Name          string      `json:"name"`
	DisplayUnit   DisplayUnit `json:"display_unit"`
	Current       float64     `json:"current"`
	Required      float64     `json:"required"`
	Remaining     float64     `json:"remaining"`
	CurrentBase   float64     `json:"current_base"`
	RequiredBase  float64     `json:"required_base"`
	RemainingBase float64     `json:"remaining_base"`
	Sufficient    bool        `json:"sufficient"`
	// Missing marks a formula line whose ingredient no longer exists.
	Missing bool `json:"missing,omitempty"`
}

// SimulationResult is the preview of a production run.
type SimulationResult struct {
	Feasible         bool       `json:"feasible"`
	Mode             Mode       `json:"mode"`
	UnitsToProduce   int        `json:"units_to_produce"`
	BatchVolumeUnits float64    `json:"batch_volume_units"`
	LineItems        []LineItem `json:"line_items"`
	Failure          *Failure   `json:"failure,omitempty"`
}

// IngredientDelta is the stock change applied to one ingredient.
type IngredientDelta struct {
	IngredientID string  `json:"ingredient_id" msgpack:"ingredient_id"`
	Delta        float64 `json:"delta" msgpack:"delta"`
	NewStock     float64 `json:"new_stock" msgpack:"new_stock"`
}

// PackagingDelta is the stock change applied to the packaging.
type PackagingDelta struct {
	PackagingID string `json:"packaging_id" msgpack:"packaging_id"`
	Delta       int    `json:"delta" msgpack:"delta"`
	NewStock    int    `json:"new_stock" msgpack:"new_stock"`
}

// ProductDelta is the stock change applied to the finished product.
type ProductDelta struct {
	ProductID string `json:"product_id" msgpack:"product_id"`
	Delta     int    `json:"delta" msgpack:"delta"`
	NewStock  int    `json:"new_stock" msgpack:"new_stock"`
}

// Mutations is the complete set of stock changes of a committed run.
// Deltas are kept at full precision.
type Mutations struct {
	Ingredients []IngredientDelta `json:"ingredients" msgpack:"ingredients"`
	Packaging   PackagingDelta    `json:"packaging" msgpack:"packaging"`
	Product     ProductDelta      `json:"product" msgpack:"product"`
}

// Apply returns a copy of s with the mutations applied. s is not modified.
func (m Mutations) Apply(s ProductionSnapshot) ProductionSnapshot {
	next := ProductionSnapshot{
		Product:     s.Product,
		Ingredients: make(map[string]Ingredient, len(s.Ingredients)),
	}
	for id, ing := range s.Ingredients {
		next.Ingredients[id] = ing
	}
	for _, d := range m.Ingredients {
		if ing, ok := next.Ingredients[d.IngredientID]; ok {
			ing.Stock += d.Delta
			next.Ingredients[d.IngredientID] = ing
		}
	}
	if s.Packaging != nil {
		pkg := *s.Packaging
		if pkg.ID == m.Packaging.PackagingID {
			pkg.Stock += m.Packaging.Delta
		}
		next.Packaging = &pkg
	}
	if next.Product.ID == m.Product.ProductID {
		next.Product.Stock += m.Product.Delta
	}
	return next
}

// ExecutionResult is the outcome of a production run.
type ExecutionResult struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	Failure   *Failure   `json:"failure,omitempty"`
	Mutations *Mutations `json:"mutations,omitempty"`
	// Run is set by the host once the run has been recorded.
	Run *ProductionRun `json:"run,omitempty"`
}

// ProductionRun is the history record of a committed run.
type ProductionRun struct {
	ID               string    `json:"id" msgpack:"id"`
	ProductID        string    `json:"product_id" msgpack:"product_id"`
	ProductName      string    `json:"product_name" msgpack:"product_name"`
	UnitsProduced    int       `json:"units_produced" msgpack:"units_produced"`
	BatchVolumeUnits float64   `json:"batch_volume_units" msgpack:"batch_volume_units"`
	UnitCost         float64   `json:"unit_cost" msgpack:"unit_cost"`
	Mutations        Mutations `json:"mutations" msgpack:"mutations"`
	CreatedAt        time.Time `json:"created_at" msgpack:"created_at"`
}

// Snapshot is a full export of the store.
type Snapshot struct {
	Ingredients map[string]Ingredient `json:"ingredients" msgpack:"ingredients"`
	Packaging   map[string]Packaging  `json:"packaging" msgpack:"packaging"`
	Products    map[string]Product    `json:"products" msgpack:"products"`
	Runs        []ProductionRun       `json:"runs" msgpack:"runs"`
	TakenAt     time.Time             `json:"taken_at" msgpack:"taken_at"`
}

// NewSnapshot returns an empty snapshot with initialized maps.
func NewSnapshot() Snapshot {
	return Snapshot{
		Ingredients: make(map[string]Ingredient),
		Packaging:   make(map[string]Packaging),
		Products:    make(map[string]Product),
	}
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{
		Ingredients: make(map[string]Ingredient, len(s.Ingredients)),
		Packaging:   make(map[string]Packaging, len(s.Packaging)),
		Products:    make(map[string]Product, len(s.Products)),
		Runs:        make([]ProductionRun, len(s.Runs)),
		TakenAt:     s.TakenAt,
	}
	for k, v := range s.Ingredients {
		c.Ingredients[k] = v
	}
	for k, v := range s.Packaging {
		if v.MinStock != nil {
			m := *v.MinStock
			v.MinStock = &m
		}
		c.Packaging[k] = v
	}
	for k, v := range s.Products {
		v.Formula = append([]FormulaItem(nil), v.Formula...)
		c.Products[k] = v
	}
	copy(c.Runs, s.Runs)
	return c
}

// ProductionSnapshot resolves the read view for one product.
func (s Snapshot) ProductionSnapshot(productID string) (ProductionSnapshot, bool) {
	p, ok := s.Products[productID]
	if !ok {
		return ProductionSnapshot{}, false
	}
	ps := ProductionSnapshot{
		Product:     p,
		Ingredients: make(map[string]Ingredient, len(p.Formula)),
	}
	if pkg, ok := s.Packaging[p.PackagingID]; ok {
		ps.Packaging = &pkg
	}
	for _, id := range p.IngredientIDs() {
		if ing, ok := s.Ingredients[id]; ok {
			ps.Ingredients[id] = ing
		}
	}
	return ps, true
}
