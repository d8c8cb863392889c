package domain

// DisplayUnit is the unit a resource is shown and entered in.
// Stock is always stored in the matching base unit (g, ml or pieces).
type DisplayUnit string

const (
	UnitKilogram DisplayUnit = "kg"
	UnitLiter    DisplayUnit = "l"
	UnitPieces   DisplayUnit = "pcs"
)

// BulkFactor converts a bulk display unit (kg, l) into its base unit (g, ml).
const BulkFactor = 1000.0

// ReferenceVolumeMl is the product volume a formula amount refers to.
const ReferenceVolumeMl = 1000.0

// MaxBatchUnits is the largest unit count a single production run may have.
// Requests above it are refused instead of converted to int.
const MaxBatchUnits = 1_000_000_000

// IsBulk reports whether the unit is a bulk unit (kg or l).
func (u DisplayUnit) IsBulk() bool {
	return u == UnitKilogram || u == UnitLiter
}

// Valid reports whether u is a known display unit.
func (u DisplayUnit) Valid() bool {
	switch u {
	case UnitKilogram, UnitLiter, UnitPieces:
		return true
	}
	return false
}

// BaseUnit returns the label of the storage unit backing u.
func (u DisplayUnit) BaseUnit() string {
	switch u {
	case UnitKilogram:
		return "g"
	case UnitLiter:
		return "ml"
	default:
		return "pcs"
	}
}

// Mode selects how a requested production quantity is interpreted.
type Mode string

const (
	// ModeUnits interprets the quantity as a count of finished units.
	ModeUnits Mode = "units"
	// ModeBatchVolume interprets the quantity as thousands of ml/g of product.
	ModeBatchVolume Mode = "batchVolume"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeUnits || m == ModeBatchVolume
}

// LineKind tells ingredient and packaging lines apart in a simulation.
type LineKind string

const (
	LineIngredient LineKind = "ingredient"
	LinePackaging  LineKind = "packaging"
)

// Event types
const (
	EventProductionCompleted = "production.completed"
	EventStockRestocked      = "stock.restocked"
)
