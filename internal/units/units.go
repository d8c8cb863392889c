// Package units converts quantities between display and base units and between
// the two production input modes.
package units

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vistalabs/vista/internal/domain"
)

var (
	bulkFactor      = decimal.NewFromFloat(domain.BulkFactor)
	referenceVolume = decimal.NewFromFloat(domain.ReferenceVolumeMl)
	maxBatchUnits   = decimal.NewFromInt(domain.MaxBatchUnits)
)

// ToBaseQuantity converts a display quantity into base units.
// Bulk quantities (kg, l) are multiplied by 1000; pieces pass through.
func ToBaseQuantity(displayQty float64, isBulk bool) float64 {
	if !isBulk {
		return displayQty
	}
	return decimal.NewFromFloat(displayQty).Mul(bulkFactor).InexactFloat64()
}

// ToDisplayQuantity converts a base quantity into the given display unit.
func ToDisplayQuantity(baseQty float64, unit domain.DisplayUnit) float64 {
	if !unit.IsBulk() {
		return baseQty
	}
	return decimal.NewFromFloat(baseQty).Div(bulkFactor).InexactFloat64()
}

// UnitsFromBatchVolume returns how many whole packaging units a batch fills.
// The result is truncated toward zero; leftover liquid is not tracked.
// Batches filling more than domain.MaxBatchUnits fail with
// domain.ErrInvalidQuantity.
func UnitsFromBatchVolume(batchVolumeUnits, capacityMl float64) (int, error) {
	if capacityMl <= 0 {
		return 0, fmt.Errorf("%w: capacity must be positive, got %v", domain.ErrInvalidPackaging, capacityMl)
	}
	units := decimal.NewFromFloat(batchVolumeUnits).
		Mul(referenceVolume).
		Div(decimal.NewFromFloat(capacityMl)).
		Floor()
	if units.GreaterThan(maxBatchUnits) {
		return 0, fmt.Errorf("%w: batch of %v fills more than %d units", domain.ErrInvalidQuantity, batchVolumeUnits, domain.MaxBatchUnits)
	}
	return int(units.IntPart()), nil
}

// BatchVolumeFromUnits returns the batch volume needed to fill unitCount
// packaging units. The result is continuous and not rounded.
func BatchVolumeFromUnits(unitCount int, capacityMl float64) float64 {
	return decimal.NewFromInt(int64(unitCount)).
		Mul(decimal.NewFromFloat(capacityMl)).
		Div(referenceVolume).
		InexactFloat64()
}

// BatchMatchesUnits reports whether a batch volume yields exactly unitCount
// units. That holds for the volume BatchVolumeFromUnits derives (units mode)
// and for any volume UnitsFromBatchVolume truncates to unitCount (batch mode).
func BatchMatchesUnits(unitCount int, batchVolumeUnits, capacityMl float64) bool {
	if batchVolumeUnits == BatchVolumeFromUnits(unitCount, capacityMl) {
		return true
	}
	n, err := UnitsFromBatchVolume(batchVolumeUnits, capacityMl)
	return err == nil && n == unitCount
}
