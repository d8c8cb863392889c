// Package production simulates and executes production runs against a stock
// snapshot.
package production

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/units"
)

// evaluation is the line-by-line sufficiency check shared by Simulate and
// Execute.
type evaluation struct {
	units   int
	batch   float64
	lines   []domain.LineItem
	failure *domain.Failure
	// consumed holds the total base requirement per ingredient, in formula order.
	consumed []consumption
}

type consumption struct {
	ingredientID string
	amount       decimal.Decimal
	stock        decimal.Decimal
}

func (e evaluation) feasible() bool {
	return e.failure == nil && e.units > 0
}

// Simulate previews a production run without mutating anything.
// In units mode the requested quantity is truncated to whole units. Unknown
// modes are treated as units.
func Simulate(snapshot domain.ProductionSnapshot, requestedQuantity float64, mode domain.Mode) domain.SimulationResult {
	if mode != domain.ModeBatchVolume {
		mode = domain.ModeUnits
	}
	result := domain.SimulationResult{Mode: mode, LineItems: []domain.LineItem{}}

	if f := checkPackaging(snapshot); f != nil {
		result.Failure = f
		return result
	}
	if math.IsNaN(requestedQuantity) || math.IsInf(requestedQuantity, 0) || requestedQuantity <= 0 {
		result.Failure = &domain.Failure{Kind: domain.FailureDegenerateBatch, Message: MsgDegenerateQuantity}
		return result
	}

	capacity := snapshot.Packaging.CapacityMl
	switch mode {
	case domain.ModeBatchVolume:
		result.BatchVolumeUnits = requestedQuantity
		n, err := units.UnitsFromBatchVolume(requestedQuantity, capacity)
		if errors.Is(err, domain.ErrInvalidQuantity) {
			result.Failure = quantityTooLarge()
			return result
		}
		if err != nil {
			result.Failure = invalidCapacity(*snapshot.Packaging)
			return result
		}
		result.UnitsToProduce = n
	default:
		if math.Floor(requestedQuantity) > domain.MaxBatchUnits {
			result.Failure = quantityTooLarge()
			return result
		}
		result.UnitsToProduce = int(math.Floor(requestedQuantity))
		result.BatchVolumeUnits = units.BatchVolumeFromUnits(result.UnitsToProduce, capacity)
	}

	if result.UnitsToProduce <= 0 {
		result.Failure = &domain.Failure{Kind: domain.FailureDegenerateBatch, Message: MsgDegenerateBatch}
		return result
	}

	ev := evaluate(snapshot, result.UnitsToProduce, result.BatchVolumeUnits)
	result.LineItems = ev.lines
	result.Failure = ev.failure
	result.Feasible = ev.feasible()
	return result
}

func checkPackaging(s domain.ProductionSnapshot) *domain.Failure {
	if s.Packaging == nil {
		return &domain.Failure{
			Kind:       domain.FailureInvalidPackaging,
			Message:    printer.Sprintf(MsgInvalidPackagingMissing, s.Product.Name),
			ResourceID: s.Product.PackagingID,
		}
	}
	if s.Packaging.CapacityMl <= 0 {
		return invalidCapacity(*s.Packaging)
	}
	return nil
}

func quantityTooLarge() *domain.Failure {
	return &domain.Failure{
		Kind:    domain.FailureInvalidQuantity,
		Message: printer.Sprintf(MsgQuantityTooLarge, domain.MaxBatchUnits),
	}
}

func invalidCapacity(p domain.Packaging) *domain.Failure {
	return &domain.Failure{
		Kind:         domain.FailureInvalidPackaging,
		Message:      printer.Sprintf(MsgInvalidPackagingCapacity, p.Name, p.CapacityMl),
		ResourceID:   p.ID,
		ResourceName: p.Name,
	}
}

// evaluate builds one line per formula item plus the packaging line.
// Repeated references to the same ingredient accumulate, so a later line's
// remaining stock accounts for the earlier ones.
// Packaging must already be known valid.
func evaluate(s domain.ProductionSnapshot, unitCount int, batch float64) evaluation {
	ev := evaluation{
		units: unitCount,
		batch: batch,
		lines: make([]domain.LineItem, 0, len(s.Product.Formula)+1),
	}
	batchDec := decimal.NewFromFloat(batch)
	index := make(map[string]int, len(s.Product.Formula))

	for _, item := range s.Product.Formula {
		required := decimal.NewFromFloat(item.AmountPerUnitVolume).Mul(batchDec)

		ing, ok := s.Ingredients[item.IngredientID]
		if !ok {
			ev.lines = append(ev.lines, domain.LineItem{
				Kind:         domain.LineIngredient,
				ResourceID:   item.IngredientID,
				Name:         item.IngredientID,
				RequiredBase: required.InexactFloat64(),
				Required:     required.InexactFloat64(),
				Missing:      true,
			})
			ev.fail(&domain.Failure{
				Kind:       domain.FailureFormulaIntegrity,
				Message:    printer.Sprintf(MsgFormulaIntegrity, item.IngredientID),
				ResourceID: item.IngredientID,
			})
			continue
		}

		i, seen := index[ing.ID]
		if !seen {
			i = len(ev.consumed)
			index[ing.ID] = i
			ev.consumed = append(ev.consumed, consumption{
				ingredientID: ing.ID,
				stock:        decimal.NewFromFloat(ing.Stock),
			})
		}
		ev.consumed[i].amount = ev.consumed[i].amount.Add(required)
		remaining := ev.consumed[i].stock.Sub(ev.consumed[i].amount)

		line := domain.LineItem{
			Kind:          domain.LineIngredient,
			ResourceID:    ing.ID,
			Name:          ing.Name,
			DisplayUnit:   ing.DisplayUnit,
			CurrentBase:   ing.Stock,
			RequiredBase:  required.InexactFloat64(),
			RemainingBase: remaining.InexactFloat64(),
			Sufficient:    remaining.Sign() >= 0,
		}
		line.Current = units.ToDisplayQuantity(line.CurrentBase, ing.DisplayUnit)
		line.Required = units.ToDisplayQuantity(line.RequiredBase, ing.DisplayUnit)
		line.Remaining = units.ToDisplayQuantity(line.RemainingBase, ing.DisplayUnit)
		ev.lines = append(ev.lines, line)

		if !line.Sufficient {
			ev.fail(insufficient(line, remaining.Neg().InexactFloat64()))
		}
	}

	pkg := *s.Packaging
	remaining := pkg.Stock - unitCount
	line := domain.LineItem{
		Kind:          domain.LinePackaging,
		ResourceID:    pkg.ID,
		Name:          pkg.Name,
		DisplayUnit:   domain.UnitPieces,
		Current:       float64(pkg.Stock),
		Required:      float64(unitCount),
		Remaining:     float64(remaining),
		CurrentBase:   float64(pkg.Stock),
		RequiredBase:  float64(unitCount),
		RemainingBase: float64(remaining),
		Sufficient:    remaining >= 0,
	}
	ev.lines = append(ev.lines, line)
	if !line.Sufficient {
		ev.fail(insufficient(line, float64(-remaining)))
	}
	return ev
}

// fail keeps the first failure in evaluation order.
func (e *evaluation) fail(f *domain.Failure) {
	if e.failure == nil {
		e.failure = f
	}
}

func insufficient(line domain.LineItem, shortfallBase float64) *domain.Failure {
	unit := line.DisplayUnit
	if unit == "" {
		unit = domain.UnitPieces
	}
	cumulativeRequired := line.CurrentBase - line.RemainingBase
	return &domain.Failure{
		Kind: domain.FailureInsufficientStock,
		Message: printer.Sprintf(MsgInsufficientStock,
			line.Name,
			displayRound(units.ToDisplayQuantity(cumulativeRequired, unit), unit), unit,
			displayRound(line.Current, unit), unit,
			displayRound(units.ToDisplayQuantity(shortfallBase, unit), unit), unit,
		),
		ResourceID:   line.ResourceID,
		ResourceName: line.Name,
		Shortfall:    units.ToDisplayQuantity(shortfallBase, unit),
	}
}
