package production

import (
	"math"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/units"
)

// ExecuteInput is a confirmed run to validate and turn into mutations.
type ExecuteInput struct {
	Snapshot         domain.ProductionSnapshot
	UnitsToProduce   int
	BatchVolumeUnits float64
	// PreviewFeasible is set when the caller confirmed a run it had previewed
	// as feasible. A failed re-check is then reported as a stale-state conflict.
	PreviewFeasible bool
}

// Execute re-validates a run against the given snapshot and returns the stock
// mutations to commit. Nothing is mutated here; on failure no mutations are
// returned at all.
func Execute(in ExecuteInput) domain.ExecutionResult {
	if f := checkPackaging(in.Snapshot); f != nil {
		return rejected(in, f)
	}
	if in.UnitsToProduce <= 0 || math.IsNaN(in.BatchVolumeUnits) || math.IsInf(in.BatchVolumeUnits, 0) || in.BatchVolumeUnits < 0 {
		f := &domain.Failure{Kind: domain.FailureDegenerateBatch, Message: MsgDegenerateBatch}
		return domain.ExecutionResult{Message: f.Message, Failure: f}
	}
	if in.UnitsToProduce > domain.MaxBatchUnits {
		return rejected(in, quantityTooLarge())
	}
	// The unit count and the volume drive different deltas, so they must
	// describe the same batch.
	if !units.BatchMatchesUnits(in.UnitsToProduce, in.BatchVolumeUnits, in.Snapshot.Packaging.CapacityMl) {
		return rejected(in, &domain.Failure{
			Kind:    domain.FailureInvalidQuantity,
			Message: printer.Sprintf(MsgBatchMismatch, in.BatchVolumeUnits, in.UnitsToProduce, in.Snapshot.Packaging.Name),
		})
	}

	ev := evaluate(in.Snapshot, in.UnitsToProduce, in.BatchVolumeUnits)
	if !ev.feasible() {
		return rejected(in, ev.failure)
	}

	s := in.Snapshot
	m := domain.Mutations{
		Ingredients: make([]domain.IngredientDelta, 0, len(ev.consumed)),
		Packaging: domain.PackagingDelta{
			PackagingID: s.Packaging.ID,
			Delta:       -in.UnitsToProduce,
			NewStock:    s.Packaging.Stock - in.UnitsToProduce,
		},
		Product: domain.ProductDelta{
			ProductID: s.Product.ID,
			Delta:     in.UnitsToProduce,
			NewStock:  s.Product.Stock + in.UnitsToProduce,
		},
	}
	for _, c := range ev.consumed {
		m.Ingredients = append(m.Ingredients, domain.IngredientDelta{
			IngredientID: c.ingredientID,
			Delta:        c.amount.Neg().InexactFloat64(),
			NewStock:     c.stock.Sub(c.amount).InexactFloat64(),
		})
	}

	return domain.ExecutionResult{
		Success:   true,
		Message:   successMessage(s, m, in.BatchVolumeUnits),
		Mutations: &m,
	}
}

// rejected builds a failed result. A state-dependent failure following a
// feasible preview becomes a stale-state conflict wrapping the cause.
func rejected(in ExecuteInput, f *domain.Failure) domain.ExecutionResult {
	stateDependent := f.Kind != domain.FailureDegenerateBatch && f.Kind != domain.FailureInvalidQuantity
	if in.PreviewFeasible && stateDependent {
		f = &domain.Failure{
			Kind:         domain.FailureStaleStateConflict,
			Message:      printer.Sprintf(MsgStaleState, f.Message),
			ResourceID:   f.ResourceID,
			ResourceName: f.ResourceName,
			Shortfall:    f.Shortfall,
			Cause:        f,
		}
	}
	return domain.ExecutionResult{Message: f.Message, Failure: f}
}
