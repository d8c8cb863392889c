package production

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistalabs/vista/internal/domain"
)

func TestExecute_GlycerinScenario(t *testing.T) {
	snap := handCream()

	result := Execute(ExecuteInput{Snapshot: snap, UnitsToProduce: 5, BatchVolumeUnits: 0.5, PreviewFeasible: true})

	require.True(t, result.Success)
	require.NotNil(t, result.Mutations)
	assert.Nil(t, result.Failure)

	m := result.Mutations
	require.Len(t, m.Ingredients, 1)
	assert.Equal(t, domain.IngredientDelta{IngredientID: "glycerin", Delta: -100, NewStock: 900}, m.Ingredients[0])
	assert.Equal(t, domain.PackagingDelta{PackagingID: "jar", Delta: -5, NewStock: 5}, m.Packaging)
	assert.Equal(t, domain.ProductDelta{ProductID: "cream", Delta: 5, NewStock: 5}, m.Product)

	assert.Contains(t, result.Message, "Hand Cream")
	assert.Contains(t, result.Message, "Glycerin")
	assert.Contains(t, result.Message, "100ml Jar")

	next := m.Apply(snap)
	assert.Equal(t, 900.0, next.Ingredients["glycerin"].Stock)
	assert.Equal(t, 5, next.Packaging.Stock)
	assert.Equal(t, 5, next.Product.Stock)
}

func TestExecute_Conservation(t *testing.T) {
	snap := handCream()
	snap.Ingredients["water"] = domain.Ingredient{ID: "water", Name: "Water", Stock: 5000, DisplayUnit: domain.UnitLiter}
	snap.Product.Formula = append(snap.Product.Formula, domain.FormulaItem{IngredientID: "water", AmountPerUnitVolume: 800})

	sim := Simulate(snap, 7, domain.ModeUnits)
	require.True(t, sim.Feasible)

	result := Execute(ExecuteInput{Snapshot: snap, UnitsToProduce: sim.UnitsToProduce, BatchVolumeUnits: sim.BatchVolumeUnits})
	require.True(t, result.Success)

	next := result.Mutations.Apply(snap)
	for _, item := range snap.Product.Formula {
		before := snap.Ingredients[item.IngredientID].Stock
		expected := before - item.AmountPerUnitVolume*sim.BatchVolumeUnits
		assert.InDelta(t, expected, next.Ingredients[item.IngredientID].Stock, 1e-9)
	}
	assert.Equal(t, snap.Packaging.Stock-7, next.Packaging.Stock)
	assert.Equal(t, snap.Product.Stock+7, next.Product.Stock)
}

func TestExecute_InsufficientIsAllOrNothing(t *testing.T) {
	snap := handCream()
	snap.Packaging.Stock = 5

	result := Execute(ExecuteInput{Snapshot: snap, UnitsToProduce: 10, BatchVolumeUnits: 1.0})

	assert.False(t, result.Success)
	assert.Nil(t, result.Mutations)
	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureInsufficientStock, result.Failure.Kind)
	assert.Equal(t, "jar", result.Failure.ResourceID)
	assert.Equal(t, result.Failure.Message, result.Message)
}

func TestExecute_StaleStateConflict(t *testing.T) {
	snap := handCream()
	sim := Simulate(snap, 5, domain.ModeUnits)
	require.True(t, sim.Feasible)

	// Stock is consumed elsewhere between preview and confirm.
	gly := snap.Ingredients["glycerin"]
	gly.Stock = 50
	snap.Ingredients["glycerin"] = gly

	result := Execute(ExecuteInput{
		Snapshot:         snap,
		UnitsToProduce:   sim.UnitsToProduce,
		BatchVolumeUnits: sim.BatchVolumeUnits,
		PreviewFeasible:  true,
	})

	assert.False(t, result.Success)
	assert.Nil(t, result.Mutations)
	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureStaleStateConflict, result.Failure.Kind)
	require.NotNil(t, result.Failure.Cause)
	assert.Equal(t, domain.FailureInsufficientStock, result.Failure.Cause.Kind)
	assert.True(t, errors.Is(result.Failure, domain.ErrStaleStateConflict))
	assert.True(t, errors.Is(result.Failure, domain.ErrInsufficientStock))
	assert.Equal(t, "glycerin", result.Failure.ResourceID)
}

func TestExecute_WithoutPreviewReportsPlainFailure(t *testing.T) {
	snap := handCream()
	gly := snap.Ingredients["glycerin"]
	gly.Stock = 50
	snap.Ingredients["glycerin"] = gly

	result := Execute(ExecuteInput{Snapshot: snap, UnitsToProduce: 5, BatchVolumeUnits: 0.5})

	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureInsufficientStock, result.Failure.Kind)
	assert.Nil(t, result.Failure.Cause)
}

func TestExecute_RejectsDegenerateInput(t *testing.T) {
	tests := []struct {
		name  string
		units int
		batch float64
	}{
		{"zero units", 0, 0},
		{"negative units", -1, 0.5},
		{"negative batch", 5, -0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Execute(ExecuteInput{Snapshot: handCream(), UnitsToProduce: tt.units, BatchVolumeUnits: tt.batch, PreviewFeasible: true})

			assert.False(t, result.Success)
			require.NotNil(t, result.Failure)
			assert.Equal(t, domain.FailureDegenerateBatch, result.Failure.Kind)
		})
	}
}

func TestExecute_PackagingRemovedAfterPreview(t *testing.T) {
	snap := handCream()
	snap.Packaging = nil

	result := Execute(ExecuteInput{Snapshot: snap, UnitsToProduce: 5, BatchVolumeUnits: 0.5, PreviewFeasible: true})

	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureStaleStateConflict, result.Failure.Kind)
	assert.Equal(t, domain.FailureInvalidPackaging, result.Failure.Cause.Kind)
}

func TestExecute_MissingIngredientBlocksRun(t *testing.T) {
	snap := handCream()
	delete(snap.Ingredients, "glycerin")

	result := Execute(ExecuteInput{Snapshot: snap, UnitsToProduce: 5, BatchVolumeUnits: 0.5})

	assert.False(t, result.Success)
	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureFormulaIntegrity, result.Failure.Kind)
}

func TestExecute_DuplicateLinesProduceSingleDelta(t *testing.T) {
	snap := handCream()
	snap.Product.Formula = append(snap.Product.Formula, domain.FormulaItem{IngredientID: "glycerin", AmountPerUnitVolume: 100})

	result := Execute(ExecuteInput{Snapshot: snap, UnitsToProduce: 5, BatchVolumeUnits: 0.5})

	require.True(t, result.Success)
	require.Len(t, result.Mutations.Ingredients, 1)
	assert.Equal(t, -150.0, result.Mutations.Ingredients[0].Delta)
	assert.Equal(t, 850.0, result.Mutations.Ingredients[0].NewStock)
}

func TestExecute_DoesNotMutateSnapshot(t *testing.T) {
	snap := handCream()

	_ = Execute(ExecuteInput{Snapshot: snap, UnitsToProduce: 5, BatchVolumeUnits: 0.5})

	assert.Equal(t, 1000.0, snap.Ingredients["glycerin"].Stock)
	assert.Equal(t, 10, snap.Packaging.Stock)
	assert.Equal(t, 0, snap.Product.Stock)
}

func TestExecute_RejectsMismatchedBatch(t *testing.T) {
	tests := []struct {
		name  string
		units int
		batch float64
	}{
		{"units without volume", 10, 0},
		{"volume for fewer units", 10, 0.5},
		{"volume for more units", 5, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, previewed := range []bool{true, false} {
				result := Execute(ExecuteInput{Snapshot: handCream(), UnitsToProduce: tt.units, BatchVolumeUnits: tt.batch, PreviewFeasible: previewed})

				assert.False(t, result.Success)
				assert.Nil(t, result.Mutations)
				require.NotNil(t, result.Failure)
				assert.Equal(t, domain.FailureInvalidQuantity, result.Failure.Kind)
				assert.True(t, errors.Is(result.Failure, domain.ErrInvalidQuantity))
				assert.False(t, errors.Is(result.Failure, domain.ErrStaleStateConflict))
				assert.Contains(t, result.Message, "100ml Jar")
			}
		})
	}
}

func TestExecute_AcceptsTruncatedBatchVolume(t *testing.T) {
	// 0.55 filled 100ml jars truncates to 5 units; the full volume is consumed.
	preview := Simulate(handCream(), 0.55, domain.ModeBatchVolume)
	require.True(t, preview.Feasible)
	require.Equal(t, 5, preview.UnitsToProduce)

	result := Execute(ExecuteInput{
		Snapshot:         handCream(),
		UnitsToProduce:   preview.UnitsToProduce,
		BatchVolumeUnits: preview.BatchVolumeUnits,
		PreviewFeasible:  true,
	})

	require.True(t, result.Success)
	require.NotNil(t, result.Mutations)
	assert.Equal(t, -110.0, result.Mutations.Ingredients[0].Delta)
	assert.Equal(t, -5, result.Mutations.Packaging.Delta)
	assert.Equal(t, 5, result.Mutations.Product.Delta)
}

func TestExecute_RejectsRunAboveLimit(t *testing.T) {
	over := domain.MaxBatchUnits + 1
	snap := handCream()
	snap.Packaging.Stock = over

	result := Execute(ExecuteInput{
		Snapshot:         snap,
		UnitsToProduce:   over,
		BatchVolumeUnits: float64(over) / 10,
		PreviewFeasible:  true,
	})

	assert.False(t, result.Success)
	assert.Nil(t, result.Mutations)
	require.NotNil(t, result.Failure)
	assert.Equal(t, domain.FailureInvalidQuantity, result.Failure.Kind)
	assert.Contains(t, result.Message, "1,000,000,000")
}

func TestExecute_ConcurrentMessagesMatch(t *testing.T) {
	in := ExecuteInput{Snapshot: handCream(), UnitsToProduce: 5, BatchVolumeUnits: 0.5}
	want := Execute(in).Message

	var wg sync.WaitGroup
	messages := make([]string, 16)
	for i := range messages {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			messages[i] = Execute(in).Message
		}(i)
	}
	wg.Wait()

	for _, got := range messages {
		assert.Equal(t, want, got)
	}
}
