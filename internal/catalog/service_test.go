package catalog

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistalabs/vista/internal/database/memory"
	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/event"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func setup(t *testing.T) (Service, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	return NewService(memory.NewStore(), pub), pub
}

func TestCreateIngredient(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	ing, err := svc.CreateIngredient(ctx, domain.Ingredient{Name: "Glycerin", Stock: 1000, DisplayUnit: domain.UnitKilogram, CostPerBaseUnit: 0.01})
	require.NoError(t, err)
	assert.NotEmpty(t, ing.ID, "an id is generated when none is given")
	assert.False(t, ing.UpdatedAt.IsZero())

	tests := []struct {
		name string
		ing  domain.Ingredient
		msg  string
	}{
		{"missing name", domain.Ingredient{DisplayUnit: domain.UnitKilogram}, ErrMsgNameRequired},
		{"bad unit", domain.Ingredient{Name: "X", DisplayUnit: "oz"}, ErrMsgInvalidUnit},
		{"negative stock", domain.Ingredient{Name: "X", DisplayUnit: domain.UnitLiter, Stock: -1}, ErrMsgNegativeStock},
		{"nan stock", domain.Ingredient{Name: "X", DisplayUnit: domain.UnitLiter, Stock: math.NaN()}, ErrMsgNegativeStock},
		{"negative cost", domain.Ingredient{Name: "X", DisplayUnit: domain.UnitPieces, CostPerBaseUnit: -0.1}, ErrMsgNegativeCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateIngredient(ctx, tt.ing)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.ErrorContains(t, err, tt.msg)
		})
	}
}

func TestCreatePackaging_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	negative := -1

	_, err := svc.CreatePackaging(ctx, domain.Packaging{Name: "Jar", CapacityMl: 0})
	assert.ErrorContains(t, err, ErrMsgInvalidCapacity)

	_, err = svc.CreatePackaging(ctx, domain.Packaging{Name: "Jar", CapacityMl: 100, MinStock: &negative})
	assert.ErrorContains(t, err, ErrMsgNegativeMinStock)

	pkg, err := svc.CreatePackaging(ctx, domain.Packaging{ID: "jar", Name: "Jar", CapacityMl: 100, Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, "jar", pkg.ID)

	_, err = svc.CreatePackaging(ctx, domain.Packaging{ID: "jar", Name: "Jar", CapacityMl: 100})
	assert.ErrorIs(t, err, domain.ErrDuplicateID)
}

func TestCreateProduct_References(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)
	_, err := svc.CreatePackaging(ctx, domain.Packaging{ID: "jar", Name: "Jar", CapacityMl: 100})
	require.NoError(t, err)
	_, err = svc.CreateIngredient(ctx, domain.Ingredient{ID: "gly", Name: "Glycerin", DisplayUnit: domain.UnitKilogram})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, domain.Product{Name: "Cream", PackagingID: "nope"})
	assert.ErrorIs(t, err, domain.ErrPackagingNotFound)

	_, err = svc.CreateProduct(ctx, domain.Product{Name: "Cream", PackagingID: "jar", Formula: []domain.FormulaItem{{IngredientID: "ghost", AmountPerUnitVolume: 1}}})
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	_, err = svc.CreateProduct(ctx, domain.Product{Name: "Cream", PackagingID: "jar", Formula: []domain.FormulaItem{{IngredientID: "gly", AmountPerUnitVolume: math.Inf(1)}}})
	assert.ErrorContains(t, err, ErrMsgInvalidAmount)

	p, err := svc.CreateProduct(ctx, domain.Product{Name: "Cream", PackagingID: "jar", Formula: []domain.FormulaItem{
		{IngredientID: "gly", AmountPerUnitVolume: 100},
		{IngredientID: "gly", AmountPerUnitVolume: 50},
	}})
	require.NoError(t, err)
	assert.Len(t, p.Formula, 2)

	p.Name = "Rich Cream"
	updated, err := svc.UpdateProduct(ctx, *p)
	require.NoError(t, err)
	assert.Equal(t, "Rich Cream", updated.Name)

	assert.ErrorIs(t, svc.DeleteIngredient(ctx, "gly"), domain.ErrResourceInUse)
	require.NoError(t, svc.DeleteProduct(ctx, p.ID))
	assert.NoError(t, svc.DeleteIngredient(ctx, "gly"))
}

func TestRestockIngredient(t *testing.T) {
	ctx := context.Background()
	svc, pub := setup(t)
	_, err := svc.CreateIngredient(ctx, domain.Ingredient{ID: "gly", Name: "Glycerin", Stock: 100, DisplayUnit: domain.UnitKilogram})
	require.NoError(t, err)
	_, err = svc.CreateIngredient(ctx, domain.Ingredient{ID: "vitE", Name: "Vitamin E capsule", Stock: 10, DisplayUnit: domain.UnitPieces})
	require.NoError(t, err)

	ing, err := svc.RestockIngredient(ctx, "gly", 1.5, true)
	require.NoError(t, err)
	assert.Equal(t, 1600.0, ing.Stock, "1.5 kg is 1500 g")

	ing, err = svc.RestockIngredient(ctx, "gly", 250, false)
	require.NoError(t, err)
	assert.Equal(t, 1850.0, ing.Stock)

	ing, err = svc.RestockIngredient(ctx, "vitE", 5, true)
	require.NoError(t, err)
	assert.Equal(t, 15.0, ing.Stock, "pieces are never scaled")

	_, err = svc.RestockIngredient(ctx, "gly", 0, true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.RestockIngredient(ctx, "ghost", 1, true)
	assert.ErrorIs(t, err, domain.ErrIngredientNotFound)

	require.Len(t, pub.events, 3)
	payload := pub.events[0].Payload.(domain.StockRestockedPayload)
	assert.Equal(t, event.StockRestocked, pub.events[0].Type)
	assert.Equal(t, domain.LineIngredient, payload.Kind)
	assert.Equal(t, 1500.0, payload.Added)
}

func TestRestockPackaging(t *testing.T) {
	ctx := context.Background()
	svc, pub := setup(t)
	_, err := svc.CreatePackaging(ctx, domain.Packaging{ID: "jar", Name: "Jar", CapacityMl: 100, Stock: 2})
	require.NoError(t, err)

	pkg, err := svc.RestockPackaging(ctx, "jar", 48)
	require.NoError(t, err)
	assert.Equal(t, 50, pkg.Stock)

	_, err = svc.RestockPackaging(ctx, "jar", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.LinePackaging, pub.events[0].Payload.(domain.StockRestockedPayload).Kind)
}
