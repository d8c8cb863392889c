package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vistalabs/vista/internal/domain"
)

func glycerinFixture() (domain.Product, *domain.Packaging, map[string]domain.Ingredient) {
	product := domain.Product{
		ID:          "cream",
		Name:        "Hand Cream",
		PackagingID: "jar",
		Formula:     []domain.FormulaItem{{IngredientID: "glycerin", AmountPerUnitVolume: 200}},
	}
	jar := &domain.Packaging{ID: "jar", Name: "100ml Jar", CapacityMl: 100, Stock: 10, CostPerPiece: 2.0}
	ingredients := map[string]domain.Ingredient{
		"glycerin": {ID: "glycerin", Name: "Glycerin", Stock: 1000, DisplayUnit: domain.UnitKilogram, CostPerBaseUnit: 0.01},
	}
	return product, jar, ingredients
}

func TestComputeUnitCost_Scenario(t *testing.T) {
	product, jar, ingredients := glycerinFixture()

	assert.Equal(t, 2.2, ComputeUnitCost(product, jar, ingredients))
}

func TestComputeUnitCostDetail(t *testing.T) {
	product, jar, ingredients := glycerinFixture()

	b := ComputeUnitCostDetail(product, jar, ingredients)

	assert.Equal(t, 2.0, b.LiquidCost)
	assert.Equal(t, 0.1, b.VolumeRatio)
	assert.Equal(t, 2.0, b.PackagingCost)
	assert.Empty(t, b.MissingIngredients)
	assert.False(t, b.InvalidPackaging)
}

func TestComputeUnitCost_InvalidPackaging(t *testing.T) {
	product, _, ingredients := glycerinFixture()

	tests := []struct {
		name      string
		packaging *domain.Packaging
	}{
		{"nil packaging", nil},
		{"zero capacity", &domain.Packaging{ID: "jar", CapacityMl: 0, CostPerPiece: 5}},
		{"negative capacity", &domain.Packaging{ID: "jar", CapacityMl: -10, CostPerPiece: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := ComputeUnitCostDetail(product, tt.packaging, ingredients)
			assert.Equal(t, 0.0, b.UnitCost)
			assert.True(t, b.InvalidPackaging)
		})
	}
}

func TestComputeUnitCost_MissingIngredientContributesZero(t *testing.T) {
	product, jar, ingredients := glycerinFixture()
	product.Formula = append(product.Formula, domain.FormulaItem{IngredientID: "deleted", AmountPerUnitVolume: 50})

	b := ComputeUnitCostDetail(product, jar, ingredients)

	assert.Equal(t, 2.2, b.UnitCost)
	assert.Equal(t, []string{"deleted"}, b.MissingIngredients)
}

func TestComputeUnitCost_DuplicateLinesAreSummed(t *testing.T) {
	product, jar, ingredients := glycerinFixture()
	product.Formula = append(product.Formula, domain.FormulaItem{IngredientID: "glycerin", AmountPerUnitVolume: 200})

	assert.Equal(t, 2.4, ComputeUnitCost(product, jar, ingredients))
}

func TestComputeUnitCost_EmptyFormulaIsPackagingOnly(t *testing.T) {
	_, jar, _ := glycerinFixture()

	assert.Equal(t, 2.0, ComputeUnitCost(domain.Product{ID: "empty"}, jar, nil))
}

func TestMargin(t *testing.T) {
	assert.Equal(t, 2.8, Margin(5.0, 2.2))
}
