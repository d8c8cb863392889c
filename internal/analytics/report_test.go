package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistalabs/vista/internal/domain"
)

func fixture() domain.Snapshot {
	minStock := 20
	s := domain.NewSnapshot()
	s.Ingredients["gly"] = domain.Ingredient{ID: "gly", Name: "Glycerin", Stock: 1000, DisplayUnit: domain.UnitKilogram, CostPerBaseUnit: 0.01}
	s.Packaging["jar"] = domain.Packaging{ID: "jar", Name: "100ml Jar", CapacityMl: 100, Stock: 10, CostPerPiece: 2, MinStock: &minStock}
	s.Products["cream"] = domain.Product{
		ID: "cream", Name: "Hand Cream", PackagingID: "jar", SalePrice: 5, Stock: 4,
		Formula: []domain.FormulaItem{{IngredientID: "gly", AmountPerUnitVolume: 200}},
	}
	return s
}

func TestBuild_ProductFigures(t *testing.T) {
	r := Build(fixture())

	require.Len(t, r.Products, 1)
	p := r.Products[0]
	assert.Equal(t, 2.2, p.UnitCost)
	assert.Equal(t, 2.8, p.Margin)
	assert.Equal(t, 56.0, p.MarginPct)
	assert.Equal(t, 8.8, p.StockValue)
	assert.Equal(t, 11.2, p.Projected)
	assert.False(t, p.Unprofitable)
	// glycerin allows 50 units, packaging only 10
	assert.Equal(t, 10, p.MaxUnits)
	assert.Equal(t, "jar", p.LimitedBy)
}

func TestBuild_Totals(t *testing.T) {
	r := Build(fixture())

	assert.Equal(t, 10.0, r.Totals.IngredientValue)
	assert.Equal(t, 20.0, r.Totals.PackagingValue)
	assert.Equal(t, 8.8, r.Totals.FinishedGoodsValue)
	assert.Equal(t, 38.8, r.Totals.InventoryValue)
	assert.Equal(t, 11.2, r.Totals.ProjectedProfit)

	require.Len(t, r.LowStock, 1)
	assert.Equal(t, LowStock{PackagingID: "jar", Name: "100ml Jar", Stock: 10, MinStock: 20}, r.LowStock[0])
}

func TestBuild_IngredientLimited(t *testing.T) {
	s := fixture()
	gly := s.Ingredients["gly"]
	gly.Stock = 130 // 20 g per unit
	s.Ingredients["gly"] = gly

	p := Build(s).Products[0]
	assert.Equal(t, 6, p.MaxUnits)
	assert.Equal(t, "gly", p.LimitedBy)
}

func TestBuild_MaxUnitsCappedAtRunLimit(t *testing.T) {
	tests := []struct {
		name      string
		glycerin  float64
		jars      int
		limitedBy string
	}{
		{"ingredient beyond int range", 1e19, 1 << 62, "gly"},
		{"packaging beyond limit", 1e15, domain.MaxBatchUnits + 5, "jar"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := fixture()
			gly := s.Ingredients["gly"]
			gly.Stock = tt.glycerin
			s.Ingredients["gly"] = gly
			jar := s.Packaging["jar"]
			jar.Stock = tt.jars
			s.Packaging["jar"] = jar

			p := Build(s).Products[0]
			assert.Equal(t, domain.MaxBatchUnits, p.MaxUnits)
			assert.Equal(t, tt.limitedBy, p.LimitedBy)
		})
	}
}

func TestBuild_UnresolvableProduct(t *testing.T) {
	s := fixture()
	p := s.Products["cream"]
	p.Formula = append(p.Formula, domain.FormulaItem{IngredientID: "ghost", AmountPerUnitVolume: 1})
	s.Products["cream"] = p

	fig := Build(s).Products[0]
	assert.Equal(t, 0, fig.MaxUnits)
	assert.Equal(t, "ghost", fig.LimitedBy)

	delete(s.Packaging, "jar")
	fig = Build(s).Products[0]
	assert.Equal(t, 0.0, fig.UnitCost)
	assert.Equal(t, 0, fig.MaxUnits)
}

func TestBuild_UnprofitableAndFreeProducts(t *testing.T) {
	s := fixture()
	p := s.Products["cream"]
	p.SalePrice = 2
	s.Products["cream"] = p

	fig := Build(s).Products[0]
	assert.True(t, fig.Unprofitable)
	assert.Equal(t, -0.2, fig.Margin)

	p.SalePrice = 0
	s.Products["cream"] = p
	assert.Equal(t, 0.0, Build(s).Products[0].MarginPct)
}

func TestBuild_EmptyStore(t *testing.T) {
	r := Build(domain.NewSnapshot())

	assert.Empty(t, r.Products)
	assert.NotNil(t, r.LowStock)
	assert.Equal(t, Totals{}, r.Totals)
}
