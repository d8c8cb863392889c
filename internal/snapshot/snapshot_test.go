package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/vistalabs/vista/internal/domain"
)

func TestEncodeDecode_PreservesStore(t *testing.T) {
	minStock := 3
	s := domain.NewSnapshot()
	s.Ingredients["gly"] = domain.Ingredient{ID: "gly", Name: "Glycerin", Stock: 999.5, DisplayUnit: domain.UnitKilogram, CostPerBaseUnit: 0.01}
	s.Packaging["jar"] = domain.Packaging{ID: "jar", Name: "Jar", CapacityMl: 100, Stock: 7, CostPerPiece: 2, MinStock: &minStock}
	s.Products["cream"] = domain.Product{ID: "cream", Name: "Cream", PackagingID: "jar", Formula: []domain.FormulaItem{{IngredientID: "gly", AmountPerUnitVolume: 200}}}
	s.Runs = []domain.ProductionRun{{ID: "r1", ProductID: "cream", UnitsProduced: 5, CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}}

	data, err := Encode(s)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s.Ingredients, got.Ingredients)
	assert.Equal(t, s.Products, got.Products)
	require.NotNil(t, got.Packaging["jar"].MinStock)
	assert.Equal(t, 3, *got.Packaging["jar"].MinStock)
	require.Len(t, got.Runs, 1)
	assert.True(t, s.Runs[0].CreatedAt.Equal(got.Runs[0].CreatedAt))
}

func TestDecode_InitializesEmptyMaps(t *testing.T) {
	data, err := Encode(domain.Snapshot{})
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.NotNil(t, got.Ingredients)
	assert.NotNil(t, got.Packaging)
	assert.NotNil(t, got.Products)
}

func TestDecode_RejectsNewerVersion(t *testing.T) {
	data, err := msgpack.Marshal(envelope{Version: FormatVersion + 1})
	require.NoError(t, err)

	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := Decode([]byte{0xc1, 0x00})
	assert.Error(t, err)
}
