package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vistalabs/vista/internal/database/memory"
	"github.com/vistalabs/vista/internal/domain"
)

const seedJSON = `{
  "ingredients": [{"id": "gly", "name": "Glycerin", "stock": 500, "display_unit": "kg", "cost_per_base_unit": 0.02}],
  "packaging": [{"id": "jar", "name": "100ml Jar", "capacity_ml": 100, "stock": 10, "cost_per_piece": 0.2}],
  "products": [{"id": "cream", "name": "Hand Cream", "packaging_id": "jar", "sale_price": 5,
    "formula": [{"ingredient_id": "gly", "amount_per_unit_volume": 1000}]}]
}`

func writeSeed(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestApplySeed(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	seed, err := LoadSeed(writeSeed(t, seedJSON))
	require.NoError(t, err)

	res, err := ApplySeed(ctx, svc, seed)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Inserted: 3}, res)

	p, err := svc.GetProduct(ctx, "cream")
	require.NoError(t, err)
	assert.Equal(t, "jar", p.PackagingID)

	t.Run("reapplying skips existing entries", func(t *testing.T) {
		_, err := svc.RestockPackaging(ctx, "jar", 5)
		require.NoError(t, err)

		res, err := ApplySeed(ctx, svc, seed)
		require.NoError(t, err)
		assert.Equal(t, SeedResult{Skipped: 3}, res)

		pkg, err := svc.GetPackaging(ctx, "jar")
		require.NoError(t, err)
		assert.Equal(t, 15, pkg.Stock, "existing stock is left alone")
	})
}

func TestLoadSeed_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeed(filepath.Join(t.TempDir(), "absent.json"))
		assert.ErrorContains(t, err, ErrMsgSeedRead)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := LoadSeed(writeSeed(t, `{"ingredients": [`))
		assert.ErrorContains(t, err, ErrMsgSeedDecode)
	})

	t.Run("entry without id", func(t *testing.T) {
		_, err := LoadSeed(writeSeed(t, `{"ingredients": [{"name": "Glycerin", "display_unit": "kg"}]}`))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.ErrorContains(t, err, ErrMsgSeedSchema)
	})

	t.Run("unknown display unit", func(t *testing.T) {
		_, err := LoadSeed(writeSeed(t, `{"ingredients": [{"id": "gly", "name": "Glycerin", "display_unit": "lb"}]}`))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestApplySeed_InvalidEntry(t *testing.T) {
	ctx := context.Background()
	svc, _ := setup(t)

	seed := &Seed{Products: []domain.Product{{ID: "orphan", Name: "Orphan", PackagingID: "nope"}}}
	_, err := ApplySeed(ctx, svc, seed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "seed product orphan")
}

func TestSeedExampleFile(t *testing.T) {
	seed, err := LoadSeed(filepath.Join("..", "..", "configs", "seed.example.json"))
	require.NoError(t, err)

	res, err := ApplySeed(context.Background(), NewService(memory.NewStore(), nil), seed)
	require.NoError(t, err)
	assert.Equal(t, 6, res.Inserted)
}
