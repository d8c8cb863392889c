package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/logger"
	"github.com/vistalabs/vista/internal/validation"
)

// Seed is a catalog document applied on startup
type Seed struct {
	Ingredients []domain.Ingredient `json:"ingredients"`
	Packaging   []domain.Packaging  `json:"packaging"`
	Products    []domain.Product    `json:"products"`
}

// SeedResult counts what ApplySeed changed
type SeedResult struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// LoadSeed reads, decodes and schema-checks a seed file. Every entry needs
// an explicit id so reapplying the file is a no-op.
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSeedRead, err)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgSeedDecode, err)
	}

	v, err := validation.SeedValidator()
	if err != nil {
		return nil, err
	}
	if err := v.ValidateBytes(data); err != nil {
		return nil, invalid(fmt.Sprintf("%s %s: %v", ErrMsgSeedSchema, path, err))
	}
	return &seed, nil
}

// ApplySeed creates the entries that do not exist yet. Ingredients and
// packaging go first so product references resolve.
func ApplySeed(ctx context.Context, svc Service, seed *Seed) (SeedResult, error) {
	var res SeedResult
	count := func(err error) error {
		switch {
		case err == nil:
			res.Inserted++
		case errors.Is(err, domain.ErrDuplicateID):
			res.Skipped++
		default:
			return err
		}
		return nil
	}

	for _, ing := range seed.Ingredients {
		_, err := svc.CreateIngredient(ctx, ing)
		if err := count(err); err != nil {
			return res, fmt.Errorf("seed ingredient %s: %w", ing.ID, err)
		}
	}
	for _, pkg := range seed.Packaging {
		_, err := svc.CreatePackaging(ctx, pkg)
		if err := count(err); err != nil {
			return res, fmt.Errorf("seed packaging %s: %w", pkg.ID, err)
		}
	}
	for _, p := range seed.Products {
		_, err := svc.CreateProduct(ctx, p)
		if err := count(err); err != nil {
			return res, fmt.Errorf("seed product %s: %w", p.ID, err)
		}
	}

	logger.FromContext(ctx).Info(LogMsgSeedApplied, "inserted", res.Inserted, "skipped", res.Skipped)
	return res, nil
}
