package repository

import (
	"context"

	"github.com/vistalabs/vista/internal/domain"
)

// Catalog defines persistence for ingredients, packaging and products.
// Getters return the matching domain not-found error when the id is unknown.
type Catalog interface {
	ListIngredients(ctx context.Context) ([]domain.Ingredient, error)
	GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error)
	CreateIngredient(ctx context.Context, ing domain.Ingredient) error
	UpdateIngredient(ctx context.Context, ing domain.Ingredient) error
	DeleteIngredient(ctx context.Context, id string) error
	AdjustIngredientStock(ctx context.Context, id string, delta float64) (*domain.Ingredient, error)

	ListPackaging(ctx context.Context) ([]domain.Packaging, error)
	GetPackaging(ctx context.Context, id string) (*domain.Packaging, error)
	CreatePackaging(ctx context.Context, pkg domain.Packaging) error
	UpdatePackaging(ctx context.Context, pkg domain.Packaging) error
	DeletePackaging(ctx context.Context, id string) error
	AdjustPackagingStock(ctx context.Context, id string, delta int) (*domain.Packaging, error)

	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	CreateProduct(ctx context.Context, p domain.Product) error
	UpdateProduct(ctx context.Context, p domain.Product) error
	DeleteProduct(ctx context.Context, id string) error

	// Snapshot exports the whole store for analytics and backups.
	Snapshot(ctx context.Context) (domain.Snapshot, error)
}
