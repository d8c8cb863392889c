package repository

import (
	"context"

	"github.com/vistalabs/vista/internal/domain"
)

// Production defines persistence for production runs
type Production interface {
	// GetProductionSnapshot reads the product, its packaging and its formula
	// ingredients outside of any transaction. Used for previews.
	GetProductionSnapshot(ctx context.Context, productID string) (*domain.ProductionSnapshot, error)
	ListProductionRuns(ctx context.Context, limit int) ([]domain.ProductionRun, error)
	// BeginTx starts a transaction for committing a run
	BeginTx(ctx context.Context) (ProductionTx, error)
}

// ProductionTx defines the interface for production transactions.
// GetProductionSnapshot inside a transaction holds the rows it read until
// Commit or Rollback, so no concurrent run can consume the same stock.
type ProductionTx interface {
	Tx
	GetProductionSnapshot(ctx context.Context, productID string) (*domain.ProductionSnapshot, error)
	ApplyMutations(ctx context.Context, m domain.Mutations) error
	InsertProductionRun(ctx context.Context, run domain.ProductionRun) error
}

// Store is the full persistence surface a backend provides
type Store interface {
	Catalog
	Production
	Ping(ctx context.Context) error
	Close() error
}
