package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/repository"
)

// GetProductionSnapshot reads the product view without locking
func (s *Store) GetProductionSnapshot(ctx context.Context, productID string) (*domain.ProductionSnapshot, error) {
	return productionSnapshot(ctx, s.db, productID, false)
}

// productionSnapshot loads a product with its packaging and formula
// ingredients. With forUpdate the rows stay locked until the surrounding
// transaction ends; ingredient rows are locked in id order.
func productionSnapshot(ctx context.Context, q querier, productID string, forUpdate bool) (*domain.ProductionSnapshot, error) {
	lock := ""
	if forUpdate {
		lock = ` FOR UPDATE`
	}

	product, err := getProduct(ctx, q, productID, forUpdate)
	if err != nil {
		return nil, err
	}
	snap := &domain.ProductionSnapshot{
		Product:     *product,
		Ingredients: make(map[string]domain.Ingredient, len(product.Formula)),
	}

	pkg, err := scanPackaging(q.QueryRow(ctx, `SELECT `+packagingColumns+` FROM packaging WHERE packaging_id = $1`+lock, product.PackagingID))
	switch {
	case err == nil:
		snap.Packaging = &pkg
	case !errors.Is(err, pgx.ErrNoRows):
		return nil, fmt.Errorf("failed to get packaging: %w", err)
	}

	ids := product.IngredientIDs()
	if len(ids) == 0 {
		return snap, nil
	}
	rows, err := q.Query(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE ingredient_id = ANY($1) ORDER BY ingredient_id`+lock, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredients: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		snap.Ingredients[ing.ID] = ing
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToIterateRows, err)
	}
	return snap, nil
}

// ListProductionRuns returns the newest runs first
func (s *Store) ListProductionRuns(ctx context.Context, limit int) ([]domain.ProductionRun, error) {
	return listRuns(ctx, s.db, `SELECT `+runColumns+` FROM production_runs ORDER BY created_at DESC, run_id DESC LIMIT $1`, limit)
}

func listRuns(ctx context.Context, q querier, query string, args ...any) ([]domain.ProductionRun, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list production runs: %w", err)
	}
	defer rows.Close()

	var out []domain.ProductionRun
	for rows.Next() {
		var run domain.ProductionRun
		var id uuid.UUID
		if err := rows.Scan(&id, &run.ProductID, &run.ProductName, &run.UnitsProduced, &run.BatchVolumeUnits, &run.UnitCost, &run.Mutations, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		run.ID = id.String()
		run.CreatedAt = run.CreatedAt.UTC()
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToIterateRows, err)
	}
	return out, nil
}

// BeginTx starts a production transaction
func (s *Store) BeginTx(ctx context.Context) (repository.ProductionTx, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &productionTx{tx: tx}, nil
}

type productionTx struct {
	tx pgx.Tx
}

func (t *productionTx) Commit(ctx context.Context) error {
	return mapTxError(t.tx.Commit(ctx))
}

func (t *productionTx) Rollback(ctx context.Context) error {
	return mapTxError(t.tx.Rollback(ctx))
}

// GetProductionSnapshot locks the rows it reads
func (t *productionTx) GetProductionSnapshot(ctx context.Context, productID string) (*domain.ProductionSnapshot, error) {
	return productionSnapshot(ctx, t.tx, productID, true)
}

// ApplyMutations applies deltas relative to the stored stock. The stock
// CHECK constraints reject any update that would go negative.
func (t *productionTx) ApplyMutations(ctx context.Context, m domain.Mutations) error {
	for _, d := range m.Ingredients {
		tag, err := t.tx.Exec(ctx, `UPDATE ingredients SET stock = stock + $2, updated_at = NOW() WHERE ingredient_id = $1`, d.IngredientID, d.Delta)
		if err != nil {
			return mapMutationError(err, d.IngredientID)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, d.IngredientID)
		}
	}

	tag, err := t.tx.Exec(ctx, `UPDATE packaging SET stock = stock + $2, updated_at = NOW() WHERE packaging_id = $1`, m.Packaging.PackagingID, m.Packaging.Delta)
	if err != nil {
		return mapMutationError(err, m.Packaging.PackagingID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPackagingNotFound, m.Packaging.PackagingID)
	}

	tag, err = t.tx.Exec(ctx, `UPDATE products SET stock = stock + $2, updated_at = NOW() WHERE product_id = $1`, m.Product.ProductID, m.Product.Delta)
	if err != nil {
		return mapMutationError(err, m.Product.ProductID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, m.Product.ProductID)
	}
	return nil
}

func mapMutationError(err error, id string) error {
	if pgCode(err) == PgErrorCodeCheckViolation {
		return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, id)
	}
	return fmt.Errorf("%s: %w", domain.ErrMsgDatabaseError, err)
}

func (t *productionTx) InsertProductionRun(ctx context.Context, run domain.ProductionRun) error {
	id, err := uuid.Parse(run.ID)
	if err != nil {
		return fmt.Errorf("%w: run id %q", domain.ErrInvalidInput, run.ID)
	}
	_, err = t.tx.Exec(ctx, `
		INSERT INTO production_runs (`+runColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, run.ProductID, run.ProductName, run.UnitsProduced, run.BatchVolumeUnits, run.UnitCost, run.Mutations, run.CreatedAt)
	if err != nil {
		return mapWriteError(err, run.ID)
	}
	return nil
}
