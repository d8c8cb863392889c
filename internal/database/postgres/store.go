// Package postgres implements repository.Store on PostgreSQL with pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/repository"
)

// Store is the PostgreSQL-backed store
type Store struct {
	db *pgxpool.Pool
}

// NewStore creates a new Store over an open pool
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

var _ repository.Store = (*Store)(nil)

// Ping checks the connection pool
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close closes the pool
func (s *Store) Close() error {
	s.db.Close()
	return nil
}

// ==================== Ingredients ====================

func scanIngredient(row pgx.Row) (domain.Ingredient, error) {
	var ing domain.Ingredient
	var unit string
	err := row.Scan(&ing.ID, &ing.Name, &ing.Stock, &unit, &ing.CostPerBaseUnit, &ing.UpdatedAt)
	ing.DisplayUnit = domain.DisplayUnit(unit)
	return ing, err
}

func (s *Store) ListIngredients(ctx context.Context) ([]domain.Ingredient, error) {
	return listIngredients(ctx, s.db)
}

func listIngredients(ctx context.Context, q querier) ([]domain.Ingredient, error) {
	rows, err := q.Query(ctx, `SELECT `+ingredientColumns+` FROM ingredients ORDER BY name, ingredient_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	defer rows.Close()

	var out []domain.Ingredient
	for rows.Next() {
		ing, err := scanIngredient(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		out = append(out, ing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToIterateRows, err)
	}
	return out, nil
}

func (s *Store) GetIngredient(ctx context.Context, id string) (*domain.Ingredient, error) {
	ing, err := scanIngredient(s.db.QueryRow(ctx, `SELECT `+ingredientColumns+` FROM ingredients WHERE ingredient_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return &ing, nil
}

func (s *Store) CreateIngredient(ctx context.Context, ing domain.Ingredient) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ingredients (ingredient_id, name, stock, display_unit, cost_per_base_unit, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`,
		ing.ID, ing.Name, ing.Stock, string(ing.DisplayUnit), ing.CostPerBaseUnit)
	if err != nil {
		return mapWriteError(err, ing.ID)
	}
	return nil
}

func (s *Store) UpdateIngredient(ctx context.Context, ing domain.Ingredient) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE ingredients
		SET name = $2, stock = $3, display_unit = $4, cost_per_base_unit = $5, updated_at = NOW()
		WHERE ingredient_id = $1`,
		ing.ID, ing.Name, ing.Stock, string(ing.DisplayUnit), ing.CostPerBaseUnit)
	if err != nil {
		return mapWriteError(err, ing.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, ing.ID)
	}
	return nil
}

func (s *Store) DeleteIngredient(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM ingredients WHERE ingredient_id = $1`, id)
	if err != nil {
		return mapDeleteError(err, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, id)
	}
	return nil
}

func (s *Store) AdjustIngredientStock(ctx context.Context, id string, delta float64) (*domain.Ingredient, error) {
	ing, err := scanIngredient(s.db.QueryRow(ctx, `
		UPDATE ingredients SET stock = stock + $2, updated_at = NOW()
		WHERE ingredient_id = $1
		RETURNING `+ingredientColumns, id, delta))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrIngredientNotFound, id)
	}
	if err != nil {
		return nil, mapWriteError(err, id)
	}
	return &ing, nil
}

// ==================== Packaging ====================

func scanPackaging(row pgx.Row) (domain.Packaging, error) {
	var pkg domain.Packaging
	err := row.Scan(&pkg.ID, &pkg.Name, &pkg.CapacityMl, &pkg.Stock, &pkg.CostPerPiece, &pkg.MinStock, &pkg.UpdatedAt)
	return pkg, err
}

func (s *Store) ListPackaging(ctx context.Context) ([]domain.Packaging, error) {
	return listPackaging(ctx, s.db)
}

func listPackaging(ctx context.Context, q querier) ([]domain.Packaging, error) {
	rows, err := q.Query(ctx, `SELECT `+packagingColumns+` FROM packaging ORDER BY name, packaging_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list packaging: %w", err)
	}
	defer rows.Close()

	var out []domain.Packaging
	for rows.Next() {
		pkg, err := scanPackaging(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		out = append(out, pkg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToIterateRows, err)
	}
	return out, nil
}

func (s *Store) GetPackaging(ctx context.Context, id string) (*domain.Packaging, error) {
	pkg, err := scanPackaging(s.db.QueryRow(ctx, `SELECT `+packagingColumns+` FROM packaging WHERE packaging_id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPackagingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get packaging: %w", err)
	}
	return &pkg, nil
}

func (s *Store) CreatePackaging(ctx context.Context, pkg domain.Packaging) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO packaging (packaging_id, name, capacity_ml, stock, cost_per_piece, min_stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		pkg.ID, pkg.Name, pkg.CapacityMl, pkg.Stock, pkg.CostPerPiece, pkg.MinStock)
	if err != nil {
		return mapWriteError(err, pkg.ID)
	}
	return nil
}

func (s *Store) UpdatePackaging(ctx context.Context, pkg domain.Packaging) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE packaging
		SET name = $2, capacity_ml = $3, stock = $4, cost_per_piece = $5, min_stock = $6, updated_at = NOW()
		WHERE packaging_id = $1`,
		pkg.ID, pkg.Name, pkg.CapacityMl, pkg.Stock, pkg.CostPerPiece, pkg.MinStock)
	if err != nil {
		return mapWriteError(err, pkg.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPackagingNotFound, pkg.ID)
	}
	return nil
}

func (s *Store) DeletePackaging(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM packaging WHERE packaging_id = $1`, id)
	if err != nil {
		return mapDeleteError(err, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrPackagingNotFound, id)
	}
	return nil
}

func (s *Store) AdjustPackagingStock(ctx context.Context, id string, delta int) (*domain.Packaging, error) {
	pkg, err := scanPackaging(s.db.QueryRow(ctx, `
		UPDATE packaging SET stock = stock + $2, updated_at = NOW()
		WHERE packaging_id = $1
		RETURNING `+packagingColumns, id, delta))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrPackagingNotFound, id)
	}
	if err != nil {
		return nil, mapWriteError(err, id)
	}
	return &pkg, nil
}

// ==================== Products ====================

func scanProduct(row pgx.Row) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Category, &p.PackagingID, &p.SalePrice, &p.Stock, &p.UpdatedAt)
	return p, err
}

func (s *Store) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return listProducts(ctx, s.db)
}

func listProducts(ctx context.Context, q querier) ([]domain.Product, error) {
	rows, err := q.Query(ctx, `SELECT `+productColumns+` FROM products ORDER BY name, product_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	var out []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		out = append(out, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToIterateRows, err)
	}

	formulas, err := loadFormulas(ctx, q, nil)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Formula = formulas[out[i].ID]
	}
	return out, nil
}

// loadFormulas returns formula lines grouped by product, in line order.
// A nil productIDs loads every product.
func loadFormulas(ctx context.Context, q querier, productIDs []string) (map[string][]domain.FormulaItem, error) {
	query := `SELECT product_id, ingredient_id, amount_per_unit_volume FROM formula_items`
	args := []any{}
	if productIDs != nil {
		query += ` WHERE product_id = ANY($1)`
		args = append(args, productIDs)
	}
	query += ` ORDER BY product_id, position`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load formulas: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]domain.FormulaItem)
	for rows.Next() {
		var productID string
		var item domain.FormulaItem
		if err := rows.Scan(&productID, &item.IngredientID, &item.AmountPerUnitVolume); err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedToScanRow, err)
		}
		out[productID] = append(out[productID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToIterateRows, err)
	}
	return out, nil
}

func (s *Store) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return getProduct(ctx, s.db, id, false)
}

func getProduct(ctx context.Context, q querier, id string, forUpdate bool) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE product_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	p, err := scanProduct(q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	formulas, err := loadFormulas(ctx, q, []string{id})
	if err != nil {
		return nil, err
	}
	p.Formula = formulas[id]
	return &p, nil
}

func (s *Store) CreateProduct(ctx context.Context, p domain.Product) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	_, err = tx.Exec(ctx, `
		INSERT INTO products (product_id, name, category, packaging_id, sale_price, stock, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`,
		p.ID, p.Name, p.Category, p.PackagingID, p.SalePrice, p.Stock)
	if err != nil {
		return mapWriteError(err, p.ID)
	}
	if err := insertFormula(ctx, tx, p); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func (s *Store) UpdateProduct(ctx context.Context, p domain.Product) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	tag, err := tx.Exec(ctx, `
		UPDATE products
		SET name = $2, category = $3, packaging_id = $4, sale_price = $5, stock = $6, updated_at = NOW()
		WHERE product_id = $1`,
		p.ID, p.Name, p.Category, p.PackagingID, p.SalePrice, p.Stock)
	if err != nil {
		return mapWriteError(err, p.ID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, p.ID)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM formula_items WHERE product_id = $1`, p.ID); err != nil {
		return fmt.Errorf("failed to clear formula: %w", err)
	}
	if err := insertFormula(ctx, tx, p); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

func insertFormula(ctx context.Context, tx pgx.Tx, p domain.Product) error {
	if len(p.Formula) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for i, item := range p.Formula {
		batch.Queue(`
			INSERT INTO formula_items (product_id, position, ingredient_id, amount_per_unit_volume)
			VALUES ($1, $2, $3, $4)`,
			p.ID, i, item.IngredientID, item.AmountPerUnitVolume)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapWriteError(err, p.ID)
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, id)
	if err != nil {
		return mapDeleteError(err, id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
	}
	return nil
}

// ==================== Snapshot ====================

// Snapshot exports all tables from a single repeatable-read transaction
func (s *Store) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer SafeRollback(ctx, tx)

	snap := domain.NewSnapshot()
	ingredients, err := listIngredients(ctx, tx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	for _, ing := range ingredients {
		snap.Ingredients[ing.ID] = ing
	}
	packaging, err := listPackaging(ctx, tx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	for _, pkg := range packaging {
		snap.Packaging[pkg.ID] = pkg
	}
	products, err := listProducts(ctx, tx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	for _, p := range products {
		snap.Products[p.ID] = p
	}
	runs, err := listRuns(ctx, tx, `SELECT `+runColumns+` FROM production_runs ORDER BY created_at, run_id`)
	if err != nil {
		return domain.Snapshot{}, err
	}
	snap.Runs = runs

	if err := tx.QueryRow(ctx, `SELECT NOW()`).Scan(&snap.TakenAt); err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to read clock: %w", err)
	}
	snap.TakenAt = snap.TakenAt.UTC()
	return snap, nil
}
