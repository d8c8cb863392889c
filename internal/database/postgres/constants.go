package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
	// PgErrorCodeForeignKeyViolation is raised when a referenced row is missing or still referenced
	PgErrorCodeForeignKeyViolation = "23503"
	// PgErrorCodeCheckViolation is raised by the stock >= 0 constraints
	PgErrorCodeCheckViolation = "23514"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToScanRow           = "failed to scan row"
	ErrMsgFailedToIterateRows       = "failed to iterate rows"
)

// ==================== Queries ====================

const (
	ingredientColumns = `ingredient_id, name, stock, display_unit, cost_per_base_unit, updated_at`
	packagingColumns  = `packaging_id, name, capacity_ml, stock, cost_per_piece, min_stock, updated_at`
	productColumns    = `product_id, name, category, packaging_id, sale_price, stock, updated_at`
	runColumns        = `run_id, product_id, product_name, units_produced, batch_volume_units, unit_cost, mutations, created_at`
)
