package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/logger"
	"github.com/vistalabs/vista/internal/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// pgCode returns the SQLSTATE of a PostgreSQL error, or "" for anything else
func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// mapWriteError translates constraint violations into domain errors
func mapWriteError(err error, id string) error {
	switch pgCode(err) {
	case PgErrorCodeUniqueViolation:
		return fmt.Errorf("%w: %s", domain.ErrDuplicateID, id)
	case PgErrorCodeForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fkDetail(err))
	case PgErrorCodeCheckViolation:
		return fmt.Errorf("%w: %s violates a constraint", domain.ErrInvalidInput, id)
	}
	return fmt.Errorf("%s: %w", domain.ErrMsgDatabaseError, err)
}

// mapDeleteError reports rows still referenced by a product as in use
func mapDeleteError(err error, id string) error {
	if pgCode(err) == PgErrorCodeForeignKeyViolation {
		return fmt.Errorf("%w: %s", domain.ErrResourceInUse, id)
	}
	return fmt.Errorf("%s: %w", domain.ErrMsgDatabaseError, err)
}

func fkDetail(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Detail != "" {
		return pgErr.Detail
	}
	return err.Error()
}

// mapTxError keeps closed-transaction errors recognizable by repository.SafeRollback
func mapTxError(err error) error {
	if errors.Is(err, pgx.ErrTxClosed) {
		return repository.ErrTxClosed
	}
	return err
}
