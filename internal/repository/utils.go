package repository

import (
	"context"
	"errors"

	"github.com/vistalabs/vista/internal/domain"
	"github.com/vistalabs/vista/internal/logger"
)

// ErrTxClosed is returned by stores when a transaction is used after Commit or Rollback.
var ErrTxClosed = errors.New(domain.ErrMsgTxClosed)

// SafeRollback rolls back a transaction and logs any error
func SafeRollback(ctx context.Context, tx Tx) {
	if err := tx.Rollback(ctx); err != nil {
		// Rolling back a committed transaction is the normal deferred path
		if errors.Is(err, ErrTxClosed) || err.Error() == domain.ErrMsgTxClosed {
			return
		}
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}
