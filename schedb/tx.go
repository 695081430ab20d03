package schedb

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go.schedpool.org/scheduler/logger"
)

// WithTransaction runs fn with a Queries bound to a transaction. The
// transaction is committed when fn returns nil and rolled back otherwise.
func WithTransaction(ctx context.Context, pool *pgxpool.Pool, fn func(ctx context.Context, q *Queries) error) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer LogRollback(ctx, tx)

	if err := fn(ctx, New(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// LogRollback rolls the transaction back and logs unexpected errors.
// Safe to defer after a successful commit.
func LogRollback(ctx context.Context, tx pgx.Tx) {
	// if caller ctx is done we still need rollback to happen
	rbCtx := context.WithoutCancel(ctx)
	if err := tx.Rollback(rbCtx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		log := logger.FromContext(ctx)
		log.ErrorContext(ctx, "rollback failed", "err", err)
	}
}
