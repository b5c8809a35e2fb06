package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager is implemented by repositories whose writes can be grouped in one transaction.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is a no-op on a transaction that was already committed.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

// InTx runs fn in a transaction of tm and commits when fn succeeds.
func InTx(ctx context.Context, tm TransactionManager, fn func(tx pgx.Tx) error) error {
	tx, err := tm.Begin(ctx)
	if err != nil {
		return err
	}
	defer tm.Rollback(ctx, tx)

	if err := fn(tx); err != nil {
		return err
	}
	return tm.Commit(ctx, tx)
}
