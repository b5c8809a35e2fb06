package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// SequenceRepository allocates monotonically increasing numbers per (company, key).
type SequenceRepository interface {
	// NextValue bumps the counter and returns the new value. tx may be nil to run outside a transaction.
	NextValue(ctx context.Context, tx pgx.Tx, companyID, key string) (int64, error)
}
