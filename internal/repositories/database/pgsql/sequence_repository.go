package pgsql

import (
	"context"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/ecompta_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxSequenceRepository struct {
	BaseRepository
}

func newPgxSequenceRepository(pool *pgxpool.Pool) portsrepo.SequenceRepository {
	return &pgxSequenceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SequenceRepository = (*pgxSequenceRepository)(nil)

// NextValue bumps the (company, key) counter with an upsert. The row lock it takes
// serialises concurrent allocations until the surrounding transaction ends.
func (r *pgxSequenceRepository) NextValue(ctx context.Context, tx pgx.Tx, companyID, key string) (int64, error) {
	query := `
		INSERT INTO entry_sequences (company_id, seq_key, value)
		VALUES ($1, $2, 1)
		ON CONFLICT (company_id, seq_key) DO UPDATE SET value = entry_sequences.value + 1
		RETURNING value;
	`
	var value int64
	if err := r.db(tx).QueryRow(ctx, query, companyID, key).Scan(&value); err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate sequence value for "+key, err)
	}
	return value, nil
}
