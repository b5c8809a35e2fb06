package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/ecompta_backend/internal/core/ports/repositories"
	"github.com/SscSPs/ecompta_backend/internal/models"
	"github.com/SscSPs/ecompta_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const accountColumns = `company_id, code, name, nature, description, is_active, created_at, created_by, last_updated_at, last_updated_by`

// PgxAccountRepository implements portsrepo.AccountRepositoryFacade using pgx.
type PgxAccountRepository struct {
	BaseRepository
}

func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryFacade {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.CompanyID, &m.Code, &m.Name, &m.Nature, &m.Description, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func collectAccounts(rows pgx.Rows) ([]models.Account, error) {
	defer rows.Close()
	accounts := []models.Account{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, m)
	}
	return accounts, rows.Err()
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `INSERT INTO accounts (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`

	_, err := r.Pool.Exec(ctx, query,
		m.CompanyID, m.Code, m.Name, m.Nature, m.Description, m.IsActive,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: account %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return apperrors.NewAppError(500, "failed to save account "+m.Code, err)
	}
	return nil
}

// FindAccountByCode retrieves one account of a company's chart.
func (r *PgxAccountRepository) FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND code = $2;`
	m, err := scanAccount(r.Pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find account "+code, err)
	}
	a := mapping.ToDomainAccount(m)
	return &a, nil
}

// FindAccountsByCodes retrieves the accounts matching codes, keyed by code.
func (r *PgxAccountRepository) FindAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error) {
	result := make(map[string]domain.Account, len(codes))
	if len(codes) == 0 {
		return result, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1 AND code = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, companyID, codes)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts by codes", err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan accounts", err)
	}
	for _, m := range ms {
		result[m.Code] = mapping.ToDomainAccount(m)
	}
	return result, nil
}

// ListAccounts lists a company's chart ordered by code.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, companyID string, class *domain.AccountClass) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE company_id = $1`
	args := []any{companyID}
	if class != nil {
		query += ` AND left(code, 1) = $2`
		args = append(args, fmt.Sprintf("%d", *class))
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts for company "+companyID, err)
	}
	ms, err := collectAccounts(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan accounts", err)
	}
	return mapping.ToDomainAccounts(ms), nil
}

// CountAccounts returns the size of a company's chart.
func (r *PgxAccountRepository) CountAccounts(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE company_id = $1;`, companyID).Scan(&n); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count accounts", err)
	}
	return n, nil
}

// DeactivateAccount marks an account as inactive. Postings already booked on it are kept.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, companyID, code, actor string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE company_id = $1 AND code = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, code, now, actor)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate account "+code, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
