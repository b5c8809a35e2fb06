package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/ecompta_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetTrialBalance aggregates posted activity per account code.
// Postings on codes missing from the chart are still reported, with an empty name.
func (r *reportingRepository) GetTrialBalance(ctx context.Context, companyID string, asOf time.Time, from *time.Time) ([]domain.TrialBalanceLine, error) {
	query := `
		SELECT
			p.account_code,
			COALESCE(a.name, '') AS account_name,
			SUM(CASE WHEN p.direction = 'DEBIT' THEN p.amount ELSE 0 END) AS total_debit,
			SUM(CASE WHEN p.direction = 'CREDIT' THEN p.amount ELSE 0 END) AS total_credit
		FROM postings p
		JOIN journal_entries j ON j.entry_id = p.entry_id
		LEFT JOIN accounts a ON a.company_id = j.company_id AND a.code = p.account_code
		WHERE j.company_id = $1
			AND j.status = 'POSTED'
			AND j.entry_date <= $2
			AND ($3::date IS NULL OR j.entry_date >= $3::date)
		GROUP BY p.account_code, a.name
		ORDER BY p.account_code
	`

	rows, err := r.Pool.Query(ctx, query, companyID, asOf, from)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error querying trial balance data", err)
	}
	defer rows.Close()

	result := []domain.TrialBalanceLine{}
	for rows.Next() {
		var code, name string
		var debit, credit decimal.Decimal
		if err := rows.Scan(&code, &name, &debit, &credit); err != nil {
			return nil, apperrors.NewAppError(500, "error scanning trial balance row", err)
		}
		result = append(result, domain.NewTrialBalanceLine(code, name, debit, credit))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating trial balance rows", err)
	}
	return result, nil
}
