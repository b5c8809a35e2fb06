package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/ecompta_backend/internal/core/ports/repositories"
	"github.com/SscSPs/ecompta_backend/internal/models"
	"github.com/SscSPs/ecompta_backend/internal/utils/mapping"
	"github.com/SscSPs/ecompta_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const entryColumns = `entry_id, entry_number, company_id, entry_date, description, currency_code, standard, status,
	validated_at, validated_by, posted_at, posted_by, cancelled_at, cancelled_by,
	created_at, created_by, last_updated_at, last_updated_by`

const postingInsert = `
	INSERT INTO postings (entry_id, line_number, account_code, direction, amount, description)
	VALUES ($1, $2, $3, $4, $5, $6);
`

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entries and their postings.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID, &m.EntryNumber, &m.CompanyID, &m.EntryDate, &m.Description, &m.CurrencyCode, &m.Standard, &m.Status,
		&m.ValidatedAt, &m.ValidatedBy, &m.PostedAt, &m.PostedBy, &m.CancelledAt, &m.CancelledBy,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

// insertPostings queues every posting in one batch on tx.
func insertPostings(ctx context.Context, tx pgx.Tx, entryID string, postings []domain.Posting) error {
	batch := &pgx.Batch{}
	for _, p := range mapping.ToModelPostings(entryID, postings) {
		batch.Queue(postingInsert, p.EntryID, p.LineNumber, p.AccountCode, p.Direction, p.Amount, p.Description)
	}
	// Close the batch results to surface the error of each command
	return tx.SendBatch(ctx, batch).Close()
}

// SaveEntryInTx inserts the header and its postings inside tx.
func (r *PgxJournalRepository) SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `INSERT INTO journal_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`

	_, err := tx.Exec(ctx, query,
		m.EntryID, m.EntryNumber, m.CompanyID, m.EntryDate, m.Description, m.CurrencyCode, m.Standard, m.Status,
		m.ValidatedAt, m.ValidatedBy, m.PostedAt, m.PostedBy, m.CancelledAt, m.CancelledBy,
		m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: entry number %s already used", apperrors.ErrDuplicate, m.EntryNumber)
		}
		return apperrors.NewAppError(500, "failed to insert journal entry "+m.EntryID, err)
	}
	if err := insertPostings(ctx, tx, m.EntryID, entry.Postings); err != nil {
		return apperrors.NewAppError(500, "failed to insert postings for entry "+m.EntryID, err)
	}
	return nil
}

// ReplaceDraftInTx rewrites a draft's header and swaps its postings.
func (r *PgxJournalRepository) ReplaceDraftInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		UPDATE journal_entries
		SET entry_date = $3, description = $4, currency_code = $5, standard = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE company_id = $1 AND entry_id = $2 AND status = 'DRAFT';
	`
	tag, err := tx.Exec(ctx, query,
		m.CompanyID, m.EntryID, m.EntryDate, m.Description, m.CurrencyCode, m.Standard,
		m.LastUpdatedAt, m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update draft "+m.EntryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, tx, m.CompanyID, m.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM postings WHERE entry_id = $1;`, m.EntryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete postings of draft "+m.EntryID, err)
	}
	if err := insertPostings(ctx, tx, m.EntryID, entry.Postings); err != nil {
		return apperrors.NewAppError(500, "failed to insert postings for entry "+m.EntryID, err)
	}
	return nil
}

// UpdateStatus applies a status change only if the stored status is still `from`.
func (r *PgxJournalRepository) UpdateStatus(ctx context.Context, companyID, entryID string, from, to domain.JournalStatus, actor string, at time.Time) error {
	var stamp string
	switch to {
	case domain.Validated:
		stamp = "validated"
	case domain.Posted:
		stamp = "posted"
	case domain.Cancelled:
		stamp = "cancelled"
	default:
		return fmt.Errorf("%w: cannot move an entry to %s", apperrors.ErrValidation, to)
	}

	query := `
		UPDATE journal_entries
		SET status = $4, ` + stamp + `_at = $5, ` + stamp + `_by = $6, last_updated_at = $5, last_updated_by = $6
		WHERE company_id = $1 AND entry_id = $2 AND status = $3;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, entryID, string(from), string(to), at, actor)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of entry "+entryID, err)
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, nil, companyID, entryID)
	}
	return nil
}

// missingOrConflict tells apart an absent entry from one whose status moved on.
func (r *PgxJournalRepository) missingOrConflict(ctx context.Context, tx pgx.Tx, companyID, entryID string) error {
	var status string
	err := r.db(tx).QueryRow(ctx, `SELECT status FROM journal_entries WHERE company_id = $1 AND entry_id = $2;`, companyID, entryID).Scan(&status)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return apperrors.NewAppError(500, "failed to read status of entry "+entryID, err)
	}
	return fmt.Errorf("%w: entry %s is %s", apperrors.ErrConflict, entryID, status)
}

// FindEntryByID retrieves an entry with its postings.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE company_id = $1 AND entry_id = $2;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, companyID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Map db not found error to application specific error
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find journal entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainJournalEntry(m)
	entry.Postings, err = r.FindPostingsByEntryID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindPostingsByEntryID retrieves all postings of an entry ordered by line number.
func (r *PgxJournalRepository) FindPostingsByEntryID(ctx context.Context, entryID string) ([]domain.Posting, error) {
	byEntry, err := r.FindPostingsByEntryIDs(ctx, []string{entryID})
	if err != nil {
		return nil, err
	}
	if postings, ok := byEntry[entryID]; ok {
		return postings, nil
	}
	return []domain.Posting{}, nil
}

// FindPostingsByEntryIDs retrieves postings for multiple entries in a single query.
func (r *PgxJournalRepository) FindPostingsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.Posting, error) {
	result := make(map[string][]domain.Posting, len(entryIDs))
	if len(entryIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT entry_id, line_number, account_code, direction, amount, description
		FROM postings
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_number;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query postings", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Posting
		if err := rows.Scan(&p.EntryID, &p.LineNumber, &p.AccountCode, &p.Direction, &p.Amount, &p.Description); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posting row", err)
		}
		result[p.EntryID] = append(result[p.EntryID], mapping.ToDomainPosting(p))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posting rows", err)
	}
	return result, nil
}

// ListEntries retrieves a page of entry headers, newest first, using keyset pagination.
// Postings are not loaded.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, companyID string, filter portsrepo.EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	conds := []string{"company_id = $1"}
	args := []any{companyID}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != nil {
		conds = append(conds, "status = "+arg(string(*filter.Status)))
	}
	if filter.From != nil {
		conds = append(conds, "entry_date >= "+arg(*filter.From))
	}
	if filter.To != nil {
		conds = append(conds, "entry_date <= "+arg(*filter.To))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		// Tuple comparison matches the ORDER BY below
		conds = append(conds, fmt.Sprintf("(entry_date, created_at, entry_id) < (%s, %s, %s)",
			arg(cursor.EntryDate), arg(cursor.CreatedAt), arg(cursor.EntryID)))
	}

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT ` + arg(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for company "+companyID, err)
	}
	defer rows.Close()

	ms := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", err)
		}
		ms = append(ms, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	if len(ms) > limit {
		ms = ms[:limit]
		last := ms[limit-1]
		token := pagination.EncodeToken(pagination.Cursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
		nextTokenVal = &token
	}

	entries := make([]domain.JournalEntry, len(ms))
	for i, m := range ms {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// GetStatistics counts entries per status and sums the debit side of posted entries.
func (r *PgxJournalRepository) GetStatistics(ctx context.Context, companyID string) (*domain.EntryStatistics, error) {
	stats := &domain.EntryStatistics{
		CountByStatus:    map[domain.JournalStatus]int{},
		PostedDebitTotal: decimal.Zero,
	}

	rows, err := r.Pool.Query(ctx, `SELECT status, COUNT(*) FROM journal_entries WHERE company_id = $1 GROUP BY status;`, companyID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to count journal entries", err)
	}
	defer rows.Close()
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan entry count", err)
		}
		stats.CountByStatus[domain.JournalStatus(status)] = n
		stats.TotalEntries += n
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating entry counts", err)
	}

	query := `
		SELECT COALESCE(SUM(p.amount), 0)
		FROM postings p
		JOIN journal_entries j ON j.entry_id = p.entry_id
		WHERE j.company_id = $1 AND j.status = 'POSTED' AND p.direction = 'DEBIT';
	`
	if err := r.Pool.QueryRow(ctx, query, companyID).Scan(&stats.PostedDebitTotal); err != nil {
		return nil, apperrors.NewAppError(500, "failed to sum posted debits", err)
	}
	return stats, nil
}
