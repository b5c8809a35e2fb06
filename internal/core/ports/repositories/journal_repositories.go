package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EntryFilter narrows ListEntries. Nil fields do not filter.
type EntryFilter struct {
	Status *domain.JournalStatus
	From   *time.Time
	To     *time.Time
}

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves an entry with its postings.
	FindEntryByID(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries (newest first) using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, companyID string, filter EntryFilter, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)

	// GetStatistics counts entries per status and sums the debit side of posted entries.
	GetStatistics(ctx context.Context, companyID string) (*domain.EntryStatistics, error)
}

// PostingReader defines read operations for posting lines
type PostingReader interface {
	// FindPostingsByEntryID retrieves the postings of an entry ordered by line number.
	FindPostingsByEntryID(ctx context.Context, entryID string) ([]domain.Posting, error)

	// FindPostingsByEntryIDs retrieves postings for multiple entries, grouped by entry ID.
	FindPostingsByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.Posting, error)
}

// JournalWriter defines write operations for journal entries
type JournalWriter interface {
	// SaveEntryInTx inserts the header and its postings inside the caller's transaction.
	SaveEntryInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// ReplaceDraftInTx rewrites header fields and postings of an entry still in DRAFT.
	// Returns apperrors.ErrConflict when the stored entry is no longer a draft.
	ReplaceDraftInTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error

	// UpdateStatus moves an entry from one status to another with a compare-and-set on the old status.
	// Returns apperrors.ErrConflict when the stored status is not `from` anymore.
	UpdateStatus(ctx context.Context, companyID, entryID string, from, to domain.JournalStatus, actor string, at time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces
// This is a facade for clients that need access to all operations
type JournalRepositoryFacade interface {
	JournalReader
	PostingReader
	JournalWriter
}

// JournalRepositoryWithTx extends JournalRepositoryFacade with transaction capabilities
type JournalRepositoryWithTx interface {
	JournalRepositoryFacade
	TransactionManager
}
