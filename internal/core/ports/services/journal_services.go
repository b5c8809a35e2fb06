package services

import (
	"context"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
	"github.com/SscSPs/ecompta_backend/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its postings.
	GetEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entries.
	ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)

	// Statistics counts entries per status and sums posted debits.
	Statistics(ctx context.Context, companyID string) (*domain.EntryStatistics, error)
}

// JournalWriterSvc defines the lifecycle operations of journal entries.
// Operations that validate return the ValidationResult alongside a typed ledger error on rejection.
type JournalWriterSvc interface {
	// CheckEntry validates a request without persisting anything.
	CheckEntry(ctx context.Context, companyID string, req dto.EntryRequest) (ledger.ValidationResult, error)

	// CreateEntry validates and stores a new DRAFT entry with an allocated number.
	CreateEntry(ctx context.Context, companyID string, req dto.EntryRequest, actor string) (*domain.JournalEntry, ledger.ValidationResult, error)

	// UpdateDraft replaces header and postings of a DRAFT entry.
	UpdateDraft(ctx context.Context, companyID, entryID string, req dto.EntryRequest, actor string) (*domain.JournalEntry, ledger.ValidationResult, error)

	// ValidateEntry re-validates a stored draft and moves it to VALIDATED.
	ValidateEntry(ctx context.Context, companyID, entryID, actor string) (*domain.JournalEntry, ledger.ValidationResult, error)

	// PostEntry moves a VALIDATED entry to POSTED.
	PostEntry(ctx context.Context, companyID, entryID, actor string) (*domain.JournalEntry, error)

	// CancelEntry moves a DRAFT or VALIDATED entry to CANCELLED.
	CancelEntry(ctx context.Context, companyID, entryID, actor string) (*domain.JournalEntry, error)
}

// JournalSvcFacade combines all journal-related service interfaces
// This is a facade for clients that need access to all operations
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}
