package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
	portsrepo "github.com/SscSPs/ecompta_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/SscSPs/ecompta_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const defaultListLimit = 20

// postingListener is notified after an entry has been posted.
type postingListener interface {
	InvalidateCompany(companyID string)
}

type journalService struct {
	BaseService
	journalRepo  portsrepo.JournalRepositoryWithTx
	accountRepo  portsrepo.AccountReader
	companies    portssvc.CompanyReaderSvc
	sequences    portssvc.SequenceSvc
	validator    *ledger.Validator
	requireChart bool
	listeners    []postingListener
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithChartEnforcement makes postings to accounts missing from a non-empty chart structural errors.
func WithChartEnforcement(enabled bool) JournalServiceOption {
	return func(s *journalService) {
		s.requireChart = enabled
	}
}

// WithPostingListener registers a listener called after each successful posting.
func WithPostingListener(l postingListener) JournalServiceOption {
	return func(s *journalService) {
		if l != nil {
			s.listeners = append(s.listeners, l)
		}
	}
}

// WithJournalClock overrides the clock used for audit fields and status stamps.
func WithJournalClock(now func() time.Time) JournalServiceOption {
	return func(s *journalService) {
		s.now = now
	}
}

// NewJournalService creates the journal lifecycle service.
func NewJournalService(
	journalRepo portsrepo.JournalRepositoryWithTx,
	accountRepo portsrepo.AccountReader,
	companies portssvc.CompanyReaderSvc,
	sequences portssvc.SequenceSvc,
	validator *ledger.Validator,
	options ...JournalServiceOption,
) portssvc.JournalSvcFacade {
	svc := &journalService{
		BaseService: newBaseService("journal"),
		journalRepo: journalRepo,
		accountRepo: accountRepo,
		companies:   companies,
		sequences:   sequences,
		validator:   validator,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// validate runs the ledger validator, against the company chart when it is enforced and not empty.
func (s *journalService) validate(ctx context.Context, entry domain.JournalEntry) (ledger.ValidationResult, error) {
	if !s.requireChart || s.accountRepo == nil {
		return s.validator.Validate(entry), nil
	}

	n, err := s.accountRepo.CountAccounts(ctx, entry.CompanyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count chart accounts", slog.String("company_id", entry.CompanyID))
		return ledger.ValidationResult{}, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	if n == 0 {
		return s.validator.Validate(entry), nil
	}

	found, err := s.accountRepo.FindAccountsByCodes(ctx, entry.CompanyID, postedCodes(entry))
	if err != nil {
		s.LogError(ctx, err, "Failed to load posted accounts", slog.String("company_id", entry.CompanyID))
		return ledger.ValidationResult{}, fmt.Errorf("failed to load chart of accounts: %w", err)
	}
	active := make([]string, 0, len(found))
	for code, acc := range found {
		if acc.IsActive {
			active = append(active, code)
		}
	}
	return s.validator.ValidateInChart(entry, ledger.NewChartSet(active...)), nil
}

func postedCodes(entry domain.JournalEntry) []string {
	seen := make(map[string]struct{}, len(entry.Postings))
	codes := make([]string, 0, len(entry.Postings))
	for _, p := range entry.Postings {
		if _, ok := seen[p.AccountCode]; ok {
			continue
		}
		seen[p.AccountCode] = struct{}{}
		codes = append(codes, p.AccountCode)
	}
	sort.Strings(codes)
	return codes
}

// roundAmounts stores amounts at the currency precision the validator balanced them at.
func roundAmounts(entry *domain.JournalEntry) {
	for i := range entry.Postings {
		entry.Postings[i].Amount = domain.RoundToCurrency(entry.Postings[i].Amount, entry.CurrencyCode)
	}
}

func (s *journalService) buildEntry(ctx context.Context, companyID string, req dto.EntryRequest) (domain.JournalEntry, error) {
	company, err := s.companies.GetCompany(ctx, companyID)
	if err != nil {
		return domain.JournalEntry{}, err
	}
	return req.ToEntry(companyID, company.CurrencyCode, company.Standard), nil
}

// CheckEntry validates a request without persisting anything.
func (s *journalService) CheckEntry(ctx context.Context, companyID string, req dto.EntryRequest) (ledger.ValidationResult, error) {
	entry, err := s.buildEntry(ctx, companyID, req)
	if err != nil {
		return ledger.ValidationResult{}, err
	}
	result, err := s.validate(ctx, entry)
	if err != nil {
		return ledger.ValidationResult{}, err
	}
	s.LogDebug(ctx, "Entry checked",
		slog.String("company_id", companyID),
		slog.String("status", string(result.Status)))
	return result, result.Err()
}

// CreateEntry validates and stores a new DRAFT entry. A rejected entry is never persisted.
func (s *journalService) CreateEntry(ctx context.Context, companyID string, req dto.EntryRequest, actor string) (*domain.JournalEntry, ledger.ValidationResult, error) {
	entry, err := s.buildEntry(ctx, companyID, req)
	if err != nil {
		return nil, ledger.ValidationResult{}, err
	}
	result, err := s.validate(ctx, entry)
	if err != nil {
		return nil, ledger.ValidationResult{}, err
	}
	if !result.OK() {
		s.LogInfo(ctx, "Entry rejected",
			slog.String("company_id", companyID),
			slog.String("reason", string(result.Reason)))
		return nil, result, result.Err()
	}

	now := s.Now()
	entry.EntryID = uuid.NewString()
	entry.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor,
		LastUpdatedAt: now,
		LastUpdatedBy: actor,
	}
	roundAmounts(&entry)

	err = portsrepo.InTx(ctx, s.journalRepo, func(tx pgx.Tx) error {
		number, err := s.sequences.NextEntryNumber(ctx, tx, companyID, entry.EntryDate)
		if err != nil {
			return err
		}
		entry.EntryNumber = number

		if err := s.journalRepo.SaveEntryInTx(ctx, tx, entry); err != nil {
			s.LogError(ctx, err, "Failed to save entry", slog.String("company_id", companyID))
			return fmt.Errorf("failed to save entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, result, err
	}

	s.LogInfo(ctx, "Entry created",
		slog.String("company_id", companyID),
		slog.String("entry_id", entry.EntryID),
		slog.String("entry_number", entry.EntryNumber))
	return &entry, result, nil
}

// UpdateDraft replaces header and postings of a DRAFT entry.
func (s *journalService) UpdateDraft(ctx context.Context, companyID, entryID string, req dto.EntryRequest, actor string) (*domain.JournalEntry, ledger.ValidationResult, error) {
	existing, err := s.GetEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, ledger.ValidationResult{}, err
	}
	if !existing.IsEditable() {
		return nil, ledger.ValidationResult{}, fmt.Errorf("entry %s is %s and can no longer be edited: %w", entryID, existing.Status, apperrors.ErrConflict)
	}

	entry, err := s.buildEntry(ctx, companyID, req)
	if err != nil {
		return nil, ledger.ValidationResult{}, err
	}
	result, err := s.validate(ctx, entry)
	if err != nil {
		return nil, ledger.ValidationResult{}, err
	}
	if !result.OK() {
		return nil, result, result.Err()
	}

	entry.EntryID = existing.EntryID
	entry.EntryNumber = existing.EntryNumber
	entry.AuditFields = existing.AuditFields
	entry.LastUpdatedAt = s.Now()
	entry.LastUpdatedBy = actor
	roundAmounts(&entry)

	err = portsrepo.InTx(ctx, s.journalRepo, func(tx pgx.Tx) error {
		if err := s.journalRepo.ReplaceDraftInTx(ctx, tx, entry); err != nil {
			s.LogError(ctx, err, "Failed to replace draft", slog.String("entry_id", entryID))
			return fmt.Errorf("failed to update entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, result, err
	}

	s.LogInfo(ctx, "Draft updated", slog.String("entry_id", entryID))
	return &entry, result, nil
}

// ValidateEntry re-validates a stored draft and moves it to VALIDATED.
func (s *journalService) ValidateEntry(ctx context.Context, companyID, entryID, actor string) (*domain.JournalEntry, ledger.ValidationResult, error) {
	entry, err := s.GetEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, ledger.ValidationResult{}, err
	}
	if !domain.CanTransition(entry.Status, domain.Validated) {
		return nil, ledger.ValidationResult{}, transitionError(entry.Status, domain.Validated)
	}

	result, err := s.validate(ctx, *entry)
	if err != nil {
		return nil, ledger.ValidationResult{}, err
	}
	if !result.OK() {
		s.LogInfo(ctx, "Stored draft failed validation",
			slog.String("entry_id", entryID),
			slog.String("reason", string(result.Reason)))
		return nil, result, result.Err()
	}

	if err := s.applyTransition(ctx, entry, domain.Validated, actor); err != nil {
		return nil, result, err
	}
	return entry, result, nil
}

// PostEntry moves a VALIDATED entry to POSTED and drops cached trial balances.
func (s *journalService) PostEntry(ctx context.Context, companyID, entryID, actor string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.applyTransition(ctx, entry, domain.Posted, actor); err != nil {
		return nil, err
	}
	for _, l := range s.listeners {
		l.InvalidateCompany(companyID)
	}
	return entry, nil
}

// CancelEntry moves a DRAFT or VALIDATED entry to CANCELLED.
func (s *journalService) CancelEntry(ctx context.Context, companyID, entryID, actor string) (*domain.JournalEntry, error) {
	entry, err := s.GetEntry(ctx, companyID, entryID)
	if err != nil {
		return nil, err
	}
	if err := s.applyTransition(ctx, entry, domain.Cancelled, actor); err != nil {
		return nil, err
	}
	return entry, nil
}

// applyTransition changes the status in memory, then persists it with a compare-and-set on the old one.
func (s *journalService) applyTransition(ctx context.Context, entry *domain.JournalEntry, to domain.JournalStatus, actor string) error {
	from := entry.Status
	now := s.Now()
	if err := entry.TransitionTo(to, actor, now); err != nil {
		return transitionError(from, to)
	}
	if err := s.journalRepo.UpdateStatus(ctx, entry.CompanyID, entry.EntryID, from, to, actor, now); err != nil {
		s.LogError(ctx, err, "Failed to update entry status",
			slog.String("entry_id", entry.EntryID),
			slog.String("from", string(from)),
			slog.String("to", string(to)))
		return fmt.Errorf("failed to move entry %s to %s: %w", entry.EntryID, to, err)
	}
	s.LogInfo(ctx, "Entry status changed",
		slog.String("entry_id", entry.EntryID),
		slog.String("from", string(from)),
		slog.String("to", string(to)))
	return nil
}

func transitionError(from, to domain.JournalStatus) error {
	return fmt.Errorf("%w: %w", apperrors.ErrConflict, &domain.ErrInvalidTransition{From: from, To: to})
}

// GetEntry retrieves an entry with its postings.
func (s *journalService) GetEntry(ctx context.Context, companyID, entryID string) (*domain.JournalEntry, error) {
	entry, err := s.journalRepo.FindEntryByID(ctx, companyID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get entry %s: %w", entryID, err)
	}
	return entry, nil
}

// ListEntries retrieves a page of entries with their postings.
func (s *journalService) ListEntries(ctx context.Context, companyID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	filter := portsrepo.EntryFilter{From: params.From, To: params.To}
	if params.Status != "" {
		status := domain.JournalStatus(params.Status)
		if !status.IsValid() {
			return nil, fmt.Errorf("unknown status %q: %w", params.Status, apperrors.ErrValidation)
		}
		filter.Status = &status
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, companyID, filter, limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	if len(entries) > 0 {
		ids := make([]string, len(entries))
		for i := range entries {
			ids[i] = entries[i].EntryID
		}
		postings, err := s.journalRepo.FindPostingsByEntryIDs(ctx, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to load postings for entries", slog.String("company_id", companyID))
			return nil, fmt.Errorf("failed to retrieve postings: %w", err)
		}
		for i := range entries {
			entries[i].Postings = postings[entries[i].EntryID]
		}
	}

	s.LogDebug(ctx, "Entries listed", slog.String("company_id", companyID), slog.Int("count", len(entries)))
	return &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// Statistics counts entries per status and sums posted debits.
func (s *journalService) Statistics(ctx context.Context, companyID string) (*domain.EntryStatistics, error) {
	stats, err := s.journalRepo.GetStatistics(ctx, companyID)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute entry statistics", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}
	return stats, nil
}
