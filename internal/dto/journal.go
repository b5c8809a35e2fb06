package dto

import (
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
	"github.com/shopspring/decimal"
)

// PostingRequest is one debit or credit line of an entry request.
// Amount and direction are checked by the ledger validator, not by binding, so that
// every problem of an entry is reported at once.
type PostingRequest struct {
	AccountCode string          `json:"accountCode" binding:"required"`
	Direction   string          `json:"direction"` // DEBIT or CREDIT
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// EntryRequest carries the header and postings of a journal entry.
// It is used for the dry-run check, creation and draft replacement.
type EntryRequest struct {
	EntryDate    time.Time        `json:"entryDate" binding:"required"`
	Description  string           `json:"description" binding:"max=500"`
	CurrencyCode string           `json:"currencyCode" binding:"omitempty,currency"` // Defaults to the company currency
	Standard     string           `json:"standard"`                                  // Defaults to the company standard
	Postings     []PostingRequest `json:"postings" binding:"dive"`
}

// ListEntriesParams holds parameters for listing journal entries.
type ListEntriesParams struct {
	Status    string     `form:"status" binding:"omitempty,oneof=DRAFT VALIDATED POSTED CANCELLED"`
	From      *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
	To        *time.Time `form:"to" time_format:"2006-01-02" time_utc:"1"`
	Limit     int        `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string    `form:"nextToken"`
}

// PostingResponse defines the data returned for a posting.
type PostingResponse struct {
	LineNumber  int             `json:"lineNumber"`
	AccountCode string          `json:"accountCode"`
	Direction   string          `json:"direction"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// EntryResponse defines the data returned for a journal entry.
type EntryResponse struct {
	EntryID      string            `json:"entryID"`
	EntryNumber  string            `json:"entryNumber"`
	EntryDate    time.Time         `json:"entryDate"`
	Description  string            `json:"description"`
	CurrencyCode string            `json:"currencyCode"`
	Standard     string            `json:"standard"`
	Status       string            `json:"status"`
	TotalDebit   decimal.Decimal   `json:"totalDebit"`
	TotalCredit  decimal.Decimal   `json:"totalCredit"`
	Postings     []PostingResponse `json:"postings"`
	ValidatedAt  *time.Time        `json:"validatedAt,omitempty"`
	ValidatedBy  *string           `json:"validatedBy,omitempty"`
	PostedAt     *time.Time        `json:"postedAt,omitempty"`
	PostedBy     *string           `json:"postedBy,omitempty"`
	CancelledAt  *time.Time        `json:"cancelledAt,omitempty"`
	CancelledBy  *string           `json:"cancelledBy,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	CreatedBy    string            `json:"createdBy"`
}

// ValidationResponse is returned for dry runs and for rejected entries (HTTP 422).
type ValidationResponse struct {
	Result ledger.ValidationResult `json:"result"`
	Entry  *EntryResponse          `json:"entry,omitempty"`
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// StatisticsResponse summarises a company's journal.
type StatisticsResponse struct {
	TotalEntries     int             `json:"totalEntries"`
	CountByStatus    map[string]int  `json:"countByStatus"`
	PostedDebitTotal decimal.Decimal `json:"postedDebitTotal"`
}

// ToEntry builds the domain entry a request describes. Missing currency and standard fall
// back to the given defaults; the direction is copied as sent so the validator can report it.
func (r EntryRequest) ToEntry(companyID, defaultCurrency string, defaultStandard domain.AccountingStandard) domain.JournalEntry {
	entry := domain.JournalEntry{
		CompanyID:    companyID,
		EntryDate:    r.EntryDate,
		Description:  r.Description,
		CurrencyCode: r.CurrencyCode,
		Standard:     domain.NormalizeStandard(r.Standard),
		Status:       domain.Draft,
		Postings:     make([]domain.Posting, len(r.Postings)),
	}
	if entry.CurrencyCode == "" {
		entry.CurrencyCode = defaultCurrency
	}
	if entry.Standard == "" {
		entry.Standard = defaultStandard
	}
	for i, p := range r.Postings {
		entry.Postings[i] = domain.Posting{
			LineNumber:  i + 1,
			AccountCode: p.AccountCode,
			Direction:   domain.Direction(p.Direction),
			Amount:      p.Amount,
			Description: p.Description,
		}
	}
	return entry
}

// ToEntryResponse converts a domain.JournalEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.JournalEntry) EntryResponse {
	debit, credit := e.Totals()
	resp := EntryResponse{
		EntryID:      e.EntryID,
		EntryNumber:  e.EntryNumber,
		EntryDate:    e.EntryDate,
		Description:  e.Description,
		CurrencyCode: e.CurrencyCode,
		Standard:     string(e.Standard),
		Status:       string(e.Status),
		TotalDebit:   debit,
		TotalCredit:  credit,
		Postings:     make([]PostingResponse, len(e.Postings)),
		ValidatedAt:  e.ValidatedAt,
		ValidatedBy:  e.ValidatedBy,
		PostedAt:     e.PostedAt,
		PostedBy:     e.PostedBy,
		CancelledAt:  e.CancelledAt,
		CancelledBy:  e.CancelledBy,
		CreatedAt:    e.CreatedAt,
		CreatedBy:    e.CreatedBy,
	}
	for i, p := range e.Postings {
		resp.Postings[i] = PostingResponse{
			LineNumber:  p.LineNumber,
			AccountCode: p.AccountCode,
			Direction:   string(p.Direction),
			Amount:      p.Amount,
			Description: p.Description,
		}
	}
	return resp
}

// ToEntryResponses converts a slice of entries.
func ToEntryResponses(entries []domain.JournalEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = ToEntryResponse(&entries[i])
	}
	return responses
}

// ToStatisticsResponse converts domain statistics to the response DTO.
func ToStatisticsResponse(s *domain.EntryStatistics) StatisticsResponse {
	counts := make(map[string]int, len(s.CountByStatus))
	for status, n := range s.CountByStatus {
		counts[string(status)] = n
	}
	return StatisticsResponse{
		TotalEntries:     s.TotalEntries,
		CountByStatus:    counts,
		PostedDebitTotal: s.PostedDebitTotal,
	}
}
