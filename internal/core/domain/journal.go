package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Draft     JournalStatus = "DRAFT"
	Validated JournalStatus = "VALIDATED"
	Posted    JournalStatus = "POSTED"
	Cancelled JournalStatus = "CANCELLED"
)

// allowedTransitions is the whole lifecycle. POSTED and CANCELLED are terminal.
var allowedTransitions = map[JournalStatus][]JournalStatus{
	Draft:     {Validated, Cancelled},
	Validated: {Posted, Cancelled},
}

// IsValid reports whether s is a known status.
func (s JournalStatus) IsValid() bool {
	switch s {
	case Draft, Validated, Posted, Cancelled:
		return true
	}
	return false
}

// CanTransition reports whether an entry may move from one status to another.
func CanTransition(from, to JournalStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ErrInvalidTransition is returned when a status change is not part of the lifecycle.
type ErrInvalidTransition struct {
	From JournalStatus
	To   JournalStatus
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("journal entry cannot move from %s to %s", e.From, e.To)
}

// Posting is one debit or credit line of a journal entry.
type Posting struct {
	LineNumber  int             `json:"lineNumber"`  // 1-based position inside the entry
	AccountCode string          `json:"accountCode"` // Chart code, class derived from first digit
	Direction   Direction       `json:"direction"`   // DEBIT or CREDIT, never encoded in the sign
	Amount      decimal.Decimal `json:"amount"`      // Non-negative
	Description string          `json:"description"`
}

// JournalEntry is a header plus its ordered postings.
type JournalEntry struct {
	EntryID      string             `json:"entryID"`     // Primary Key (UUID)
	EntryNumber  string             `json:"entryNumber"` // JE-YYYYMMDD-NNNN, allocated per company and day
	CompanyID    string             `json:"companyID"`
	EntryDate    time.Time          `json:"entryDate"`
	Description  string             `json:"description"`
	CurrencyCode string             `json:"currencyCode"`
	Standard     AccountingStandard `json:"standard"`
	Status       JournalStatus      `json:"status"`
	Postings     []Posting          `json:"postings,omitempty"`

	ValidatedAt *time.Time `json:"validatedAt,omitempty"`
	ValidatedBy *string    `json:"validatedBy,omitempty"`
	PostedAt    *time.Time `json:"postedAt,omitempty"`
	PostedBy    *string    `json:"postedBy,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	CancelledBy *string    `json:"cancelledBy,omitempty"`
	AuditFields
}

// IsEditable reports whether header and postings may still change.
func (e *JournalEntry) IsEditable() bool {
	return e.Status == Draft
}

// TransitionTo moves the entry to the target status, stamping who did it and when.
// The persistence layer is expected to apply the same change with a compare-and-set on the old status.
func (e *JournalEntry) TransitionTo(to JournalStatus, actor string, at time.Time) error {
	if !CanTransition(e.Status, to) {
		return &ErrInvalidTransition{From: e.Status, To: to}
	}
	switch to {
	case Validated:
		e.ValidatedAt, e.ValidatedBy = &at, &actor
	case Posted:
		e.PostedAt, e.PostedBy = &at, &actor
	case Cancelled:
		e.CancelledAt, e.CancelledBy = &at, &actor
	}
	e.Status = to
	e.LastUpdatedAt = at
	e.LastUpdatedBy = actor
	return nil
}

// Totals returns the raw (unrounded) debit and credit sums.
func (e *JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, p := range e.Postings {
		switch p.Direction {
		case Debit:
			debit = debit.Add(p.Amount)
		case Credit:
			credit = credit.Add(p.Amount)
		}
	}
	return debit, credit
}

// EntryStatistics summarises a company's journal.
type EntryStatistics struct {
	CountByStatus    map[JournalStatus]int `json:"countByStatus"`
	TotalEntries     int                   `json:"totalEntries"`
	PostedDebitTotal decimal.Decimal       `json:"postedDebitTotal"`
}
