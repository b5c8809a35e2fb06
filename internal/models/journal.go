package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the header row of the journal_entries table.
type JournalEntry struct {
	EntryID      string     `db:"entry_id"`
	EntryNumber  string     `db:"entry_number"`
	CompanyID    string     `db:"company_id"`
	EntryDate    time.Time  `db:"entry_date"`
	Description  string     `db:"description"`
	CurrencyCode string     `db:"currency_code"`
	Standard     string     `db:"standard"`
	Status       string     `db:"status"`
	ValidatedAt  *time.Time `db:"validated_at"`
	ValidatedBy  *string    `db:"validated_by"`
	PostedAt     *time.Time `db:"posted_at"`
	PostedBy     *string    `db:"posted_by"`
	CancelledAt  *time.Time `db:"cancelled_at"`
	CancelledBy  *string    `db:"cancelled_by"`
	AuditFields
}

// Posting is a row of the postings table.
type Posting struct {
	EntryID     string          `db:"entry_id"`
	LineNumber  int             `db:"line_number"`
	AccountCode string          `db:"account_code"`
	Direction   string          `db:"direction"`
	Amount      decimal.Decimal `db:"amount"` // NUMERIC(20,4), always positive
	Description string          `db:"description"`
}
