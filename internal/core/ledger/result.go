package ledger

import (
	"github.com/shopspring/decimal"
)

// Status is the outcome of a validation.
type Status string

const (
	StatusOK       Status = "OK"
	StatusRejected Status = "REJECTED"
)

// Reason qualifies a rejection.
type Reason string

const (
	ReasonStructural Reason = "STRUCTURAL"
	ReasonImbalance  Reason = "IMBALANCE"
)

// IssueCode identifies a structural problem.
type IssueCode string

const (
	IssueTooFewPostings    IssueCode = "TOO_FEW_POSTINGS"
	IssueNonPositiveAmount IssueCode = "NON_POSITIVE_AMOUNT"
	IssueInvalidDirection  IssueCode = "INVALID_DIRECTION"
	IssueInvalidAccount    IssueCode = "INVALID_ACCOUNT_CODE"
	IssueUnknownAccount    IssueCode = "UNKNOWN_ACCOUNT"
	IssueUnknownStandard   IssueCode = "UNKNOWN_STANDARD"
	IssueMissingCurrency   IssueCode = "MISSING_CURRENCY"
)

// HeaderIndex is the posting index reported for issues that concern the entry header.
const HeaderIndex = -1

// Issue is one structural problem, pointing at the offending posting.
type Issue struct {
	PostingIndex int       `json:"postingIndex"` // 0-based, HeaderIndex for header issues
	Code         IssueCode `json:"code"`
	Message      string    `json:"message"`
}

// ValidationResult is the structured outcome of Validate.
type ValidationResult struct {
	Status      Status          `json:"status"`
	Reason      Reason          `json:"reason,omitempty"`
	Issues      []Issue         `json:"issues,omitempty"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Difference  decimal.Decimal `json:"difference"` // Debit minus credit, after rounding
}

// OK reports whether the entry may be committed.
func (r ValidationResult) OK() bool {
	return r.Status == StatusOK
}

// Err converts a rejection into a typed error, nil when the entry is accepted.
func (r ValidationResult) Err() error {
	if r.OK() {
		return nil
	}
	switch r.Reason {
	case ReasonImbalance:
		return &ImbalanceError{TotalDebit: r.TotalDebit, TotalCredit: r.TotalCredit, Difference: r.Difference}
	default:
		return &StructuralError{Issues: r.Issues}
	}
}
