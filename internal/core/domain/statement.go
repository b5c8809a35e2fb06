package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// StatementType enumerates the statement documents. Annexes is reserved for the
// notes document: no composer builds it, see Composed.
type StatementType string

const (
	BalanceSheet    StatementType = "BALANCE_SHEET"
	IncomeStatement StatementType = "INCOME_STATEMENT"
	CashFlow        StatementType = "CASH_FLOW"
	Annexes         StatementType = "ANNEXES"
)

// Composed reports whether the statement composer can produce t.
func (t StatementType) Composed() bool {
	switch t {
	case BalanceSheet, IncomeStatement, CashFlow:
		return true
	}
	return false
}

// Period bounds a statement. Balance sheets only carry End.
type Period struct {
	Start *time.Time `json:"start,omitempty"`
	End   time.Time  `json:"end"`
}

// StatementLine is one line item of a statement section.
type StatementLine struct {
	Code         string          `json:"code"`
	Label        string          `json:"label"`
	Amount       decimal.Decimal `json:"amount"`
	DisplayOrder int             `json:"displayOrder"`
	Accounts     []string        `json:"accounts,omitempty"` // Contributing account codes, sorted
}

// StatementSection groups line items (Assets, Liabilities, Revenue...).
type StatementSection struct {
	Code  string          `json:"code"`
	Label string          `json:"label"`
	Lines []StatementLine `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// StatementTotal is a named computed figure (total assets, net result...).
type StatementTotal struct {
	Code   string          `json:"code"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// FinancialStatement is an immutable output document.
type FinancialStatement struct {
	Type      StatementType      `json:"type"`
	Standard  AccountingStandard `json:"standard"`
	CompanyID string             `json:"companyID"`
	Currency  string             `json:"currency"`
	Period    Period             `json:"period"`
	Sections  []StatementSection `json:"sections"`
	Totals    []StatementTotal   `json:"totals"`
	Balanced  *bool              `json:"balanced,omitempty"` // Balance sheet equality, cash-flow reconciliation
}

// Section returns the section with the given code.
func (s *FinancialStatement) Section(code string) (StatementSection, bool) {
	for _, sec := range s.Sections {
		if sec.Code == code {
			return sec, true
		}
	}
	return StatementSection{}, false
}

// Line finds a line item by code across all sections.
func (s *FinancialStatement) Line(code string) (StatementLine, bool) {
	for _, sec := range s.Sections {
		for _, l := range sec.Lines {
			if l.Code == code {
				return l, true
			}
		}
	}
	return StatementLine{}, false
}

// Total returns the computed figure with the given code.
func (s *FinancialStatement) Total(code string) (decimal.Decimal, bool) {
	for _, t := range s.Totals {
		if t.Code == code {
			return t.Amount, true
		}
	}
	return decimal.Zero, false
}
