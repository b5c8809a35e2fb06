package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceLine is the cumulated activity of one account.
type TrialBalanceLine struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"`   // Non-negative net amount
	Direction   Direction       `json:"direction"` // Side the net amount sits on
}

// NewTrialBalanceLine derives the net balance and its side from the debit and credit totals.
// A zero net balance is reported on the debit side.
func NewTrialBalanceLine(code, name string, totalDebit, totalCredit decimal.Decimal) TrialBalanceLine {
	line := TrialBalanceLine{
		AccountCode: code,
		AccountName: name,
		TotalDebit:  totalDebit,
		TotalCredit: totalCredit,
	}
	net := totalDebit.Sub(totalCredit)
	if net.IsNegative() {
		line.Balance = net.Neg()
		line.Direction = Credit
	} else {
		line.Balance = net
		line.Direction = Debit
	}
	return line
}

// SignedDebit returns the balance as a debit-positive figure.
func (l TrialBalanceLine) SignedDebit() decimal.Decimal {
	if l.Direction == Credit {
		return l.Balance.Neg()
	}
	return l.Balance
}

// Class is derived from the account code.
func (l TrialBalanceLine) Class() AccountClass {
	return ClassOf(l.AccountCode)
}

// TrialBalance is the snapshot of every account with postings, per company and as-of date.
type TrialBalance struct {
	CompanyID   string             `json:"companyID"`
	AsOf        time.Time          `json:"asOf"`
	PeriodStart *time.Time         `json:"periodStart,omitempty"` // Set when only a period's activity is aggregated
	Currency    string             `json:"currency"`
	Lines       []TrialBalanceLine `json:"lines"`
}

// Totals sums the debit and credit columns.
func (tb TrialBalance) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range tb.Lines {
		debit = debit.Add(l.TotalDebit)
		credit = credit.Add(l.TotalCredit)
	}
	return debit, credit
}

// IsBalanced reports whether total debits equal total credits.
func (tb TrialBalance) IsBalanced() bool {
	d, c := tb.Totals()
	return d.Equal(c)
}

// SortLines orders lines by account code so snapshots compare deterministically.
func (tb *TrialBalance) SortLines() {
	sort.SliceStable(tb.Lines, func(i, j int) bool {
		return tb.Lines[i].AccountCode < tb.Lines[j].AccountCode
	})
}
