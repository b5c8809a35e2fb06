package ledger

import (
	"fmt"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Validator checks journal entries against numbering rules and the double-entry invariant.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	rules     RulesProvider
	tolerance decimal.Decimal
}

// Option configures a Validator.
type Option func(*Validator)

// WithTolerance allows |debit - credit| up to t after rounding. Negative values are ignored.
func WithTolerance(t decimal.Decimal) Option {
	return func(v *Validator) {
		if !t.IsNegative() {
			v.tolerance = t
		}
	}
}

// NewValidator creates a Validator. The default tolerance is zero.
func NewValidator(rules RulesProvider, opts ...Option) *Validator {
	v := &Validator{rules: rules, tolerance: decimal.Zero}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs the checks with the default options.
func Validate(entry domain.JournalEntry, rules RulesProvider) ValidationResult {
	return NewValidator(rules).Validate(entry)
}

// Validate checks entry. Structural issues are all collected and short-circuit the balance check.
func (v *Validator) Validate(entry domain.JournalEntry) ValidationResult {
	return v.validate(entry, nil)
}

// ValidateInChart additionally requires every posted account to exist in chart.
func (v *Validator) ValidateInChart(entry domain.JournalEntry, chart Chart) ValidationResult {
	return v.validate(entry, chart)
}

func (v *Validator) validate(entry domain.JournalEntry, chart Chart) ValidationResult {
	var issues []Issue

	rules, known := v.rules.NumberingRules(entry.Standard)
	if !known {
		issues = append(issues, Issue{
			PostingIndex: HeaderIndex,
			Code:         IssueUnknownStandard,
			Message:      fmt.Sprintf("unknown accounting standard %q", entry.Standard),
		})
	}
	if entry.CurrencyCode == "" {
		issues = append(issues, Issue{PostingIndex: HeaderIndex, Code: IssueMissingCurrency, Message: "currency code is required"})
	}
	if len(entry.Postings) < 2 {
		issues = append(issues, Issue{
			PostingIndex: HeaderIndex,
			Code:         IssueTooFewPostings,
			Message:      fmt.Sprintf("an entry needs at least 2 postings, got %d", len(entry.Postings)),
		})
	}

	for i, p := range entry.Postings {
		// Amounts are booked in the currency unit; one that rounds to zero is not a posting.
		if !domain.RoundToCurrency(p.Amount, entry.CurrencyCode).IsPositive() {
			issues = append(issues, Issue{PostingIndex: i, Code: IssueNonPositiveAmount, Message: fmt.Sprintf("amount must be positive in %s units, got %s", entry.CurrencyCode, p.Amount.String())})
		}
		if !p.Direction.IsValid() {
			issues = append(issues, Issue{PostingIndex: i, Code: IssueInvalidDirection, Message: fmt.Sprintf("direction must be DEBIT or CREDIT, got %q", p.Direction)})
		}
		if known && !rules.Accepts(p.AccountCode) {
			issues = append(issues, Issue{PostingIndex: i, Code: IssueInvalidAccount, Message: fmt.Sprintf("account code %q is not valid for %s", p.AccountCode, entry.Standard)})
			continue
		}
		if chart != nil && !chart.Has(p.AccountCode) {
			issues = append(issues, Issue{PostingIndex: i, Code: IssueUnknownAccount, Message: fmt.Sprintf("account %q is not in the chart of accounts", p.AccountCode)})
		}
	}

	if len(issues) > 0 {
		return ValidationResult{
			Status:      StatusRejected,
			Reason:      ReasonStructural,
			Issues:      issues,
			TotalDebit:  decimal.Zero,
			TotalCredit: decimal.Zero,
			Difference:  decimal.Zero,
		}
	}

	debit, credit := decimal.Zero, decimal.Zero
	for _, p := range entry.Postings {
		amount := domain.RoundToCurrency(p.Amount, entry.CurrencyCode)
		if p.Direction == domain.Debit {
			debit = debit.Add(amount)
		} else {
			credit = credit.Add(amount)
		}
	}
	diff := debit.Sub(credit)

	result := ValidationResult{
		Status:      StatusOK,
		TotalDebit:  debit,
		TotalCredit: credit,
		Difference:  diff,
	}
	if diff.Abs().GreaterThan(v.tolerance) {
		result.Status = StatusRejected
		result.Reason = ReasonImbalance
	}
	return result
}
