package services

import (
	"context"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// An empty standard means the company's own standard.
type ReportingService interface {
	// TrialBalance aggregates POSTED entries up to asOf, or only those of [from, asOf] when from is set.
	TrialBalance(ctx context.Context, companyID string, asOf time.Time, from *time.Time) (*domain.TrialBalance, error)

	// BalanceSheet composes the balance sheet as of a date.
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time, standard string) (*domain.FinancialStatement, error)

	// IncomeStatement composes the income statement of the period.
	IncomeStatement(ctx context.Context, companyID string, from, to time.Time, standard string) (*domain.FinancialStatement, error)

	// CashFlow composes the cash-flow statement of the period.
	CashFlow(ctx context.Context, companyID string, from, to time.Time, standard string) (*domain.FinancialStatement, error)

	// AllStatements composes the three statements of the period.
	AllStatements(ctx context.Context, companyID string, from, to time.Time, standard string) (*AllStatements, error)

	// InvalidateCompany drops cached trial balances of a company.
	InvalidateCompany(companyID string)
}

// AllStatements bundles the statements of one period.
type AllStatements struct {
	BalanceSheet    *domain.FinancialStatement
	IncomeStatement *domain.FinancialStatement
	CashFlow        *domain.FinancialStatement
}
