package dto

import (
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceParams holds the query parameters of the trial balance report.
type TrialBalanceParams struct {
	AsOf time.Time  `form:"asOf" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	From *time.Time `form:"from" time_format:"2006-01-02" time_utc:"1"`
}

// BalanceSheetParams holds the query parameters of the balance sheet report.
type BalanceSheetParams struct {
	AsOf     time.Time `form:"asOf" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	Standard string    `form:"standard"` // Defaults to the company standard
}

// PeriodParams holds the query parameters of period statements (income statement, cash flow).
type PeriodParams struct {
	From     time.Time `form:"from" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	To       time.Time `form:"to" binding:"required" time_format:"2006-01-02" time_utc:"1"`
	Standard string    `form:"standard"`
}

// TrialBalanceRowResponse represents a row in the trial balance report response
type TrialBalanceRowResponse struct {
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Balance     decimal.Decimal `json:"balance"`
	Direction   string          `json:"direction"`
}

// TrialBalanceResponse represents the trial balance report response
type TrialBalanceResponse struct {
	AsOf     string                    `json:"asOf"`
	From     string                    `json:"from,omitempty"`
	Currency string                    `json:"currency"`
	Rows     []TrialBalanceRowResponse `json:"rows"`
	Totals   struct {
		Debit  decimal.Decimal `json:"debit"`
		Credit decimal.Decimal `json:"credit"`
	} `json:"totals"`
	Balanced bool `json:"balanced"`
}

// AllStatementsResponse bundles the statements of one period.
type AllStatementsResponse struct {
	BalanceSheet    *domain.FinancialStatement `json:"balanceSheet"`
	IncomeStatement *domain.FinancialStatement `json:"incomeStatement"`
	CashFlow        *domain.FinancialStatement `json:"cashFlow"`
}

// ToTrialBalanceResponse converts a domain trial balance to a DTO response
func ToTrialBalanceResponse(tb *domain.TrialBalance) TrialBalanceResponse {
	response := TrialBalanceResponse{
		AsOf:     tb.AsOf.Format("2006-01-02"),
		Currency: tb.Currency,
		Rows:     make([]TrialBalanceRowResponse, len(tb.Lines)),
		Balanced: tb.IsBalanced(),
	}
	if tb.PeriodStart != nil {
		response.From = tb.PeriodStart.Format("2006-01-02")
	}

	for i, row := range tb.Lines {
		response.Rows[i] = TrialBalanceRowResponse{
			AccountCode: row.AccountCode,
			AccountName: row.AccountName,
			Debit:       row.TotalDebit,
			Credit:      row.TotalCredit,
			Balance:     row.Balance,
			Direction:   string(row.Direction),
		}
	}

	response.Totals.Debit, response.Totals.Credit = tb.Totals()
	return response
}
