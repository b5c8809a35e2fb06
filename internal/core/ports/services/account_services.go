package services

import (
	"context"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccount retrieves an account by its code.
	GetAccount(ctx context.Context, companyID, code string) (*domain.Account, error)

	// ListAccounts lists the chart of a company, optionally restricted to one class.
	ListAccounts(ctx context.Context, companyID string, params dto.ListAccountsParams) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount adds an account after checking its code against the company's standard.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actor string) (*domain.Account, error)

	// CreateThirdPartyAccount allocates the next customer (411NNNN) or supplier (401NNNN) sub-account.
	CreateThirdPartyAccount(ctx context.Context, companyID string, req dto.CreateThirdPartyAccountRequest, actor string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, companyID, code, actor string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
