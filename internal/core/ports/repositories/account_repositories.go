package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
)

// AccountReader defines read operations for chart-of-accounts data
type AccountReader interface {
	// FindAccountByCode retrieves an account of a company's chart by its code.
	FindAccountByCode(ctx context.Context, companyID, code string) (*domain.Account, error)

	// FindAccountsByCodes retrieves the accounts matching the given codes, keyed by code.
	// Codes without an account are simply missing from the map.
	FindAccountsByCodes(ctx context.Context, companyID string, codes []string) (map[string]domain.Account, error)

	// ListAccounts lists a company's chart ordered by code, optionally restricted to one class.
	ListAccounts(ctx context.Context, companyID string, class *domain.AccountClass) ([]domain.Account, error)

	// CountAccounts returns the size of a company's chart.
	CountAccounts(ctx context.Context, companyID string) (int, error)
}

// AccountWriter defines write operations for chart-of-accounts data
type AccountWriter interface {
	// SaveAccount persists a new account. Returns apperrors.ErrDuplicate when the code is taken.
	SaveAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, companyID, code, actor string, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
