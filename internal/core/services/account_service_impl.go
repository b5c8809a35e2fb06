package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/core/ledger"
	portsrepo "github.com/SscSPs/ecompta_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/SscSPs/ecompta_backend/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	companies   portssvc.CompanyReaderSvc
	rules       ledger.RulesProvider
	sequences   portssvc.SequenceSvc
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountSequences enables third-party sub-account allocation.
func WithAccountSequences(seq portssvc.SequenceSvc) AccountServiceOption {
	return func(s *accountService) {
		s.sequences = seq
	}
}

// WithAccountClock overrides the clock used for audit fields.
func WithAccountClock(now func() time.Time) AccountServiceOption {
	return func(s *accountService) {
		s.now = now
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, companies portssvc.CompanyReaderSvc, rules ledger.RulesProvider, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		BaseService: newBaseService("account"),
		accountRepo: repo,
		companies:   companies,
		rules:       rules,
	}

	// Apply all options
	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount adds an account to the company's chart.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, actor string) (*domain.Account, error) {
	company, err := s.companies.GetCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	code := strings.TrimSpace(req.Code)
	rules, ok := s.rules.NumberingRules(company.Standard)
	if !ok {
		return nil, fmt.Errorf("no numbering rules for standard %s: %w", company.Standard, apperrors.ErrValidation)
	}
	if !rules.Accepts(code) {
		err := fmt.Errorf("account code %q does not follow %s numbering: %w", code, company.Standard, apperrors.ErrValidation)
		s.LogError(ctx, err, "Rejected account code", slog.String("company_id", companyID), slog.String("code", code))
		return nil, err
	}

	nature := req.Nature
	if nature == "" {
		nature = domain.DefaultNature(code)
	}
	if !nature.IsValid() {
		return nil, fmt.Errorf("invalid nature %q: %w", nature, apperrors.ErrValidation)
	}

	return s.save(ctx, domain.Account{
		CompanyID:   companyID,
		Code:        code,
		Name:        strings.TrimSpace(req.Name),
		Nature:      nature,
		Description: req.Description,
	}, actor)
}

// CreateThirdPartyAccount allocates the next customer or supplier sub-account.
func (s *accountService) CreateThirdPartyAccount(ctx context.Context, companyID string, req dto.CreateThirdPartyAccountRequest, actor string) (*domain.Account, error) {
	if s.sequences == nil {
		return nil, fmt.Errorf("third-party numbering is not configured: %w", apperrors.ErrInternal)
	}
	if _, err := s.companies.GetCompany(ctx, companyID); err != nil {
		return nil, err
	}

	code, err := s.sequences.NextThirdPartyAccount(ctx, companyID, req.Kind)
	if err != nil {
		return nil, err
	}

	return s.save(ctx, domain.Account{
		CompanyID: companyID,
		Code:      code,
		Name:      strings.TrimSpace(req.Name),
		Nature:    domain.DefaultNature(code),
	}, actor)
}

func (s *accountService) save(ctx context.Context, account domain.Account, actor string) (*domain.Account, error) {
	now := s.Now()
	account.IsActive = true
	account.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     actor,
		LastUpdatedAt: now,
		LastUpdatedBy: actor,
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("account %s already exists: %w", account.Code, err)
		}
		s.LogError(ctx, err, "Failed to save account",
			slog.String("company_id", account.CompanyID),
			slog.String("code", account.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created",
		slog.String("company_id", account.CompanyID),
		slog.String("code", account.Code))
	return &account, nil
}

// GetAccount retrieves an account by its code.
func (s *accountService) GetAccount(ctx context.Context, companyID, code string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByCode(ctx, companyID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %s: %w", code, err)
	}
	return account, nil
}

// ListAccounts lists the chart of a company.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	var class *domain.AccountClass
	if params.Class != nil {
		c := domain.AccountClass(*params.Class)
		class = &c
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, class)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// DeactivateAccount marks an account as inactive.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID, code, actor string) error {
	if err := s.accountRepo.DeactivateAccount(ctx, companyID, code, actor, s.Now()); err != nil {
		return fmt.Errorf("failed to deactivate account %s: %w", code, err)
	}
	s.LogInfo(ctx, "Account deactivated",
		slog.String("company_id", companyID),
		slog.String("code", code))
	return nil
}
