package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/ecompta_backend/internal/apperrors"
	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/ecompta_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ecompta_backend/internal/core/ports/services"
	"github.com/SscSPs/ecompta_backend/internal/core/statements"
	"github.com/SscSPs/ecompta_backend/internal/dto"
	"github.com/google/uuid"
)

type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
	registry    *statements.Registry
}

// CompanyServiceOption is a functional option for configuring the company service
type CompanyServiceOption func(*companyService)

// WithCompanyClock overrides the clock used for audit fields.
func WithCompanyClock(now func() time.Time) CompanyServiceOption {
	return func(s *companyService) {
		s.now = now
	}
}

// NewCompanyService creates a new company service.
func NewCompanyService(repo portsrepo.CompanyRepositoryFacade, registry *statements.Registry, options ...CompanyServiceOption) portssvc.CompanySvcFacade {
	svc := &companyService{
		BaseService: newBaseService("company"),
		companyRepo: repo,
		registry:    registry,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// CreateCompany opens a new company.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, actor string) (*domain.Company, error) {
	standard := domain.NormalizeStandard(req.Standard)
	if !s.registry.Has(standard) {
		err := &statements.UnknownStandardError{Standard: standard}
		s.LogError(ctx, err, "Rejected company with unknown standard", slog.String("standard", req.Standard))
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("company name is required: %w", apperrors.ErrValidation)
	}

	now := s.Now()
	company := domain.Company{
		CompanyID:    uuid.NewString(),
		Name:         name,
		CountryCode:  strings.ToUpper(req.CountryCode),
		Standard:     standard,
		CurrencyCode: strings.ToUpper(req.CurrencyCode),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor,
			LastUpdatedAt: now,
			LastUpdatedBy: actor,
		},
	}

	if err := s.companyRepo.SaveCompany(ctx, company); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("name", name))
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	s.LogInfo(ctx, "Company created",
		slog.String("company_id", company.CompanyID),
		slog.String("standard", string(standard)))
	return &company, nil
}

// GetCompany retrieves a company by its ID.
func (s *companyService) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get company %s: %w", companyID, err)
	}
	return company, nil
}
