package services

import (
	"context"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
	"github.com/SscSPs/ecompta_backend/internal/dto"
)

// CompanyReaderSvc defines read operations for companies
type CompanyReaderSvc interface {
	// GetCompany retrieves a company by its ID.
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
}

// CompanyWriterSvc defines write operations for companies
type CompanyWriterSvc interface {
	// CreateCompany opens a new company. The standard must be registered.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, actor string) (*domain.Company, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
}
