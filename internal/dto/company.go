package dto

import (
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
)

// CreateCompanyRequest defines the data needed to open a company.
type CreateCompanyRequest struct {
	Name         string `json:"name" binding:"required,max=255"`
	CountryCode  string `json:"countryCode" binding:"omitempty,len=2"`
	Standard     string `json:"standard" binding:"required"`
	CurrencyCode string `json:"currencyCode" binding:"required,currency"`
}

// CompanyResponse defines the data returned for a company.
type CompanyResponse struct {
	CompanyID     string    `json:"companyID"`
	Name          string    `json:"name"`
	CountryCode   string    `json:"countryCode,omitempty"`
	Standard      string    `json:"standard"`
	CurrencyCode  string    `json:"currencyCode"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToCompanyResponse converts a domain.Company to CompanyResponse DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:     c.CompanyID,
		Name:          c.Name,
		CountryCode:   c.CountryCode,
		Standard:      string(c.Standard),
		CurrencyCode:  c.CurrencyCode,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// StandardResponse describes one registered accounting standard.
type StandardResponse struct {
	Standard string `json:"standard"`
	Label    string `json:"label"`
}
