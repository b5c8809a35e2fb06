package dto

import (
	"time"

	"github.com/SscSPs/ecompta_backend/internal/core/domain"
)

// CreateAccountRequest defines the data needed to add an account to a company's chart.
type CreateAccountRequest struct {
	Code        string           `json:"code" binding:"required,accountcode"`
	Name        string           `json:"name" binding:"required,max=255"`
	Nature      domain.Direction `json:"nature" binding:"omitempty,oneof=DEBIT CREDIT"` // Optional, derived from the class when empty
	Description string           `json:"description"`                                   // Optional
}

// CreateThirdPartyAccountRequest asks for the next customer or supplier sub-account.
type CreateThirdPartyAccountRequest struct {
	Kind domain.ThirdPartyKind `json:"kind" binding:"required,oneof=CUSTOMER SUPPLIER"`
	Name string                `json:"name" binding:"required,max=255"`
}

// ListAccountsParams holds the query parameters for listing a chart.
type ListAccountsParams struct {
	Class *int `form:"class" binding:"omitempty,min=1,max=9"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	Code          string           `json:"code"`
	Name          string           `json:"name"`
	Class         int              `json:"class"`
	Nature        domain.Direction `json:"nature"`
	Description   string           `json:"description"`
	IsActive      bool             `json:"isActive"`
	CreatedAt     time.Time        `json:"createdAt"`
	CreatedBy     string           `json:"createdBy"`
	LastUpdatedAt time.Time        `json:"lastUpdatedAt"`
	LastUpdatedBy string           `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		Code:          acc.Code,
		Name:          acc.Name,
		Class:         int(acc.Class()),
		Nature:        acc.Nature,
		Description:   acc.Description,
		IsActive:      acc.IsActive,
		CreatedAt:     acc.CreatedAt,
		CreatedBy:     acc.CreatedBy,
		LastUpdatedAt: acc.LastUpdatedAt,
		LastUpdatedBy: acc.LastUpdatedBy,
	}
}

// ToAccountResponses converts a slice of domain.Account to []AccountResponse.
func ToAccountResponses(accounts []domain.Account) []AccountResponse {
	responses := make([]AccountResponse, len(accounts))
	for i := range accounts {
		responses[i] = ToAccountResponse(&accounts[i])
	}
	return responses
}

// ListAccountsResponse wraps a company's chart.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}
