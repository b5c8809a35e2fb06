package domain

import "strings"

// AccountingStandard identifies a chart-of-accounts and reporting framework (SYSCOHADA, PCG, IFRS...).
type AccountingStandard string

const (
	StandardSYSCOHADA AccountingStandard = "SYSCOHADA"
	StandardPCG       AccountingStandard = "PCG"
	StandardIFRS      AccountingStandard = "IFRS"
)

// NormalizeStandard upper-cases and trims a user supplied identifier.
func NormalizeStandard(s string) AccountingStandard {
	return AccountingStandard(strings.ToUpper(strings.TrimSpace(s)))
}

// Company is the tenant owning a chart of accounts and journal entries.
type Company struct {
	CompanyID    string             `json:"companyID"`    // Primary Key (UUID)
	Name         string             `json:"name"`         // Legal name
	CountryCode  string             `json:"countryCode"`  // ISO 3166 alpha-2, optional
	Standard     AccountingStandard `json:"standard"`     // Default standard for entries and statements
	CurrencyCode string             `json:"currencyCode"` // Functional currency
	AuditFields
}
