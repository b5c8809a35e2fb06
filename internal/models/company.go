package models

// Company is the row of the companies table.
type Company struct {
	CompanyID    string `db:"company_id"`
	Name         string `db:"name"`
	CountryCode  string `db:"country_code"` // Empty when unknown
	Standard     string `db:"standard"`
	CurrencyCode string `db:"currency_code"`
	AuditFields
}
