package models

// Account is a row of the accounts table, keyed by (company_id, code).
type Account struct {
	CompanyID   string `db:"company_id"`
	Code        string `db:"code"`
	Name        string `db:"name"`
	Nature      string `db:"nature"` // DEBIT or CREDIT
	Description string `db:"description"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
