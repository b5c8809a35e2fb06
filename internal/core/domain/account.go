package domain

import "strings"

// AccountClass is the leading digit of an account code (OHADA/PCG numbering).
type AccountClass int

const (
	ClassUnknown      AccountClass = 0
	ClassEquity       AccountClass = 1 // Equity and long-term liabilities
	ClassFixedAssets  AccountClass = 2
	ClassInventory    AccountClass = 3
	ClassThirdParties AccountClass = 4
	ClassFinancial    AccountClass = 5
	ClassExpenses     AccountClass = 6
	ClassRevenue      AccountClass = 7
	ClassOtherIncome  AccountClass = 8
	ClassAnalytical   AccountClass = 9
)

// ClassOf derives the class from an account code. Codes that do not start with a digit
// yield ClassUnknown.
func ClassOf(code string) AccountClass {
	code = strings.TrimSpace(code)
	if code == "" {
		return ClassUnknown
	}
	c := code[0]
	if c < '0' || c > '9' {
		return ClassUnknown
	}
	return AccountClass(c - '0')
}

// DefaultNature returns the side on which an account of this code normally carries its balance.
func DefaultNature(code string) Direction {
	switch ClassOf(code) {
	case ClassEquity, ClassRevenue:
		return Credit
	case ClassThirdParties:
		// 40 suppliers, 42 personnel, 43 social bodies, 44 state: liabilities.
		// 41 customers and the rest of class 4 are receivable-side accounts.
		if len(code) >= 2 {
			switch code[:2] {
			case "40", "42", "43", "44":
				return Credit
			}
		}
		return Debit
	default:
		return Debit
	}
}

// Account represents an entry of a company's chart of accounts.
type Account struct {
	CompanyID   string    `json:"companyID"`   // FK -> companies.company_id
	Code        string    `json:"code"`        // Digits only, class is the first one
	Name        string    `json:"name"`        // Label in the chart
	Nature      Direction `json:"nature"`      // Side of the normal balance
	Description string    `json:"description"` // Optional
	IsActive    bool      `json:"isActive"`
	AuditFields
}

// Class is always derived from Code, never stored.
func (a Account) Class() AccountClass {
	return ClassOf(a.Code)
}

// ThirdPartyKind selects the collective account a third-party sub-account is opened under.
type ThirdPartyKind string

const (
	ThirdPartyCustomer ThirdPartyKind = "CUSTOMER"
	ThirdPartySupplier ThirdPartyKind = "SUPPLIER"
)

// CollectivePrefix returns the collective account prefix (411 customers, 401 suppliers).
func (k ThirdPartyKind) CollectivePrefix() (string, bool) {
	switch k {
	case ThirdPartyCustomer:
		return "411", true
	case ThirdPartySupplier:
		return "401", true
	default:
		return "", false
	}
}
