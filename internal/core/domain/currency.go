package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultMinorUnits is the precision used for currencies without a dedicated entry
// (XOF, XAF, EUR, USD... are all booked with 2 decimals).
const DefaultMinorUnits int32 = 2

var minorUnits = map[string]int32{
	"JPY": 0,
	"KRW": 0,
	"BHD": 3,
	"KWD": 3,
	"TND": 3,
}

// MinorUnits returns the number of decimals amounts in the currency are rounded to.
func MinorUnits(currencyCode string) int32 {
	if p, ok := minorUnits[strings.ToUpper(currencyCode)]; ok {
		return p
	}
	return DefaultMinorUnits
}

// RoundToCurrency rounds half-up to the currency minor unit.
// Ledger amounts are non-negative so decimal's half-away-from-zero rounding is half-up here.
func RoundToCurrency(amount decimal.Decimal, currencyCode string) decimal.Decimal {
	return amount.Round(MinorUnits(currencyCode))
}

// FormatWithCurrencyPrecision formats an amount with the precision of the given currency.
// Example: 12.3456 XOF returns "12.35", 12.3456 JPY returns "12".
func FormatWithCurrencyPrecision(amount decimal.Decimal, currencyCode string) string {
	return amount.StringFixed(MinorUnits(currencyCode))
}
