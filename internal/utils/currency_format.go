package utils

import (
	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount for human display with two fraction digits.
// Display formatting is the only place precision is dropped; stored balances
// and rate snapshots always keep the full decimal.
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatRate renders an exchange rate for display with four fraction digits.
func FormatRate(rate decimal.Decimal) string {
	return rate.StringFixed(4)
}
