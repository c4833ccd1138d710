package utils

import (
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FormatWithPrecision rounds half away from zero and always renders exactly
// precision decimals.
// Example: 17 with precision 2 returns "17.00"
// Example: 7.71234 with precision 0 returns "8"
func FormatWithPrecision(amount decimal.Decimal, precision int32) string {
	return amount.StringFixed(precision)
}

// FormatWithSymbol prefixes a formatted amount with the currency symbol.
// Example: 17 with "$" and precision 2 returns "$17.00"
func FormatWithSymbol(amount decimal.Decimal, currency domain.Currency, precision int32) string {
	return currency.Symbol + FormatWithPrecision(amount, precision)
}
