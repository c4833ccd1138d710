package domain

// Keys of the external commerce settings table that mirror the default currency.
const (
	CommerceCurrencyCodeKey   = "currency_code"
	CommerceCurrencySymbolKey = "currency_symbol"
)

// CommerceCurrency is the default currency as recorded by the external commerce system.
type CommerceCurrency struct {
	Code   string
	Symbol string
}

// Fallback identity used when seeding without external settings.
const (
	FallbackCurrencyCode   = "USD"
	FallbackCurrencySymbol = "$"
)
