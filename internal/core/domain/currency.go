package domain

import (
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

const (
	MinCodeLength   = 3
	MaxCodeLength   = 4
	MaxSymbolLength = 10
)

// RateSource records where a currency rate came from.
type RateSource string

const (
	RateSourceManual RateSource = "manual"
	RateSourceAPI    RateSource = "api"
)

// IsValid reports whether s is one of the known rate sources.
func (s RateSource) IsValid() bool {
	return s == RateSourceManual || s == RateSourceAPI
}

// RateSourceFor maps the is_auto flag onto a rate source.
func RateSourceFor(isAuto bool) RateSource {
	if isAuto {
		return RateSourceAPI
	}
	return RateSourceManual
}

// Currency represents a supported currency in the domain.
// Rate means: 1 unit of this currency = Rate units of the default currency.
type Currency struct {
	ID                int64               `json:"id"`
	Code              string              `json:"code"`
	Symbol            string              `json:"symbol"`
	Name              *string             `json:"name,omitempty"`
	Rate              decimal.Decimal     `json:"rate"`
	IsAuto            bool                `json:"isAuto"`
	Fee               decimal.NullDecimal `json:"fee"`
	IsDefault         bool                `json:"isDefault"`
	CountryTaxonomyID *int64              `json:"countryTaxonomyId,omitempty"`
	IsActive          bool                `json:"isActive"`
	Timestamps
}

// RateSource returns the source that governs this currency's rate.
func (c Currency) RateSource() RateSource {
	return RateSourceFor(c.IsAuto)
}

// CurrencyFilter narrows a currency listing. The four flags are independent
// predicates and are combined with AND; Auto and Manual together match nothing.
type CurrencyFilter struct {
	Active  bool
	Default bool
	Auto    bool
	Manual  bool
	Search  string
	Limit   int
	Offset  int
}

// CurrencyChange is returned by store mutations so that callers can decide
// whether the external commerce settings need a push.
type CurrencyChange struct {
	Currency               *Currency
	DefaultIdentityChanged bool
}

// NormalizeCode trims and upper-cases a currency code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidateCode checks the length rule for a caller-supplied code.
func ValidateCode(code string) error {
	n := utf8.RuneCountInString(code)
	if n < MinCodeLength || n > MaxCodeLength {
		return apperrors.NewValidationError("currency code must be between 3 and 4 characters")
	}
	return nil
}

// ValidateSymbol checks the symbol is present and fits its column.
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return apperrors.NewValidationError("currency symbol is required")
	}
	if utf8.RuneCountInString(symbol) > MaxSymbolLength {
		return apperrors.NewValidationError("currency symbol must be at most 10 characters")
	}
	return nil
}

// ResolveCodeAndSymbol applies the create-time fallback: a blank code takes the
// symbol, a blank symbol takes the code. The returned code is upper-cased.
//
// A code supplied by the caller must be 3-4 characters. A code borrowed from the
// symbol only has to fit the column (1-4 characters), so "$" stays "$".
func ResolveCodeAndSymbol(code, symbol string) (string, string, error) {
	code = strings.TrimSpace(code)
	symbol = strings.TrimSpace(symbol)

	if code == "" && symbol == "" {
		return "", "", apperrors.NewValidationError("either currency code or currency symbol is required")
	}

	derived := false
	if code == "" {
		code = symbol
		derived = true
	} else if symbol == "" {
		symbol = code
	}

	code = strings.ToUpper(code)
	if derived {
		if utf8.RuneCountInString(code) > MaxCodeLength {
			return "", "", apperrors.NewValidationError("currency code derived from symbol must be at most 4 characters")
		}
	} else if err := ValidateCode(code); err != nil {
		return "", "", err
	}

	if err := ValidateSymbol(symbol); err != nil {
		return "", "", err
	}
	return code, symbol, nil
}
