package dto

import (
	"time"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCurrencyRequest defines the data needed to create a new currency.
// Either code or symbol must be present; the blank one is filled from the other.
type CreateCurrencyRequest struct {
	Code              string           `json:"code" binding:"omitempty,max=10"`
	Symbol            string           `json:"symbol" binding:"omitempty,max=10"`
	Name              *string          `json:"name,omitempty" binding:"omitempty,max=255"`
	Rate              *decimal.Decimal `json:"rate,omitempty" swaggertype:"string" example:"1.5"`
	IsAuto            bool             `json:"isAuto"`
	Fee               *decimal.Decimal `json:"fee,omitempty" swaggertype:"string" example:"2.00"`
	CountryTaxonomyID *int64           `json:"countryTaxonomyId,omitempty"`
}

// UpdateCurrencyRequest carries a partial update. Nil fields are left unchanged.
type UpdateCurrencyRequest struct {
	Code              *string          `json:"code,omitempty" binding:"omitempty,min=3,max=4"`
	Symbol            *string          `json:"symbol,omitempty" binding:"omitempty,min=1,max=10"`
	Name              *string          `json:"name,omitempty" binding:"omitempty,max=255"`
	Rate              *decimal.Decimal `json:"rate,omitempty" swaggertype:"string"`
	IsAuto            *bool            `json:"isAuto,omitempty"`
	Fee               *decimal.Decimal `json:"fee,omitempty" swaggertype:"string"`
	ClearFee          bool             `json:"clearFee,omitempty"`
	CountryTaxonomyID *int64           `json:"countryTaxonomyId,omitempty"`
}

// UpdateRateRequest sets a new rate for a non-default currency.
type UpdateRateRequest struct {
	Rate      *decimal.Decimal `json:"rate" binding:"required" swaggertype:"string" example:"0.92"`
	Source    string           `json:"source" binding:"omitempty,oneof=manual api"`
	FetchedAt *time.Time       `json:"fetchedAt,omitempty"`
}

// ListCurrenciesParams are the query parameters of the currency listing.
type ListCurrenciesParams struct {
	Active  bool   `form:"active"`
	Default bool   `form:"default"`
	Auto    bool   `form:"auto"`
	Manual  bool   `form:"manual"`
	Search  string `form:"search" binding:"omitempty,max=50"`
	Limit   int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Offset  int    `form:"offset" binding:"omitempty,min=0"`
}

// ToFilter converts the query parameters into a domain filter.
func (p ListCurrenciesParams) ToFilter() domain.CurrencyFilter {
	return domain.CurrencyFilter{
		Active:  p.Active,
		Default: p.Default,
		Auto:    p.Auto,
		Manual:  p.Manual,
		Search:  p.Search,
		Limit:   p.Limit,
		Offset:  p.Offset,
	}
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	ID                int64            `json:"id"`
	Code              string           `json:"code"`
	Symbol            string           `json:"symbol"`
	Name              *string          `json:"name,omitempty"`
	Rate              decimal.Decimal  `json:"rate" swaggertype:"string"`
	IsAuto            bool             `json:"isAuto"`
	Fee               *decimal.Decimal `json:"fee" swaggertype:"string"`
	IsDefault         bool             `json:"isDefault"`
	CountryTaxonomyID *int64           `json:"countryTaxonomyId,omitempty"`
	IsActive          bool             `json:"isActive"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// ListCurrenciesResponse wraps a currency listing.
type ListCurrenciesResponse struct {
	Currencies []CurrencyResponse `json:"currencies"`
}

// CurrencyChangeResponse is returned by create and update. Synced reports
// whether the external commerce settings were pushed as a consequence.
type CurrencyChangeResponse struct {
	Currency CurrencyResponse `json:"currency"`
	Synced   bool             `json:"synced"`
}

// RateLogResponse defines the data returned for one rate history row.
type RateLogResponse struct {
	ID         int64           `json:"id"`
	CurrencyID int64           `json:"currencyId"`
	Rate       decimal.Decimal `json:"rate" swaggertype:"string"`
	Source     string          `json:"source"`
	FetchedAt  *time.Time      `json:"fetchedAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ListRateLogsResponse wraps a rate history listing.
type ListRateLogsResponse struct {
	RateLogs []RateLogResponse `json:"rateLogs"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	res := CurrencyResponse{
		ID:                curr.ID,
		Code:              curr.Code,
		Symbol:            curr.Symbol,
		Name:              curr.Name,
		Rate:              curr.Rate,
		IsAuto:            curr.IsAuto,
		IsDefault:         curr.IsDefault,
		CountryTaxonomyID: curr.CountryTaxonomyID,
		IsActive:          curr.IsActive,
		CreatedAt:         curr.CreatedAt,
		UpdatedAt:         curr.UpdatedAt,
	}
	if curr.Fee.Valid {
		fee := curr.Fee.Decimal
		res.Fee = &fee
	}
	return res
}

// ToListCurrencyResponse converts a slice of domain.Currency to a ListCurrenciesResponse
func ToListCurrencyResponse(currencies []domain.Currency) ListCurrenciesResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return ListCurrenciesResponse{Currencies: res}
}

// ToRateLogResponse converts a domain.RateLog to RateLogResponse DTO
func ToRateLogResponse(l *domain.RateLog) RateLogResponse {
	return RateLogResponse{
		ID:         l.ID,
		CurrencyID: l.CurrencyID,
		Rate:       l.Rate,
		Source:     string(l.Source),
		FetchedAt:  l.FetchedAt,
		CreatedAt:  l.CreatedAt,
	}
}

// ToListRateLogsResponse converts rate history rows to a ListRateLogsResponse
func ToListRateLogsResponse(logs []domain.RateLog) ListRateLogsResponse {
	res := make([]RateLogResponse, len(logs))
	for i := range logs {
		res[i] = ToRateLogResponse(&logs[i])
	}
	return ListRateLogsResponse{RateLogs: res}
}
