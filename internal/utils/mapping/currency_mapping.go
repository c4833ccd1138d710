package mapping

import (
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	"github.com/SscSPs/multi_currency_app/internal/models"
)

// ToModelCurrency converts a domain Currency to a model Currency
func ToModelCurrency(d domain.Currency) models.Currency {
	return models.Currency{
		ID:                d.ID,
		Code:              d.Code,
		Symbol:            d.Symbol,
		Name:              d.Name,
		Rate:              d.Rate,
		IsAuto:            d.IsAuto,
		Fee:               d.Fee,
		IsDefault:         d.IsDefault,
		CountryTaxonomyID: d.CountryTaxonomyID,
		IsActive:          d.IsActive,
		Timestamps:        ToModelTimestamps(d.Timestamps),
	}
}

// ToDomainCurrency converts a model Currency to a domain Currency
func ToDomainCurrency(m models.Currency) domain.Currency {
	return domain.Currency{
		ID:                m.ID,
		Code:              m.Code,
		Symbol:            m.Symbol,
		Name:              m.Name,
		Rate:              m.Rate,
		IsAuto:            m.IsAuto,
		Fee:               m.Fee,
		IsDefault:         m.IsDefault,
		CountryTaxonomyID: m.CountryTaxonomyID,
		IsActive:          m.IsActive,
		Timestamps:        ToDomainTimestamps(m.Timestamps),
	}
}

// ToDomainCurrencySlice converts a slice of model Currencies to a slice of domain Currencies
func ToDomainCurrencySlice(ms []models.Currency) []domain.Currency {
	ds := make([]domain.Currency, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCurrency(m)
	}
	return ds
}
