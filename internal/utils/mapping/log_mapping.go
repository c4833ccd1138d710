package mapping

import (
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	"github.com/SscSPs/multi_currency_app/internal/models"
)

// ToModelRateLog converts a domain RateLog to a model CurrencyRatesLog
func ToModelRateLog(d domain.RateLog) models.CurrencyRatesLog {
	return models.CurrencyRatesLog{
		ID:         d.ID,
		CurrencyID: d.CurrencyID,
		Rate:       d.Rate,
		Source:     string(d.Source),
		FetchedAt:  d.FetchedAt,
		CreatedAt:  d.CreatedAt,
	}
}

// ToDomainRateLog converts a model CurrencyRatesLog to a domain RateLog
func ToDomainRateLog(m models.CurrencyRatesLog) domain.RateLog {
	return domain.RateLog{
		ID:         m.ID,
		CurrencyID: m.CurrencyID,
		Rate:       m.Rate,
		Source:     domain.RateSource(m.Source),
		FetchedAt:  m.FetchedAt,
		CreatedAt:  m.CreatedAt,
	}
}

// ToModelConversionLog converts a domain ConversionLog to a model CurrencyConversionLog
func ToModelConversionLog(d domain.ConversionLog) models.CurrencyConversionLog {
	return models.CurrencyConversionLog{
		ID:                 d.ID,
		EntityType:         d.EntityType,
		EntityID:           d.EntityID,
		Context:            d.Context,
		BaseCurrencyCode:   d.BaseCurrencyCode,
		TargetCurrencyCode: d.TargetCurrencyCode,
		BaseAmount:         d.BaseAmount,
		ConvertedAmount:    d.ConvertedAmount,
		RateUsed:           d.RateUsed,
		FeeApplied:         d.FeeApplied,
		RateSource:         string(d.RateSource),
		CurrencyID:         d.CurrencyID,
		UserID:             d.UserID,
		OccurredAt:         d.OccurredAt,
		CreatedAt:          d.CreatedAt,
	}
}

// ToDomainConversionLog converts a model CurrencyConversionLog to a domain ConversionLog
func ToDomainConversionLog(m models.CurrencyConversionLog) domain.ConversionLog {
	return domain.ConversionLog{
		ID:                 m.ID,
		EntityType:         m.EntityType,
		EntityID:           m.EntityID,
		Context:            m.Context,
		BaseCurrencyCode:   m.BaseCurrencyCode,
		TargetCurrencyCode: m.TargetCurrencyCode,
		BaseAmount:         m.BaseAmount,
		ConvertedAmount:    m.ConvertedAmount,
		RateUsed:           m.RateUsed,
		FeeApplied:         m.FeeApplied,
		RateSource:         domain.RateSource(m.RateSource),
		CurrencyID:         m.CurrencyID,
		UserID:             m.UserID,
		OccurredAt:         m.OccurredAt,
		CreatedAt:          m.CreatedAt,
	}
}

// ToDomainRateLogSlice converts model rate logs to domain rate logs
func ToDomainRateLogSlice(ms []models.CurrencyRatesLog) []domain.RateLog {
	ds := make([]domain.RateLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainRateLog(m)
	}
	return ds
}

// ToDomainConversionLogSlice converts model conversion logs to domain conversion logs
func ToDomainConversionLogSlice(ms []models.CurrencyConversionLog) []domain.ConversionLog {
	ds := make([]domain.ConversionLog, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainConversionLog(m)
	}
	return ds
}
