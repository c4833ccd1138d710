package services

import (
	"context"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	"github.com/SscSPs/multi_currency_app/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByID retrieves a specific currency.
	GetCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// GetDefaultCurrency retrieves the default currency.
	GetDefaultCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves currencies matching the filter.
	ListCurrencies(ctx context.Context, filter domain.CurrencyFilter) ([]domain.Currency, error)

	// ListRateLogs retrieves the rate history of a currency, newest first.
	ListRateLogs(ctx context.Context, currencyID int64, limit, offset int) ([]domain.RateLog, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateCurrency persists a new currency. The first currency becomes the default.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.CurrencyChange, error)

	// UpdateCurrency applies a partial update.
	UpdateCurrency(ctx context.Context, currencyID int64, req dto.UpdateCurrencyRequest) (*domain.CurrencyChange, error)

	// UpdateRate records a new rate and its history row atomically.
	UpdateRate(ctx context.Context, currencyID int64, req dto.UpdateRateRequest) (*domain.Currency, error)

	// ToggleActive flips the active flag. The default currency cannot be deactivated.
	ToggleActive(ctx context.Context, currencyID int64) (*domain.Currency, error)

	// DeleteCurrency removes a non-default currency and its logs.
	DeleteCurrency(ctx context.Context, currencyID int64) error
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
