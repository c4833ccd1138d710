package repositories

import (
	"context"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByID retrieves a specific currency by its identifier.
	FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error)

	// FindCurrencyByCode retrieves a currency by its code, case-insensitively.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// FindDefaultCurrency retrieves the currency flagged as default.
	FindDefaultCurrency(ctx context.Context) (*domain.Currency, error)

	// ListCurrencies retrieves currencies matching the filter, ordered by code.
	ListCurrencies(ctx context.Context, filter domain.CurrencyFilter) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// UpdateCurrencyIdentity overwrites code and symbol of an existing currency.
	UpdateCurrencyIdentity(ctx context.Context, currencyID int64, code, symbol string) error
}

// CurrencyTransactionSupport defines currency operations that run inside a caller-owned transaction.
type CurrencyTransactionSupport interface {
	// LockCurrencyTableInTx serializes writers that touch the default flag.
	LockCurrencyTableInTx(ctx context.Context, tx pgx.Tx) error

	// FindCurrencyByIDForUpdateInTx selects a currency and locks its row.
	FindCurrencyByIDForUpdateInTx(ctx context.Context, tx pgx.Tx, currencyID int64) (*domain.Currency, error)

	// FindDefaultCurrencyInTx retrieves the default currency inside the transaction.
	FindDefaultCurrencyInTx(ctx context.Context, tx pgx.Tx) (*domain.Currency, error)

	// CodeExistsInTx reports whether another currency already uses the code.
	CodeExistsInTx(ctx context.Context, tx pgx.Tx, code string, excludeID int64) (bool, error)

	// InsertCurrencyInTx persists a new currency and returns it with its generated fields.
	InsertCurrencyInTx(ctx context.Context, tx pgx.Tx, currency domain.Currency) (*domain.Currency, error)

	// UpdateCurrencyInTx overwrites the mutable columns of a currency.
	UpdateCurrencyInTx(ctx context.Context, tx pgx.Tx, currency domain.Currency) (*domain.Currency, error)

	// UpdateRateInTx sets the stored rate of a currency.
	UpdateRateInTx(ctx context.Context, tx pgx.Tx, currencyID int64, rate decimal.Decimal) error

	// DeleteCurrencyInTx removes a currency. Its rate history goes with it.
	DeleteCurrencyInTx(ctx context.Context, tx pgx.Tx, currencyID int64) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
// This is a facade for clients that need access to all operations
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
	CurrencyTransactionSupport
}

// CurrencyRepositoryWithTx extends CurrencyRepositoryFacade with transaction capabilities
type CurrencyRepositoryWithTx interface {
	CurrencyRepositoryFacade
	TransactionManager
}
