package pgsql

import "github.com/SscSPs/multi_currency_app/internal/core/domain"

// Owned tables, all under the fixed package prefix.
const (
	tableCurrencies      = domain.TablePrefix + "currencies"
	tableRatesLog        = domain.TablePrefix + "currency_rates_log"
	tableConversionLog   = domain.TablePrefix + "currency_conversion_log"
	tableSettings        = domain.TablePrefix + "settings"
	currencyColumns      = `id, code, symbol, name, rate, is_auto, fee, is_default, country_taxonomy_id, is_active, created_at, updated_at`
	rateLogColumns       = `id, currency_id, rate, source, fetched_at, created_at`
	conversionLogColumns = `id, entity_type, entity_id, context, base_currency_code, target_currency_code, base_amount,
		converted_amount, rate_used, fee_applied, rate_source, currency_id, user_id, occurred_at, created_at`
	settingColumns = `id, key, value, created_at, updated_at`
)

// currencyWriteLockKey keys the transaction-scoped advisory lock taken by
// writers that may create or move the default currency.
const currencyWriteLockKey int64 = 0x6d63635f637572 // "mcc_cur"
