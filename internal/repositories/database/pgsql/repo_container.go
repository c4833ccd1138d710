package pgsql

import (
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires every pgx repository against one pool.
// commerceTable names the external commerce settings table.
func NewRepositoryProvider(dbPool *pgxpool.Pool, commerceTable string) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:      newPgxCurrencyRepository(dbPool),
		RateLogRepo:       newPgxRateLogRepository(dbPool),
		ConversionLogRepo: newPgxConversionLogRepository(dbPool),
		SettingRepo:       newPgxSettingRepository(dbPool),
		CommerceRepo:      newPgxCommerceSettingsRepository(dbPool, commerceTable),
	}
}
