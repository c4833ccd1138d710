package services

import (
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/SscSPs/multi_currency_app/internal/platform/lock"
	"github.com/spf13/viper"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// static is the file-backed currency configuration; syncLock guards the sync service.
func NewServiceContainer(static *viper.Viper, repos portsrepo.RepositoryProvider, syncLock lock.SyncLock) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Settings first since the conversion engine reads its policy through it
	container.Settings = NewSettingsService(static, repos.SettingRepo)

	container.Currency = NewCurrencyService(repos.CurrencyRepo, repos.RateLogRepo)
	container.Conversion = NewConversionService(repos.CurrencyRepo, repos.ConversionLogRepo, container.Settings)
	container.Sync = NewCurrencySyncService(repos.CurrencyRepo, repos.CommerceRepo, syncLock)
	container.StaticData = NewStaticDataService(container.Currency, repos.CommerceRepo)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.StaticDataService = (*staticDataService)(nil)
	_ portssvc.SettingsSvc       = (*settingsService)(nil)
)
