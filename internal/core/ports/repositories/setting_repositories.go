package repositories

import (
	"context"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
)

// SettingRepository stores the key/value settings table.
type SettingRepository interface {
	// FindSetting returns the row for key or apperrors.ErrNotFound.
	FindSetting(ctx context.Context, key string) (*domain.Setting, error)

	// ListSettings returns every stored row ordered by key.
	ListSettings(ctx context.Context) ([]domain.Setting, error)

	// UpsertSetting creates or overwrites the row for key.
	UpsertSetting(ctx context.Context, key string, value *string) error
}

// CommerceSettingsRepository reads and writes the external commerce settings table.
// The table is owned by another application and may not exist.
type CommerceSettingsRepository interface {
	// TableExists reports whether the external table is present.
	TableExists(ctx context.Context) (bool, error)

	// GetCurrencySettings returns the stored code and symbol. Missing keys yield empty strings.
	GetCurrencySettings(ctx context.Context) (domain.CommerceCurrency, error)

	// UpsertSetting creates or overwrites one key of the external table.
	UpsertSetting(ctx context.Context, key, value string) error
}
