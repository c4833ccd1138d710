package services

import (
	"context"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
)

// SettingsSvc resolves configuration from the settings table or the static
// configuration, depending on the settings_source switch read on every call.
type SettingsSvc interface {
	// Get returns the resolved value for key, or def when nothing is configured.
	Get(ctx context.Context, key string, def any) any

	// Set stores value under key. It reports false in file mode or when the write fails.
	Set(ctx context.Context, key string, value any) bool

	// GetAll returns every resolved setting with secrets masked.
	GetAll(ctx context.Context) map[string]any

	// IsDatabaseBacked reports whether the settings table is the active source.
	IsDatabaseBacked() bool

	// ConversionPolicy returns the resolved conversion behaviour.
	ConversionPolicy(ctx context.Context) domain.ConversionPolicy
}
