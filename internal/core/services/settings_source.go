package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	"github.com/spf13/viper"
)

var errReadOnlySettings = errors.New("settings source is read-only")

// SettingsSource is one place settings can be resolved from.
type SettingsSource interface {
	// Name identifies the source, matching the settings_source values.
	Name() string

	// Lookup resolves key. A non-nil error with found=true means the value
	// came from a fallback after the primary store failed.
	Lookup(ctx context.Context, key string) (value any, found bool, err error)

	// All returns every setting the source exposes.
	All(ctx context.Context) (map[string]any, error)

	// Store persists value under key.
	Store(ctx context.Context, key string, value any) error
}

// fileSettingsSource serves the static configuration. It never accepts writes.
type fileSettingsSource struct {
	static *viper.Viper
}

func newFileSettingsSource(static *viper.Viper) *fileSettingsSource {
	return &fileSettingsSource{static: static}
}

func (s *fileSettingsSource) Name() string { return domain.SettingsSourceFile }

func (s *fileSettingsSource) Lookup(_ context.Context, key string) (any, bool, error) {
	if !s.static.IsSet(key) {
		return nil, false, nil
	}
	if key == domain.SettingKeyConversion {
		return s.conversion(), true, nil
	}
	return s.static.Get(key), true, nil
}

// All exposes only the public part of the static configuration.
func (s *fileSettingsSource) All(_ context.Context) (map[string]any, error) {
	return map[string]any{
		domain.SettingKeyDefaultCurrency: s.static.GetString(domain.SettingKeyDefaultCurrency),
		domain.SettingKeyConversion:      s.conversion(),
	}, nil
}

func (s *fileSettingsSource) Store(context.Context, string, any) error {
	return errReadOnlySettings
}

// conversion reads the conversion block key by key so that partially
// configured files still pick up defaults.
func (s *fileSettingsSource) conversion() map[string]any {
	return map[string]any{
		"apply_fees":      s.static.GetBool(domain.SettingKeyApplyFees),
		"log_conversions": s.static.GetBool(domain.SettingKeyLogConversions),
		"round_precision": s.static.GetInt(domain.SettingKeyRoundPrecision),
	}
}

// databaseSettingsSource serves the settings table and falls through to the
// static configuration for keys that are absent or null.
type databaseSettingsSource struct {
	repo     portsrepo.SettingRepository
	fallback *fileSettingsSource
}

func newDatabaseSettingsSource(repo portsrepo.SettingRepository, fallback *fileSettingsSource) *databaseSettingsSource {
	return &databaseSettingsSource{repo: repo, fallback: fallback}
}

func (s *databaseSettingsSource) Name() string { return domain.SettingsSourceDatabase }

func (s *databaseSettingsSource) Lookup(ctx context.Context, key string) (any, bool, error) {
	value, found, err := s.lookupStored(ctx, key)
	if found {
		return value, true, nil
	}
	fallbackValue, fallbackFound, _ := s.fallback.Lookup(ctx, key)
	return fallbackValue, fallbackFound, err
}

// lookupStored reads only the settings table.
func (s *databaseSettingsSource) lookupStored(ctx context.Context, key string) (any, bool, error) {
	setting, err := s.repo.FindSetting(ctx, key)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	if setting.Value == nil {
		return nil, false, nil
	}
	return domain.DecodeSettingValue(*setting.Value).Value(), true, nil
}

func (s *databaseSettingsSource) All(ctx context.Context) (map[string]any, error) {
	settings, err := s.repo.ListSettings(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]any, len(settings))
	for _, setting := range settings {
		if setting.Value == nil {
			out[setting.Key] = nil
			continue
		}
		out[setting.Key] = domain.DecodeSettingValue(*setting.Value).Value()
	}
	return out, nil
}

func (s *databaseSettingsSource) Store(ctx context.Context, key string, value any) error {
	encoded, err := domain.EncodeSettingValue(value)
	if err != nil {
		return apperrors.NewValidationError(err.Error())
	}
	if err := s.repo.UpsertSetting(ctx, key, encoded); err != nil {
		return apperrors.NewPersistenceError(fmt.Sprintf("failed to store setting %s", key), err)
	}
	return nil
}
