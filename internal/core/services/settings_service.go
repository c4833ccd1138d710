package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// settingsService picks a SettingsSource on every call by reading
// settings_source from the static configuration.
type settingsService struct {
	BaseService
	static   *viper.Viper
	file     *fileSettingsSource
	database *databaseSettingsSource
}

// NewSettingsService creates the settings resolver. static is the file
// configuration and is consulted on every call.
func NewSettingsService(static *viper.Viper, repo portsrepo.SettingRepository) portssvc.SettingsSvc {
	file := newFileSettingsSource(static)
	return &settingsService{
		static:   static,
		file:     file,
		database: newDatabaseSettingsSource(repo, file),
	}
}

var _ portssvc.SettingsSvc = (*settingsService)(nil)

func (s *settingsService) source() SettingsSource {
	if s.IsDatabaseBacked() {
		return s.database
	}
	return s.file
}

// IsDatabaseBacked reports whether settings_source currently selects the database.
func (s *settingsService) IsDatabaseBacked() bool {
	return strings.EqualFold(strings.TrimSpace(s.static.GetString(domain.SettingKeySettingsSource)), domain.SettingsSourceDatabase)
}

// Get resolves key, returning def when no source knows it.
func (s *settingsService) Get(ctx context.Context, key string, def any) any {
	src := s.source()
	value, found, err := src.Lookup(ctx, key)
	if err != nil {
		s.LogWarn(ctx, "Settings lookup failed, using static configuration",
			slog.String("source", src.Name()),
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
	if !found || value == nil {
		return def
	}
	return value
}

// Set stores value under key. Failures are reported, never returned.
func (s *settingsService) Set(ctx context.Context, key string, value any) bool {
	if err := validateSettingValue(key, value); err != nil {
		s.LogWarn(ctx, "Rejected invalid setting value", slog.String("key", key), slog.String("error", err.Error()))
		return false
	}

	src := s.source()
	if err := src.Store(ctx, key, value); err != nil {
		if errors.Is(err, errReadOnlySettings) {
			s.LogDebug(ctx, "Settings are file backed, ignoring write", slog.String("key", key))
			return false
		}
		s.LogError(ctx, err, "Failed to store setting", slog.String("source", src.Name()), slog.String("key", key))
		return false
	}
	s.LogInfo(ctx, "Setting stored", slog.String("key", key))
	return true
}

// GetAll returns every setting of the active source with secrets masked.
func (s *settingsService) GetAll(ctx context.Context) map[string]any {
	src := s.source()
	all, err := src.All(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list settings, using static configuration", slog.String("source", src.Name()))
		all, _ = s.file.All(ctx)
	}
	return domain.RedactSettings(all)
}

// ConversionPolicy resolves the conversion block field by field. Anything
// missing or malformed keeps the static value.
func (s *settingsService) ConversionPolicy(ctx context.Context) domain.ConversionPolicy {
	policy := s.staticPolicy(ctx)

	if block, ok := s.Get(ctx, domain.SettingKeyConversion, nil).(map[string]any); ok {
		policy = overlayPolicy(policy, block)
	}

	// Individually stored keys win over the block.
	if s.IsDatabaseBacked() {
		fields := map[string]any{}
		for field, key := range policyFieldKeys {
			value, found, err := s.database.lookupStored(ctx, key)
			if err != nil {
				s.LogWarn(ctx, "Failed to read conversion setting", slog.String("key", key), slog.String("error", err.Error()))
				continue
			}
			if found {
				fields[field] = value
			}
		}
		policy = overlayPolicy(policy, fields)
	}

	if err := policy.Validate(); err != nil {
		s.LogWarn(ctx, "Invalid conversion round precision, using default",
			slog.Int("round_precision", policy.RoundPrecision),
			slog.Int("default", domain.DefaultRoundPrecision))
		policy.RoundPrecision = domain.DefaultRoundPrecision
	}
	return policy
}

func (s *settingsService) staticPolicy(ctx context.Context) domain.ConversionPolicy {
	policy := domain.DefaultConversionPolicy()
	fields, _, _ := s.file.Lookup(ctx, domain.SettingKeyConversion)
	if block, ok := fields.(map[string]any); ok {
		policy = overlayPolicy(policy, block)
	}
	if policy.Validate() != nil {
		policy.RoundPrecision = domain.DefaultRoundPrecision
	}
	return policy
}

var policyFieldKeys = map[string]string{
	"apply_fees":      domain.SettingKeyApplyFees,
	"log_conversions": domain.SettingKeyLogConversions,
	"round_precision": domain.SettingKeyRoundPrecision,
}

// overlayPolicy copies every well-formed field of block onto policy.
func overlayPolicy(policy domain.ConversionPolicy, block map[string]any) domain.ConversionPolicy {
	if v, ok := block["apply_fees"]; ok {
		if b, err := cast.ToBoolE(v); err == nil {
			policy.ApplyFees = b
		}
	}
	if v, ok := block["log_conversions"]; ok {
		if b, err := cast.ToBoolE(v); err == nil {
			policy.LogConversions = b
		}
	}
	if v, ok := block["round_precision"]; ok {
		if n, err := cast.ToIntE(v); err == nil {
			policy.RoundPrecision = n
		}
	}
	return policy
}

// validateSettingValue rejects conversion values that could never be applied.
func validateSettingValue(key string, value any) error {
	switch key {
	case domain.SettingKeyConversion:
		block, err := policyBlock(value)
		if err != nil {
			return err
		}
		for field, v := range block {
			if err := validatePolicyField(field, v); err != nil {
				return err
			}
		}
	case domain.SettingKeyApplyFees:
		return validatePolicyField("apply_fees", value)
	case domain.SettingKeyLogConversions:
		return validatePolicyField("log_conversions", value)
	case domain.SettingKeyRoundPrecision:
		return validatePolicyField("round_precision", value)
	}
	return nil
}

func policyBlock(value any) (map[string]any, error) {
	switch v := value.(type) {
	case domain.ConversionPolicy:
		return v.AsMap(), nil
	case *domain.ConversionPolicy:
		if v == nil {
			return nil, fmt.Errorf("conversion settings must not be empty")
		}
		return v.AsMap(), nil
	}
	block, err := cast.ToStringMapE(value)
	if err != nil {
		return nil, fmt.Errorf("conversion settings must be a mapping: %w", err)
	}
	return block, nil
}

func validatePolicyField(field string, value any) error {
	switch field {
	case "apply_fees", "log_conversions":
		if _, err := cast.ToBoolE(value); err != nil {
			return fmt.Errorf("%s must be a boolean: %w", field, err)
		}
	case "round_precision":
		n, err := cast.ToIntE(value)
		if err != nil {
			return fmt.Errorf("round_precision must be an integer: %w", err)
		}
		if n < 0 || n > domain.MaxRoundPrecision {
			return fmt.Errorf("round_precision must be between 0 and %d", domain.MaxRoundPrecision)
		}
	}
	return nil
}
