package config

import (
	"errors"
	"io/fs"
	"log"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	"github.com/spf13/viper"
)

// NewCurrencySettings builds the static multi-currency configuration. It is the
// "file" settings source and the fallback for every database lookup.
//
// Values come from defaults, then the optional YAML file at path, then
// environment overrides (A2_CURRENCY, ATU_CURRENCY_*).
func NewCurrencySettings(path string) *viper.Viper {
	v := viper.New()
	SetCurrencyDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Printf("Warning: could not read currency settings file %s: %v\n", path, err)
			}
		}
	}

	_ = v.BindEnv(domain.SettingKeyDefaultCurrency, "A2_CURRENCY")
	_ = v.BindEnv(domain.SettingKeyAPIKey, "ATU_CURRENCY_API_KEY")
	_ = v.BindEnv(domain.SettingKeyAPIUpdateFrequency, "ATU_CURRENCY_UPDATE_FREQUENCY")
	_ = v.BindEnv(domain.SettingKeySettingsSource, "ATU_CURRENCY_SETTINGS_SOURCE")

	return v
}

// SetCurrencyDefaults writes the shipped multi-currency defaults into v.
func SetCurrencyDefaults(v *viper.Viper) {
	policy := domain.DefaultConversionPolicy()
	v.SetDefault(domain.SettingKeyDefaultCurrency, domain.FallbackCurrencyCode)
	v.SetDefault(domain.SettingKeyAPIKey, "")
	v.SetDefault(domain.SettingKeyAPIUpdateFrequency, "daily")
	v.SetDefault(domain.SettingKeyApplyFees, policy.ApplyFees)
	v.SetDefault(domain.SettingKeyLogConversions, policy.LogConversions)
	v.SetDefault(domain.SettingKeyRoundPrecision, policy.RoundPrecision)
	v.SetDefault(domain.SettingKeySettingsSource, domain.SettingsSourceFile)
	v.SetDefault(domain.SettingKeyTablePrefix, domain.TablePrefix)
}
