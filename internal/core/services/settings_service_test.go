package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/SscSPs/multi_currency_app/internal/core/services"
	"github.com/SscSPs/multi_currency_app/internal/platform/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite ---
type SettingsServiceTestSuite struct {
	suite.Suite
	static  *viper.Viper
	repo    *fakeSettingRepo
	service portssvc.SettingsSvc
	ctx     context.Context
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.static = viper.New()
	config.SetCurrencyDefaults(suite.static)
	suite.repo = newFakeSettingRepo()
	suite.service = services.NewSettingsService(suite.static, suite.repo)
	suite.ctx = context.Background()
}

func (suite *SettingsServiceTestSuite) useDatabase() {
	suite.static.Set(domain.SettingKeySettingsSource, domain.SettingsSourceDatabase)
}

// --- File mode ---

func (suite *SettingsServiceTestSuite) TestFileMode_GetReadsStaticConfig() {
	suite.False(suite.service.IsDatabaseBacked())
	suite.Equal("USD", suite.service.Get(suite.ctx, domain.SettingKeyDefaultCurrency, "EUR"))
	suite.Equal("fallback", suite.service.Get(suite.ctx, "missing.key", "fallback"))

	conversion, ok := suite.service.Get(suite.ctx, domain.SettingKeyConversion, nil).(map[string]any)
	suite.Require().True(ok)
	suite.Equal(true, conversion["apply_fees"])
	suite.Equal(2, conversion["round_precision"])
}

func (suite *SettingsServiceTestSuite) TestFileMode_SetAlwaysFails() {
	ok := suite.service.Set(suite.ctx, domain.SettingKeyConversion, map[string]any{
		"apply_fees":      false,
		"log_conversions": false,
		"round_precision": 3,
	})

	suite.False(ok)
	suite.Zero(suite.repo.writes)
	suite.Equal(domain.DefaultConversionPolicy(), suite.service.ConversionPolicy(suite.ctx))
}

func (suite *SettingsServiceTestSuite) TestFileMode_GetAllHidesAPIBlock() {
	suite.static.Set(domain.SettingKeyAPIKey, "secret-key")

	all := suite.service.GetAll(suite.ctx)

	suite.Len(all, 2)
	suite.Contains(all, domain.SettingKeyDefaultCurrency)
	suite.Contains(all, domain.SettingKeyConversion)
	suite.NotContains(all, "api")
}

func (suite *SettingsServiceTestSuite) TestFileMode_InvalidPrecisionFallsBackToDefault() {
	suite.static.Set(domain.SettingKeyRoundPrecision, 12)

	policy := suite.service.ConversionPolicy(suite.ctx)

	suite.Equal(domain.DefaultRoundPrecision, policy.RoundPrecision)
}

// --- Database mode ---

func (suite *SettingsServiceTestSuite) TestToggleTakesEffectImmediately() {
	suite.False(suite.service.Set(suite.ctx, domain.SettingKeyDefaultCurrency, "EUR"))

	suite.useDatabase()

	suite.True(suite.service.IsDatabaseBacked())
	suite.True(suite.service.Set(suite.ctx, domain.SettingKeyDefaultCurrency, "EUR"))
	suite.Equal("EUR", suite.service.Get(suite.ctx, domain.SettingKeyDefaultCurrency, nil))

	suite.static.Set(domain.SettingKeySettingsSource, domain.SettingsSourceFile)
	suite.Equal("USD", suite.service.Get(suite.ctx, domain.SettingKeyDefaultCurrency, nil))
}

func (suite *SettingsServiceTestSuite) TestDatabaseMode_StructuredValuesRoundTrip() {
	suite.useDatabase()

	ok := suite.service.Set(suite.ctx, domain.SettingKeyConversion, map[string]any{
		"apply_fees":      false,
		"log_conversions": true,
		"round_precision": 4,
	})

	suite.Require().True(ok)
	raw, stored := suite.repo.raw(domain.SettingKeyConversion)
	suite.Require().True(stored)
	suite.JSONEq(`{"apply_fees":false,"log_conversions":true,"round_precision":4}`, raw)

	value, isMap := suite.service.Get(suite.ctx, domain.SettingKeyConversion, nil).(map[string]any)
	suite.Require().True(isMap)
	suite.Equal(false, value["apply_fees"])
	suite.Equal(float64(4), value["round_precision"])

	suite.Equal(domain.ConversionPolicy{ApplyFees: false, LogConversions: true, RoundPrecision: 4}, suite.service.ConversionPolicy(suite.ctx))
}

func (suite *SettingsServiceTestSuite) TestDatabaseMode_ScalarsStoredAsText() {
	suite.useDatabase()

	suite.Require().True(suite.service.Set(suite.ctx, domain.SettingKeyAPIUpdateFrequency, "weekly"))
	suite.Require().True(suite.service.Set(suite.ctx, "feature.limit", 5))

	raw, _ := suite.repo.raw(domain.SettingKeyAPIUpdateFrequency)
	suite.Equal("weekly", raw)
	raw, _ = suite.repo.raw("feature.limit")
	suite.Equal("5", raw)

	suite.Equal("weekly", suite.service.Get(suite.ctx, domain.SettingKeyAPIUpdateFrequency, nil))
	suite.Equal(float64(5), suite.service.Get(suite.ctx, "feature.limit", nil))
}

func (suite *SettingsServiceTestSuite) TestDatabaseMode_AbsentKeyFallsThroughToFile() {
	suite.useDatabase()

	suite.Equal("USD", suite.service.Get(suite.ctx, domain.SettingKeyDefaultCurrency, nil))
	suite.Equal("def", suite.service.Get(suite.ctx, "nowhere", "def"))
}

func (suite *SettingsServiceTestSuite) TestDatabaseMode_ReadErrorFallsThroughToFile() {
	suite.useDatabase()
	suite.repo.failRead = assert.AnError

	suite.Equal("USD", suite.service.Get(suite.ctx, domain.SettingKeyDefaultCurrency, nil))
	suite.Equal(domain.DefaultConversionPolicy(), suite.service.ConversionPolicy(suite.ctx))

	all := suite.service.GetAll(suite.ctx)
	suite.Contains(all, domain.SettingKeyDefaultCurrency)
}

func (suite *SettingsServiceTestSuite) TestDatabaseMode_WriteErrorIsReported() {
	suite.useDatabase()
	suite.repo.failWrite = assert.AnError

	suite.NotPanics(func() {
		suite.False(suite.service.Set(suite.ctx, domain.SettingKeyDefaultCurrency, "EUR"))
	})
}

func (suite *SettingsServiceTestSuite) TestDatabaseMode_RejectsInvalidConversionValues() {
	suite.useDatabase()

	testCases := []struct {
		name  string
		key   string
		value any
	}{
		{"precision above range", domain.SettingKeyConversion, map[string]any{"round_precision": 11}},
		{"negative precision", domain.SettingKeyRoundPrecision, -1},
		{"non boolean flag", domain.SettingKeyApplyFees, "sometimes"},
		{"not a mapping", domain.SettingKeyConversion, "fast"},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.False(suite.service.Set(suite.ctx, tc.key, tc.value))
		})
	}
	suite.Zero(suite.repo.writes)
}

func (suite *SettingsServiceTestSuite) TestDatabaseMode_DottedKeysOverrideBlock() {
	suite.useDatabase()
	suite.Require().True(suite.service.Set(suite.ctx, domain.SettingKeyConversion, domain.ConversionPolicy{
		ApplyFees:      true,
		LogConversions: true,
		RoundPrecision: 2,
	}))
	suite.Require().True(suite.service.Set(suite.ctx, domain.SettingKeyApplyFees, false))
	suite.Require().True(suite.service.Set(suite.ctx, domain.SettingKeyRoundPrecision, 0))

	policy := suite.service.ConversionPolicy(suite.ctx)

	suite.False(policy.ApplyFees)
	suite.True(policy.LogConversions)
	suite.Equal(0, policy.RoundPrecision)
}

func (suite *SettingsServiceTestSuite) TestDatabaseMode_GetAllRedactsSecrets() {
	suite.useDatabase()
	suite.Require().True(suite.service.Set(suite.ctx, domain.SettingKeyAPIKey, "top-secret"))
	suite.Require().True(suite.service.Set(suite.ctx, domain.SettingKeyDefaultCurrency, "EUR"))

	all := suite.service.GetAll(suite.ctx)

	suite.Equal("EUR", all[domain.SettingKeyDefaultCurrency])
	suite.NotEqual("top-secret", all[domain.SettingKeyAPIKey])
}

// --- Run Suite ---
func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
