package services_test

import (
	"context"
	"testing"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/SscSPs/multi_currency_app/internal/core/services"
	"github.com/SscSPs/multi_currency_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	store   *fakeCurrencyStore
	service portssvc.CurrencySvcFacade
	ctx     context.Context
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.store = newFakeCurrencyStore()
	suite.service = services.NewCurrencyService(suite.store, suite.store)
	suite.ctx = context.Background()
}

func (suite *CurrencyServiceTestSuite) create(code, symbol, rate string) *domain.Currency {
	req := dto.CreateCurrencyRequest{Code: code, Symbol: symbol}
	if rate != "" {
		req.Rate = decPtr(rate)
	}
	change, err := suite.service.CreateCurrency(suite.ctx, req)
	suite.Require().NoError(err)
	return change.Currency
}

// --- Test Cases ---

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_FirstBecomesDefaultWithRateOne() {
	change, err := suite.service.CreateCurrency(suite.ctx, dto.CreateCurrencyRequest{
		Code:   "usd",
		Symbol: "$",
		Rate:   decPtr("5"),
	})

	suite.Require().NoError(err)
	suite.True(change.DefaultIdentityChanged)
	suite.Equal("USD", change.Currency.Code)
	suite.True(change.Currency.IsDefault)
	suite.True(change.Currency.IsActive)
	suite.True(change.Currency.Rate.Equal(decimal.NewFromInt(1)), "default rate forced to 1, got %s", change.Currency.Rate)
	suite.Equal(1, suite.store.rateLogCount(change.Currency.ID))
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_SecondUsesSuppliedRate() {
	suite.create("USD", "$", "")

	change, err := suite.service.CreateCurrency(suite.ctx, dto.CreateCurrencyRequest{
		Code:   "EUR",
		Symbol: "€",
		Rate:   decPtr("1.5"),
		Fee:    decPtr("2"),
		IsAuto: true,
	})

	suite.Require().NoError(err)
	suite.False(change.DefaultIdentityChanged)
	suite.False(change.Currency.IsDefault)
	suite.True(change.Currency.Rate.Equal(decimal.RequireFromString("1.5")))
	suite.True(change.Currency.Fee.Valid)
	suite.Equal(1, suite.store.defaultCount())

	logs, err := suite.service.ListRateLogs(suite.ctx, change.Currency.ID, 0, 0)
	suite.Require().NoError(err)
	suite.Require().Len(logs, 1)
	suite.Equal(domain.RateSourceAPI, logs[0].Source)
	suite.NotNil(logs[0].FetchedAt)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_CodeFallsBackToSymbol() {
	change, err := suite.service.CreateCurrency(suite.ctx, dto.CreateCurrencyRequest{Symbol: "$"})

	suite.Require().NoError(err)
	suite.Equal("$", change.Currency.Code)
	suite.Equal("$", change.Currency.Symbol)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_SymbolFallsBackToCode() {
	change, err := suite.service.CreateCurrency(suite.ctx, dto.CreateCurrencyRequest{Code: "gbp"})

	suite.Require().NoError(err)
	suite.Equal("GBP", change.Currency.Code)
	suite.Equal("gbp", change.Currency.Symbol)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_ValidationErrors() {
	suite.create("USD", "$", "")

	testCases := []struct {
		name string
		req  dto.CreateCurrencyRequest
	}{
		{"both blank", dto.CreateCurrencyRequest{Code: " ", Symbol: ""}},
		{"code too short", dto.CreateCurrencyRequest{Code: "US", Symbol: "$"}},
		{"code too long", dto.CreateCurrencyRequest{Code: "EUROS", Symbol: "€"}},
		{"zero rate", dto.CreateCurrencyRequest{Code: "EUR", Symbol: "€", Rate: decPtr("0")}},
		{"negative rate", dto.CreateCurrencyRequest{Code: "EUR", Symbol: "€", Rate: decPtr("-1")}},
		{"negative fee", dto.CreateCurrencyRequest{Code: "EUR", Symbol: "€", Fee: decPtr("-0.01")}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			change, err := suite.service.CreateCurrency(suite.ctx, tc.req)
			suite.Require().Error(err)
			suite.Nil(change)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_DuplicateCodeIsCaseInsensitive() {
	suite.create("USD", "$", "")

	change, err := suite.service.CreateCurrency(suite.ctx, dto.CreateCurrencyRequest{Code: "usd", Symbol: "US$"})

	suite.Require().Error(err)
	suite.Nil(change)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.ErrorIs(err, apperrors.ErrDomainInvariant)
}

func (suite *CurrencyServiceTestSuite) TestToggleActive_DefaultIsProtected() {
	def := suite.create("USD", "$", "")

	currency, err := suite.service.ToggleActive(suite.ctx, def.ID)

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrDomainInvariant)
	suite.Contains(err.Error(), "cannot deactivate default currency")

	stored, err := suite.service.GetCurrencyByID(suite.ctx, def.ID)
	suite.Require().NoError(err)
	suite.True(stored.IsActive)
}

func (suite *CurrencyServiceTestSuite) TestToggleActive_FlipsNonDefault() {
	suite.create("USD", "$", "")
	eur := suite.create("EUR", "€", "1.1")

	off, err := suite.service.ToggleActive(suite.ctx, eur.ID)
	suite.Require().NoError(err)
	suite.False(off.IsActive)

	on, err := suite.service.ToggleActive(suite.ctx, eur.ID)
	suite.Require().NoError(err)
	suite.True(on.IsActive)
}

func (suite *CurrencyServiceTestSuite) TestDeleteCurrency_DefaultIsProtected() {
	def := suite.create("USD", "$", "")

	err := suite.service.DeleteCurrency(suite.ctx, def.ID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDomainInvariant)
	suite.Contains(err.Error(), "cannot delete default currency")
	suite.Equal(1, suite.store.defaultCount())
}

func (suite *CurrencyServiceTestSuite) TestDeleteCurrency_RemovesRateLogs() {
	suite.create("USD", "$", "")
	eur := suite.create("EUR", "€", "1.1")
	_, err := suite.service.UpdateRate(suite.ctx, eur.ID, dto.UpdateRateRequest{Rate: decPtr("1.2")})
	suite.Require().NoError(err)
	suite.Equal(2, suite.store.rateLogCount(eur.ID))

	err = suite.service.DeleteCurrency(suite.ctx, eur.ID)

	suite.Require().NoError(err)
	suite.Equal(0, suite.store.rateLogCount(eur.ID))
	_, err = suite.service.GetCurrencyByID(suite.ctx, eur.ID)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestDeleteCurrency_NotFound() {
	err := suite.service.DeleteCurrency(suite.ctx, 404)

	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestUpdateRate_AppendsLogAndUpdatesRate() {
	suite.create("USD", "$", "")
	eur := suite.create("EUR", "€", "1.1")

	updated, err := suite.service.UpdateRate(suite.ctx, eur.ID, dto.UpdateRateRequest{
		Rate:   decPtr("1.25"),
		Source: string(domain.RateSourceManual),
	})

	suite.Require().NoError(err)
	suite.True(updated.Rate.Equal(decimal.RequireFromString("1.25")))

	logs, err := suite.service.ListRateLogs(suite.ctx, eur.ID, 10, 0)
	suite.Require().NoError(err)
	suite.Require().Len(logs, 2)
	suite.True(logs[0].Rate.Equal(decimal.RequireFromString("1.25")), "newest log first")
	suite.Equal(domain.RateSourceManual, logs[0].Source)
}

func (suite *CurrencyServiceTestSuite) TestUpdateRate_LogFailureLeavesRateIntact() {
	suite.create("USD", "$", "")
	eur := suite.create("EUR", "€", "1.1")
	suite.store.failRateLog = assert.AnError

	updated, err := suite.service.UpdateRate(suite.ctx, eur.ID, dto.UpdateRateRequest{Rate: decPtr("9")})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, assert.AnError)
	stored, err := suite.service.GetCurrencyByID(suite.ctx, eur.ID)
	suite.Require().NoError(err)
	suite.True(stored.Rate.Equal(decimal.RequireFromString("1.1")))
	suite.Equal(1, suite.store.rateLogCount(eur.ID))
}

func (suite *CurrencyServiceTestSuite) TestUpdateRate_UpdateFailureDropsLog() {
	suite.create("USD", "$", "")
	eur := suite.create("EUR", "€", "1.1")
	suite.store.failUpdate = assert.AnError

	_, err := suite.service.UpdateRate(suite.ctx, eur.ID, dto.UpdateRateRequest{Rate: decPtr("9")})

	suite.Require().ErrorIs(err, assert.AnError)
	suite.Equal(1, suite.store.rateLogCount(eur.ID))
}

func (suite *CurrencyServiceTestSuite) TestUpdateRate_Rejections() {
	def := suite.create("USD", "$", "")
	eur := suite.create("EUR", "€", "1.1")

	_, err := suite.service.UpdateRate(suite.ctx, def.ID, dto.UpdateRateRequest{Rate: decPtr("2")})
	suite.ErrorIs(err, apperrors.ErrDomainInvariant)

	_, err = suite.service.UpdateRate(suite.ctx, eur.ID, dto.UpdateRateRequest{Rate: decPtr("0")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateRate(suite.ctx, eur.ID, dto.UpdateRateRequest{Rate: nil})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateRate(suite.ctx, eur.ID, dto.UpdateRateRequest{Rate: decPtr("2"), Source: "cron"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateRate(suite.ctx, 404, dto.UpdateRateRequest{Rate: decPtr("2")})
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_DefaultIdentityChange() {
	def := suite.create("USD", "$", "")

	change, err := suite.service.UpdateCurrency(suite.ctx, def.ID, dto.UpdateCurrencyRequest{
		Code:   strPtr("cad"),
		Symbol: strPtr("C$"),
	})

	suite.Require().NoError(err)
	suite.True(change.DefaultIdentityChanged)
	suite.Equal("CAD", change.Currency.Code)
	suite.Equal("C$", change.Currency.Symbol)
	suite.True(change.Currency.IsDefault)
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_NameOnlyDoesNotSignalPush() {
	def := suite.create("USD", "$", "")

	change, err := suite.service.UpdateCurrency(suite.ctx, def.ID, dto.UpdateCurrencyRequest{Name: strPtr("US Dollar")})

	suite.Require().NoError(err)
	suite.False(change.DefaultIdentityChanged)
	suite.Require().NotNil(change.Currency.Name)
	suite.Equal("US Dollar", *change.Currency.Name)
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_RateChangeIsLogged() {
	suite.create("USD", "$", "")
	eur := suite.create("EUR", "€", "1.1")

	change, err := suite.service.UpdateCurrency(suite.ctx, eur.ID, dto.UpdateCurrencyRequest{
		Rate: decPtr("1.3"),
		Fee:  decPtr("0.5"),
	})

	suite.Require().NoError(err)
	suite.False(change.DefaultIdentityChanged)
	suite.True(change.Currency.Rate.Equal(decimal.RequireFromString("1.3")))
	suite.Equal(2, suite.store.rateLogCount(eur.ID))

	cleared, err := suite.service.UpdateCurrency(suite.ctx, eur.ID, dto.UpdateCurrencyRequest{ClearFee: true})
	suite.Require().NoError(err)
	suite.False(cleared.Currency.Fee.Valid)
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_Rejections() {
	def := suite.create("USD", "$", "")
	eur := suite.create("EUR", "€", "1.1")

	_, err := suite.service.UpdateCurrency(suite.ctx, eur.ID, dto.UpdateCurrencyRequest{Code: strPtr("usd")})
	suite.ErrorIs(err, apperrors.ErrDuplicate)

	_, err = suite.service.UpdateCurrency(suite.ctx, eur.ID, dto.UpdateCurrencyRequest{Code: strPtr("EU")})
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.UpdateCurrency(suite.ctx, def.ID, dto.UpdateCurrencyRequest{Rate: decPtr("2")})
	suite.ErrorIs(err, apperrors.ErrDomainInvariant)

	_, err = suite.service.UpdateCurrency(suite.ctx, eur.ID, dto.UpdateCurrencyRequest{Fee: decPtr("-1")})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *CurrencyServiceTestSuite) TestSingleDefaultSurvivesOperationSequence() {
	def := suite.create("USD", "$", "")
	eur := suite.create("EUR", "€", "1.1")
	gbp := suite.create("GBP", "£", "1.3")

	_, _ = suite.service.ToggleActive(suite.ctx, def.ID)
	_, _ = suite.service.ToggleActive(suite.ctx, eur.ID)
	_ = suite.service.DeleteCurrency(suite.ctx, def.ID)
	_ = suite.service.DeleteCurrency(suite.ctx, gbp.ID)
	_, _ = suite.service.UpdateRate(suite.ctx, def.ID, dto.UpdateRateRequest{Rate: decPtr("3")})
	suite.create("JPY", "¥", "0.007")

	suite.Equal(1, suite.store.defaultCount())
	stored, err := suite.service.GetDefaultCurrency(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal(def.ID, stored.ID)
	suite.True(stored.IsActive)
	suite.True(stored.Rate.Equal(decimal.NewFromInt(1)))
}

func (suite *CurrencyServiceTestSuite) TestListCurrencies_Filters() {
	suite.create("USD", "$", "")
	eur := suite.create("EUR", "€", "1.1")
	_, err := suite.service.CreateCurrency(suite.ctx, dto.CreateCurrencyRequest{Code: "GBP", Symbol: "£", Rate: decPtr("1.3"), IsAuto: true})
	suite.Require().NoError(err)
	_, err = suite.service.ToggleActive(suite.ctx, eur.ID)
	suite.Require().NoError(err)

	all, err := suite.service.ListCurrencies(suite.ctx, domain.CurrencyFilter{})
	suite.Require().NoError(err)
	suite.Len(all, 3)

	active, err := suite.service.ListCurrencies(suite.ctx, domain.CurrencyFilter{Active: true})
	suite.Require().NoError(err)
	suite.Len(active, 2)

	activeManual, err := suite.service.ListCurrencies(suite.ctx, domain.CurrencyFilter{Active: true, Manual: true})
	suite.Require().NoError(err)
	suite.Require().Len(activeManual, 1)
	suite.Equal("USD", activeManual[0].Code)

	none, err := suite.service.ListCurrencies(suite.ctx, domain.CurrencyFilter{Auto: true, Manual: true})
	suite.Require().NoError(err)
	suite.NotNil(none)
	suite.Empty(none)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NormalizesInput() {
	suite.create("USD", "$", "")

	currency, err := suite.service.GetCurrencyByCode(suite.ctx, " usd ")

	suite.Require().NoError(err)
	suite.Equal("USD", currency.Code)
}

func (suite *CurrencyServiceTestSuite) TestListRateLogs_UnknownCurrency() {
	logs, err := suite.service.ListRateLogs(suite.ctx, 99, 10, 0)

	suite.Nil(logs)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
