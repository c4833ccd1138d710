package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/SscSPs/multi_currency_app/internal/dto"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
)

const testJWTSecret = "test-secret-key-that-is-long-enough"

// generateTestToken creates a signed JWT for subject.
func generateTestToken(subject string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "mcc-test",
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		panic(err)
	}
	return signed
}

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetDefaultCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context, filter domain.CurrencyFilter) ([]domain.Currency, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListRateLogs(ctx context.Context, currencyID int64, limit, offset int) ([]domain.RateLog, error) {
	args := m.Called(ctx, currencyID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateLog), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.CurrencyChange, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyChange), args.Error(1)
}

func (m *MockCurrencyService) UpdateCurrency(ctx context.Context, currencyID int64, req dto.UpdateCurrencyRequest) (*domain.CurrencyChange, error) {
	args := m.Called(ctx, currencyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CurrencyChange), args.Error(1)
}

func (m *MockCurrencyService) UpdateRate(ctx context.Context, currencyID int64, req dto.UpdateRateRequest) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ToggleActive(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) DeleteCurrency(ctx context.Context, currencyID int64) error {
	args := m.Called(ctx, currencyID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock SyncService ---
type MockSyncService struct {
	mock.Mock
}

func (m *MockSyncService) Push(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockSyncService) Pull(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

func (m *MockSyncService) Reconcile(ctx context.Context) bool {
	return m.Called(ctx).Bool(0)
}

var _ portssvc.CurrencySyncSvc = (*MockSyncService)(nil)

// --- Mock ConversionService ---
type MockConversionService struct {
	mock.Mock
}

func (m *MockConversionService) Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockConversionService) ListConversionLogs(ctx context.Context, filter domain.ConversionLogFilter) ([]domain.ConversionLog, *string, error) {
	args := m.Called(ctx, filter)
	var logs []domain.ConversionLog
	if args.Get(0) != nil {
		logs = args.Get(0).([]domain.ConversionLog)
	}
	var next *string
	if args.Get(1) != nil {
		next = args.Get(1).(*string)
	}
	return logs, next, args.Error(2)
}

var _ portssvc.ConversionSvcFacade = (*MockConversionService)(nil)

// --- Mock SettingsService ---
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context, key string, def any) any {
	return m.Called(ctx, key, def).Get(0)
}

func (m *MockSettingsService) Set(ctx context.Context, key string, value any) bool {
	return m.Called(ctx, key, value).Bool(0)
}

func (m *MockSettingsService) GetAll(ctx context.Context) map[string]any {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]any)
}

func (m *MockSettingsService) IsDatabaseBacked() bool {
	return m.Called().Bool(0)
}

func (m *MockSettingsService) ConversionPolicy(ctx context.Context) domain.ConversionPolicy {
	return m.Called(ctx).Get(0).(domain.ConversionPolicy)
}

var _ portssvc.SettingsSvc = (*MockSettingsService)(nil)
