package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/SscSPs/multi_currency_app/internal/dto"
)

type staticDataService struct {
	BaseService
	currencySvc  portssvc.CurrencySvcFacade
	commerceRepo portsrepo.CommerceSettingsRepository
}

// NewStaticDataService creates the startup seeder for the default currency.
func NewStaticDataService(currencySvc portssvc.CurrencySvcFacade, commerceRepo portsrepo.CommerceSettingsRepository) portssvc.StaticDataService {
	return &staticDataService{
		currencySvc:  currencySvc,
		commerceRepo: commerceRepo,
	}
}

// InitializeStaticData creates the default currency when none exists yet. The
// commerce settings supply its identity when both keys are present.
func (s *staticDataService) InitializeStaticData(ctx context.Context) error {
	existing, err := s.currencySvc.GetDefaultCurrency(ctx)
	if err == nil {
		s.LogDebug(ctx, "Default currency already present, skipping seed", slog.String("code", existing.Code))
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check default currency: %w", err)
	}

	identity := s.seedIdentity(ctx)
	change, err := s.currencySvc.CreateCurrency(ctx, dto.CreateCurrencyRequest{
		Code:   identity.Code,
		Symbol: identity.Symbol,
	})
	if err != nil {
		return fmt.Errorf("failed to seed default currency %s: %w", identity.Code, err)
	}

	s.LogInfo(ctx, "Seeded default currency",
		slog.Int64("currency_id", change.Currency.ID),
		slog.String("code", change.Currency.Code),
		slog.String("symbol", change.Currency.Symbol))
	return nil
}

func (s *staticDataService) seedIdentity(ctx context.Context) domain.CommerceCurrency {
	fallback := domain.CommerceCurrency{Code: domain.FallbackCurrencyCode, Symbol: domain.FallbackCurrencySymbol}

	exists, err := s.commerceRepo.TableExists(ctx)
	if err != nil {
		s.LogWarn(ctx, "Could not check commerce settings table, seeding fallback currency", slog.String("error", err.Error()))
		return fallback
	}
	if !exists {
		return fallback
	}
	settings, err := s.commerceRepo.GetCurrencySettings(ctx)
	if err != nil {
		s.LogWarn(ctx, "Could not read commerce settings, seeding fallback currency", slog.String("error", err.Error()))
		return fallback
	}
	if settings.Code == "" || settings.Symbol == "" {
		return fallback
	}
	if _, _, err := domain.ResolveCodeAndSymbol(settings.Code, settings.Symbol); err != nil {
		s.LogWarn(ctx, "Commerce currency settings are invalid, seeding fallback currency",
			slog.String("code", settings.Code))
		return fallback
	}
	return settings
}
