package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/SscSPs/multi_currency_app/internal/platform/lock"
	"github.com/SscSPs/multi_currency_app/internal/platform/metrics"
)

// syncOutcome is the metric label of a finished sync run.
type syncOutcome string

type currencySyncService struct {
	BaseService
	currencyReader portsrepo.CurrencyReader
	currencyWriter portsrepo.CurrencyWriter
	commerceRepo   portsrepo.CommerceSettingsRepository
	syncLock       lock.SyncLock
}

// NewCurrencySyncService creates the service that mirrors the default currency
// into the external commerce settings table.
func NewCurrencySyncService(
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	commerceRepo portsrepo.CommerceSettingsRepository,
	syncLock lock.SyncLock,
) portssvc.CurrencySyncSvc {
	return &currencySyncService{
		currencyReader: currencyRepo,
		currencyWriter: currencyRepo,
		commerceRepo:   commerceRepo,
		syncLock:       syncLock,
	}
}

var _ portssvc.CurrencySyncSvc = (*currencySyncService)(nil)

func (s *currencySyncService) Push(ctx context.Context) bool {
	return s.run(ctx, metrics.SyncOpPush, s.push)
}

func (s *currencySyncService) Pull(ctx context.Context) bool {
	return s.run(ctx, metrics.SyncOpPull, s.pull)
}

func (s *currencySyncService) Reconcile(ctx context.Context) bool {
	return s.run(ctx, metrics.SyncOpReconcile, s.reconcile)
}

// run executes body while holding the sync lock. A held lock or any error
// turns into false; nothing is propagated to the caller.
func (s *currencySyncService) run(ctx context.Context, operation string, body func(ctx context.Context) (bool, syncOutcome, error)) bool {
	release, ok, err := s.syncLock.TryAcquire(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to acquire currency sync lock", slog.String("operation", operation))
		metrics.RecordSync(operation, metrics.SyncResultFailed)
		return false
	}
	if !ok {
		s.LogDebug(ctx, "Currency sync already in progress", slog.String("operation", operation))
		metrics.RecordSync(operation, metrics.SyncResultBusy)
		return false
	}
	defer release()

	success, outcome, err := body(ctx)
	if err != nil {
		s.LogError(ctx, err, "Currency sync failed", slog.String("operation", operation))
		metrics.RecordSync(operation, metrics.SyncResultFailed)
		return false
	}
	metrics.RecordSync(operation, string(outcome))
	return success
}

// defaultCurrency returns nil without error when no default exists.
func (s *currencySyncService) defaultCurrency(ctx context.Context) (*domain.Currency, error) {
	currency, err := s.currencyReader.FindDefaultCurrency(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	return currency, err
}

func (s *currencySyncService) push(ctx context.Context) (bool, syncOutcome, error) {
	def, err := s.defaultCurrency(ctx)
	if err != nil {
		return false, "", err
	}
	if def == nil {
		s.LogWarn(ctx, "No default currency to push")
		return false, metrics.SyncResultSkipped, nil
	}

	exists, err := s.commerceRepo.TableExists(ctx)
	if err != nil {
		return false, "", err
	}
	if !exists {
		s.LogDebug(ctx, "Commerce settings table not found, skipping push")
		return false, metrics.SyncResultSkipped, nil
	}

	code := strings.ToUpper(def.Code)
	if err := s.commerceRepo.UpsertSetting(ctx, domain.CommerceCurrencyCodeKey, code); err != nil {
		return false, "", apperrors.NewPersistenceError("failed to push currency code "+code, err)
	}
	if err := s.commerceRepo.UpsertSetting(ctx, domain.CommerceCurrencySymbolKey, def.Symbol); err != nil {
		return false, "", apperrors.NewPersistenceError("failed to push currency symbol "+def.Symbol, err)
	}

	s.LogInfo(ctx, "Pushed default currency to commerce settings",
		slog.String("code", code),
		slog.String("symbol", def.Symbol))
	return true, metrics.SyncResultApplied, nil
}

// external returns the commerce currency settings, or nil when the table or
// either key is missing.
func (s *currencySyncService) external(ctx context.Context) (*domain.CommerceCurrency, error) {
	exists, err := s.commerceRepo.TableExists(ctx)
	if err != nil || !exists {
		return nil, err
	}
	settings, err := s.commerceRepo.GetCurrencySettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings.Code == "" || settings.Symbol == "" {
		return nil, nil
	}
	return &settings, nil
}

func (s *currencySyncService) pull(ctx context.Context) (bool, syncOutcome, error) {
	ext, err := s.external(ctx)
	if err != nil {
		return false, "", err
	}
	if ext == nil {
		s.LogDebug(ctx, "Commerce currency settings not found, skipping pull")
		return false, metrics.SyncResultSkipped, nil
	}

	def, err := s.defaultCurrency(ctx)
	if err != nil {
		return false, "", err
	}
	if def == nil {
		s.LogWarn(ctx, "No default currency to pull into")
		return false, metrics.SyncResultSkipped, nil
	}

	if def.Symbol != ext.Symbol {
		s.LogDebug(ctx, "Skipping pull, currency symbols differ",
			slog.String("current_symbol", def.Symbol),
			slog.String("external_symbol", ext.Symbol))
		return false, metrics.SyncResultSkipped, nil
	}

	code := strings.ToUpper(strings.TrimSpace(ext.Code))
	if err := s.currencyWriter.UpdateCurrencyIdentity(ctx, def.ID, code, ext.Symbol); err != nil {
		return false, "", apperrors.NewPersistenceError("failed to pull currency code "+code, err)
	}

	s.LogInfo(ctx, "Pulled default currency from commerce settings",
		slog.Int64("currency_id", def.ID),
		slog.String("code", code))
	return true, metrics.SyncResultApplied, nil
}

func (s *currencySyncService) reconcile(ctx context.Context) (bool, syncOutcome, error) {
	ext, err := s.external(ctx)
	if err != nil {
		return false, "", err
	}
	if ext == nil {
		return s.push(ctx)
	}

	def, err := s.defaultCurrency(ctx)
	if err != nil {
		return false, "", err
	}
	if def != nil && strings.EqualFold(def.Code, ext.Code) && def.Symbol == ext.Symbol {
		return true, metrics.SyncResultNoop, nil
	}
	return s.push(ctx)
}
