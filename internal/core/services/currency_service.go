package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/SscSPs/multi_currency_app/internal/dto"
	"github.com/SscSPs/multi_currency_app/internal/platform/metrics"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

var defaultCurrencyRate = decimal.NewFromInt(1)

type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryWithTx
	rateLogRepo  portsrepo.RateLogRepository
	now          func() time.Time
}

// CurrencyServiceOption configures the currency service.
type CurrencyServiceOption func(*currencyService)

// WithCurrencyClock overrides the clock used for rate log timestamps.
func WithCurrencyClock(now func() time.Time) CurrencyServiceOption {
	return func(s *currencyService) {
		s.now = now
	}
}

// NewCurrencyService creates the currency store service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryWithTx, rateLogRepo portsrepo.RateLogRepository, options ...CurrencyServiceOption) portssvc.CurrencySvcFacade {
	s := &currencyService{
		currencyRepo: currencyRepo,
		rateLogRepo:  rateLogRepo,
		now:          time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// inTx runs fn inside a transaction, rolling back on any error.
func (s *currencyService) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.currencyRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if rbErr := s.currencyRepo.Rollback(ctx, tx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to rollback currency transaction")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return s.currencyRepo.Commit(ctx, tx)
}

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest) (*domain.CurrencyChange, error) {
	code, symbol, err := domain.ResolveCodeAndSymbol(req.Code, req.Symbol)
	if err != nil {
		return nil, err
	}

	rate := defaultCurrencyRate
	if req.Rate != nil {
		rate = *req.Rate
	}
	if !rate.IsPositive() {
		return nil, apperrors.NewValidationError("currency rate must be greater than 0")
	}
	fee, err := validateFee(req.Fee)
	if err != nil {
		return nil, err
	}

	currency := domain.Currency{
		Code:              code,
		Symbol:            symbol,
		Name:              trimOptional(req.Name),
		Rate:              rate,
		IsAuto:            req.IsAuto,
		Fee:               fee,
		CountryTaxonomyID: req.CountryTaxonomyID,
		IsActive:          true,
	}

	var saved *domain.Currency
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		if err := s.currencyRepo.LockCurrencyTableInTx(ctx, tx); err != nil {
			return err
		}

		exists, err := s.currencyRepo.CodeExistsInTx(ctx, tx, code, 0)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.NewDuplicateError(fmt.Sprintf("currency code %s already exists", code))
		}

		_, err = s.currencyRepo.FindDefaultCurrencyInTx(ctx, tx)
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			currency.IsDefault = true
			currency.Rate = defaultCurrencyRate
		case err != nil:
			return err
		}

		saved, err = s.currencyRepo.InsertCurrencyInTx(ctx, tx, currency)
		if err != nil {
			return err
		}

		_, err = s.rateLogRepo.InsertRateLogInTx(ctx, tx, s.newRateLog(saved.ID, saved.Rate, saved.RateSource(), nil))
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to create currency", slog.String("code", code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Currency created",
		slog.Int64("currency_id", saved.ID),
		slog.String("code", saved.Code),
		slog.Bool("is_default", saved.IsDefault))
	return &domain.CurrencyChange{Currency: saved, DefaultIdentityChanged: saved.IsDefault}, nil
}

func (s *currencyService) GetCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find currency", slog.Int64("currency_id", currencyID))
		}
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, domain.NormalizeCode(currencyCode))
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find currency by code", slog.String("code", currencyCode))
		}
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) GetDefaultCurrency(ctx context.Context) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindDefaultCurrency(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find default currency")
		}
		return nil, err
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context, filter domain.CurrencyFilter) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	// Return empty slice if no currencies found, not nil
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) ListRateLogs(ctx context.Context, currencyID int64, limit, offset int) ([]domain.RateLog, error) {
	if _, err := s.GetCurrencyByID(ctx, currencyID); err != nil {
		return nil, err
	}
	logs, err := s.rateLogRepo.ListRateLogs(ctx, currencyID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list rate logs", slog.Int64("currency_id", currencyID))
		return nil, fmt.Errorf("failed to list rate logs in service: %w", err)
	}
	if logs == nil {
		return []domain.RateLog{}, nil
	}
	return logs, nil
}

func (s *currencyService) UpdateCurrency(ctx context.Context, currencyID int64, req dto.UpdateCurrencyRequest) (*domain.CurrencyChange, error) {
	if req.Code != nil {
		code := domain.NormalizeCode(*req.Code)
		if err := domain.ValidateCode(code); err != nil {
			return nil, err
		}
		req.Code = &code
	}
	if req.Symbol != nil {
		symbol := strings.TrimSpace(*req.Symbol)
		if err := domain.ValidateSymbol(symbol); err != nil {
			return nil, err
		}
		req.Symbol = &symbol
	}
	if req.Rate != nil && !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("currency rate must be greater than 0")
	}
	fee, err := validateFee(req.Fee)
	if err != nil {
		return nil, err
	}

	var change domain.CurrencyChange
	err = s.inTx(ctx, func(tx pgx.Tx) error {
		current, err := s.currencyRepo.FindCurrencyByIDForUpdateInTx(ctx, tx, currencyID)
		if err != nil {
			return err
		}
		updated := *current

		if req.Code != nil && *req.Code != current.Code {
			exists, err := s.currencyRepo.CodeExistsInTx(ctx, tx, *req.Code, currencyID)
			if err != nil {
				return err
			}
			if exists {
				return apperrors.NewDuplicateError(fmt.Sprintf("currency code %s already exists", *req.Code))
			}
			updated.Code = *req.Code
		}
		if req.Symbol != nil {
			updated.Symbol = *req.Symbol
		}
		if req.Name != nil {
			updated.Name = trimOptional(req.Name)
		}
		if req.IsAuto != nil {
			updated.IsAuto = *req.IsAuto
		}
		if req.ClearFee {
			updated.Fee = decimal.NullDecimal{}
		} else if fee.Valid {
			updated.Fee = fee
		}
		if req.CountryTaxonomyID != nil {
			updated.CountryTaxonomyID = req.CountryTaxonomyID
		}

		rateChanged := req.Rate != nil && !req.Rate.Equal(current.Rate)
		if rateChanged {
			if current.IsDefault {
				return apperrors.NewDomainError("cannot change the rate of the default currency")
			}
			updated.Rate = *req.Rate
			if _, err := s.rateLogRepo.InsertRateLogInTx(ctx, tx, s.newRateLog(currencyID, updated.Rate, updated.RateSource(), nil)); err != nil {
				return err
			}
		}

		saved, err := s.currencyRepo.UpdateCurrencyInTx(ctx, tx, updated)
		if err != nil {
			return err
		}
		change.Currency = saved
		change.DefaultIdentityChanged = saved.IsDefault && (saved.Code != current.Code || saved.Symbol != current.Symbol)
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to update currency", slog.Int64("currency_id", currencyID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Currency updated",
		slog.Int64("currency_id", currencyID),
		slog.Bool("default_identity_changed", change.DefaultIdentityChanged))
	return &change, nil
}

func (s *currencyService) UpdateRate(ctx context.Context, currencyID int64, req dto.UpdateRateRequest) (*domain.Currency, error) {
	if req.Rate == nil || !req.Rate.IsPositive() {
		return nil, apperrors.NewValidationError("currency rate must be greater than 0")
	}
	source := domain.RateSource(req.Source)
	if req.Source != "" && !source.IsValid() {
		return nil, apperrors.NewValidationError("rate source must be manual or api")
	}

	var saved *domain.Currency
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		current, err := s.currencyRepo.FindCurrencyByIDForUpdateInTx(ctx, tx, currencyID)
		if err != nil {
			return err
		}
		if current.IsDefault {
			return apperrors.NewDomainError("cannot change the rate of the default currency")
		}
		if req.Source == "" {
			source = current.RateSource()
		}

		// Log first: a rate change without its history row must never commit.
		if _, err := s.rateLogRepo.InsertRateLogInTx(ctx, tx, s.newRateLog(currencyID, *req.Rate, source, req.FetchedAt)); err != nil {
			return err
		}
		if err := s.currencyRepo.UpdateRateInTx(ctx, tx, currencyID, *req.Rate); err != nil {
			return err
		}

		current.Rate = *req.Rate
		saved = current
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to update currency rate",
				slog.Int64("currency_id", currencyID),
				slog.String("rate", req.Rate.String()))
		}
		return nil, err
	}

	metrics.RecordRateUpdate(string(source))
	s.LogInfo(ctx, "Currency rate updated",
		slog.Int64("currency_id", currencyID),
		slog.String("rate", saved.Rate.String()),
		slog.String("source", string(source)))
	return saved, nil
}

func (s *currencyService) ToggleActive(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	var saved *domain.Currency
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		current, err := s.currencyRepo.FindCurrencyByIDForUpdateInTx(ctx, tx, currencyID)
		if err != nil {
			return err
		}
		if current.IsDefault && current.IsActive {
			return apperrors.NewDomainError("cannot deactivate default currency")
		}
		current.IsActive = !current.IsActive
		saved, err = s.currencyRepo.UpdateCurrencyInTx(ctx, tx, *current)
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to toggle currency status", slog.Int64("currency_id", currencyID))
		}
		return nil, err
	}
	s.LogInfo(ctx, "Currency status toggled", slog.Int64("currency_id", currencyID), slog.Bool("is_active", saved.IsActive))
	return saved, nil
}

func (s *currencyService) DeleteCurrency(ctx context.Context, currencyID int64) error {
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		if err := s.currencyRepo.LockCurrencyTableInTx(ctx, tx); err != nil {
			return err
		}
		current, err := s.currencyRepo.FindCurrencyByIDForUpdateInTx(ctx, tx, currencyID)
		if err != nil {
			return err
		}
		if current.IsDefault {
			return apperrors.NewDomainError("cannot delete default currency")
		}
		return s.currencyRepo.DeleteCurrencyInTx(ctx, tx, currencyID)
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to delete currency", slog.Int64("currency_id", currencyID))
		}
		return err
	}
	s.LogInfo(ctx, "Currency deleted", slog.Int64("currency_id", currencyID))
	return nil
}

func (s *currencyService) newRateLog(currencyID int64, rate decimal.Decimal, source domain.RateSource, fetchedAt *time.Time) domain.RateLog {
	if fetchedAt == nil && source == domain.RateSourceAPI {
		now := s.now()
		fetchedAt = &now
	}
	return domain.RateLog{
		CurrencyID: currencyID,
		Rate:       rate,
		Source:     source,
		FetchedAt:  fetchedAt,
	}
}

func validateFee(fee *decimal.Decimal) (decimal.NullDecimal, error) {
	if fee == nil {
		return decimal.NullDecimal{}, nil
	}
	if fee.IsNegative() {
		return decimal.NullDecimal{}, apperrors.NewValidationError("currency fee must not be negative")
	}
	return decimal.NullDecimal{Decimal: *fee, Valid: true}, nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// isClientError reports errors that are expected outcomes rather than faults.
func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrDomainInvariant)
}
