package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/SscSPs/multi_currency_app/internal/platform/metrics"
)

type conversionService struct {
	BaseService
	currencyRepo      portsrepo.CurrencyReader
	conversionLogRepo portsrepo.ConversionLogRepository
	settings          portssvc.SettingsSvc
	now               func() time.Time
}

// NewConversionService creates the conversion engine.
func NewConversionService(
	currencyRepo portsrepo.CurrencyReader,
	conversionLogRepo portsrepo.ConversionLogRepository,
	settings portssvc.SettingsSvc,
) portssvc.ConversionSvcFacade {
	return &conversionService{
		currencyRepo:      currencyRepo,
		conversionLogRepo: conversionLogRepo,
		settings:          settings,
		now:               time.Now,
	}
}

var _ portssvc.ConversionSvcFacade = (*conversionService)(nil)

func (s *conversionService) Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error) {
	req.EntityType = strings.TrimSpace(req.EntityType)
	req.Context = strings.TrimSpace(req.Context)
	req.BaseCurrencyCode = domain.NormalizeCode(req.BaseCurrencyCode)
	req.TargetCurrencyCode = domain.NormalizeCode(req.TargetCurrencyCode)
	if err := validateConversionRequest(req); err != nil {
		return nil, err
	}

	target, err := s.currencyRepo.FindCurrencyByCode(ctx, req.TargetCurrencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("target currency %s not found", req.TargetCurrencyCode))
		}
		s.LogError(ctx, err, "Failed to load target currency", slog.String("target", req.TargetCurrencyCode))
		return nil, err
	}
	if !target.IsActive {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("target currency %s is not active", req.TargetCurrencyCode))
	}

	policy := s.settings.ConversionPolicy(ctx)
	result := domain.ComputeConversion(req.BaseAmount, *target, policy)
	if !domain.AmountFitsAuditLog(result.ConvertedAmount) {
		return nil, apperrors.NewValidationError("converted amount exceeds the supported range")
	}

	if policy.LogConversions {
		entry := domain.ConversionLog{
			EntityType:         req.EntityType,
			EntityID:           req.EntityID,
			Context:            req.Context,
			BaseCurrencyCode:   req.BaseCurrencyCode,
			TargetCurrencyCode: target.Code,
			BaseAmount:         req.BaseAmount,
			ConvertedAmount:    result.ConvertedAmount,
			RateUsed:           result.RateUsed,
			FeeApplied:         result.FeeApplied,
			RateSource:         result.RateSource,
			CurrencyID:         target.ID,
			UserID:             req.UserID,
			OccurredAt:         s.now().UTC(),
		}
		if _, err := s.conversionLogRepo.InsertConversionLog(ctx, entry); err != nil {
			s.LogError(ctx, err, "Failed to write conversion log",
				slog.String("entity_type", req.EntityType),
				slog.String("target", target.Code))
			return nil, err
		}
		result.Logged = true
	}

	metrics.RecordConversion(target.Code, result.Logged)
	s.LogDebug(ctx, "Converted amount",
		slog.String("base", req.BaseCurrencyCode),
		slog.String("target", target.Code),
		slog.String("amount", req.BaseAmount.String()),
		slog.String("converted", result.ConvertedAmount.String()),
		slog.String("context", req.Context))
	return &result, nil
}

func (s *conversionService) ListConversionLogs(ctx context.Context, filter domain.ConversionLogFilter) ([]domain.ConversionLog, *string, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	logs, next, err := s.conversionLogRepo.ListConversionLogs(ctx, filter)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list conversion logs")
		}
		return nil, nil, err
	}
	if logs == nil {
		logs = []domain.ConversionLog{}
	}
	return logs, next, nil
}

func validateConversionRequest(req domain.ConversionRequest) error {
	if err := validateLength("entity type", req.EntityType, 1, domain.MaxEntityTypeLength); err != nil {
		return err
	}
	if err := validateLength("context", req.Context, 1, domain.MaxContextLength); err != nil {
		return err
	}
	if err := validateLength("base currency code", req.BaseCurrencyCode, 1, domain.MaxCodeLength); err != nil {
		return err
	}
	if err := validateLength("target currency code", req.TargetCurrencyCode, 1, domain.MaxCodeLength); err != nil {
		return err
	}
	if !domain.AmountFitsAuditLog(req.BaseAmount) {
		return apperrors.NewValidationError("base amount must be below 10^" + strconv.Itoa(domain.MaxAmountIntegerDigits) +
			" with at most " + strconv.Itoa(domain.MaxAmountScale) + " decimal places")
	}
	return nil
}

func validateLength(field, value string, min, max int) error {
	n := utf8.RuneCountInString(value)
	if n < min || n > max {
		return apperrors.NewValidationError(field + " must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max) + " characters")
	}
	return nil
}
