package services

import (
	"context"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
)

// ConversionSvc converts amounts into a target currency.
type ConversionSvc interface {
	Convert(ctx context.Context, req domain.ConversionRequest) (*domain.ConversionResult, error)
}

// ConversionLogReaderSvc reads the conversion audit log.
type ConversionLogReaderSvc interface {
	ListConversionLogs(ctx context.Context, filter domain.ConversionLogFilter) ([]domain.ConversionLog, *string, error)
}

// ConversionSvcFacade combines all conversion-related service interfaces
type ConversionSvcFacade interface {
	ConversionSvc
	ConversionLogReaderSvc
}
