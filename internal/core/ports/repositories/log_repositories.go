package repositories

import (
	"context"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// RateLogRepository is the append-only rate history.
type RateLogRepository interface {
	// InsertRateLogInTx appends a rate snapshot inside the caller's transaction.
	InsertRateLogInTx(ctx context.Context, tx pgx.Tx, entry domain.RateLog) (*domain.RateLog, error)

	// ListRateLogs returns the history of one currency, newest first.
	ListRateLogs(ctx context.Context, currencyID int64, limit, offset int) ([]domain.RateLog, error)
}

// ConversionLogRepository is the append-only conversion audit log.
type ConversionLogRepository interface {
	// InsertConversionLog appends one audit record.
	InsertConversionLog(ctx context.Context, entry domain.ConversionLog) (*domain.ConversionLog, error)

	// ListConversionLogs returns audit records newest first, keyset paginated.
	ListConversionLogs(ctx context.Context, filter domain.ConversionLogFilter) ([]domain.ConversionLog, *string, error)
}
