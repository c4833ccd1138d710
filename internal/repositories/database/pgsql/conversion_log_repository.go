package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	"github.com/SscSPs/multi_currency_app/internal/models"
	"github.com/SscSPs/multi_currency_app/internal/utils/mapping"
	"github.com/SscSPs/multi_currency_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultConversionLogLimit = 20

type PgxConversionLogRepository struct {
	BaseRepository
}

func newPgxConversionLogRepository(pool *pgxpool.Pool) portsrepo.ConversionLogRepository {
	return &PgxConversionLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ConversionLogRepository = (*PgxConversionLogRepository)(nil)

// InsertConversionLog appends one audit record.
func (r *PgxConversionLogRepository) InsertConversionLog(ctx context.Context, entry domain.ConversionLog) (*domain.ConversionLog, error) {
	m := mapping.ToModelConversionLog(entry)
	query := `
		INSERT INTO ` + tableConversionLog + ` (entity_type, entity_id, context, base_currency_code, target_currency_code,
			base_amount, converted_amount, rate_used, fee_applied, rate_source, currency_id, user_id, occurred_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		RETURNING ` + conversionLogColumns

	rows, err := r.Pool.Query(ctx, query,
		m.EntityType,
		m.EntityID,
		m.Context,
		m.BaseCurrencyCode,
		m.TargetCurrencyCode,
		m.BaseAmount,
		m.ConvertedAmount,
		m.RateUsed,
		m.FeeApplied,
		m.RateSource,
		m.CurrencyID,
		m.UserID,
		m.OccurredAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert conversion log: %w", err)
	}
	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.CurrencyConversionLog])
	if err != nil {
		return nil, fmt.Errorf("failed to insert conversion log: %w", err)
	}
	d := mapping.ToDomainConversionLog(saved)
	return &d, nil
}

// ListConversionLogs returns audit records newest first. The returned token
// points at the last row of the page; nil means there is no next page.
func (r *PgxConversionLogRepository) ListConversionLogs(ctx context.Context, filter domain.ConversionLogFilter) ([]domain.ConversionLog, *string, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultConversionLogLimit
	}
	// Fetch one extra row to detect a next page.
	fetchLimit := limit + 1

	var conditions []string
	var args []any

	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions,
			`(entity_type ILIKE $`+n+` OR base_currency_code ILIKE $`+n+` OR target_currency_code ILIKE $`+n+` OR context ILIKE $`+n+`)`)
	}

	lastAt, lastID, hasCursor, err := decodeNextToken(filter.NextToken)
	if err != nil {
		return nil, nil, err
	}
	if hasCursor {
		args = append(args, lastAt, lastID)
		conditions = append(conditions,
			`(occurred_at, id) < ($`+strconv.Itoa(len(args)-1)+`, $`+strconv.Itoa(len(args))+`)`)
	}

	query := `SELECT ` + conversionLogColumns + ` FROM ` + tableConversionLog
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	args = append(args, fetchLimit)
	query += ` ORDER BY occurred_at DESC, id DESC LIMIT $` + strconv.Itoa(len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query conversion logs: %w", err)
	}
	modelLogs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CurrencyConversionLog])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan conversion logs: %w", err)
	}

	var nextToken *string
	if len(modelLogs) > limit {
		last := modelLogs[limit-1]
		token := pagination.EncodeToken(last.OccurredAt, last.ID)
		nextToken = &token
		modelLogs = modelLogs[:limit]
	}
	return mapping.ToDomainConversionLogSlice(modelLogs), nextToken, nil
}

// decodeNextToken parses an optional page cursor. A malformed token is a validation error.
func decodeNextToken(token *string) (time.Time, int64, bool, error) {
	if token == nil || *token == "" {
		return time.Time{}, 0, false, nil
	}
	at, id, err := pagination.DecodeToken(*token)
	if err != nil {
		return time.Time{}, 0, false, apperrors.NewValidationError("invalid nextToken")
	}
	return at, id, true, nil
}
