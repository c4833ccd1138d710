package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	"github.com/SscSPs/multi_currency_app/internal/models"
	"github.com/SscSPs/multi_currency_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultRateLogLimit = 50

type PgxRateLogRepository struct {
	BaseRepository
}

func newPgxRateLogRepository(pool *pgxpool.Pool) portsrepo.RateLogRepository {
	return &PgxRateLogRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RateLogRepository = (*PgxRateLogRepository)(nil)

// InsertRateLogInTx appends a rate snapshot. Rows are never updated.
func (r *PgxRateLogRepository) InsertRateLogInTx(ctx context.Context, tx pgx.Tx, entry domain.RateLog) (*domain.RateLog, error) {
	m := mapping.ToModelRateLog(entry)
	query := `
		INSERT INTO ` + tableRatesLog + ` (currency_id, rate, source, fetched_at, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING ` + rateLogColumns

	rows, err := tx.Query(ctx, query, m.CurrencyID, m.Rate, m.Source, m.FetchedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert rate log for currency %d: %w", m.CurrencyID, err)
	}
	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.CurrencyRatesLog])
	if err != nil {
		return nil, fmt.Errorf("failed to insert rate log for currency %d: %w", m.CurrencyID, err)
	}
	d := mapping.ToDomainRateLog(saved)
	return &d, nil
}

// ListRateLogs returns the history of one currency, newest first.
func (r *PgxRateLogRepository) ListRateLogs(ctx context.Context, currencyID int64, limit, offset int) ([]domain.RateLog, error) {
	if limit <= 0 {
		limit = defaultRateLogLimit
	}
	if offset < 0 {
		offset = 0
	}
	query := `
		SELECT ` + rateLogColumns + `
		FROM ` + tableRatesLog + `
		WHERE currency_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.Pool.Query(ctx, query, currencyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query rate logs for currency %d: %w", currencyID, err)
	}
	logs, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.CurrencyRatesLog])
	if err != nil {
		return nil, fmt.Errorf("failed to scan rate logs for currency %d: %w", currencyID, err)
	}
	return mapping.ToDomainRateLogSlice(logs), nil
}
