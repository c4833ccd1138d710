package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCommerceSettingsRepository talks to the key/value settings table of the
// external commerce application. The table is not created by our migrations.
type PgxCommerceSettingsRepository struct {
	BaseRepository
	table string
	now   func() time.Time
}

func newPgxCommerceSettingsRepository(pool *pgxpool.Pool, table string) portsrepo.CommerceSettingsRepository {
	return &PgxCommerceSettingsRepository{
		BaseRepository: BaseRepository{Pool: pool},
		table:          table,
		now:            time.Now,
	}
}

var _ portsrepo.CommerceSettingsRepository = (*PgxCommerceSettingsRepository)(nil)

func (r *PgxCommerceSettingsRepository) quotedTable() string {
	return pgx.Identifier{r.table}.Sanitize()
}

// TableExists reports whether the external table is present in the search path.
func (r *PgxCommerceSettingsRepository) TableExists(ctx context.Context) (bool, error) {
	var exists bool
	if err := r.Pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, r.quotedTable()).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", r.table, err)
	}
	return exists, nil
}

// GetCurrencySettings reads the currency code and symbol keys.
func (r *PgxCommerceSettingsRepository) GetCurrencySettings(ctx context.Context) (domain.CommerceCurrency, error) {
	query := `SELECT key, value FROM ` + r.quotedTable() + ` WHERE key IN ($1, $2)`
	rows, err := r.Pool.Query(ctx, query, domain.CommerceCurrencyCodeKey, domain.CommerceCurrencySymbolKey)
	if err != nil {
		return domain.CommerceCurrency{}, fmt.Errorf("failed to query %s: %w", r.table, err)
	}
	defer rows.Close()

	var out domain.CommerceCurrency
	for rows.Next() {
		var key string
		var value *string
		if err := rows.Scan(&key, &value); err != nil {
			return domain.CommerceCurrency{}, fmt.Errorf("failed to scan %s row: %w", r.table, err)
		}
		if value == nil {
			continue
		}
		switch key {
		case domain.CommerceCurrencyCodeKey:
			out.Code = *value
		case domain.CommerceCurrencySymbolKey:
			out.Symbol = *value
		}
	}
	if err := rows.Err(); err != nil {
		return domain.CommerceCurrency{}, fmt.Errorf("error iterating %s rows: %w", r.table, err)
	}
	return out, nil
}

// UpsertSetting updates the row for key, inserting it when absent.
func (r *PgxCommerceSettingsRepository) UpsertSetting(ctx context.Context, key, value string) error {
	now := r.now()
	tag, err := r.Pool.Exec(ctx,
		`UPDATE `+r.quotedTable()+` SET value = $2, updated_at = $3 WHERE key = $1`,
		key, value, now)
	if err != nil {
		return fmt.Errorf("failed to update %s key %s: %w", r.table, key, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}
	if _, err := r.Pool.Exec(ctx,
		`INSERT INTO `+r.quotedTable()+` (key, value, updated_at) VALUES ($1, $2, $3)`,
		key, value, now); err != nil {
		return fmt.Errorf("failed to insert %s key %s: %w", r.table, key, err)
	}
	return nil
}
