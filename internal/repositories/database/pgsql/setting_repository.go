package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	"github.com/SscSPs/multi_currency_app/internal/models"
	"github.com/SscSPs/multi_currency_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSettingRepository struct {
	BaseRepository
}

func newPgxSettingRepository(pool *pgxpool.Pool) portsrepo.SettingRepository {
	return &PgxSettingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SettingRepository = (*PgxSettingRepository)(nil)

// FindSetting retrieves a setting row by key.
func (r *PgxSettingRepository) FindSetting(ctx context.Context, key string) (*domain.Setting, error) {
	query := `SELECT ` + settingColumns + ` FROM ` + tableSettings + ` WHERE key = $1`
	rows, err := r.Pool.Query(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query setting %s: %w", key, err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Setting])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan setting %s: %w", key, err)
	}
	d := mapping.ToDomainSetting(m)
	return &d, nil
}

// ListSettings returns all stored settings ordered by key.
func (r *PgxSettingRepository) ListSettings(ctx context.Context) ([]domain.Setting, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+settingColumns+` FROM `+tableSettings+` ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("failed to query settings: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Setting])
	if err != nil {
		return nil, fmt.Errorf("failed to scan settings: %w", err)
	}
	settings := make([]domain.Setting, len(ms))
	for i, m := range ms {
		settings[i] = mapping.ToDomainSetting(m)
	}
	return settings, nil
}

// UpsertSetting creates or overwrites the row for key.
func (r *PgxSettingRepository) UpsertSetting(ctx context.Context, key string, value *string) error {
	query := `
		INSERT INTO ` + tableSettings + ` (key, value, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at`
	if _, err := r.Pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert setting %s: %w", key, err)
	}
	return nil
}
