package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	"github.com/SscSPs/multi_currency_app/internal/models"
	"github.com/SscSPs/multi_currency_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const (
	pgUniqueViolation        = "23505"
	defaultCurrencyIndexName = "uq_atu_multicurrency_currencies_default"
)

// querier is satisfied by both the pool and a transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryWithTx {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepositoryWithTx = (*PgxCurrencyRepository)(nil)

func (r *PgxCurrencyRepository) findOne(ctx context.Context, q querier, where string, args ...any) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM ` + tableCurrencies + ` WHERE ` + where
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query currency: %w", err)
	}
	modelCurr, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan currency: %w", err)
	}
	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// FindCurrencyByID retrieves a currency by its identifier.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID int64) (*domain.Currency, error) {
	return r.findOne(ctx, r.Pool, `id = $1`, currencyID)
}

// FindCurrencyByCode retrieves a currency by code, ignoring case.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	return r.findOne(ctx, r.Pool, `UPPER(code) = UPPER($1)`, strings.TrimSpace(currencyCode))
}

// FindDefaultCurrency retrieves the default currency.
func (r *PgxCurrencyRepository) FindDefaultCurrency(ctx context.Context) (*domain.Currency, error) {
	return r.findOne(ctx, r.Pool, `is_default = TRUE`)
}

// ListCurrencies retrieves currencies matching the filter.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context, filter domain.CurrencyFilter) ([]domain.Currency, error) {
	var conditions []string
	var args []any

	if filter.Active {
		conditions = append(conditions, `is_active = TRUE`)
	}
	if filter.Default {
		conditions = append(conditions, `is_default = TRUE`)
	}
	if filter.Auto {
		conditions = append(conditions, `is_auto = TRUE`)
	}
	if filter.Manual {
		conditions = append(conditions, `is_auto = FALSE`)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		args = append(args, "%"+search+"%")
		n := strconv.Itoa(len(args))
		conditions = append(conditions, `(code ILIKE $`+n+` OR symbol ILIKE $`+n+` OR name ILIKE $`+n+`)`)
	}

	query := `SELECT ` + currencyColumns + ` FROM ` + tableCurrencies
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += ` LIMIT $` + strconv.Itoa(len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		query += ` OFFSET $` + strconv.Itoa(len(args))
	}

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	modelCurrencies, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}
	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

// UpdateCurrencyIdentity overwrites code and symbol of a currency.
func (r *PgxCurrencyRepository) UpdateCurrencyIdentity(ctx context.Context, currencyID int64, code, symbol string) error {
	query := `UPDATE ` + tableCurrencies + ` SET code = $2, symbol = $3, updated_at = NOW() WHERE id = $1`
	tag, err := r.Pool.Exec(ctx, query, currencyID, code, symbol)
	if err != nil {
		if cerr := uniqueViolationError(err, code); cerr != nil {
			return cerr
		}
		return fmt.Errorf("failed to update currency %d identity: %w", currencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// LockCurrencyTableInTx takes a transaction-scoped advisory lock.
func (r *PgxCurrencyRepository) LockCurrencyTableInTx(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, currencyWriteLockKey); err != nil {
		return fmt.Errorf("failed to acquire currency write lock: %w", err)
	}
	return nil
}

// FindCurrencyByIDForUpdateInTx selects a currency and locks its row.
func (r *PgxCurrencyRepository) FindCurrencyByIDForUpdateInTx(ctx context.Context, tx pgx.Tx, currencyID int64) (*domain.Currency, error) {
	return r.findOne(ctx, tx, `id = $1 FOR UPDATE`, currencyID)
}

// FindDefaultCurrencyInTx retrieves the default currency inside the transaction.
func (r *PgxCurrencyRepository) FindDefaultCurrencyInTx(ctx context.Context, tx pgx.Tx) (*domain.Currency, error) {
	return r.findOne(ctx, tx, `is_default = TRUE`)
}

// CodeExistsInTx reports whether a currency other than excludeID uses code.
func (r *PgxCurrencyRepository) CodeExistsInTx(ctx context.Context, tx pgx.Tx, code string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM ` + tableCurrencies + ` WHERE UPPER(code) = UPPER($1) AND id <> $2)`
	var exists bool
	if err := tx.QueryRow(ctx, query, code, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check currency code %s: %w", code, err)
	}
	return exists, nil
}

// InsertCurrencyInTx persists a new currency.
func (r *PgxCurrencyRepository) InsertCurrencyInTx(ctx context.Context, tx pgx.Tx, currency domain.Currency) (*domain.Currency, error) {
	m := mapping.ToModelCurrency(currency)
	query := `
		INSERT INTO ` + tableCurrencies + ` (code, symbol, name, rate, is_auto, fee, is_default, country_taxonomy_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING ` + currencyColumns

	rows, err := tx.Query(ctx, query,
		m.Code,
		m.Symbol,
		m.Name,
		m.Rate,
		m.IsAuto,
		m.Fee,
		m.IsDefault,
		m.CountryTaxonomyID,
		m.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert currency %s: %w", m.Code, err)
	}
	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		if cerr := uniqueViolationError(err, m.Code); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("failed to insert currency %s: %w", m.Code, err)
	}
	d := mapping.ToDomainCurrency(saved)
	return &d, nil
}

// UpdateCurrencyInTx overwrites the mutable columns of a currency. The default
// flag is never changed here.
func (r *PgxCurrencyRepository) UpdateCurrencyInTx(ctx context.Context, tx pgx.Tx, currency domain.Currency) (*domain.Currency, error) {
	m := mapping.ToModelCurrency(currency)
	query := `
		UPDATE ` + tableCurrencies + `
		SET code = $2, symbol = $3, name = $4, rate = $5, is_auto = $6, fee = $7,
		    country_taxonomy_id = $8, is_active = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + currencyColumns

	rows, err := tx.Query(ctx, query,
		m.ID,
		m.Code,
		m.Symbol,
		m.Name,
		m.Rate,
		m.IsAuto,
		m.Fee,
		m.CountryTaxonomyID,
		m.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update currency %d: %w", m.ID, err)
	}
	saved, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Currency])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		if cerr := uniqueViolationError(err, m.Code); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("failed to update currency %d: %w", m.ID, err)
	}
	d := mapping.ToDomainCurrency(saved)
	return &d, nil
}

// UpdateRateInTx sets the stored rate of a currency.
func (r *PgxCurrencyRepository) UpdateRateInTx(ctx context.Context, tx pgx.Tx, currencyID int64, rate decimal.Decimal) error {
	query := `UPDATE ` + tableCurrencies + ` SET rate = $2, updated_at = NOW() WHERE id = $1`
	tag, err := tx.Exec(ctx, query, currencyID, rate)
	if err != nil {
		return fmt.Errorf("failed to update rate for currency %d: %w", currencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCurrencyInTx removes a currency. Foreign keys cascade to both logs.
func (r *PgxCurrencyRepository) DeleteCurrencyInTx(ctx context.Context, tx pgx.Tx, currencyID int64) error {
	tag, err := tx.Exec(ctx, `DELETE FROM `+tableCurrencies+` WHERE id = $1`, currencyID)
	if err != nil {
		return fmt.Errorf("failed to delete currency %d: %w", currencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// uniqueViolationError translates a unique index violation into a domain error.
// It returns nil for any other error.
func uniqueViolationError(err error, code string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return nil
	}
	if pgErr.ConstraintName == defaultCurrencyIndexName {
		return apperrors.NewDomainError("a default currency already exists")
	}
	return apperrors.NewDuplicateError(fmt.Sprintf("currency code %s already exists", code))
}
