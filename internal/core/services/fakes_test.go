package services_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portsrepo "github.com/SscSPs/multi_currency_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// storeState is one snapshot of the fake currency tables.
type storeState struct {
	currencies map[int64]domain.Currency
	rateLogs   []domain.RateLog
	nextID     int64
	nextLogID  int64
}

func (s storeState) clone() storeState {
	out := storeState{
		currencies: make(map[int64]domain.Currency, len(s.currencies)),
		rateLogs:   append([]domain.RateLog(nil), s.rateLogs...),
		nextID:     s.nextID,
		nextLogID:  s.nextLogID,
	}
	for id, c := range s.currencies {
		out.currencies[id] = c
	}
	return out
}

// fakeCurrencyStore is an in-memory currency and rate log repository. Writes
// made through the InTx methods only become visible after Commit.
type fakeCurrencyStore struct {
	mu        sync.Mutex
	committed storeState
	pending   *storeState

	failRateLog error
	failUpdate  error
}

func newFakeCurrencyStore() *fakeCurrencyStore {
	return &fakeCurrencyStore{committed: storeState{currencies: map[int64]domain.Currency{}}}
}

var (
	_ portsrepo.CurrencyRepositoryWithTx = (*fakeCurrencyStore)(nil)
	_ portsrepo.RateLogRepository        = (*fakeCurrencyStore)(nil)
)

func (f *fakeCurrencyStore) Begin(_ context.Context) (pgx.Tx, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.committed.clone()
	f.pending = &state
	return nil, nil
}

func (f *fakeCurrencyStore) Commit(_ context.Context, _ pgx.Tx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending != nil {
		f.committed = *f.pending
		f.pending = nil
	}
	return nil
}

func (f *fakeCurrencyStore) Rollback(_ context.Context, _ pgx.Tx) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = nil
	return nil
}

func (f *fakeCurrencyStore) tx() *storeState {
	if f.pending == nil {
		panic("fake store used outside a transaction")
	}
	return f.pending
}

func findDefault(state *storeState) (*domain.Currency, error) {
	for _, c := range state.currencies {
		if c.IsDefault {
			out := c
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError("default currency not found")
}

func (f *fakeCurrencyStore) FindCurrencyByID(_ context.Context, currencyID int64) (*domain.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.committed.currencies[currencyID]
	if !ok {
		return nil, apperrors.NewNotFoundError("currency not found")
	}
	return &c, nil
}

func (f *fakeCurrencyStore) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.committed.currencies {
		if strings.EqualFold(c.Code, currencyCode) {
			out := c
			return &out, nil
		}
	}
	return nil, apperrors.NewNotFoundError("currency not found")
}

func (f *fakeCurrencyStore) FindDefaultCurrency(_ context.Context) (*domain.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return findDefault(&f.committed)
}

func (f *fakeCurrencyStore) ListCurrencies(_ context.Context, filter domain.CurrencyFilter) ([]domain.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Currency
	for _, c := range f.committed.currencies {
		if filter.Active && !c.IsActive {
			continue
		}
		if filter.Default && !c.IsDefault {
			continue
		}
		if filter.Auto && !c.IsAuto {
			continue
		}
		if filter.Manual && c.IsAuto {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeCurrencyStore) UpdateCurrencyIdentity(_ context.Context, currencyID int64, code, symbol string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.committed.currencies[currencyID]
	if !ok {
		return apperrors.NewNotFoundError("currency not found")
	}
	c.Code, c.Symbol = code, symbol
	f.committed.currencies[currencyID] = c
	return nil
}

func (f *fakeCurrencyStore) LockCurrencyTableInTx(_ context.Context, _ pgx.Tx) error {
	return nil
}

func (f *fakeCurrencyStore) FindCurrencyByIDForUpdateInTx(_ context.Context, _ pgx.Tx, currencyID int64) (*domain.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.tx().currencies[currencyID]
	if !ok {
		return nil, apperrors.NewNotFoundError("currency not found")
	}
	return &c, nil
}

func (f *fakeCurrencyStore) FindDefaultCurrencyInTx(_ context.Context, _ pgx.Tx) (*domain.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return findDefault(f.tx())
}

func (f *fakeCurrencyStore) CodeExistsInTx(_ context.Context, _ pgx.Tx, code string, excludeID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, c := range f.tx().currencies {
		if id != excludeID && strings.EqualFold(c.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCurrencyStore) InsertCurrencyInTx(_ context.Context, _ pgx.Tx, currency domain.Currency) (*domain.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.tx()
	if currency.IsDefault {
		if _, err := findDefault(state); err == nil {
			return nil, apperrors.NewDomainError("a default currency already exists")
		}
	}
	state.nextID++
	currency.ID = state.nextID
	now := time.Now()
	currency.CreatedAt, currency.UpdatedAt = now, now
	state.currencies[currency.ID] = currency
	return &currency, nil
}

func (f *fakeCurrencyStore) UpdateCurrencyInTx(_ context.Context, _ pgx.Tx, currency domain.Currency) (*domain.Currency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return nil, f.failUpdate
	}
	state := f.tx()
	if _, ok := state.currencies[currency.ID]; !ok {
		return nil, apperrors.NewNotFoundError("currency not found")
	}
	currency.UpdatedAt = time.Now()
	state.currencies[currency.ID] = currency
	return &currency, nil
}

func (f *fakeCurrencyStore) UpdateRateInTx(_ context.Context, _ pgx.Tx, currencyID int64, rate decimal.Decimal) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate != nil {
		return f.failUpdate
	}
	state := f.tx()
	c, ok := state.currencies[currencyID]
	if !ok {
		return apperrors.NewNotFoundError("currency not found")
	}
	c.Rate = rate
	state.currencies[currencyID] = c
	return nil
}

func (f *fakeCurrencyStore) DeleteCurrencyInTx(_ context.Context, _ pgx.Tx, currencyID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	state := f.tx()
	if _, ok := state.currencies[currencyID]; !ok {
		return apperrors.NewNotFoundError("currency not found")
	}
	delete(state.currencies, currencyID)
	kept := state.rateLogs[:0]
	for _, l := range state.rateLogs {
		if l.CurrencyID != currencyID {
			kept = append(kept, l)
		}
	}
	state.rateLogs = kept
	return nil
}

func (f *fakeCurrencyStore) InsertRateLogInTx(_ context.Context, _ pgx.Tx, entry domain.RateLog) (*domain.RateLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRateLog != nil {
		return nil, f.failRateLog
	}
	state := f.tx()
	state.nextLogID++
	entry.ID = state.nextLogID
	entry.CreatedAt = time.Now()
	state.rateLogs = append(state.rateLogs, entry)
	return &entry, nil
}

func (f *fakeCurrencyStore) ListRateLogs(_ context.Context, currencyID int64, _, _ int) ([]domain.RateLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.RateLog
	for i := len(f.committed.rateLogs) - 1; i >= 0; i-- {
		if f.committed.rateLogs[i].CurrencyID == currencyID {
			out = append(out, f.committed.rateLogs[i])
		}
	}
	return out, nil
}

// defaultCount returns how many committed currencies carry the default flag.
func (f *fakeCurrencyStore) defaultCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.committed.currencies {
		if c.IsDefault {
			n++
		}
	}
	return n
}

func (f *fakeCurrencyStore) rateLogCount(currencyID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, l := range f.committed.rateLogs {
		if l.CurrencyID == currencyID {
			n++
		}
	}
	return n
}

// put stores c directly in the committed state, assigning an id when missing.
func (f *fakeCurrencyStore) put(c domain.Currency) domain.Currency {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c.ID == 0 {
		f.committed.nextID++
		c.ID = f.committed.nextID
	}
	f.committed.currencies[c.ID] = c
	return c
}

// fakeCommerceRepo is an in-memory external commerce settings table.
type fakeCommerceRepo struct {
	mu        sync.Mutex
	exists    bool
	values    map[string]string
	writes    int
	failWrite error
	failRead  error
}

func newFakeCommerceRepo() *fakeCommerceRepo {
	return &fakeCommerceRepo{exists: true, values: map[string]string{}}
}

var _ portsrepo.CommerceSettingsRepository = (*fakeCommerceRepo)(nil)

func (f *fakeCommerceRepo) TableExists(_ context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.exists, nil
}

func (f *fakeCommerceRepo) GetCurrencySettings(_ context.Context) (domain.CommerceCurrency, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead != nil {
		return domain.CommerceCurrency{}, f.failRead
	}
	return domain.CommerceCurrency{
		Code:   f.values[domain.CommerceCurrencyCodeKey],
		Symbol: f.values[domain.CommerceCurrencySymbolKey],
	}, nil
}

func (f *fakeCommerceRepo) UpsertSetting(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite != nil {
		return f.failWrite
	}
	f.values[key] = value
	f.writes++
	return nil
}

func (f *fakeCommerceRepo) set(code, symbol string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[domain.CommerceCurrencyCodeKey] = code
	f.values[domain.CommerceCurrencySymbolKey] = symbol
}

func (f *fakeCommerceRepo) snapshot() (map[string]string, int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.values))
	for k, v := range f.values {
		out[k] = v
	}
	return out, f.writes
}

// fakeSettingRepo is an in-memory settings table.
type fakeSettingRepo struct {
	mu        sync.Mutex
	rows      map[string]*string
	writes    int
	failRead  error
	failWrite error
}

func newFakeSettingRepo() *fakeSettingRepo {
	return &fakeSettingRepo{rows: map[string]*string{}}
}

var _ portsrepo.SettingRepository = (*fakeSettingRepo)(nil)

func (f *fakeSettingRepo) FindSetting(_ context.Context, key string) (*domain.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead != nil {
		return nil, f.failRead
	}
	value, ok := f.rows[key]
	if !ok {
		return nil, apperrors.NewNotFoundError("setting not found")
	}
	return &domain.Setting{Key: key, Value: value}, nil
}

func (f *fakeSettingRepo) ListSettings(_ context.Context) ([]domain.Setting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failRead != nil {
		return nil, f.failRead
	}
	out := make([]domain.Setting, 0, len(f.rows))
	for key, value := range f.rows {
		out = append(out, domain.Setting{Key: key, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}

func (f *fakeSettingRepo) UpsertSetting(_ context.Context, key string, value *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite != nil {
		return f.failWrite
	}
	f.rows[key] = value
	f.writes++
	return nil
}

func (f *fakeSettingRepo) raw(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	value, ok := f.rows[key]
	if !ok || value == nil {
		return "", false
	}
	return *value, true
}
