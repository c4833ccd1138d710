package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRatesLog is a row of the append-only rate history table.
type CurrencyRatesLog struct {
	ID         int64           `db:"id"`
	CurrencyID int64           `db:"currency_id"`
	Rate       decimal.Decimal `db:"rate"`
	Source     string          `db:"source"`
	FetchedAt  *time.Time      `db:"fetched_at"`
	CreatedAt  time.Time       `db:"created_at"`
}
