package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateLog is an append-only snapshot of a currency rate at the moment it was set.
type RateLog struct {
	ID         int64           `json:"id"`
	CurrencyID int64           `json:"currencyId"`
	Rate       decimal.Decimal `json:"rate"`
	Source     RateSource      `json:"source"`
	FetchedAt  *time.Time      `json:"fetchedAt,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}
