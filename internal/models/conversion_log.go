package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyConversionLog is a row of the append-only conversion audit table.
type CurrencyConversionLog struct {
	ID                 int64               `db:"id"`
	EntityType         string              `db:"entity_type"`
	EntityID           *int64              `db:"entity_id"`
	Context            string              `db:"context"`
	BaseCurrencyCode   string              `db:"base_currency_code"`
	TargetCurrencyCode string              `db:"target_currency_code"`
	BaseAmount         decimal.Decimal     `db:"base_amount"`
	ConvertedAmount    decimal.Decimal     `db:"converted_amount"`
	RateUsed           decimal.Decimal     `db:"rate_used"`
	FeeApplied         decimal.NullDecimal `db:"fee_applied"`
	RateSource         string              `db:"rate_source"`
	CurrencyID         int64               `db:"currency_id"`
	UserID             *int64              `db:"user_id"`
	OccurredAt         time.Time           `db:"occurred_at"`
	CreatedAt          time.Time           `db:"created_at"`
}
