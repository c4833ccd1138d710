package models

import (
	"github.com/shopspring/decimal"
)

// Currency is a row of the currencies table.
type Currency struct {
	ID                int64               `db:"id"`
	Code              string              `db:"code"`
	Symbol            string              `db:"symbol"`
	Name              *string             `db:"name"`
	Rate              decimal.Decimal     `db:"rate"`
	IsAuto            bool                `db:"is_auto"`
	Fee               decimal.NullDecimal `db:"fee"`
	IsDefault         bool                `db:"is_default"`
	CountryTaxonomyID *int64              `db:"country_taxonomy_id"`
	IsActive          bool                `db:"is_active"`
	Timestamps
}
