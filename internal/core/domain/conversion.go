package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Well-known conversion contexts. Other values are accepted and stored as given.
const (
	ConversionContextSave     = "save"
	ConversionContextPreview  = "preview"
	ConversionContextCheckout = "checkout"
	ConversionContextReport   = "report"
)

const (
	DefaultRoundPrecision = 2
	MaxRoundPrecision     = 10
	MaxEntityTypeLength   = 50
	MaxContextLength      = 50
)

// Audit amount columns are NUMERIC(28, 10).
const (
	MaxAmountScale         = MaxRoundPrecision
	MaxAmountIntegerDigits = 18
)

var auditAmountLimit = decimal.New(1, MaxAmountIntegerDigits)

// AmountFitsAuditLog reports whether amount can be stored in the audit log
// without overflow or rounding.
func AmountFitsAuditLog(amount decimal.Decimal) bool {
	return amount.Abs().LessThan(auditAmountLimit) && amount.Equal(amount.Truncate(MaxAmountScale))
}

var policyValidator = validator.New()

// ConversionPolicy is the runtime-configurable behaviour of the conversion engine.
type ConversionPolicy struct {
	ApplyFees      bool `json:"apply_fees"`
	LogConversions bool `json:"log_conversions"`
	RoundPrecision int  `json:"round_precision" validate:"min=0,max=10"`
}

// DefaultConversionPolicy mirrors the shipped configuration.
func DefaultConversionPolicy() ConversionPolicy {
	return ConversionPolicy{
		ApplyFees:      true,
		LogConversions: true,
		RoundPrecision: DefaultRoundPrecision,
	}
}

// Validate checks the policy ranges.
func (p ConversionPolicy) Validate() error {
	return policyValidator.Struct(p)
}

// AsMap returns the policy in the shape it is persisted under the "conversion" key.
func (p ConversionPolicy) AsMap() map[string]any {
	return map[string]any{
		"apply_fees":      p.ApplyFees,
		"log_conversions": p.LogConversions,
		"round_precision": p.RoundPrecision,
	}
}

// ConversionRequest carries the inputs of a single conversion.
type ConversionRequest struct {
	EntityType         string
	EntityID           *int64
	Context            string
	BaseCurrencyCode   string
	TargetCurrencyCode string
	BaseAmount         decimal.Decimal
	UserID             *int64
}

// ConversionResult is the outcome of a conversion.
type ConversionResult struct {
	ConvertedAmount decimal.Decimal
	RateUsed        decimal.Decimal
	FeeApplied      decimal.NullDecimal
	RateSource      RateSource
	CurrencyID      int64
	Precision       int32
	Logged          bool
}

// ComputeConversion converts amount into target using the stored rate, adds the
// flat fee when the policy allows it, and rounds half away from zero.
// RateUsed is the stored rate, never rounded.
func ComputeConversion(amount decimal.Decimal, target Currency, policy ConversionPolicy) ConversionResult {
	converted := amount.Mul(target.Rate)

	fee := decimal.NullDecimal{}
	if policy.ApplyFees && target.Fee.Valid {
		fee = target.Fee
		converted = converted.Add(fee.Decimal)
	}

	precision := int32(policy.RoundPrecision)
	return ConversionResult{
		ConvertedAmount: converted.Round(precision),
		RateUsed:        target.Rate,
		FeeApplied:      fee,
		RateSource:      target.RateSource(),
		CurrencyID:      target.ID,
		Precision:       precision,
	}
}

// ConversionLog is an append-only audit record of one conversion.
type ConversionLog struct {
	ID                 int64               `json:"id"`
	EntityType         string              `json:"entityType"`
	EntityID           *int64              `json:"entityId,omitempty"`
	Context            string              `json:"context"`
	BaseCurrencyCode   string              `json:"baseCurrencyCode"`
	TargetCurrencyCode string              `json:"targetCurrencyCode"`
	BaseAmount         decimal.Decimal     `json:"baseAmount"`
	ConvertedAmount    decimal.Decimal     `json:"convertedAmount"`
	RateUsed           decimal.Decimal     `json:"rateUsed"`
	FeeApplied         decimal.NullDecimal `json:"feeApplied"`
	RateSource         RateSource          `json:"rateSource"`
	CurrencyID         int64               `json:"currencyId"`
	UserID             *int64              `json:"userId,omitempty"`
	OccurredAt         time.Time           `json:"occurredAt"`
	CreatedAt          time.Time           `json:"createdAt"`
}

// ConversionLogFilter narrows a conversion log listing. Results are newest first.
type ConversionLogFilter struct {
	Search    string
	Limit     int
	NextToken *string
}
