package dto

import (
	"time"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	"github.com/SscSPs/multi_currency_app/internal/utils"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the inputs of a conversion.
type ConvertRequest struct {
	EntityType         string           `json:"entityType" binding:"required,max=50"`
	EntityID           *int64           `json:"entityId,omitempty"`
	Context            string           `json:"context" binding:"required,max=50" example:"preview"`
	BaseCurrencyCode   string           `json:"baseCurrencyCode" binding:"required,max=4"`
	TargetCurrencyCode string           `json:"targetCurrencyCode" binding:"required,max=4"`
	BaseAmount         *decimal.Decimal `json:"baseAmount" binding:"required" swaggertype:"string" example:"10.00"`
}

// ToDomain builds the domain request. userID comes from the authenticated caller.
func (r ConvertRequest) ToDomain(userID *int64) domain.ConversionRequest {
	req := domain.ConversionRequest{
		EntityType:         r.EntityType,
		EntityID:           r.EntityID,
		Context:            r.Context,
		BaseCurrencyCode:   r.BaseCurrencyCode,
		TargetCurrencyCode: r.TargetCurrencyCode,
		UserID:             userID,
	}
	if r.BaseAmount != nil {
		req.BaseAmount = *r.BaseAmount
	}
	return req
}

// ConversionResponse defines the data returned for a conversion.
type ConversionResponse struct {
	ConvertedAmount string           `json:"convertedAmount" example:"17.00"`
	RateUsed        decimal.Decimal  `json:"rateUsed" swaggertype:"string"`
	FeeApplied      *decimal.Decimal `json:"feeApplied" swaggertype:"string"`
	RateSource      string           `json:"rateSource"`
	Logged          bool             `json:"logged"`
}

// ToConversionResponse converts a domain.ConversionResult. The converted
// amount is rendered with exactly the configured number of decimals.
func ToConversionResponse(res *domain.ConversionResult) ConversionResponse {
	out := ConversionResponse{
		ConvertedAmount: utils.FormatWithPrecision(res.ConvertedAmount, res.Precision),
		RateUsed:        res.RateUsed,
		RateSource:      string(res.RateSource),
		Logged:          res.Logged,
	}
	if res.FeeApplied.Valid {
		fee := res.FeeApplied.Decimal
		out.FeeApplied = &fee
	}
	return out
}

// ListConversionLogsParams are the query parameters of the audit log listing.
type ListConversionLogsParams struct {
	Search    string  `form:"search" binding:"omitempty,max=50"`
	Limit     int     `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ConversionLogResponse defines the data returned for one audit record.
type ConversionLogResponse struct {
	ID                 int64            `json:"id"`
	EntityType         string           `json:"entityType"`
	EntityID           *int64           `json:"entityId,omitempty"`
	Context            string           `json:"context"`
	BaseCurrencyCode   string           `json:"baseCurrencyCode"`
	TargetCurrencyCode string           `json:"targetCurrencyCode"`
	BaseAmount         decimal.Decimal  `json:"baseAmount" swaggertype:"string"`
	ConvertedAmount    decimal.Decimal  `json:"convertedAmount" swaggertype:"string"`
	RateUsed           decimal.Decimal  `json:"rateUsed" swaggertype:"string"`
	FeeApplied         *decimal.Decimal `json:"feeApplied" swaggertype:"string"`
	RateSource         string           `json:"rateSource"`
	CurrencyID         int64            `json:"currencyId"`
	UserID             *int64           `json:"userId,omitempty"`
	OccurredAt         time.Time        `json:"occurredAt"`
}

// ListConversionLogsResponse wraps a page of audit records.
type ListConversionLogsResponse struct {
	Logs      []ConversionLogResponse `json:"logs"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ToListConversionLogsResponse converts a page of domain.ConversionLog.
func ToListConversionLogsResponse(logs []domain.ConversionLog, nextToken *string) ListConversionLogsResponse {
	res := make([]ConversionLogResponse, len(logs))
	for i, l := range logs {
		res[i] = ConversionLogResponse{
			ID:                 l.ID,
			EntityType:         l.EntityType,
			EntityID:           l.EntityID,
			Context:            l.Context,
			BaseCurrencyCode:   l.BaseCurrencyCode,
			TargetCurrencyCode: l.TargetCurrencyCode,
			BaseAmount:         l.BaseAmount,
			ConvertedAmount:    l.ConvertedAmount,
			RateUsed:           l.RateUsed,
			RateSource:         string(l.RateSource),
			CurrencyID:         l.CurrencyID,
			UserID:             l.UserID,
			OccurredAt:         l.OccurredAt,
		}
		if l.FeeApplied.Valid {
			fee := l.FeeApplied.Decimal
			res[i].FeeApplied = &fee
		}
	}
	return ListConversionLogsResponse{Logs: res, NextToken: nextToken}
}
