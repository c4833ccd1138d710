package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	"github.com/SscSPs/multi_currency_app/internal/dto"
	"github.com/SscSPs/multi_currency_app/internal/handlers"
	"github.com/SscSPs/multi_currency_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ConversionHandlerTestSuite struct {
	suite.Suite
	router            *gin.Engine
	mockConversionSvc *MockConversionService
}

func (suite *ConversionHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(testJWTSecret))
	suite.mockConversionSvc = new(MockConversionService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterConversionRoutes(v1, suite.mockConversionSvc)
}

func (suite *ConversionHandlerTestSuite) request(method, url, subject, body string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+generateTestToken(subject))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

const convertBody = `{"entityType":"order","entityId":12,"context":"checkout","baseCurrencyCode":"USD","targetCurrencyCode":"CAD","baseAmount":"10"}`

func (suite *ConversionHandlerTestSuite) TestConvert_Success() {
	result := &domain.ConversionResult{
		ConvertedAmount: decimal.NewFromInt(17),
		RateUsed:        decimal.RequireFromString("1.5"),
		FeeApplied:      decimal.NewNullDecimal(decimal.NewFromInt(2)),
		RateSource:      domain.RateSourceManual,
		CurrencyID:      2,
		Precision:       2,
		Logged:          true,
	}
	suite.mockConversionSvc.On("Convert", mock.Anything, mock.MatchedBy(func(r domain.ConversionRequest) bool {
		return r.EntityType == "order" &&
			r.EntityID != nil && *r.EntityID == 12 &&
			r.TargetCurrencyCode == "CAD" &&
			r.BaseAmount.Equal(decimal.NewFromInt(10)) &&
			r.UserID != nil && *r.UserID == 42
	})).Return(result, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/conversions", "42", convertBody)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("17.00", resp.ConvertedAmount)
	suite.Require().NotNil(resp.FeeApplied)
	suite.True(resp.FeeApplied.Equal(decimal.NewFromInt(2)))
	suite.Equal("manual", resp.RateSource)
	suite.True(resp.Logged)
	suite.mockConversionSvc.AssertExpectations(suite.T())
}

func (suite *ConversionHandlerTestSuite) TestConvert_NonNumericSubjectHasNoUserID() {
	suite.mockConversionSvc.On("Convert", mock.Anything, mock.MatchedBy(func(r domain.ConversionRequest) bool {
		return r.UserID == nil
	})).Return(&domain.ConversionResult{ConvertedAmount: decimal.NewFromInt(15), Precision: 2, RateSource: domain.RateSourceAPI}, nil).Once()

	w := suite.request(http.MethodPost, "/api/v1/conversions", "service-account", convertBody)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("15.00", resp.ConvertedAmount)
	suite.Nil(resp.FeeApplied)
}

func (suite *ConversionHandlerTestSuite) TestConvert_BindingErrors() {
	testCases := []struct {
		name string
		body string
	}{
		{"missing amount", `{"entityType":"order","context":"checkout","baseCurrencyCode":"USD","targetCurrencyCode":"CAD"}`},
		{"missing target", `{"entityType":"order","context":"checkout","baseCurrencyCode":"USD","baseAmount":"10"}`},
		{"target too long", `{"entityType":"order","context":"checkout","baseCurrencyCode":"USD","targetCurrencyCode":"CADXX","baseAmount":"10"}`},
		{"entity type too long", `{"entityType":"` + strings.Repeat("e", 51) + `","context":"checkout","baseCurrencyCode":"USD","targetCurrencyCode":"CAD","baseAmount":"10"}`},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			w := suite.request(http.MethodPost, "/api/v1/conversions", "42", tc.body)
			suite.Equal(http.StatusBadRequest, w.Code)
		})
	}
	suite.mockConversionSvc.AssertNotCalled(suite.T(), "Convert", mock.Anything, mock.Anything)
}

func (suite *ConversionHandlerTestSuite) TestConvert_ServiceErrors() {
	suite.mockConversionSvc.On("Convert", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewNotFoundError("target currency CAD not found")).Once()
	w := suite.request(http.MethodPost, "/api/v1/conversions", "42", convertBody)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("target currency CAD not found", errorBody(w))

	suite.mockConversionSvc.On("Convert", mock.Anything, mock.Anything).
		Return(nil, apperrors.NewPersistenceError("failed to record conversion", assert.AnError)).Once()
	w = suite.request(http.MethodPost, "/api/v1/conversions", "42", convertBody)
	suite.Equal(http.StatusInternalServerError, w.Code)
	suite.Equal("Failed to convert amount", errorBody(w))
}

func (suite *ConversionHandlerTestSuite) TestListConversionLogs() {
	next := "token-2"
	suite.mockConversionSvc.On("ListConversionLogs", mock.Anything, domain.ConversionLogFilter{Search: "order", Limit: 20}).
		Return([]domain.ConversionLog{{
			ID:                 1,
			EntityType:         "order",
			Context:            "checkout",
			BaseCurrencyCode:   "USD",
			TargetCurrencyCode: "CAD",
			BaseAmount:         decimal.NewFromInt(10),
			ConvertedAmount:    decimal.NewFromInt(17),
			RateUsed:           decimal.RequireFromString("1.5"),
			RateSource:         domain.RateSourceManual,
			CurrencyID:         2,
			OccurredAt:         time.Now().UTC(),
		}}, &next, nil).Once()

	w := suite.request(http.MethodGet, "/api/v1/conversions/logs?search=order&limit=20", "42", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListConversionLogsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Logs, 1)
	suite.Equal("order", resp.Logs[0].EntityType)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("token-2", *resp.NextToken)
}

func TestConversionHandler(t *testing.T) {
	suite.Run(t, new(ConversionHandlerTestSuite))
}
