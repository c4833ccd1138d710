package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/SscSPs/multi_currency_app/internal/dto"
	"github.com/SscSPs/multi_currency_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
	syncService     portssvc.CurrencySyncSvc
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade, ss portssvc.CurrencySyncSvc) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
		syncService:     ss,
	}
}

// RegisterCurrencyRoutes registers routes related to currencies. Changes to the
// default currency's identity are pushed through syncService.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade, syncService portssvc.CurrencySyncSvc) {
	h := newCurrencyHandler(currencyService, syncService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/default", h.getDefaultCurrency)
		currencies.GET("/:currencyID", h.getCurrency)
		currencies.PUT("/:currencyID", h.updateCurrency)
		currencies.DELETE("/:currencyID", h.deleteCurrency)
		currencies.POST("/:currencyID/toggle-active", h.toggleActive)
		currencies.PUT("/:currencyID/rate", h.updateRate)
		currencies.GET("/:currencyID/rates", h.listRateLogs)
	}
}

// createCurrency godoc
// @Summary Create a new currency
// @Description Adds a currency. The first currency created becomes the default with rate 1.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 201 {object} dto.CurrencyChangeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Currency code already exists"
// @Failure 500 {object} map[string]string "Failed to create currency"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger.Info("Received request to create currency", slog.String("code", req.Code), slog.String("symbol", req.Symbol))

	change, err := h.currencyService.CreateCurrency(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to create currency")
		return
	}

	synced := false
	if change.DefaultIdentityChanged {
		synced = h.syncService.Push(c.Request.Context())
	}

	logger.Info("Currency created successfully", slog.Int64("currency_id", change.Currency.ID), slog.Bool("synced", synced))
	c.JSON(http.StatusCreated, dto.CurrencyChangeResponse{
		Currency: dto.ToCurrencyResponse(change.Currency),
		Synced:   synced,
	})
}

// listCurrencies godoc
// @Summary List currencies
// @Description Lists currencies. The active, default, auto and manual flags combine with AND.
// @Tags currencies
// @Produce  json
// @Param   active query bool false "Only active currencies"
// @Param   default query bool false "Only the default currency"
// @Param   auto query bool false "Only auto-managed currencies"
// @Param   manual query bool false "Only manually managed currencies"
// @Param   search query string false "Code, symbol or name substring"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Rows to skip"
// @Success 200 {object} dto.ListCurrenciesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list currencies"
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListCurrenciesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListCurrencies", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context(), params.ToFilter())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list currencies")
		return
	}

	logger.Debug("Currencies listed successfully", slog.Int("count", len(currencies)))
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// getDefaultCurrency godoc
// @Summary Get the default currency
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "No default currency"
// @Security BearerAuth
// @Router /currencies/default [get]
func (h *currencyHandler) getDefaultCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currency, err := h.currencyService.GetDefaultCurrency(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve default currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// getCurrency godoc
// @Summary Get a currency by ID
// @Tags currencies
// @Produce  json
// @Param   currencyID path int true "Currency ID"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid currency ID"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 500 {object} map[string]string "Failed to retrieve currency"
// @Security BearerAuth
// @Router /currencies/{currencyID} [get]
func (h *currencyHandler) getCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyID, ok := currencyIDParam(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.GetCurrencyByID(c.Request.Context(), currencyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// updateCurrency godoc
// @Summary Update a currency
// @Description Applies a partial update. Omitted fields are left unchanged.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currencyID path int true "Currency ID"
// @Param   currency body dto.UpdateCurrencyRequest true "Fields to update"
// @Success 200 {object} dto.CurrencyChangeResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 409 {object} map[string]string "Duplicate code or default currency rate change"
// @Failure 500 {object} map[string]string "Failed to update currency"
// @Security BearerAuth
// @Router /currencies/{currencyID} [put]
func (h *currencyHandler) updateCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyID, ok := currencyIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	logger = logger.With(slog.Int64("currency_id", currencyID))
	change, err := h.currencyService.UpdateCurrency(c.Request.Context(), currencyID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update currency")
		return
	}

	synced := false
	if change.DefaultIdentityChanged {
		synced = h.syncService.Push(c.Request.Context())
	}

	logger.Info("Currency updated successfully", slog.Bool("synced", synced))
	c.JSON(http.StatusOK, dto.CurrencyChangeResponse{
		Currency: dto.ToCurrencyResponse(change.Currency),
		Synced:   synced,
	})
}

// deleteCurrency godoc
// @Summary Delete a currency
// @Description Removes a non-default currency together with its rate and conversion logs.
// @Tags currencies
// @Param   currencyID path int true "Currency ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 409 {object} map[string]string "Cannot delete default currency"
// @Failure 500 {object} map[string]string "Failed to delete currency"
// @Security BearerAuth
// @Router /currencies/{currencyID} [delete]
func (h *currencyHandler) deleteCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyID, ok := currencyIDParam(c)
	if !ok {
		return
	}

	if err := h.currencyService.DeleteCurrency(c.Request.Context(), currencyID); err != nil {
		respondServiceError(c, logger, err, "Failed to delete currency")
		return
	}

	logger.Info("Currency deleted successfully", slog.Int64("currency_id", currencyID))
	c.Status(http.StatusNoContent)
}

// toggleActive godoc
// @Summary Toggle a currency's active flag
// @Tags currencies
// @Produce  json
// @Param   currencyID path int true "Currency ID"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 409 {object} map[string]string "Cannot deactivate default currency"
// @Security BearerAuth
// @Router /currencies/{currencyID}/toggle-active [post]
func (h *currencyHandler) toggleActive(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyID, ok := currencyIDParam(c)
	if !ok {
		return
	}

	currency, err := h.currencyService.ToggleActive(c.Request.Context(), currencyID)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to toggle currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// updateRate godoc
// @Summary Set a currency rate
// @Description Records the new rate in the rate history and applies it atomically.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currencyID path int true "Currency ID"
// @Param   rate body dto.UpdateRateRequest true "New rate"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid rate"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 409 {object} map[string]string "Default currency rate is fixed"
// @Failure 500 {object} map[string]string "Failed to update rate"
// @Security BearerAuth
// @Router /currencies/{currencyID}/rate [put]
func (h *currencyHandler) updateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyID, ok := currencyIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	currency, err := h.currencyService.UpdateRate(c.Request.Context(), currencyID, req)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to update currency rate")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// listRateLogs godoc
// @Summary List a currency's rate history
// @Tags currencies
// @Produce  json
// @Param   currencyID path int true "Currency ID"
// @Param   limit query int false "Page size"
// @Param   offset query int false "Rows to skip"
// @Success 200 {object} dto.ListRateLogsResponse
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{currencyID}/rates [get]
func (h *currencyHandler) listRateLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	currencyID, ok := currencyIDParam(c)
	if !ok {
		return
	}

	var page struct {
		Limit  int `form:"limit" binding:"omitempty,min=1,max=100"`
		Offset int `form:"offset" binding:"omitempty,min=0"`
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logs, err := h.currencyService.ListRateLogs(c.Request.Context(), currencyID, page.Limit, page.Offset)
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list rate history")
		return
	}
	c.JSON(http.StatusOK, dto.ToListRateLogsResponse(logs))
}
