package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/multi_currency_app/internal/core/domain"
	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/SscSPs/multi_currency_app/internal/dto"
	"github.com/SscSPs/multi_currency_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// conversionHandler handles HTTP requests related to conversions.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

// RegisterConversionRoutes registers the conversion and audit log routes.
func RegisterConversionRoutes(rg *gin.RouterGroup, conversionService portssvc.ConversionSvcFacade) {
	h := &conversionHandler{conversionService: conversionService}

	conversions := rg.Group("/conversions")
	{
		conversions.POST("", h.convert)
		conversions.GET("/logs", h.listConversionLogs)
	}
}

// convert godoc
// @Summary Convert an amount
// @Description Converts an amount into the target currency using its stored rate and fee.
// @Tags conversions
// @Accept  json
// @Produce  json
// @Param   conversion body dto.ConvertRequest true "Conversion input"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 404 {object} map[string]string "Target currency not found or inactive"
// @Failure 500 {object} map[string]string "Failed to convert"
// @Security BearerAuth
// @Router /conversions [post]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.ConvertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for Convert", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.conversionService.Convert(c.Request.Context(), req.ToDomain(middleware.GetNumericUserID(c)))
	if err != nil {
		respondServiceError(c, logger, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionResponse(result))
}

// listConversionLogs godoc
// @Summary List conversion audit records
// @Description Newest first. Pass nextToken from the previous page to continue.
// @Tags conversions
// @Produce  json
// @Param   search query string false "Entity type or currency code substring"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListConversionLogsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 500 {object} map[string]string "Failed to list conversion logs"
// @Security BearerAuth
// @Router /conversions/logs [get]
func (h *conversionHandler) listConversionLogs(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListConversionLogsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListConversionLogs", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	logs, next, err := h.conversionService.ListConversionLogs(c.Request.Context(), domain.ConversionLogFilter{
		Search:    params.Search,
		Limit:     params.Limit,
		NextToken: params.NextToken,
	})
	if err != nil {
		respondServiceError(c, logger, err, "Failed to list conversion logs")
		return
	}
	c.JSON(http.StatusOK, dto.ToListConversionLogsResponse(logs, next))
}
