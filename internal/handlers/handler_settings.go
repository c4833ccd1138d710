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

type settingsHandler struct {
	settingsService portssvc.SettingsSvc
}

// RegisterSettingsRoutes registers the settings routes.
func RegisterSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvc) {
	h := &settingsHandler{settingsService: settingsService}

	settings := rg.Group("/settings")
	{
		settings.GET("", h.getAll)
		settings.GET("/:key", h.get)
		settings.PUT("/:key", h.set)
	}
}

func (h *settingsHandler) sourceName() string {
	if h.settingsService.IsDatabaseBacked() {
		return domain.SettingsSourceDatabase
	}
	return domain.SettingsSourceFile
}

// getAll godoc
// @Summary List settings
// @Description Returns the resolved settings of the active source. Secrets are masked.
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.SettingsResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getAll(c *gin.Context) {
	c.JSON(http.StatusOK, dto.SettingsResponse{
		Source:   h.sourceName(),
		Settings: h.settingsService.GetAll(c.Request.Context()),
	})
}

// get godoc
// @Summary Get one setting
// @Tags settings
// @Produce  json
// @Param   key path string true "Setting key, e.g. conversion.round_precision"
// @Success 200 {object} dto.SettingResponse
// @Failure 404 {object} map[string]string "Setting not found"
// @Security BearerAuth
// @Router /settings/{key} [get]
func (h *settingsHandler) get(c *gin.Context) {
	key := c.Param("key")
	value := h.settingsService.Get(c.Request.Context(), key, nil)
	if value == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Setting not found"})
		return
	}
	if domain.IsSecretSettingKey(key) {
		value = domain.RedactSettings(map[string]any{key: value})[key]
	}
	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: value})
}

// set godoc
// @Summary Store one setting
// @Description Only honoured when settings are database backed.
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   key path string true "Setting key"
// @Param   setting body dto.SetSettingRequest true "New value"
// @Success 200 {object} dto.SettingResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 409 {object} map[string]string "Setting not stored"
// @Security BearerAuth
// @Router /settings/{key} [put]
func (h *settingsHandler) set(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	key := c.Param("key")

	var req dto.SetSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SetSetting", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	if !h.settingsService.Set(c.Request.Context(), key, req.Value) {
		c.JSON(http.StatusConflict, gin.H{
			"error":  "Setting not stored",
			"source": h.sourceName(),
		})
		return
	}

	value := req.Value
	if domain.IsSecretSettingKey(key) {
		value = domain.RedactSettings(map[string]any{key: value})[key]
	}
	c.JSON(http.StatusOK, dto.SettingResponse{Key: key, Value: value})
}
