package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/multi_currency_app/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// respondServiceError maps err onto its HTTP status. Server-side failures are
// logged at error and hidden behind fallbackMsg.
func respondServiceError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status := apperrors.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallbackMsg})
		return
	}

	logger.Warn(fallbackMsg, slog.String("error", err.Error()), slog.Int("status", status))
	message := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		message = appErr.Message
	}
	c.JSON(status, gin.H{"error": message})
}

// currencyIDParam parses the :currencyID path parameter, writing a 400 when it is malformed.
func currencyIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("currencyID"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency ID"})
		return 0, false
	}
	return id, true
}
