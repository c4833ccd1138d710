package handlers

import (
	"context"
	"net/http"

	portssvc "github.com/SscSPs/multi_currency_app/internal/core/ports/services"
	"github.com/SscSPs/multi_currency_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// RegisterSyncRoutes registers the manual sync triggers. Every run answers 200;
// success is reported in the body because sync failures are not request errors.
func RegisterSyncRoutes(rg *gin.RouterGroup, syncService portssvc.CurrencySyncSvc) {
	syncGroup := rg.Group("/sync")
	{
		syncGroup.POST("/push", syncHandler("push", syncService.Push))
		syncGroup.POST("/pull", syncHandler("pull", syncService.Pull))
		syncGroup.POST("/reconcile", syncHandler("reconcile", syncService.Reconcile))
	}
}

// syncHandler godoc
// @Summary Run a currency sync operation
// @Description push writes the default currency to the commerce settings, pull reads it back when symbols match, reconcile pushes unless both sides agree.
// @Tags sync
// @Produce  json
// @Success 200 {object} dto.SyncResponse
// @Security BearerAuth
// @Router /sync/push [post]
// @Router /sync/pull [post]
// @Router /sync/reconcile [post]
func syncHandler(operation string, run func(ctx context.Context) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.SyncResponse{
			Operation: operation,
			Success:   run(c.Request.Context()),
		})
	}
}
