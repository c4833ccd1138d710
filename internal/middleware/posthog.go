package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/multi_currency_app/internal/utils"
	"github.com/gin-gonic/gin"
)

// trackedRoutes maps "METHOD route" to the analytics event recorded for it.
// Routes not listed here are not sent.
var trackedRoutes = map[string]string{
	"POST /api/v1/currencies":                           "currency_created",
	"PUT /api/v1/currencies/:currencyID":                "currency_updated",
	"DELETE /api/v1/currencies/:currencyID":             "currency_deleted",
	"POST /api/v1/currencies/:currencyID/toggle-active": "currency_toggled",
	"PUT /api/v1/currencies/:currencyID/rate":           "currency_rate_updated",
	"POST /api/v1/conversions":                          "conversion_performed",
	"PUT /api/v1/settings/:key":                         "setting_updated",
	"POST /api/v1/sync/push":                            "settings_sync_push",
	"POST /api/v1/sync/pull":                            "settings_sync_pull",
	"POST /api/v1/sync/reconcile":                       "settings_sync_reconcile",
}

// routeEvent returns the event name for the matched route of c.
func routeEvent(c *gin.Context) (string, bool) {
	route := c.FullPath()
	if route == "" {
		return "", false
	}
	event, ok := trackedRoutes[c.Request.Method+" "+route]
	return event, ok
}

// PosthogMiddleware records successful mutations of the currency domain as
// PostHog events keyed by the authenticated subject.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if posthogClient == nil || !posthogClient.IsInitialized() {
			return
		}
		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		event, ok := routeEvent(c)
		if !ok {
			return
		}
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			return
		}

		props := map[string]any{
			"status_code": c.Writer.Status(),
		}
		for _, param := range c.Params {
			// path params only; request bodies are never sent
			props[strings.ToLower(param.Key)] = param.Value
		}
		posthogClient.Enqueue(userID, event, props)
	}
}
