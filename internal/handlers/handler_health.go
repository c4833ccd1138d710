package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/multi_currency_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Pinger is a dependency the readiness check pings. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

// Ping calls f.
func (f PingFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

const readinessTimeout = 2 * time.Second

// registerHealthRoutes adds the liveness and readiness checks.
func registerHealthRoutes(r *gin.Engine, deps map[string]Pinger) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	r.GET("/health/ready", func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		status := http.StatusOK
		checks := make(map[string]string, len(deps))
		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				logger.Warn("Readiness check failed", slog.String("dependency", name), slog.String("error", err.Error()))
				checks[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			checks[name] = "ok"
		}
		c.JSON(status, gin.H{"checks": checks})
	})
}
