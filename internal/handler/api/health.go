package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	drepo "StockPulse/internal/domain/repository"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"
)

// HealthHandler exposes liveness and readiness probes.
type HealthHandler struct {
	logger   *xlogger.Logger
	barStore drepo.BarStore // optional
	redis    *redis.Client  // optional
	env      string
}

func NewHealthHandler(logger *xlogger.Logger, barStore drepo.BarStore, rdb *redis.Client, env string) *HealthHandler {
	return &HealthHandler{logger: logger, barStore: barStore, redis: rdb, env: env}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/health", h.Health)
	g.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{
		"status":      "ok",
		"environment": h.env,
	})
}

func (h *HealthHandler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if h.barStore != nil {
		if err := h.barStore.Health(ctx); err != nil {
			checks["clickhouse"] = err.Error()
			healthy = false
		} else {
			checks["clickhouse"] = "ok"
		}
	}
	if h.redis != nil {
		if err := h.redis.Ping(ctx).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		h.logger.Warn("readiness check failed", xlogger.Any("checks", checks))
	}
	return xhttp.DataResponse(c, status, checks)
}
