package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const healthTimeout = time.Second

type HealthHandler interface {
	Ping(ctx echo.Context) error
	Health(ctx echo.Context) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type healthResponse struct {
	Status           string `json:"status"`
	Strategy         string `json:"strategy"`
	RateLimitStorage string `json:"rate_limit_storage"`
}

type healthHandler struct {
	logger *slog.Logger

	strategy string
	storage  string
	storeDB  pinger
}

// NewHealthHandler - storeDB is checked on every health call when set.
func NewHealthHandler(logger *slog.Logger, strategy, storage string, storeDB pinger) HealthHandler {
	return &healthHandler{
		logger:   logger.With("component", "rest"),
		strategy: strategy,
		storage:  storage,
		storeDB:  storeDB,
	}
}

func (that *healthHandler) Ping(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"message": "pong"})
}

func (that *healthHandler) Health(ctx echo.Context) error {
	response := healthResponse{
		Status:           "ok",
		Strategy:         that.strategy,
		RateLimitStorage: that.storage,
	}

	if that.storeDB == nil {
		return ctx.JSON(http.StatusOK, response)
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), healthTimeout)
	defer cancel()

	if err := that.storeDB.Ping(pingCtx); err != nil {
		that.logger.Error("rate limit storage is unreachable", "method", "Health", "error", err)

		response.Status = "unavailable"
		return ctx.JSON(http.StatusServiceUnavailable, response)
	}

	return ctx.JSON(http.StatusOK, response)
}
