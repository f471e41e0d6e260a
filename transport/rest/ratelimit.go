package rest

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/apperror"
)

const headerRateLimit = "X-RateLimit-Limit"

// NewMemoryLimiterStore - keeps per client token buckets in process memory,
// refilled so that requests calls fit in every window.
func NewMemoryLimiterStore(requests int, window time.Duration) middleware.RateLimiterStore {
	return middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(requests) / window.Seconds()),
		Burst:     requests,
		ExpiresIn: window,
	})
}

// rateLimiter - limits requests per client IP. A store that cannot answer
// turns the request into a 503.
func rateLimiter(logger *slog.Logger, store middleware.RateLimiterStore, limit int) echo.MiddlewareFunc {
	log := logger.With("method", "rateLimiter")

	limiter := middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		DenyHandler: func(_ echo.Context, identifier string, err error) error {
			if err != nil {
				log.Error("rate limit store failed", "identifier", identifier, "error", err)
				return echo.NewHTTPError(http.StatusServiceUnavailable).SetInternal(err)
			}

			log.Info("rate limit exceeded", "identifier", identifier)

			return echo.NewHTTPError(http.StatusTooManyRequests).SetInternal(apperror.ErrRateLimitExceeded)
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		limited := limiter(next)

		return func(ctx echo.Context) error {
			ctx.Response().Header().Set(headerRateLimit, strconv.Itoa(limit))
			return limited(ctx)
		}
	}
}
