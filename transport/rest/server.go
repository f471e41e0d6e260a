package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/config"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/pkg"
)

const (
	readTimeout  = 10 * time.Second
	writeTimeout = 10 * time.Second
	idleTimeout  = 30 * time.Second

	bodyLimit = "4K"
)

type Server struct {
	logger *slog.Logger
	echo   *echo.Echo
}

// New - builds the HTTP server with its middleware chain and routes.
// limiterStore may be nil when rate limiting is disabled.
func New(
	logger *slog.Logger,
	conf *config.Config,
	move MoveHandler,
	health HealthHandler,
	limiterStore middleware.RateLimiterStore,
) *Server {
	log := logger.With("component", "rest")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = newErrorHandler(log)

	e.Server.ReadTimeout = readTimeout
	e.Server.WriteTimeout = writeTimeout
	e.Server.IdleTimeout = idleTimeout

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: pkg.GenerateNewSessionID,
	}))
	e.Use(requestLogger(log))
	e.Use(middleware.CORSWithConfig(corsConfig(conf.AllowedOrigins)))
	e.Use(middleware.BodyLimit(bodyLimit))

	e.GET("/ping", health.Ping)
	e.GET("/health", health.Health)

	if limiterStore != nil {
		e.POST("/move", move.Move, rateLimiter(log, limiterStore, conf.RateLimit.Requests))
	} else {
		e.POST("/move", move.Move)
	}

	return &Server{
		logger: log,
		echo:   e,
	}
}

// Start - starts HTTP server. It returns nil after Shutdown.
func (that *Server) Start(port string) error {
	if err := that.echo.Start(":" + port); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	if err := that.echo.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// ServeHTTP - lets the server be driven without a listener.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	that.echo.ServeHTTP(w, r)
}

// corsConfig - an empty origin list allows no origin. echo itself would
// fall back to "*".
func corsConfig(allowedOrigins []string) middleware.CORSConfig {
	cors := middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAccept},
	}

	if len(allowedOrigins) == 0 {
		cors.AllowOriginFunc = func(string) (bool, error) {
			return false, nil
		}
	}

	return cors
}

func requestLogger(logger *slog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"remote_ip", v.RemoteIP,
				"request_id", v.RequestID,
			}

			if v.Error != nil {
				logger.Warn("request failed", append(attrs, "error", v.Error)...)
				return nil
			}

			logger.Info("request", attrs...)

			return nil
		},
	})
}
