package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4/middleware"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/config"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/repository"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/service"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-move-server/transport/rest"
	"github.com/rocketscienceinc/tictactoe-move-server/transport/websocket"
)

const shutdownTimeout = 5 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	go func() {
		select {
		case sig := <-sigs:
			log.Info("Received signal, shutting down", "signal", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	strategy, err := tictactoe.NewStrategy(conf.Strategy)
	if err != nil {
		return fmt.Errorf("could not select strategy: %w", err)
	}

	rules := tictactoe.NewRules(logger)
	botService := service.NewBotService(logger, strategy)
	turnUseCase := usecase.NewTurnUseCase(logger, rules, botService)

	var (
		limiterStore middleware.RateLimiterStore
		rateLimitDB  repository.RateLimitRepository
	)

	switch {
	case conf.RateLimit.Disabled:
		log.Info("Rate limiting disabled")
	case conf.RateLimit.Storage == config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return ErrAddrNotFound
		}

		redisStorage, redisErr := storage.New(ctx, redisAddrString)
		if redisErr != nil {
			return fmt.Errorf("could not connect to redis storage: %w", redisErr)
		}

		defer func() {
			if closeErr := redisStorage.Close(); closeErr != nil {
				log.Error("could not close redis storage", "error", closeErr)
			}
		}()

		rateLimitDB = repository.NewRateLimitRepository(redisStorage)
		limiterStore = service.NewRateLimitService(logger, rateLimitDB, conf.RateLimit.Requests, conf.RateLimit.Window)
	default:
		limiterStore = rest.NewMemoryLimiterStore(conf.RateLimit.Requests, conf.RateLimit.Window)
	}

	restServer := rest.New(
		logger,
		conf,
		rest.NewMoveHandler(logger, turnUseCase),
		rest.NewHealthHandler(logger, botService.Strategy(), conf.RateLimit.Storage, rateLimitDB),
		limiterStore,
	)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort, "strategy", botService.Strategy())
		if httpErr := restServer.Start(conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	wsServer := websocket.New(logger, turnUseCase, conf.AllowedOrigins)
	if conf.SocketPort != "" {
		go func() {
			log.Info("Starting WebSocket server", "port", conf.SocketPort)
			if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
				log.Error("WebSocket server error", "error", wsErr)
				wsErrCh <- wsErr
			}
		}()
	}

	select {
	case err = <-httpErrCh:
		err = fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		err = fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if shutdownErr := restServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error("could not stop HTTP server", "error", shutdownErr)
	}

	if shutdownErr := wsServer.Shutdown(shutdownCtx); shutdownErr != nil {
		log.Error("could not stop WebSocket server", "error", shutdownErr)
	}

	return err
}
