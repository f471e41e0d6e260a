package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/pkg"
)

type turnUseCase interface {
	RunTurn(ctx context.Context, board entity.Board, index *int) (*entity.TurnResult, error)
}

type handlerFunc func(ctx context.Context, message *Message, writer *bufio.ReadWriter) error

type Server struct {
	logger *slog.Logger
	turn   turnUseCase

	allowedOrigins []string
	handlers       map[string]handlerFunc

	mu  sync.Mutex
	srv *http.Server
}

func New(logger *slog.Logger, turn turnUseCase, allowedOrigins []string) *Server {
	server := &Server{
		logger:         logger.With("component", "websocket"),
		turn:           turn,
		allowedOrigins: allowedOrigins,
		handlers:       make(map[string]handlerFunc),
	}

	server.handlers[actionPing] = server.handlePing
	server.handlers[actionMove] = server.handleMove

	return server
}

// Start - starts WebSocket server. Open connections are closed once ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	that.mu.Lock()
	if err := ctx.Err(); err != nil {
		that.mu.Unlock()
		return nil
	}
	that.srv = srv
	that.mu.Unlock()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

func (that *Server) Shutdown(ctx context.Context) error {
	that.mu.Lock()
	srv := that.srv
	that.mu.Unlock()

	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection", "session", pkg.GenerateNewSessionID())

	if req.Header.Get("Upgrade") != "websocket" {
		http.Error(writer, "not a websocket upgrade", http.StatusBadRequest)
		return
	}

	if !that.originAllowed(req.Header.Get("Origin")) {
		log.Warn("origin not allowed", "origin", req.Header.Get("Origin"))
		http.Error(writer, "origin not allowed", http.StatusForbidden)
		return
	}

	hijacker, ok := writer.(http.Hijacker)
	if !ok {
		log.Error("web server does not support hijacking", "error", http.StatusText(http.StatusInternalServerError))
		http.Error(writer, "internal server error", http.StatusInternalServerError)
		return
	}

	key := req.Header.Get("Sec-WebSocket-Key")
	acceptKey := pkg.GenerateAcceptKey(key)

	writer.Header().Set("Upgrade", "websocket")
	writer.Header().Set("Connection", "Upgrade")
	writer.Header().Set("Sec-WebSocket-Accept", acceptKey)
	writer.WriteHeader(http.StatusSwitchingProtocols)

	conn, bufrw, err := hijacker.Hijack()
	if err != nil {
		log.Error("failed to hijack connection", "error", err)
		return
	}

	defer conn.Close()

	// hijacked connections keep the deadlines of the http server
	_ = conn.SetDeadline(time.Time{})

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	log.Info("WebSocket connection established")

	if err = that.handleMessages(ctx, bufrw); err != nil {
		log.Error("error handling messages", "error", err)
		return
	}

	log.Info("WebSocket connection closed")
}

// handleMessages - processes messages from the client until it leaves.
func (that *Server) handleMessages(ctx context.Context, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleMessages")

	for {
		reqBody, err := that.readRequest(bufrw)
		if errors.Is(err, ErrConnectionClosed) {
			return nil
		}

		if err != nil {
			return err
		}

		var message Message
		if err = json.Unmarshal(reqBody, &message); err != nil {
			log.Debug("failed to unmarshal message", "error", err)

			if err = that.sendErrorResponse(bufrw, actionError, "invalid message"); err != nil {
				return err
			}
			continue
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Debug("unknown action", "action", message.Action)

			if err = that.sendErrorResponse(bufrw, message.Action, "unknown action: "+message.Action); err != nil {
				return err
			}
			continue
		}

		if err = handler(ctx, &message, bufrw); err != nil {
			return fmt.Errorf("failed to process %s: %w", message.Action, err)
		}
	}
}

func (that *Server) originAllowed(origin string) bool {
	if origin == "" || slices.Contains(that.allowedOrigins, "*") {
		return true
	}

	return slices.Contains(that.allowedOrigins, origin)
}
