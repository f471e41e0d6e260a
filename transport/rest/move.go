package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/entity"
)

type MoveHandler interface {
	Move(ctx echo.Context) error
}

type turnUseCase interface {
	RunTurn(ctx context.Context, board entity.Board, index *int) (*entity.TurnResult, error)
}

type moveHandler struct {
	logger *slog.Logger

	turn turnUseCase
}

func NewMoveHandler(logger *slog.Logger, turn turnUseCase) MoveHandler {
	return &moveHandler{
		logger: logger.With("component", "rest"),
		turn:   turn,
	}
}

// Move - plays the human move from the body and answers with the board
// after the computer's reply.
func (that *moveHandler) Move(ctx echo.Context) error {
	log := that.logger.With("method", "Move")

	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return badRequest(ctx, apperror.ErrNoData)
	}

	var request entity.MoveRequest
	if err = json.Unmarshal(body, &request); err != nil {
		log.Debug("failed to decode move", "error", err)
		return badRequest(ctx, apperror.ErrInvalidBody)
	}

	if request.Board == nil && request.Index == nil {
		return badRequest(ctx, apperror.ErrNoData)
	}

	result, err := that.turn.RunTurn(ctx.Request().Context(), request.Board, request.Index)
	if apperror.IsValidation(err) {
		return badRequest(ctx, err)
	}

	if err != nil {
		log.Error("failed to run turn", "error", err)
		return fmt.Errorf("failed to run turn: %w", err)
	}

	return ctx.JSON(http.StatusOK, result)
}

func badRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
}
