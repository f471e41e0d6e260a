package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/entity"
)

const (
	actionPing  = "ping"
	actionMove  = "move"
	actionError = "error"
)

func (that *Server) handlePing(_ context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	return that.sendMessage(bufrw, msg.Action, Payload{Message: "pong"})
}

func (that *Server) handleMove(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleMove")

	if len(msg.Payload) == 0 || string(msg.Payload) == "null" {
		return that.sendErrorResponse(bufrw, msg.Action, apperror.ErrNoData.Error())
	}

	var payloadReq entity.MoveRequest
	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		log.Debug("failed to unmarshal payload", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, apperror.ErrInvalidBody.Error())
	}

	if payloadReq.Board == nil && payloadReq.Index == nil {
		return that.sendErrorResponse(bufrw, msg.Action, apperror.ErrNoData.Error())
	}

	result, err := that.turn.RunTurn(ctx, payloadReq.Board, payloadReq.Index)
	if apperror.IsValidation(err) {
		return that.sendErrorResponse(bufrw, msg.Action, err.Error())
	}

	if err != nil {
		log.Error("failed to run turn", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "internal server error")
	}

	return that.sendMessage(bufrw, msg.Action, Payload{
		Board:  result.Board,
		Status: result.Status,
	})
}

func (that *Server) sendErrorResponse(bufrw *bufio.ReadWriter, action, errorMsg string) error {
	payload := Payload{Error: errorMsg}
	if err := that.sendMessage(bufrw, action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
