package service

import (
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/tictactoe"
)

type BotService interface {
	// MakeTurn - places the computer's mark. ok is false when there was no
	// cell to play, in which case the board is returned unchanged.
	MakeTurn(board entity.Board) (next entity.Board, ok bool)
	Strategy() string
}

type botService struct {
	logger   *slog.Logger
	strategy tictactoe.ComputerStrategy
}

func NewBotService(logger *slog.Logger, strategy tictactoe.ComputerStrategy) BotService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &botService{
		logger:   logger.With("component", "bot", "strategy", strategy.Name()),
		strategy: strategy,
	}
}

func (that *botService) MakeTurn(board entity.Board) (entity.Board, bool) {
	position, ok := that.strategy.SelectMove(board)
	if !ok {
		that.logger.Warn("no available moves for computer")
		return board, false
	}

	that.logger.Debug("computer chose position", "position", position, "kind", cellKind(position))

	return tictactoe.ApplyMove(board, position, entity.ComputerMark), true
}

func (that *botService) Strategy() string {
	return that.strategy.Name()
}

func cellKind(position int) string {
	switch {
	case position == entity.Center:
		return "center"
	case position%2 == 0:
		return "corner"
	default:
		return "side"
	}
}
