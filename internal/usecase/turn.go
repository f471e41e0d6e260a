package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/entity"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/tictactoe"
)

type TurnUseCase interface {
	RunTurn(ctx context.Context, board entity.Board, index *int) (*entity.TurnResult, error)
}

type rules interface {
	ValidateMove(board entity.Board, index *int) entity.ValidationResult
	CheckWinner(board entity.Board, mark entity.Mark) bool
	IsDraw(board entity.Board) bool
}

type botService interface {
	MakeTurn(board entity.Board) (entity.Board, bool)
}

type turnUseCase struct {
	logger *slog.Logger

	rules rules
	bot   botService
}

func NewTurnUseCase(logger *slog.Logger, rules rules, bot botService) TurnUseCase {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &turnUseCase{
		logger: logger.With("component", "turn"),
		rules:  rules,
		bot:    bot,
	}
}

// RunTurn - plays the human move at index and the computer's answer.
// A rejected move returns an error wrapping the apperror sentinel and
// leaves the board untouched.
func (that *turnUseCase) RunTurn(ctx context.Context, board entity.Board, index *int) (*entity.TurnResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("turn aborted: %w", err)
	}

	log := that.logger.With("method", "RunTurn")

	if result := that.rules.ValidateMove(board, index); !result.OK {
		return nil, result.Err()
	}

	board = tictactoe.ApplyMove(board, *index, entity.HumanMark)

	if status := that.terminal(board, entity.HumanMark); status.IsTerminal() {
		log.Debug("turn finished after human move", "status", status)
		return &entity.TurnResult{Board: board, Status: status}, nil
	}

	board, moved := that.bot.MakeTurn(board)
	if !moved {
		log.Warn("computer had no move on a non-terminal board", "board", board)
	}

	status := that.terminal(board, entity.ComputerMark)
	log.Debug("turn finished", "status", status)

	return &entity.TurnResult{Board: board, Status: status}, nil
}

// terminal - status of the board right after mover played.
func (that *turnUseCase) terminal(board entity.Board, mover entity.Mark) entity.Status {
	if that.rules.CheckWinner(board, mover) {
		if mover == entity.HumanMark {
			return entity.StatusHumanWins
		}
		return entity.StatusComputerWins
	}

	if that.rules.IsDraw(board) {
		return entity.StatusDraw
	}

	return entity.StatusInProgress
}
