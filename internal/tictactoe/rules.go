package tictactoe

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/entity"
)

// Rules answers questions about a board. It never panics on malformed
// boards: such boards are reported to the logger and treated as having no
// winner and no draw.
type Rules struct {
	logger *slog.Logger
}

func NewRules(logger *slog.Logger) *Rules {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Rules{
		logger: logger.With("component", "rules"),
	}
}

// CheckWinner - reports whether mark occupies a whole win pattern.
func (that *Rules) CheckWinner(board entity.Board, mark entity.Mark) bool {
	if len(board) != entity.BoardSize {
		that.logger.Warn("malformed board in winner check", "size", len(board))
		return false
	}

	if !mark.IsPlayer() {
		that.logger.Warn("winner check for unknown mark", "mark", string(mark))
		return false
	}

	if !board.IsWellFormed() {
		that.logger.Warn("board contains unknown marks", "board", board)
	}

	return hasWinner(board, mark)
}

// IsDraw - a draw is a full board on which neither player has a pattern.
func (that *Rules) IsDraw(board entity.Board) bool {
	if !board.IsWellFormed() {
		that.logger.Warn("malformed board in draw check", "size", len(board), "board", board)
		return false
	}

	return isDraw(board)
}

// Outcome - strict counterpart of CheckWinner and IsDraw that reports
// malformed boards instead of degrading.
func (that *Rules) Outcome(board entity.Board) (entity.Status, error) {
	if !board.IsWellFormed() {
		return "", fmt.Errorf("%w: %v", apperror.ErrMalformedBoard, board)
	}

	return outcome(board), nil
}

// AvailableMoves - empty positions in ascending order.
func AvailableMoves(board entity.Board) []int {
	moves := make([]int, 0, len(board))
	for i, cell := range board {
		if cell == entity.EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

// ApplyMove - returns a copy of board with position set to mark.
func ApplyMove(board entity.Board, position int, mark entity.Mark) entity.Board {
	next := board.Clone()
	if position >= 0 && position < len(next) {
		next[position] = mark
	}

	return next
}

// hasWinner, isDraw and outcome assume a well-formed board. The strategies
// call them directly while searching.
func hasWinner(board entity.Board, mark entity.Mark) bool {
	for _, combo := range entity.WinPatterns() {
		if board[combo[0]] == mark && board[combo[1]] == mark && board[combo[2]] == mark {
			return true
		}
	}

	return false
}

func isDraw(board entity.Board) bool {
	for _, cell := range board {
		if cell == entity.EmptyCell {
			return false
		}
	}

	return !hasWinner(board, entity.PlayerX) && !hasWinner(board, entity.PlayerO)
}

func outcome(board entity.Board) entity.Status {
	switch {
	case hasWinner(board, entity.HumanMark):
		return entity.StatusHumanWins
	case hasWinner(board, entity.ComputerMark):
		return entity.StatusComputerWins
	case isDraw(board):
		return entity.StatusDraw
	default:
		return entity.StatusInProgress
	}
}
