package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/entity"
)

const (
	HeuristicStrategy = "heuristic"
	MinimaxStrategy   = "minimax"
)

// ComputerStrategy picks the computer's next cell. ok is false when the
// board has no empty cell left.
type ComputerStrategy interface {
	Name() string
	SelectMove(board entity.Board) (position int, ok bool)
}

// NewStrategy - builds the strategy registered under name.
func NewStrategy(name string) (ComputerStrategy, error) {
	switch name {
	case HeuristicStrategy:
		return NewHeuristic(), nil
	case MinimaxStrategy:
		return NewMinimax(), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownStrategy, name)
	}
}

// Strategies - names accepted by NewStrategy.
func Strategies() []string {
	return []string{HeuristicStrategy, MinimaxStrategy}
}

// playable reports whether a strategy can safely search the board.
func playable(board entity.Board) bool {
	return len(board) == entity.BoardSize && len(AvailableMoves(board)) > 0
}
