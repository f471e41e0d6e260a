package tictactoe

import "github.com/rocketscienceinc/tictactoe-move-server/internal/entity"

const (
	scoreWin  = 1
	scoreLoss = -1
	scoreDraw = 0
)

// Minimax searches the whole game tree and never loses. The computer
// maximizes, the human minimizes. Among equally scored moves the lowest
// index is kept.
type Minimax struct{}

func NewMinimax() *Minimax {
	return &Minimax{}
}

func (that *Minimax) Name() string {
	return MinimaxStrategy
}

func (that *Minimax) SelectMove(board entity.Board) (int, bool) {
	if !playable(board) {
		return 0, false
	}

	best, bestScore := -1, scoreLoss-1
	for _, position := range AvailableMoves(board) {
		score := minimax(ApplyMove(board, position, entity.ComputerMark), false)
		if score > bestScore {
			best, bestScore = position, score
		}
	}

	return best, true
}

func minimax(board entity.Board, computerTurn bool) int {
	switch {
	case hasWinner(board, entity.ComputerMark):
		return scoreWin
	case hasWinner(board, entity.HumanMark):
		return scoreLoss
	}

	moves := AvailableMoves(board)
	if len(moves) == 0 {
		return scoreDraw
	}

	if computerTurn {
		best := scoreLoss
		for _, position := range moves {
			best = max(best, minimax(ApplyMove(board, position, entity.ComputerMark), false))
		}

		return best
	}

	best := scoreWin
	for _, position := range moves {
		best = min(best, minimax(ApplyMove(board, position, entity.HumanMark), true))
	}

	return best
}
