package tictactoe

import "github.com/rocketscienceinc/tictactoe-move-server/internal/entity"

// Heuristic plays the classic priority ladder:
// win, block, fork, block fork, center, opposite corner, corner, side.
// Every rung scans cells in ascending order, so the lowest index wins ties.
type Heuristic struct {
	ladder []rule
}

type rule func(board entity.Board) (int, bool)

func NewHeuristic() *Heuristic {
	return &Heuristic{
		ladder: []rule{
			winningMove,
			blockingMove,
			forkMove,
			blockForkMove,
			centerMove,
			oppositeCornerMove,
			cornerMove,
			sideMove,
		},
	}
}

func (that *Heuristic) Name() string {
	return HeuristicStrategy
}

func (that *Heuristic) SelectMove(board entity.Board) (int, bool) {
	if !playable(board) {
		return 0, false
	}

	for _, next := range that.ladder {
		if position, ok := next(board); ok {
			return position, true
		}
	}

	// unreachable on a 3x3 board: every empty cell is a corner, side or the center
	return AvailableMoves(board)[0], true
}

func winningMove(board entity.Board) (int, bool) {
	return completingMove(board, entity.ComputerMark)
}

// blockingMove takes the cell where the human would complete a pattern.
func blockingMove(board entity.Board) (int, bool) {
	return completingMove(board, entity.HumanMark)
}

func forkMove(board entity.Board) (int, bool) {
	return forkingMove(board, entity.ComputerMark)
}

// blockForkMove denies the human a fork. A single fork cell is simply
// occupied. With several fork cells occupying one still loses to the other,
// so the computer makes a threat instead, provided that none of the cells
// the human is forced to block gives the human a fork.
func blockForkMove(board entity.Board) (int, bool) {
	forks := forkingMoves(board, entity.HumanMark)
	switch len(forks) {
	case 0:
		return 0, false
	case 1:
		return forks[0], true
	}

	for _, position := range AvailableMoves(board) {
		next := ApplyMove(board, position, entity.ComputerMark)

		blocks := winningCells(next, entity.ComputerMark)
		if len(blocks) == 0 {
			continue
		}

		safe := true
		for _, block := range blocks {
			if countThreats(ApplyMove(next, block, entity.HumanMark), entity.HumanMark) >= 2 {
				safe = false
				break
			}
		}

		if safe {
			return position, true
		}
	}

	return forks[0], true
}

func centerMove(board entity.Board) (int, bool) {
	if board[entity.Center] == entity.EmptyCell {
		return entity.Center, true
	}

	return 0, false
}

func oppositeCornerMove(board entity.Board) (int, bool) {
	for _, pair := range entity.OppositeCorners {
		a, b := pair[0], pair[1]

		if board[a] == entity.HumanMark && board[b] == entity.EmptyCell {
			return b, true
		}

		if board[b] == entity.HumanMark && board[a] == entity.EmptyCell {
			return a, true
		}
	}

	return 0, false
}

func cornerMove(board entity.Board) (int, bool) {
	return firstEmpty(board, entity.Corners[:])
}

func sideMove(board entity.Board) (int, bool) {
	return firstEmpty(board, entity.Sides[:])
}

func completingMove(board entity.Board, mark entity.Mark) (int, bool) {
	cells := winningCells(board, mark)
	if len(cells) == 0 {
		return 0, false
	}

	return cells[0], true
}

func forkingMove(board entity.Board, mark entity.Mark) (int, bool) {
	forks := forkingMoves(board, mark)
	if len(forks) == 0 {
		return 0, false
	}

	return forks[0], true
}

// forkingMoves - cells that leave mark with two or more immediate wins.
func forkingMoves(board entity.Board, mark entity.Mark) []int {
	var forks []int
	for _, position := range AvailableMoves(board) {
		if countThreats(ApplyMove(board, position, mark), mark) >= 2 {
			forks = append(forks, position)
		}
	}

	return forks
}

// winningCells - empty cells that would complete a pattern for mark.
func winningCells(board entity.Board, mark entity.Mark) []int {
	var cells []int
	for _, position := range AvailableMoves(board) {
		if hasWinner(ApplyMove(board, position, mark), mark) {
			cells = append(cells, position)
		}
	}

	return cells
}

func countThreats(board entity.Board, mark entity.Mark) int {
	return len(winningCells(board, mark))
}

func firstEmpty(board entity.Board, positions []int) (int, bool) {
	for _, position := range positions {
		if board[position] == entity.EmptyCell {
			return position, true
		}
	}

	return 0, false
}
