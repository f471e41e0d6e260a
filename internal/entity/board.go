package entity

import (
	"encoding/json"
	"fmt"
)

// Mark is the content of a single board cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	EmptyCell Mark = ""

	HumanMark    = PlayerX
	ComputerMark = PlayerO
)

// BoardSize is the number of cells on a 3x3 board.
const BoardSize = 9

var (
	Corners = [4]int{0, 2, 6, 8}
	Sides   = [4]int{1, 3, 5, 7}

	// OppositeCorners pairs every corner with the one across the center.
	OppositeCorners = [2][2]int{{0, 8}, {2, 6}}

	Center = 4
)

var winCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// WinPatterns returns the 8 winning triples: rows, columns, diagonals.
func WinPatterns() [8][3]int {
	return winCombos
}

// Board is a row-major 3x3 grid.
//
//	0 1 2
//	3 4 5
//	6 7 8
type Board []Mark

func NewBoard() Board {
	return make(Board, BoardSize)
}

func (that Board) Clone() Board {
	if that == nil {
		return nil
	}

	board := make(Board, len(that))
	copy(board, that)

	return board
}

func (that Board) IsWellFormed() bool {
	if len(that) != BoardSize {
		return false
	}

	for _, cell := range that {
		if !cell.IsKnown() {
			return false
		}
	}

	return true
}

// MarshalJSON - writes empty cells as null.
func (that Board) MarshalJSON() ([]byte, error) {
	if that == nil {
		return []byte("null"), nil
	}

	cells := make([]*string, len(that))
	for i, mark := range that {
		if mark == EmptyCell {
			continue
		}

		value := string(mark)
		cells[i] = &value
	}

	return json.Marshal(cells)
}

// UnmarshalJSON - reads null cells as empty. Any other string is kept as is.
func (that *Board) UnmarshalJSON(data []byte) error {
	var cells []*string
	if err := json.Unmarshal(data, &cells); err != nil {
		return fmt.Errorf("failed to decode board: %w", err)
	}

	if cells == nil {
		*that = nil
		return nil
	}

	board := make(Board, len(cells))
	for i, cell := range cells {
		if cell != nil {
			board[i] = Mark(*cell)
		}
	}

	*that = board

	return nil
}

func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

func (that Mark) IsKnown() bool {
	return that == EmptyCell || that.IsPlayer()
}

func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}
