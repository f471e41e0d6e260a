package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/entity"
)

func index(i int) *int {
	return &i
}

func TestRules_ValidateMove(t *testing.T) {
	rules := NewRules(nil)

	t.Run("Valid moves on an empty board", func(t *testing.T) {
		for i := 0; i < entity.BoardSize; i++ {
			// When: validating a move on an empty cell
			result := rules.ValidateMove(entity.NewBoard(), index(i))

			// Then: the move is accepted without a reason
			assert.True(t, result.OK)
			assert.Empty(t, result.Reason)
			assert.NoError(t, result.Err())
		}
	})

	t.Run("Missing board", func(t *testing.T) {
		// When: the board is absent or empty
		for _, board := range []entity.Board{nil, {}} {
			result := rules.ValidateMove(board, index(0))

			// Then: board data is required
			assert.False(t, result.OK)
			assert.Equal(t, "board data required", result.Reason)
			require.ErrorIs(t, result.Err(), apperror.ErrBoardRequired)
		}
	})

	t.Run("Wrong board size", func(t *testing.T) {
		// Given: a board with 8 cells
		board := make(entity.Board, 8)

		// When: validating a move
		result := rules.ValidateMove(board, index(0))

		// Then: the size is reported
		assert.False(t, result.OK)
		assert.Equal(t, "invalid board size: 8", result.Reason)
		require.ErrorIs(t, result.Err(), apperror.ErrInvalidBoardSize)
	})

	t.Run("Index out of range", func(t *testing.T) {
		for _, i := range []int{-1, 9, 20} {
			// When: validating an index outside the board
			result := rules.ValidateMove(entity.NewBoard(), index(i))

			// Then: the index is rejected
			assert.False(t, result.OK)
			assert.Contains(t, result.Reason, "invalid move index")
			require.ErrorIs(t, result.Err(), apperror.ErrInvalidMoveIndex)
		}
	})

	t.Run("Missing index", func(t *testing.T) {
		// When: the index is absent
		result := rules.ValidateMove(entity.NewBoard(), nil)

		// Then: the index is rejected
		assert.False(t, result.OK)
		assert.Equal(t, "invalid move index: null", result.Reason)
	})

	t.Run("Occupied cell", func(t *testing.T) {
		// Given: X already in cell 0 and O in the center
		board := entity.Board{x, e, e, e, o, e, e, e, e}

		// When: playing on the occupied cells
		first := rules.ValidateMove(board, index(0))
		center := rules.ValidateMove(board, index(4))
		free := rules.ValidateMove(board, index(1))

		// Then: occupied cells are rejected and the free one is accepted
		assert.Equal(t, "position 0 already occupied", first.Reason)
		require.ErrorIs(t, first.Err(), apperror.ErrCellOccupied)
		assert.Equal(t, "position 4 already occupied", center.Reason)
		assert.True(t, free.OK)
	})

	t.Run("Checks run in order", func(t *testing.T) {
		// Given: a short board and an invalid index
		board := make(entity.Board, 3)

		// When: validating
		result := rules.ValidateMove(board, index(42))

		// Then: the size error wins over the index error
		require.ErrorIs(t, result.Err(), apperror.ErrInvalidBoardSize)
	})
}
