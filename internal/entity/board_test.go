package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_JSON(t *testing.T) {
	t.Run("Null cells decode as empty", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`["X",null,null,null,"O",null,null,null,null]`), &board)

		require.NoError(t, err)
		assert.Equal(t, Board{PlayerX, "", "", "", PlayerO, "", "", "", ""}, board)
	})

	t.Run("Empty cells encode as null", func(t *testing.T) {
		board := Board{PlayerX, "", "", "", PlayerO, "", "", "", ""}

		data, err := json.Marshal(board)

		require.NoError(t, err)
		assert.JSONEq(t, `["X",null,null,null,"O",null,null,null,null]`, string(data))
	})

	t.Run("Unknown marks survive decoding", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`["Z",null,null,null,null,null,null,null,null]`), &board)

		require.NoError(t, err)
		assert.Equal(t, Mark("Z"), board[0])
		assert.False(t, board.IsWellFormed())
	})

	t.Run("Missing board stays nil", func(t *testing.T) {
		var request MoveRequest

		err := json.Unmarshal([]byte(`{"index":4}`), &request)

		require.NoError(t, err)
		assert.Nil(t, request.Board)
		require.NotNil(t, request.Index)
		assert.Equal(t, 4, *request.Index)
	})

	t.Run("Non string cells are rejected", func(t *testing.T) {
		var board Board

		err := json.Unmarshal([]byte(`[1,2,3]`), &board)

		require.Error(t, err)
	})
}

func TestBoard_Clone(t *testing.T) {
	board := Board{PlayerX, "", "", "", "", "", "", "", ""}

	clone := board.Clone()
	clone[1] = PlayerO

	assert.Equal(t, EmptyCell, board[1])
	assert.Nil(t, Board(nil).Clone())
}
