package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-move-server/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-move-server/internal/entity"
)

// ValidateMove - checks a proposed human move. The first failing check wins.
func (that *Rules) ValidateMove(board entity.Board, index *int) entity.ValidationResult {
	if err := validateMove(board, index); err != nil {
		that.logger.Debug("move rejected", "reason", err.Error())
		return entity.Invalid(err)
	}

	return entity.Valid()
}

func validateMove(board entity.Board, index *int) error {
	if len(board) == 0 {
		return apperror.ErrBoardRequired
	}

	if len(board) != entity.BoardSize {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, len(board))
	}

	if index == nil {
		return fmt.Errorf("%w: null", apperror.ErrInvalidMoveIndex)
	}

	cell := *index
	if cell < 0 || cell >= entity.BoardSize {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidMoveIndex, cell)
	}

	if board[cell] != entity.EmptyCell {
		return fmt.Errorf("position %d %w", cell, apperror.ErrCellOccupied)
	}

	return nil
}
