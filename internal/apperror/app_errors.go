package apperror

import "errors"

var (
	ErrBoardRequired    = errors.New("board data required")
	ErrInvalidBoardSize = errors.New("invalid board size")
	ErrInvalidMoveIndex = errors.New("invalid move index")
	ErrCellOccupied     = errors.New("already occupied")
	ErrMalformedBoard   = errors.New("malformed board")

	ErrNoData            = errors.New("no data provided")
	ErrInvalidBody       = errors.New("invalid request body")
	ErrUnknownStrategy   = errors.New("unknown strategy")
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
)

// IsValidation - reports whether err is a rejected move that the client can fix.
func IsValidation(err error) bool {
	return errors.Is(err, ErrBoardRequired) ||
		errors.Is(err, ErrInvalidBoardSize) ||
		errors.Is(err, ErrInvalidMoveIndex) ||
		errors.Is(err, ErrCellOccupied)
}
