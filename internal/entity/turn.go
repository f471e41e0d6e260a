package entity

// Status is derived from a board after a turn and never stored.
type Status string

const (
	StatusHumanWins    Status = "X_wins"
	StatusComputerWins Status = "O_wins"
	StatusDraw         Status = "draw"
	StatusInProgress   Status = "in_progress"
)

func (that Status) IsTerminal() bool {
	return that == StatusHumanWins || that == StatusComputerWins || that == StatusDraw
}

// ValidationResult is the outcome of checking a proposed move.
// Reason is set only when OK is false.
type ValidationResult struct {
	OK     bool
	Reason string

	err error
}

func Valid() ValidationResult {
	return ValidationResult{OK: true}
}

func Invalid(err error) ValidationResult {
	return ValidationResult{
		OK:     false,
		Reason: err.Error(),
		err:    err,
	}
}

// Err returns the wrapped validation error, nil when the move is valid.
func (that ValidationResult) Err() error {
	return that.err
}

// MoveRequest is the human move as clients send it.
type MoveRequest struct {
	Board Board `json:"board"`
	Index *int  `json:"index"`
}

// TurnResult is what a finished turn hands back to the caller.
type TurnResult struct {
	Board  Board  `json:"board"`
	Status Status `json:"status"`
}
