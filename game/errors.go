package game

import "errors"

var (
	ErrWrongPhase      = errors.New("action not allowed in this phase")
	ErrGameOver        = errors.New("game is over")
	ErrUnknownUnit     = errors.New("unit no longer on the board")
	ErrNotYourUnit     = errors.New("unit belongs to the other faction")
	ErrAlreadyActed    = errors.New("unit already acted this phase")
	ErrLocked          = errors.New("another unit must finish its move first")
	ErrIllegalMove     = errors.New("destination is not a legal move")
	ErrOutOfBounds     = errors.New("hex is off the board")
	ErrStackFull       = errors.New("hex already holds the maximum friendly units")
	ErrInvalidTarget   = errors.New("no valid ability target there")
	ErrDecisionPending = errors.New("a decision is pending")
	ErrNoDecision      = errors.New("no decision is pending")
	ErrInvalidDecision = errors.New("answer does not fit the pending decision")
	ErrNoUnits         = errors.New("both factions need at least one unit")
)
