package contract

import "errors"

// Every rejection is a named value so callers can branch with errors.Is.
// A rejected call has no effect: the runtime rolls the whole call back,
// escrow taken in the same call included.
var (
	// Input validation.
	ErrInvalidGameID     = errors.New("invalid game id")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInvalidAmount     = errors.New("invalid amount")

	// Protocol-state violations.
	ErrAlreadyStarted  = errors.New("game already started")
	ErrAlreadyEnded    = errors.New("game already ended")
	ErrNotStarted      = errors.New("game not started")
	ErrNotYourTurn     = errors.New("not your turn")
	ErrCellOccupied    = errors.New("cell occupied")
	ErrYourTurn        = errors.New("your turn: opponent is not the idle party")
	ErrNotWithdrawable = errors.New("idle window has not elapsed")

	// Reentrant invocation of a state-mutating entry point while a payout
	// is in flight.
	ErrReentrantCall = errors.New("reentrant call")

	errCorruptRecord = errors.New("corrupt game record")
)
