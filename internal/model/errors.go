package model

import "errors"

// Common errors used across the application
var (
	// Referee errors
	ErrRefereeNotFound = errors.New("referee not found")
	ErrNotReferee      = errors.New("not the referee of this shootout")

	// Shootout errors
	ErrShootoutNotFound  = errors.New("shootout not found")
	ErrInvalidTeams      = errors.New("team names must be non-empty and distinct")
	ErrInvalidPlayer     = errors.New("player name must be non-empty")
	ErrKickOnWrongTurn   = errors.New("kick on wrong turn")
	ErrKickAfterFinished = errors.New("kick after shootout finished")

	// Valuation errors
	ErrValuationNotFound = errors.New("valuation not found")
	ErrInvalidPrice      = errors.New("price must not be negative")
)
