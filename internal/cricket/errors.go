package cricket

import "errors"

var (
	// ErrInvalidInput marks malformed records, empty tallies and broken probability models.
	ErrInvalidInput = errors.New("invalid input")
	// ErrExhaustedState marks a state transition that is no longer allowed, such as an 11th wicket.
	ErrExhaustedState = errors.New("exhausted state")
)
