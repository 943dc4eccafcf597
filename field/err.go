package field

import "errors"

var (
	// ErrNoOpener is returned when a shared value is revealed through a Conv
	// that was constructed without an Opener.
	ErrNoOpener = errors.New("no opener for shared value")

	// ErrInvalidState is returned when unmarshaling a value with a state that
	// is not one of the known states.
	ErrInvalidState = errors.New("invalid state")

	// ErrStateMismatch is returned when combining two values that are not in
	// the same state, or two Shamir shares with different indices.
	ErrStateMismatch = errors.New("state mismatch")
)
