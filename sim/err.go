package sim

import "errors"

var (
	// ErrUnexpectedKind is returned when a player receives a share of a
	// different kind of value than the one it is opening, which means that
	// the players are not opening their values in the same order.
	ErrUnexpectedKind = errors.New("unexpected kind")

	// ErrInvalidIndices is returned when the indices given to a network are
	// not one distinct non-zero index per player.
	ErrInvalidIndices = errors.New("invalid indices")
)
