package field

import (
	"fmt"

	"github.com/renproject/surge"
)

// State is the representation of a leaf value.
type State uint8

const (
	// Public signifies that the value is known locally.
	Public = State(iota)

	// AddShared signifies that the value is this player's additive share of
	// the real value: the real value is the sum of the shares of all players.
	AddShared

	// ShamirShared signifies that the value is this player's Shamir share of
	// the real value: the real value is the evaluation at zero of the
	// polynomial interpolating any k shares.
	ShamirShared
)

// String implements the Stringer interface.
func (s State) String() string {
	switch s {
	case Public:
		return "Public"
	case AddShared:
		return "AddShared"
	case ShamirShared:
		return "ShamirShared"
	default:
		return fmt.Sprintf("Unknown(%v)", uint8(s))
	}
}

// IsShared returns true for the shared states.
func (s State) IsShared() bool {
	return s == AddShared || s == ShamirShared
}

// SizeHint implements the surge.SizeHinter interface.
func (s State) SizeHint() int { return 1 }

// Marshal implements the surge.Marshaler interface.
func (s State) Marshal(buf []byte, rem int) ([]byte, int, error) {
	return surge.MarshalU8(uint8(s), buf, rem)
}

// Unmarshal implements the surge.Unmarshaler interface.
func (s *State) Unmarshal(buf []byte, rem int) ([]byte, int, error) {
	var v uint8
	buf, rem, err := surge.UnmarshalU8(&v, buf, rem)
	if err != nil {
		return buf, rem, err
	}
	if v > uint8(ShamirShared) {
		return buf, rem, fmt.Errorf("%w: %v", ErrInvalidState, v)
	}
	*s = State(v)
	return buf, rem, nil
}
