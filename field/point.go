package field

import (
	"fmt"
	"math/rand"
	"reflect"

	"github.com/renproject/secp256k1"
)

// Point is a point on the secp256k1 curve held by one player. It is either
// public or this player's additive share of the real point.
type Point struct {
	state State
	value secp256k1.Point
}

// PublicPoint returns a public Point.
func PublicPoint(v secp256k1.Point) Point {
	return Point{state: Public, value: v}
}

// AddSharePoint returns a Point for the additive share v.
func AddSharePoint(v secp256k1.Point) Point {
	return Point{state: AddShared, value: v}
}

// State returns the representation of the Point.
func (p Point) State() State { return p.state }

// Value returns the local value of the Point.
func (p Point) Value() secp256k1.Point { return p.value }

// Clone returns a copy of the Point.
func (p Point) Clone() Point {
	return Point{state: p.state, value: p.value}
}

// Eq returns true if the two Points have the same state and value.
func (p *Point) Eq(other *Point) bool {
	return p.state == other.state && p.value.Eq(&other.value)
}

// Add sets the receiver to the sum of a and b, which must be in the same
// state.
func (p *Point) Add(a, b *Point) error {
	if a.state != b.state {
		return fmt.Errorf("%w: adding %v to %v", ErrStateMismatch, a.state, b.state)
	}
	p.state = a.state
	p.value.Add(&a.value, &b.value)
	return nil
}

// SizeHint implements the surge.SizeHinter interface.
func (p Point) SizeHint() int {
	return p.state.SizeHint() + p.value.SizeHint()
}

// Marshal implements the surge.Marshaler interface.
func (p Point) Marshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := p.state.Marshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling state: %w", err)
	}
	buf, rem, err = p.value.Marshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling value: %w", err)
	}
	return buf, rem, nil
}

// Unmarshal implements the surge.Unmarshaler interface.
func (p *Point) Unmarshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := p.state.Unmarshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling state: %w", err)
	}
	if p.state == ShamirShared {
		return buf, rem, fmt.Errorf("unmarshaling state: %w: points cannot be %v", ErrInvalidState, p.state)
	}
	buf, rem, err = p.value.Unmarshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling value: %w", err)
	}
	return buf, rem, nil
}

// Generate implements the quick.Generator interface.
func (p Point) Generate(r *rand.Rand, _ int) reflect.Value {
	return reflect.ValueOf(Point{state: State(r.Intn(2)), value: secp256k1.RandomPoint()})
}
