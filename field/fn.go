package field

import (
	"fmt"
	"math/rand"
	"reflect"

	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"
	"github.com/renproject/surge"
)

// Fn is an element of the secp256k1 scalar field held by one player. It is
// either public, or this player's additive or Shamir share of the real
// value. For Shamir shares the index of the share is kept alongside the
// value.
type Fn struct {
	state State
	index secp256k1.Fn
	value secp256k1.Fn
}

// PublicFn returns a public Fn with the given value.
func PublicFn(v secp256k1.Fn) Fn {
	return Fn{state: Public, value: v}
}

// AddShareFn returns an Fn for the additive share v.
func AddShareFn(v secp256k1.Fn) Fn {
	return Fn{state: AddShared, value: v}
}

// ShamirShareFn returns an Fn for the given Shamir share.
func ShamirShareFn(share shamir.Share) Fn {
	return Fn{state: ShamirShared, index: share.Index, value: share.Value}
}

// State returns the representation of the Fn.
func (fn Fn) State() State { return fn.state }

// Value returns the local value: the value itself if it is public, or the
// share of this player otherwise.
func (fn Fn) Value() secp256k1.Fn { return fn.value }

// Share returns the Fn as a Shamir share. The index is only meaningful for
// Shamir shares.
func (fn Fn) Share() shamir.Share {
	return shamir.Share{Index: fn.index, Value: fn.value}
}

// Clone returns a copy of the Fn.
func (fn Fn) Clone() Fn {
	return Fn{state: fn.state, index: fn.index, value: fn.value}
}

// Eq returns true if the two Fns have the same state, index and value.
func (fn *Fn) Eq(other *Fn) bool {
	return fn.state == other.state && fn.index.Eq(&other.index) && fn.value.Eq(&other.value)
}

// Add sets the receiver to the sum of a and b. Both must be in the same
// state, and Shamir shares must have the same index; shares of a sum are the
// sums of the shares.
func (fn *Fn) Add(a, b *Fn) error {
	if a.state != b.state {
		return fmt.Errorf("%w: adding %v to %v", ErrStateMismatch, a.state, b.state)
	}
	if a.state == ShamirShared && !a.index.Eq(&b.index) {
		return fmt.Errorf("%w: adding shares with different indices", ErrStateMismatch)
	}
	fn.state = a.state
	fn.index = a.index
	fn.value.Add(&a.value, &b.value)
	return nil
}

// String implements the Stringer interface.
func (fn Fn) String() string {
	return fmt.Sprintf("%v(%v)", fn.state, fn.value)
}

// SizeHint implements the surge.SizeHinter interface.
func (fn Fn) SizeHint() int {
	return fn.state.SizeHint() + fn.index.SizeHint() + fn.value.SizeHint()
}

// Marshal implements the surge.Marshaler interface.
func (fn Fn) Marshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := fn.state.Marshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling state: %w", err)
	}
	buf, rem, err = fn.index.Marshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling index: %w", err)
	}
	buf, rem, err = fn.value.Marshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling value: %w", err)
	}
	return buf, rem, nil
}

// Unmarshal implements the surge.Unmarshaler interface.
func (fn *Fn) Unmarshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := fn.state.Unmarshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling state: %w", err)
	}
	buf, rem, err = fn.index.Unmarshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling index: %w", err)
	}
	buf, rem, err = fn.value.Unmarshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling value: %w", err)
	}
	return buf, rem, nil
}

// Generate implements the quick.Generator interface.
func (fn Fn) Generate(r *rand.Rand, _ int) reflect.Value {
	gen := Fn{state: State(r.Intn(3)), value: secp256k1.RandomFn()}
	if gen.state == ShamirShared {
		gen.index = secp256k1.RandomFn()
	}
	return reflect.ValueOf(gen)
}

var _ surge.MarshalUnmarshaler = &Fn{}
