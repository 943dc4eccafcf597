package field

import (
	"fmt"

	"github.com/renproject/mpcalg/reveal"
	"github.com/renproject/secp256k1"
)

// An Opener runs the reveal protocol for a single shared value: it sends the
// local share to the other players and reconstructs the value from the
// shares it receives. All players must open their shares in the same order.
type Opener interface {
	OpenFn(Fn) (secp256k1.Fn, error)
	OpenPoint(Point) (secp256k1.Point, error)
}

// FnConv is the reveal.Conv of Fn. Public values are revealed locally;
// shared values are revealed using the Opener.
type FnConv struct {
	opener Opener
}

// Fns returns the Conv of Fn that opens shares with the given Opener. The
// Opener can be nil when only public values will be revealed.
func Fns(opener Opener) FnConv {
	return FnConv{opener: opener}
}

// Reveal implements the reveal.Conv interface. It panics if the share cannot
// be opened.
func (c FnConv) Reveal(fn Fn) secp256k1.Fn {
	if !fn.state.IsShared() {
		return fn.value
	}
	if c.opener == nil {
		panic(fmt.Errorf("revealing %v: %w", fn.state, ErrNoOpener))
	}
	v, err := c.opener.OpenFn(fn)
	if err != nil {
		panic(fmt.Errorf("revealing %v: %w", fn.state, err))
	}
	return v
}

// FromAddShared implements the reveal.Conv interface.
func (FnConv) FromAddShared(v secp256k1.Fn) Fn { return AddShareFn(v) }

// FromPublic implements the reveal.Conv interface.
func (FnConv) FromPublic(v secp256k1.Fn) Fn { return PublicFn(v) }

// UnwrapAsPublic implements the reveal.Conv interface. It panics with a
// *reveal.UnsupportedError if the value is shared.
func (FnConv) UnwrapAsPublic(fn Fn) secp256k1.Fn {
	if fn.state.IsShared() {
		return reveal.NotPublic[Fn, secp256k1.Fn](fmt.Sprintf("value is %v", fn.state))
	}
	return fn.value
}

// PointConv is the reveal.Conv of Point.
type PointConv struct {
	opener Opener
}

// Points returns the Conv of Point that opens shares with the given Opener.
func Points(opener Opener) PointConv {
	return PointConv{opener: opener}
}

// Reveal implements the reveal.Conv interface. It panics if the share cannot
// be opened.
func (c PointConv) Reveal(p Point) secp256k1.Point {
	if !p.state.IsShared() {
		return p.value
	}
	if c.opener == nil {
		panic(fmt.Errorf("revealing %v: %w", p.state, ErrNoOpener))
	}
	v, err := c.opener.OpenPoint(p)
	if err != nil {
		panic(fmt.Errorf("revealing %v: %w", p.state, err))
	}
	return v
}

// FromAddShared implements the reveal.Conv interface.
func (PointConv) FromAddShared(v secp256k1.Point) Point { return AddSharePoint(v) }

// FromPublic implements the reveal.Conv interface.
func (PointConv) FromPublic(v secp256k1.Point) Point { return PublicPoint(v) }

// UnwrapAsPublic implements the reveal.Conv interface. It panics with a
// *reveal.UnsupportedError if the value is shared.
func (PointConv) UnwrapAsPublic(p Point) secp256k1.Point {
	if p.state.IsShared() {
		return reveal.NotPublic[Point, secp256k1.Point](fmt.Sprintf("value is %v", p.state))
	}
	return p.value
}
