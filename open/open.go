// Package open reconstructs shared values from the shares of the players.
//
// An Opener handles the opening of one shared scalar at a time. Shares are
// received one by one, tagged with the index of the player that holds them.
// For an additive sharing the secret is the sum of the shares of all n
// players; for a Shamir sharing any k shares reconstruct it. The state
// transitions are
//
//	- Waiting(`i`), `i` < threshold - 1
//		- Share, valid	-> Waiting(`i+1`)
//		- Otherwise	-> Do nothing
//	- Waiting(threshold - 1)
//		- Share, valid	-> Done
//		- Otherwise	-> Do nothing
//	- Done
//		- Reset		-> Waiting(`0`)
//		- Otherwise	-> Do nothing
//
// where a share is valid when its index is one of the indices of the
// players, no share with that index has been received, and it is of the
// same kind as the shares received so far.
package open

import (
	"fmt"

	"github.com/renproject/mpcalg/field"
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"
)

// indexSet keeps track of which of the players have sent a share.
type indexSet struct {
	indices []secp256k1.Fn
	seen    []bool
}

func newIndexSet(indices []secp256k1.Fn) indexSet {
	copied := make([]secp256k1.Fn, len(indices))
	copy(copied, indices)
	return indexSet{indices: copied, seen: make([]bool, len(indices))}
}

// mark records that the player with the given index has sent a share.
func (set *indexSet) mark(index *secp256k1.Fn) error {
	for i := range set.indices {
		if set.indices[i].Eq(index) {
			if set.seen[i] {
				return ErrDuplicateIndex
			}
			set.seen[i] = true
			return nil
		}
	}
	return ErrIndexOutOfRange
}

func (set *indexSet) reset() {
	for i := range set.seen {
		set.seen[i] = false
	}
}

// Opener is a state machine that collects the shares of a single scalar and
// reconstructs it once enough shares have been received. It is resettable,
// so the same instance can open many values one after the other.
type Opener struct {
	set   indexSet
	k     int
	state field.State

	shares shamir.Shares
	sum    secp256k1.Fn
	secret secp256k1.Fn
	done   bool
}

// New returns an Opener for the players with the given indices, where k is
// the reconstruction threshold of Shamir sharings. Additive sharings always
// need the shares of all players. It panics if k is not between 1 and the
// number of players.
func New(indices []secp256k1.Fn, k int) Opener {
	n := len(indices)
	if n < 1 {
		panic(fmt.Sprintf("number of players should be at least 1: got %v", n))
	}
	if k < 1 || k > n {
		panic(fmt.Sprintf("k should be between 1 and %v: got %v", n, k))
	}
	return Opener{
		set:    newIndexSet(indices),
		k:      k,
		shares: make(shamir.Shares, 0, k),
	}
}

// N returns the number of players.
func (opener Opener) N() int { return len(opener.set.indices) }

// K returns the reconstruction threshold of Shamir sharings.
func (opener Opener) K() int { return opener.k }

// I returns the number of shares received for the current opening.
func (opener Opener) I() int {
	i := 0
	for _, seen := range opener.set.seen {
		if seen {
			i++
		}
	}
	return i
}

// Done returns true once the secret of the current opening has been
// reconstructed.
func (opener Opener) Done() bool { return opener.done }

// Secret returns the reconstructed secret. It is only meaningful once Done
// returns true.
func (opener Opener) Secret() secp256k1.Fn { return opener.secret }

// threshold returns the number of shares needed for the current opening.
func (opener Opener) threshold() int {
	if opener.state == field.ShamirShared {
		return opener.k
	}
	return opener.N()
}

// HandleShare handles a share of the given kind from the player with the
// index of the share. Once enough shares have been received it returns the
// secret and true.
func (opener *Opener) HandleShare(state field.State, share shamir.Share) (secp256k1.Fn, bool, error) {
	if opener.done {
		return secp256k1.Fn{}, false, ErrAlreadyOpened
	}
	if !state.IsShared() {
		return secp256k1.Fn{}, false, fmt.Errorf("%w: %v", ErrUnsupportedState, state)
	}
	if opener.I() > 0 && state != opener.state {
		return secp256k1.Fn{}, false, fmt.Errorf("%w: expected %v, got %v", ErrInconsistentState, opener.state, state)
	}
	if err := opener.set.mark(&share.Index); err != nil {
		return secp256k1.Fn{}, false, err
	}
	opener.state = state

	switch state {
	case field.AddShared:
		opener.sum.Add(&opener.sum, &share.Value)
	case field.ShamirShared:
		opener.shares = append(opener.shares, share)
	}

	if opener.I() < opener.threshold() {
		return secp256k1.Fn{}, false, nil
	}

	switch state {
	case field.AddShared:
		opener.secret = opener.sum
	case field.ShamirShared:
		opener.secret = shamir.Open(opener.shares)
	}
	opener.done = true
	return opener.secret, true, nil
}

// Reset prepares the Opener for the opening of a new value.
func (opener *Opener) Reset() {
	opener.set.reset()
	opener.state = field.Public
	opener.shares = opener.shares[:0]
	opener.sum = secp256k1.Fn{}
	opener.secret = secp256k1.Fn{}
	opener.done = false
}

// PointOpener collects additive shares of a curve point and reconstructs the
// point once the shares of all players have been received.
type PointOpener struct {
	set    indexSet
	sum    secp256k1.Point
	secret secp256k1.Point
	done   bool
}

// NewPointOpener returns a PointOpener for the players with the given
// indices.
func NewPointOpener(indices []secp256k1.Fn) PointOpener {
	if len(indices) < 1 {
		panic(fmt.Sprintf("number of players should be at least 1: got %v", len(indices)))
	}
	return PointOpener{
		set: newIndexSet(indices),
		sum: secp256k1.NewPointInfinity(),
	}
}

// N returns the number of players.
func (opener PointOpener) N() int { return len(opener.set.indices) }

// Done returns true once the point has been reconstructed.
func (opener PointOpener) Done() bool { return opener.done }

// Secret returns the reconstructed point. It is only meaningful once Done
// returns true.
func (opener PointOpener) Secret() secp256k1.Point { return opener.secret }

// HandleShare handles the additive share of the player with the given index.
// Once the shares of all players have been received it returns the point and
// true.
func (opener *PointOpener) HandleShare(index secp256k1.Fn, state field.State, share secp256k1.Point) (
	secp256k1.Point, bool, error,
) {
	if opener.done {
		return secp256k1.Point{}, false, ErrAlreadyOpened
	}
	if state != field.AddShared {
		return secp256k1.Point{}, false, fmt.Errorf("%w: %v", ErrUnsupportedState, state)
	}
	if err := opener.set.mark(&index); err != nil {
		return secp256k1.Point{}, false, err
	}
	opener.sum.Add(&opener.sum, &share)

	for _, seen := range opener.set.seen {
		if !seen {
			return secp256k1.Point{}, false, nil
		}
	}
	opener.secret = opener.sum
	opener.done = true
	return opener.secret, true, nil
}

// Reset prepares the PointOpener for the opening of a new point.
func (opener *PointOpener) Reset() {
	opener.set.reset()
	opener.sum = secp256k1.NewPointInfinity()
	opener.secret = secp256k1.Point{}
	opener.done = false
}
