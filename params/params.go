// Package params holds the parameters of a group of players.
package params

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is returned when validating parameters that cannot be used
// by a group of players.
var ErrInvalidParams = errors.New("invalid params")

// Params are the parameters of a group of players.
type Params struct {
	// N is the number of players.
	N int

	// K is the reconstruction threshold of Shamir sharings: the number of
	// shares needed to open a value. Additive sharings always need the shares
	// of all N players.
	K int
}

// Default returns parameters for n players with an honest majority
// reconstruction threshold.
func Default(n int) Params {
	return Params{N: n, K: n/2 + 1}
}

// Validate returns an error if the parameters cannot be used.
func (params Params) Validate() error {
	if params.N < 1 {
		return fmt.Errorf("%w: number of players should be at least 1, got %v", ErrInvalidParams, params.N)
	}
	if params.K < 1 || params.K > params.N {
		return fmt.Errorf("%w: k should be between 1 and %v, got %v", ErrInvalidParams, params.N, params.K)
	}
	return nil
}
