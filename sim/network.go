// Package sim simulates a group of players that run a computation on shared
// values in the same process. Each player runs in its own goroutine and
// implements field.Opener, so values can be revealed for real: the player
// sends its share to every player and reconstructs the value from the shares
// it receives.
package sim

import (
	"context"
	"fmt"

	"github.com/renproject/mpcalg/mpcutil"
	"github.com/renproject/mpcalg/params"
	"github.com/renproject/secp256k1"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// An Option configures a Network.
type Option func(*Network)

// WithLogger sets the logger of the network. By default the standard logrus
// logger is used.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(net *Network) {
		net.logger = logger
	}
}

// WithIndices sets the Shamir indices of the players. By default the players
// have the indices 1 to N.
func WithIndices(indices []secp256k1.Fn) Option {
	return func(net *Network) {
		net.indices = make([]secp256k1.Fn, len(indices))
		copy(net.indices, indices)
	}
}

// A Network is a group of players that run a computation together.
type Network struct {
	params  params.Params
	indices []secp256k1.Fn
	logger  logrus.FieldLogger
}

// NewNetwork creates a Network with the given parameters.
func NewNetwork(p params.Params, opts ...Option) (*Network, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	net := &Network{
		params: p,
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(net)
	}
	if net.indices == nil {
		if p.N > 0xFFFF {
			return nil, fmt.Errorf("%w: no default indices for %v players", ErrInvalidIndices, p.N)
		}
		net.indices = lo.Times(p.N, func(i int) secp256k1.Fn {
			return secp256k1.NewFnFromU16(uint16(i + 1))
		})
	}
	if err := validIndices(net.indices, p.N); err != nil {
		return nil, err
	}
	return net, nil
}

func validIndices(indices []secp256k1.Fn, n int) error {
	if len(indices) != n {
		return fmt.Errorf("%w: expected %v indices, got %v", ErrInvalidIndices, n, len(indices))
	}
	var zero secp256k1.Fn
	for i := range indices {
		if indices[i].Eq(&zero) {
			return fmt.Errorf("%w: index %v is zero", ErrInvalidIndices, i)
		}
		for j := i + 1; j < len(indices); j++ {
			if indices[i].Eq(&indices[j]) {
				return fmt.Errorf("%w: indices %v and %v are equal", ErrInvalidIndices, i, j)
			}
		}
	}
	return nil
}

// Params returns the parameters of the network.
func (net *Network) Params() params.Params { return net.params }

// Indices returns the Shamir indices of the players, ordered by ID.
func (net *Network) Indices() []secp256k1.Fn {
	indices := make([]secp256k1.Fn, len(net.indices))
	copy(indices, net.indices)
	return indices
}

// Run runs f once for every player, each in its own goroutine, and waits for
// all of them to return. If any player returns an error or panics, the
// context of the other players is cancelled and the first error is returned.
// Panics are turned into errors, so a player that, e.g., unwraps a shared
// value as public makes Run fail with the reveal.UnsupportedError.
func (net *Network) Run(ctx context.Context, f func(*Party) error) error {
	g, ctx := errgroup.WithContext(ctx)

	mailboxes := lo.Times(net.params.N, func(int) *mailbox { return newMailbox() })
	for i := 0; i < net.params.N; i++ {
		party := &Party{
			id:        mpcutil.ID(i),
			net:       net,
			ctx:       ctx,
			mailboxes: mailboxes,
			pending:   map[uint32][]mpcutil.Message{},
			logger:    net.logger.WithField("party", i),
		}
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					if e, ok := r.(error); ok {
						err = fmt.Errorf("party %v: %w", party.id, e)
					} else {
						err = fmt.Errorf("party %v: panic: %v", party.id, r)
					}
					party.logger.WithError(err).Error("party panicked")
				}
			}()
			return f(party)
		})
	}

	net.logger.WithFields(logrus.Fields{
		"n": net.params.N,
		"k": net.params.K,
	}).Debug("running network")
	return g.Wait()
}
