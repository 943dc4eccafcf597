// Package testutil contains helpers for creating sharings of random secrets
// in tests.
package testutil

import (
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"
)

// AdditiveSharing returns n additive shares of the given secret: all but the
// last share are random, and the last is chosen so that the shares sum to
// the secret.
func AdditiveSharing(secret secp256k1.Fn, n int) []secp256k1.Fn {
	shares := make([]secp256k1.Fn, n)
	var sum secp256k1.Fn
	for i := 0; i < n-1; i++ {
		shares[i] = secp256k1.RandomFn()
		sum.Add(&sum, &shares[i])
	}
	sum.Negate(&sum)
	shares[n-1].Add(&secret, &sum)
	return shares
}

// AdditivePointSharing returns the point x*G along with n additive shares of
// it.
func AdditivePointSharing(x secp256k1.Fn, n int) (secp256k1.Point, []secp256k1.Point) {
	var secret secp256k1.Point
	secret.BaseExp(&x)

	scalars := AdditiveSharing(x, n)
	shares := make([]secp256k1.Point, n)
	for i := range shares {
		shares[i].BaseExp(&scalars[i])
	}
	return secret, shares
}

// ShamirSharing returns a Shamir sharing of the given secret with
// reconstruction threshold k for the players with the given indices.
func ShamirSharing(secret secp256k1.Fn, indices []secp256k1.Fn, k int) shamir.Shares {
	shares := make(shamir.Shares, len(indices))
	coeffs := make([]secp256k1.Fn, k)
	shamir.ShareAndGetCoeffs(&shares, coeffs, indices, secret, k)
	return shares
}

// RandomFns returns n random scalars.
func RandomFns(n int) []secp256k1.Fn {
	fns := make([]secp256k1.Fn, n)
	for i := range fns {
		fns[i] = secp256k1.RandomFn()
	}
	return fns
}
