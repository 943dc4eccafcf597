// Package reveal defines the conversion contract used to move values between
// the shared representation, where the true value is distributed across the
// players of a multi-party computation, and the public representation, where
// the value is known locally.
//
// A Conv[S, B] is a dictionary that witnesses that B is the public (base)
// representation of S. Leaf types, such as shared field elements, provide
// their own Conv; composite types (slices, maps, options, cells, pairs and
// records) build theirs out of the Convs of their parts. A conversion never
// changes the shape of a value: only the representation of the leaves
// changes.
//
// Every conversion visits the leaves of a value in a deterministic order
// (slice order, ascending key order, field registration order). Leaves whose
// reveal involves communication with other players rely on this to stay in
// lock-step.
package reveal

import "reflect"

// Conv is the conversion contract between a representation S that may be
// shared and its fully public representation B. All operations consume their
// argument; the result must not alias it.
type Conv[S, B any] interface {
	// Reveal converts a possibly shared value into its public form. For
	// shared leaves the caller is responsible for the reveal protocol having
	// been run (or being run by the leaf); composites only recurse.
	Reveal(S) B

	// FromAddShared tags a locally known additive share as a shared value.
	// No validation is done that the shares of all players are consistent.
	FromAddShared(B) S

	// FromPublic tags a known public value.
	FromPublic(B) S

	// UnwrapAsPublic extracts the public value from a value that is already
	// public, without running any reveal protocol. Implementations that
	// cannot guarantee that the value is public panic with an
	// *UnsupportedError.
	UnwrapAsPublic(S) B
}

// Revealable is satisfied by pointer types whose element type implements the
// contract with methods: Reveal on the value, and FromAddShared and
// FromPublic as setters on the pointer. Types that can also be unwrapped as
// public implement PublicUnwrapper.
type Revealable[S, B any] interface {
	*S
	Reveal() B
	FromAddShared(B)
	FromPublic(B)
}

// PublicUnwrapper is the optional capability of a Revealable type to be
// unwrapped as public without a reveal.
type PublicUnwrapper[B any] interface {
	UnwrapAsPublic() B
}

// Methods is the Conv of a type that implements the contract with its own
// methods.
type Methods[S, B any, PS Revealable[S, B]] struct{}

// MethodsOf returns the Conv of a type that implements Revealable. The
// pointer type parameter is inferred, so a call looks like
//
//	conv := reveal.MethodsOf[Index, Index]()
func MethodsOf[S, B any, PS Revealable[S, B]]() Methods[S, B, PS] {
	return Methods[S, B, PS]{}
}

// Reveal implements the Conv interface.
func (Methods[S, B, PS]) Reveal(s S) B {
	return PS(&s).Reveal()
}

// FromAddShared implements the Conv interface.
func (Methods[S, B, PS]) FromAddShared(b B) S {
	var s S
	PS(&s).FromAddShared(b)
	return s
}

// FromPublic implements the Conv interface.
func (Methods[S, B, PS]) FromPublic(b B) S {
	var s S
	PS(&s).FromPublic(b)
	return s
}

// UnwrapAsPublic implements the Conv interface. It panics with an
// *UnsupportedError when S does not implement PublicUnwrapper.
func (Methods[S, B, PS]) UnwrapAsPublic(s S) B {
	if u, ok := any(PS(&s)).(PublicUnwrapper[B]); ok {
		return u.UnwrapAsPublic()
	}
	return Unsupported[S, B]("UnwrapAsPublic")
}

// TypeName returns the name of the type T, including for interface types.
func TypeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
