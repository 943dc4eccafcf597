package reveal

import (
	"fmt"

	"github.com/samber/lo"
)

// Slice is the Conv of a slice whose elements have the Conv Elem. Order and
// length are preserved, and a nil slice stays nil.
type Slice[S, B any] struct {
	Elem Conv[S, B]
}

// SliceOf returns the Conv of slices of elements with the given Conv.
func SliceOf[S, B any](elem Conv[S, B]) Slice[S, B] {
	return Slice[S, B]{Elem: elem}
}

// Reveal implements the Conv interface.
func (c Slice[S, B]) Reveal(ss []S) []B {
	return mapSlice(ss, c.Elem.Reveal)
}

// FromAddShared implements the Conv interface.
func (c Slice[S, B]) FromAddShared(bs []B) []S {
	return mapSlice(bs, c.Elem.FromAddShared)
}

// FromPublic implements the Conv interface.
func (c Slice[S, B]) FromPublic(bs []B) []S {
	return mapSlice(bs, c.Elem.FromPublic)
}

// UnwrapAsPublic implements the Conv interface.
func (c Slice[S, B]) UnwrapAsPublic(ss []S) []B {
	return mapSlice(ss, c.Elem.UnwrapAsPublic)
}

func mapSlice[T, R any](ts []T, f func(T) R) []R {
	if ts == nil {
		return nil
	}
	return lo.Map(ts, func(t T, _ int) R { return f(t) })
}

// Option is a value that may be absent.
type Option[T any] struct {
	value T
	ok    bool
}

// Some returns an Option holding the value t.
func Some[T any](t T) Option[T] {
	return Option[T]{value: t, ok: true}
}

// None returns an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// Get returns the value of the Option and whether it is present.
func (o Option[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSome returns true if the Option holds a value.
func (o Option[T]) IsSome() bool { return o.ok }

// String implements the Stringer interface.
func (o Option[T]) String() string {
	if !o.ok {
		return "None"
	}
	return fmt.Sprintf("Some(%v)", o.value)
}

func mapOption[T, R any](o Option[T], f func(T) R) Option[R] {
	if !o.ok {
		return None[R]()
	}
	return Some(f(o.value))
}

// Optional is the Conv of an Option whose value has the Conv Elem. None maps
// to None.
type Optional[S, B any] struct {
	Elem Conv[S, B]
}

// OptionOf returns the Conv of options of values with the given Conv.
func OptionOf[S, B any](elem Conv[S, B]) Optional[S, B] {
	return Optional[S, B]{Elem: elem}
}

// Reveal implements the Conv interface.
func (c Optional[S, B]) Reveal(o Option[S]) Option[B] {
	return mapOption(o, c.Elem.Reveal)
}

// FromAddShared implements the Conv interface.
func (c Optional[S, B]) FromAddShared(o Option[B]) Option[S] {
	return mapOption(o, c.Elem.FromAddShared)
}

// FromPublic implements the Conv interface.
func (c Optional[S, B]) FromPublic(o Option[B]) Option[S] {
	return mapOption(o, c.Elem.FromPublic)
}

// UnwrapAsPublic implements the Conv interface.
func (c Optional[S, B]) UnwrapAsPublic(o Option[S]) Option[B] {
	return mapOption(o, c.Elem.UnwrapAsPublic)
}

// Pair is a 2-tuple.
type Pair[A, B any] struct {
	First  A
	Second B
}

// PairConv is the Conv of a Pair whose components have the Convs First and
// Second.
type PairConv[AS, AB, BS, BB any] struct {
	First  Conv[AS, AB]
	Second Conv[BS, BB]
}

// PairOf returns the Conv of pairs with components of the given Convs.
func PairOf[AS, AB, BS, BB any](first Conv[AS, AB], second Conv[BS, BB]) PairConv[AS, AB, BS, BB] {
	return PairConv[AS, AB, BS, BB]{First: first, Second: second}
}

// Reveal implements the Conv interface.
func (c PairConv[AS, AB, BS, BB]) Reveal(p Pair[AS, BS]) Pair[AB, BB] {
	return Pair[AB, BB]{c.First.Reveal(p.First), c.Second.Reveal(p.Second)}
}

// FromAddShared implements the Conv interface.
func (c PairConv[AS, AB, BS, BB]) FromAddShared(p Pair[AB, BB]) Pair[AS, BS] {
	return Pair[AS, BS]{c.First.FromAddShared(p.First), c.Second.FromAddShared(p.Second)}
}

// FromPublic implements the Conv interface.
func (c PairConv[AS, AB, BS, BB]) FromPublic(p Pair[AB, BB]) Pair[AS, BS] {
	return Pair[AS, BS]{c.First.FromPublic(p.First), c.Second.FromPublic(p.Second)}
}

// UnwrapAsPublic implements the Conv interface.
func (c PairConv[AS, AB, BS, BB]) UnwrapAsPublic(p Pair[AS, BS]) Pair[AB, BB] {
	return Pair[AB, BB]{c.First.UnwrapAsPublic(p.First), c.Second.UnwrapAsPublic(p.Second)}
}

// Triple is a 3-tuple. Products of higher arity are records, see Record.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// TripleConv is the Conv of a Triple.
type TripleConv[AS, AB, BS, BB, CS, CB any] struct {
	First  Conv[AS, AB]
	Second Conv[BS, BB]
	Third  Conv[CS, CB]
}

// TripleOf returns the Conv of triples with components of the given Convs.
func TripleOf[AS, AB, BS, BB, CS, CB any](
	first Conv[AS, AB], second Conv[BS, BB], third Conv[CS, CB],
) TripleConv[AS, AB, BS, BB, CS, CB] {
	return TripleConv[AS, AB, BS, BB, CS, CB]{First: first, Second: second, Third: third}
}

// Reveal implements the Conv interface.
func (c TripleConv[AS, AB, BS, BB, CS, CB]) Reveal(t Triple[AS, BS, CS]) Triple[AB, BB, CB] {
	return Triple[AB, BB, CB]{c.First.Reveal(t.First), c.Second.Reveal(t.Second), c.Third.Reveal(t.Third)}
}

// FromAddShared implements the Conv interface.
func (c TripleConv[AS, AB, BS, BB, CS, CB]) FromAddShared(t Triple[AB, BB, CB]) Triple[AS, BS, CS] {
	return Triple[AS, BS, CS]{
		c.First.FromAddShared(t.First),
		c.Second.FromAddShared(t.Second),
		c.Third.FromAddShared(t.Third),
	}
}

// FromPublic implements the Conv interface.
func (c TripleConv[AS, AB, BS, BB, CS, CB]) FromPublic(t Triple[AB, BB, CB]) Triple[AS, BS, CS] {
	return Triple[AS, BS, CS]{c.First.FromPublic(t.First), c.Second.FromPublic(t.Second), c.Third.FromPublic(t.Third)}
}

// UnwrapAsPublic implements the Conv interface.
func (c TripleConv[AS, AB, BS, BB, CS, CB]) UnwrapAsPublic(t Triple[AS, BS, CS]) Triple[AB, BB, CB] {
	return Triple[AB, BB, CB]{
		c.First.UnwrapAsPublic(t.First),
		c.Second.UnwrapAsPublic(t.Second),
		c.Third.UnwrapAsPublic(t.Third),
	}
}
