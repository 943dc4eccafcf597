package reveal

import (
	"reflect"

	"github.com/mohae/deepcopy"
)

// Cloner is implemented by types that know how to duplicate themselves. Types
// with unexported state that is shared by reference must implement it to be
// used in a Cell.
type Cloner[T any] interface {
	Clone() T
}

// Cell is the Conv of a pointer whose pointee may be shared with other
// holders. The pointee is duplicated before it is converted, and the result
// is placed behind a fresh pointer, so that the value seen by the other
// holders is never consumed. A nil pointer stays nil.
type Cell[S, B any] struct {
	Elem Conv[S, B]
}

// CellOf returns the Conv of pointers to values of the given Conv.
func CellOf[S, B any](elem Conv[S, B]) Cell[S, B] {
	return Cell[S, B]{Elem: elem}
}

// Reveal implements the Conv interface.
func (c Cell[S, B]) Reveal(p *S) *B {
	return mapCell(p, c.Elem.Reveal)
}

// FromAddShared implements the Conv interface.
func (c Cell[S, B]) FromAddShared(p *B) *S {
	return mapCell(p, c.Elem.FromAddShared)
}

// FromPublic implements the Conv interface.
func (c Cell[S, B]) FromPublic(p *B) *S {
	return mapCell(p, c.Elem.FromPublic)
}

// UnwrapAsPublic implements the Conv interface.
func (c Cell[S, B]) UnwrapAsPublic(p *S) *B {
	return mapCell(p, c.Elem.UnwrapAsPublic)
}

func mapCell[T, R any](p *T, f func(T) R) *R {
	if p == nil {
		return nil
	}
	r := f(Clone(*p))
	return &r
}

// Clone returns a deep copy of t. It uses the Clone method when T (or *T)
// implements Cloner. Otherwise values that hold no references are copied by
// assignment, and values whose reachable fields are all exported are copied
// recursively. Any other T must implement Cloner: Clone panics with an
// *UnsupportedError rather than return a value that shares state with t.
func Clone[T any](t T) T {
	if c, ok := any(t).(Cloner[T]); ok {
		return c.Clone()
	}
	if c, ok := any(&t).(Cloner[T]); ok {
		return c.Clone()
	}
	shape := shapeOf(reflect.TypeOf((*T)(nil)).Elem(), map[reflect.Type]bool{})
	switch {
	case shape.opaque:
		panic(&UnsupportedError{Type: TypeName[T](), Op: "Clone", Reason: "holds an interface, func or chan and has no Clone method"})
	case !shape.refs:
		return t
	case shape.unexported:
		panic(&UnsupportedError{Type: TypeName[T](), Op: "Clone", Reason: "holds references next to unexported fields and has no Clone method"})
	}
	cp, _ := deepcopy.Copy(t).(T)
	return cp
}

// copyShape describes what a value of some type can hold.
type copyShape struct {
	// refs is set when the value can hold a pointer, slice or map.
	refs bool
	// unexported is set when the value can hold a struct with unexported
	// fields, which a recursive copy would drop.
	unexported bool
	// opaque is set when the value can hold something that cannot be
	// copied by looking at its type.
	opaque bool
}

func (shape copyShape) or(other copyShape) copyShape {
	return copyShape{
		refs:       shape.refs || other.refs,
		unexported: shape.unexported || other.unexported,
		opaque:     shape.opaque || other.opaque,
	}
}

func shapeOf(t reflect.Type, seen map[reflect.Type]bool) copyShape {
	if seen[t] {
		return copyShape{}
	}
	seen[t] = true
	switch t.Kind() {
	case reflect.Struct:
		var shape copyShape
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			shape = shape.or(shapeOf(f.Type, seen))
			if f.PkgPath != "" {
				shape.unexported = true
			}
		}
		return shape
	case reflect.Array:
		return shapeOf(t.Elem(), seen)
	case reflect.Ptr, reflect.Slice:
		return copyShape{refs: true}.or(shapeOf(t.Elem(), seen))
	case reflect.Map:
		return copyShape{refs: true}.or(shapeOf(t.Key(), seen)).or(shapeOf(t.Elem(), seen))
	case reflect.Interface, reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return copyShape{refs: true, opaque: true}
	}
	return copyShape{}
}
