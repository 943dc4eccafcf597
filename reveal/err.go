package reveal

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupported signifies that an operation of the contract was used on
	// a type that does not support it, e.g. unwrapping a value as public when
	// the type cannot guarantee that it is public. It always indicates a
	// programming error on the side of the caller.
	ErrUnsupported = errors.New("unsupported operation")

	// ErrShapeMismatch signifies that a conversion would have produced a
	// value with a different shape to its input, e.g. two keys of a map that
	// convert to the same key.
	ErrShapeMismatch = errors.New("shape mismatch")
)

// UnsupportedError is the panic value of an unsupported operation. It
// identifies the offending type and operation.
type UnsupportedError struct {
	Type   string
	Op     string
	Reason string
}

// Error implements the error interface.
func (err *UnsupportedError) Error() string {
	if err.Reason != "" {
		return fmt.Sprintf("%v: no %v for %v: %v", ErrUnsupported, err.Op, err.Type, err.Reason)
	}
	return fmt.Sprintf("%v: no %v for %v", ErrUnsupported, err.Op, err.Type)
}

// Unwrap returns ErrUnsupported so that errors.Is works on the error.
func (err *UnsupportedError) Unwrap() error { return ErrUnsupported }

// ShapeError is the panic value when a conversion cannot preserve the shape
// of its input.
type ShapeError struct {
	Type   string
	Reason string
}

// Error implements the error interface.
func (err *ShapeError) Error() string {
	return fmt.Sprintf("%v: %v: %v", ErrShapeMismatch, err.Type, err.Reason)
}

// Unwrap returns ErrShapeMismatch so that errors.Is works on the error.
func (err *ShapeError) Unwrap() error { return ErrShapeMismatch }

// Unsupported panics with an *UnsupportedError for the type S and the given
// operation. The return type lets it be used as the last statement of any
// operation of a Conv[S, B].
func Unsupported[S, B any](op string) B {
	panic(&UnsupportedError{Type: TypeName[S](), Op: op})
}

// NotPublic panics with an *UnsupportedError for the type S, recording why
// the value cannot be unwrapped as public. It is meant for leaves that
// support UnwrapAsPublic only for values in the public state.
func NotPublic[S, B any](reason string) B {
	panic(&UnsupportedError{Type: TypeName[S](), Op: "UnwrapAsPublic", Reason: reason})
}
