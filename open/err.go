package open

import "errors"

var (
	// ErrDuplicateIndex signifies that the received share has an index that is
	// the same as the index of one of the shares that is already in the list
	// of shares received for the current opening.
	ErrDuplicateIndex = errors.New("duplicate index")

	// ErrIndexOutOfRange signifies that the received share has an index that
	// is not in the set of indices that the opener was constructed with.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrInconsistentState signifies that the received share is not of the
	// same kind of sharing as the shares already received.
	ErrInconsistentState = errors.New("inconsistent state")

	// ErrUnsupportedState signifies that the received value is not a share,
	// or is a kind of share the opener cannot reconstruct.
	ErrUnsupportedState = errors.New("unsupported state")

	// ErrAlreadyOpened signifies that the opener has already reconstructed the
	// secret and needs to be reset before it can handle more shares.
	ErrAlreadyOpened = errors.New("already opened")
)
