package reveal

// Identity is the Conv of a type that is its own public representation, such
// as the indices and lengths that are never secret. All operations return
// their argument.
type Identity[T any] struct{}

// Reveal implements the Conv interface.
func (Identity[T]) Reveal(t T) T { return t }

// FromAddShared implements the Conv interface.
func (Identity[T]) FromAddShared(t T) T { return t }

// FromPublic implements the Conv interface.
func (Identity[T]) FromPublic(t T) T { return t }

// UnwrapAsPublic implements the Conv interface.
func (Identity[T]) UnwrapAsPublic(t T) T { return t }

// Index is a plain identifier that implements the contract with its own
// methods. It is its own public representation.
type Index int

// Reveal implements the Revealable interface.
func (i Index) Reveal() Index { return i }

// FromAddShared implements the Revealable interface.
func (i *Index) FromAddShared(b Index) { *i = b }

// FromPublic implements the Revealable interface.
func (i *Index) FromPublic(b Index) { *i = b }

// UnwrapAsPublic implements the PublicUnwrapper interface.
func (i Index) UnwrapAsPublic() Index { return i }

// Marker is a zero sized value that only carries the type T.
type Marker[T any] struct{}

// Phantom is the Conv between the markers of a type S and its public
// representation B. It does no work at runtime.
type Phantom[S, B any] struct{}

// PhantomOf returns the Conv between Marker[S] and Marker[B]. The element
// Conv is only used to fix the relationship between S and B.
func PhantomOf[S, B any](Conv[S, B]) Phantom[S, B] {
	return Phantom[S, B]{}
}

// Reveal implements the Conv interface.
func (Phantom[S, B]) Reveal(Marker[S]) Marker[B] { return Marker[B]{} }

// FromAddShared implements the Conv interface.
func (Phantom[S, B]) FromAddShared(Marker[B]) Marker[S] { return Marker[S]{} }

// FromPublic implements the Conv interface.
func (Phantom[S, B]) FromPublic(Marker[B]) Marker[S] { return Marker[S]{} }

// UnwrapAsPublic implements the Conv interface.
func (Phantom[S, B]) UnwrapAsPublic(Marker[S]) Marker[B] { return Marker[B]{} }
