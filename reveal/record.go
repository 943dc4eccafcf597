package reveal

import (
	"fmt"
	"reflect"
	"strings"
)

// Record derives the Conv of a record type S with public representation B
// from a list of fields. Each field is registered once, with accessors for
// the field in S and in B, and the operations of the contract are applied
// field by field in registration order. Every field of S and B must be
// registered, otherwise the operations panic with a *ShapeError, so a Record
// is lossless.
//
// Fields are registered with one of two functions. Field takes the Conv of
// the field explicitly, which is needed for fields of container types and
// for leaves whose Conv carries state. AutoField infers the Conv from the
// field type, which must implement Revealable.
//
//	rec := reveal.NewRecord[Proof, ProofBase]()
//	reveal.Field(rec, "Commitments", func(p *Proof) *[]field.Point { return &p.Commitments },
//		func(p *ProofBase) *[]secp256k1.Point { return &p.Commitments }, reveal.SliceOf(points))
//	reveal.AutoField(rec, "Round", func(p *Proof) *reveal.Index { return &p.Round },
//		func(p *ProofBase) *reveal.Index { return &p.Round })
type Record[S, B any] struct {
	fields []recordField[S, B]
}

type recordField[S, B any] struct {
	name           string
	reveal         func(dst *B, src *S)
	fromAddShared  func(dst *S, src *B)
	fromPublic     func(dst *S, src *B)
	unwrapAsPublic func(dst *B, src *S)
}

// NewRecord returns a Record with no fields.
func NewRecord[S, B any]() *Record[S, B] {
	return &Record[S, B]{}
}

// Field registers a field of the record with the given accessors and Conv.
// It panics if a field with the same name has already been registered.
func Field[S, B, FS, FB any](
	rec *Record[S, B], name string,
	inS func(*S) *FS, inB func(*B) *FB,
	conv Conv[FS, FB],
) {
	rec.add(recordField[S, B]{
		name: name,
		reveal: func(dst *B, src *S) {
			*inB(dst) = conv.Reveal(*inS(src))
		},
		fromAddShared: func(dst *S, src *B) {
			*inS(dst) = conv.FromAddShared(*inB(src))
		},
		fromPublic: func(dst *S, src *B) {
			*inS(dst) = conv.FromPublic(*inB(src))
		},
		unwrapAsPublic: func(dst *B, src *S) {
			*inB(dst) = conv.UnwrapAsPublic(*inS(src))
		},
	})
}

// AutoField registers a field whose type implements the contract with its
// own methods. The field types, and so the Conv, are inferred from the
// accessors.
func AutoField[S, B, FS, FB any, PFS Revealable[FS, FB]](
	rec *Record[S, B], name string,
	inS func(*S) *FS, inB func(*B) *FB,
) {
	Field[S, B, FS, FB](rec, name, inS, inB, MethodsOf[FS, FB, PFS]())
}

func (rec *Record[S, B]) add(f recordField[S, B]) {
	for _, g := range rec.fields {
		if g.name == f.name {
			panic(&ShapeError{Type: TypeName[S](), Reason: fmt.Sprintf("field %v registered twice", f.name)})
		}
	}
	rec.fields = append(rec.fields, f)
}

// check panics with a *ShapeError unless as many fields have been registered
// as S and B have. Fields that are not registered would otherwise come back
// as zero values.
func (rec *Record[S, B]) check() {
	for _, t := range []reflect.Type{reflect.TypeOf((*S)(nil)).Elem(), reflect.TypeOf((*B)(nil)).Elem()} {
		if t.Kind() != reflect.Struct || t.NumField() == len(rec.fields) {
			continue
		}
		registered := make(map[string]bool, len(rec.fields))
		for _, f := range rec.fields {
			registered[f.name] = true
		}
		var missing []string
		for i := 0; i < t.NumField(); i++ {
			if name := t.Field(i).Name; !registered[name] {
				missing = append(missing, name)
			}
		}
		panic(&ShapeError{
			Type: TypeName[S](),
			Reason: fmt.Sprintf("%v has %v fields but %v are registered (unregistered: %v)",
				t, t.NumField(), len(rec.fields), strings.Join(missing, ", ")),
		})
	}
}

// Fields returns the names of the registered fields in registration order.
func (rec *Record[S, B]) Fields() []string {
	names := make([]string, len(rec.fields))
	for i, f := range rec.fields {
		names[i] = f.name
	}
	return names
}

// Reveal implements the Conv interface.
func (rec *Record[S, B]) Reveal(s S) B {
	rec.check()
	var b B
	for _, f := range rec.fields {
		f.reveal(&b, &s)
	}
	return b
}

// FromAddShared implements the Conv interface.
func (rec *Record[S, B]) FromAddShared(b B) S {
	rec.check()
	var s S
	for _, f := range rec.fields {
		f.fromAddShared(&s, &b)
	}
	return s
}

// FromPublic implements the Conv interface.
func (rec *Record[S, B]) FromPublic(b B) S {
	rec.check()
	var s S
	for _, f := range rec.fields {
		f.fromPublic(&s, &b)
	}
	return s
}

// UnwrapAsPublic implements the Conv interface.
func (rec *Record[S, B]) UnwrapAsPublic(s S) B {
	rec.check()
	var b B
	for _, f := range rec.fields {
		f.unwrapAsPublic(&b, &s)
	}
	return b
}
