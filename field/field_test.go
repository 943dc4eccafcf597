package field_test

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"
	"time"

	"github.com/renproject/mpcalg/field"
	"github.com/renproject/mpcalg/reveal"
	"github.com/renproject/secp256k1"
	"github.com/renproject/shamir"
	"github.com/renproject/surge"
	"github.com/renproject/surge/surgeutil"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

// mockOpener opens shares by adding a fixed offset to them, and counts how
// many values it has opened.
type mockOpener struct {
	offset secp256k1.Fn
	point  secp256k1.Point
	err    error
	opened int
}

func (opener *mockOpener) OpenFn(fn field.Fn) (secp256k1.Fn, error) {
	opener.opened++
	if opener.err != nil {
		return secp256k1.Fn{}, opener.err
	}
	var v secp256k1.Fn
	value := fn.Value()
	v.Add(&value, &opener.offset)
	return v, nil
}

func (opener *mockOpener) OpenPoint(p field.Point) (secp256k1.Point, error) {
	opener.opened++
	if opener.err != nil {
		return secp256k1.Point{}, opener.err
	}
	var v secp256k1.Point
	value := p.Value()
	v.Add(&value, &opener.point)
	return v, nil
}

func panicValue(f func()) (v interface{}) {
	defer func() { v = recover() }()
	f()
	return nil
}

var _ = Describe("Leaves", func() {
	rand.Seed(int64(time.Now().Nanosecond()))

	Context("scalars", func() {
		It("should reveal public values without an opener", func() {
			conv := field.Fns(nil)
			x := secp256k1.RandomFn()
			revealed := conv.Reveal(conv.FromPublic(x))
			Expect(revealed.Eq(&x)).To(BeTrue())
			unwrapped := conv.UnwrapAsPublic(conv.FromPublic(x))
			Expect(unwrapped.Eq(&x)).To(BeTrue())
		})

		It("should reveal shared values with the opener", func() {
			opener := &mockOpener{offset: secp256k1.RandomFn()}
			conv := field.Fns(opener)
			x := secp256k1.RandomFn()

			shared := conv.FromAddShared(x)
			Expect(shared.State()).To(Equal(field.AddShared))

			var expected secp256k1.Fn
			expected.Add(&x, &opener.offset)
			revealed := conv.Reveal(shared)
			Expect(revealed.Eq(&expected)).To(BeTrue())
			Expect(opener.opened).To(Equal(1))
		})

		It("should not open public values", func() {
			opener := &mockOpener{}
			conv := field.Fns(opener)
			conv.Reveal(conv.FromPublic(secp256k1.RandomFn()))
			Expect(opener.opened).To(Equal(0))
		})

		It("should panic when revealing a shared value without an opener", func() {
			conv := field.Fns(nil)
			v := panicValue(func() { conv.Reveal(conv.FromAddShared(secp256k1.RandomFn())) })
			err, ok := v.(error)
			Expect(ok).To(BeTrue())
			Expect(errors.Is(err, field.ErrNoOpener)).To(BeTrue())
		})

		It("should panic with the error of the opener", func() {
			failure := errors.New("failure")
			conv := field.Fns(&mockOpener{err: failure})
			v := panicValue(func() { conv.Reveal(conv.FromAddShared(secp256k1.RandomFn())) })
			err, ok := v.(error)
			Expect(ok).To(BeTrue())
			Expect(errors.Is(err, failure)).To(BeTrue())
		})

		It("should refuse to unwrap shared values as public", func() {
			conv := field.Fns(nil)
			share := shamir.Share{Index: secp256k1.RandomFn(), Value: secp256k1.RandomFn()}
			for _, shared := range []field.Fn{conv.FromAddShared(secp256k1.RandomFn()), field.ShamirShareFn(share)} {
				shared := shared
				v := panicValue(func() { conv.UnwrapAsPublic(shared) })
				err, ok := v.(*reveal.UnsupportedError)
				Expect(ok).To(BeTrue())
				Expect(err.Op).To(Equal("UnwrapAsPublic"))
				Expect(errors.Is(err, reveal.ErrUnsupported)).To(BeTrue())
			}
		})

		It("should keep the index of Shamir shares", func() {
			share := shamir.Share{Index: secp256k1.RandomFn(), Value: secp256k1.RandomFn()}
			fn := field.ShamirShareFn(share)
			Expect(fn.State()).To(Equal(field.ShamirShared))
			Expect(fn.Share().Index.Eq(&share.Index)).To(BeTrue())
			Expect(fn.Share().Value.Eq(&share.Value)).To(BeTrue())
		})
	})

	Context("points", func() {
		It("should reveal public points without an opener", func() {
			conv := field.Points(nil)
			p := secp256k1.RandomPoint()
			revealed := conv.Reveal(conv.FromPublic(p))
			Expect(revealed.Eq(&p)).To(BeTrue())
		})

		It("should reveal shared points with the opener", func() {
			opener := &mockOpener{point: secp256k1.RandomPoint()}
			conv := field.Points(opener)
			p := secp256k1.RandomPoint()

			var expected secp256k1.Point
			expected.Add(&p, &opener.point)
			revealed := conv.Reveal(conv.FromAddShared(p))
			Expect(revealed.Eq(&expected)).To(BeTrue())
		})

		It("should refuse to unwrap shared points as public", func() {
			conv := field.Points(nil)
			v := panicValue(func() { conv.UnwrapAsPublic(conv.FromAddShared(secp256k1.RandomPoint())) })
			err, ok := v.(error)
			Expect(ok).To(BeTrue())
			Expect(errors.Is(err, reveal.ErrUnsupported)).To(BeTrue())
		})
	})

	Context("arithmetic", func() {
		It("should add values in the same state", func() {
			a, b := secp256k1.RandomFn(), secp256k1.RandomFn()
			var expected secp256k1.Fn
			expected.Add(&a, &b)

			x, y := field.AddShareFn(a), field.AddShareFn(b)
			var z field.Fn
			Expect(z.Add(&x, &y)).To(Succeed())
			Expect(z.State()).To(Equal(field.AddShared))
			value := z.Value()
			Expect(value.Eq(&expected)).To(BeTrue())
		})

		It("should add Shamir shares with the same index", func() {
			index := secp256k1.RandomFn()
			x := field.ShamirShareFn(shamir.Share{Index: index, Value: secp256k1.RandomFn()})
			y := field.ShamirShareFn(shamir.Share{Index: index, Value: secp256k1.RandomFn()})
			var z field.Fn
			Expect(z.Add(&x, &y)).To(Succeed())
			Expect(z.Share().Index.Eq(&index)).To(BeTrue())
		})

		It("should not add values in different states", func() {
			x, y := field.AddShareFn(secp256k1.RandomFn()), field.PublicFn(secp256k1.RandomFn())
			var z field.Fn
			Expect(errors.Is(z.Add(&x, &y), field.ErrStateMismatch)).To(BeTrue())

			x = field.ShamirShareFn(shamir.Share{Index: secp256k1.RandomFn(), Value: secp256k1.RandomFn()})
			y = field.ShamirShareFn(shamir.Share{Index: secp256k1.RandomFn(), Value: secp256k1.RandomFn()})
			Expect(errors.Is(z.Add(&x, &y), field.ErrStateMismatch)).To(BeTrue())
		})

		It("should add points in the same state", func() {
			a, b := secp256k1.RandomPoint(), secp256k1.RandomPoint()
			var expected secp256k1.Point
			expected.Add(&a, &b)

			x, y := field.AddSharePoint(a), field.AddSharePoint(b)
			var z field.Point
			Expect(z.Add(&x, &y)).To(Succeed())
			value := z.Value()
			Expect(value.Eq(&expected)).To(BeTrue())

			w := field.PublicPoint(b)
			Expect(errors.Is(z.Add(&x, &w), field.ErrStateMismatch)).To(BeTrue())
		})
	})

	Context("states", func() {
		It("should only count additive and Shamir shares as shared", func() {
			Expect(field.Public.IsShared()).To(BeFalse())
			Expect(field.AddShared.IsShared()).To(BeTrue())
			Expect(field.ShamirShared.IsShared()).To(BeTrue())
		})

		It("should return an error when unmarshaling an unknown state", func() {
			var s field.State
			_, _, err := s.Unmarshal([]byte{3}, surge.MaxBytes)
			Expect(errors.Is(err, field.ErrInvalidState)).To(BeTrue())
		})

		It("should return an error when unmarshaling a Shamir shared point", func() {
			p := field.AddSharePoint(secp256k1.RandomPoint())
			buf := make([]byte, p.SizeHint())
			_, _, err := p.Marshal(buf, len(buf))
			Expect(err).ToNot(HaveOccurred())
			buf[0] = byte(field.ShamirShared)

			var q field.Point
			_, _, err = q.Unmarshal(buf, surge.MaxBytes)
			Expect(errors.Is(err, field.ErrInvalidState)).To(BeTrue())
		})
	})

	Context("encoding errors", func() {
		It("should wrap the errors of the fields of a scalar", func() {
			var fn field.Fn
			_, _, err := fn.Unmarshal([]byte{byte(field.AddShared)}, surge.MaxBytes)
			Expect(err).To(HaveOccurred())
			Expect(errors.Unwrap(err)).ToNot(BeNil())

			fn = field.AddShareFn(secp256k1.RandomFn())
			_, _, err = fn.Marshal(make([]byte, 1), surge.MaxBytes)
			Expect(err).To(HaveOccurred())
			Expect(errors.Unwrap(err)).ToNot(BeNil())
		})

		It("should wrap the errors of the fields of a point", func() {
			var p field.Point
			_, _, err := p.Unmarshal([]byte{byte(field.AddShared)}, surge.MaxBytes)
			Expect(err).To(HaveOccurred())
			Expect(errors.Unwrap(err)).ToNot(BeNil())

			p = field.AddSharePoint(secp256k1.RandomPoint())
			_, _, err = p.Marshal(make([]byte, 1), surge.MaxBytes)
			Expect(err).To(HaveOccurred())
			Expect(errors.Unwrap(err)).ToNot(BeNil())
		})

		It("should keep the invalid state error reachable", func() {
			var fn field.Fn
			_, _, err := fn.Unmarshal([]byte{3}, surge.MaxBytes)
			Expect(errors.Is(err, field.ErrInvalidState)).To(BeTrue())
		})
	})

	Context("points marshalling", func() {
		It("should be the same after marshalling and unmarshalling", func() {
			for i := 0; i < 10; i++ {
				p := field.PublicPoint(secp256k1.RandomPoint())
				if rand.Intn(2) == 0 {
					p = field.AddSharePoint(secp256k1.RandomPoint())
				}
				buf := make([]byte, p.SizeHint())
				_, _, err := p.Marshal(buf, len(buf))
				Expect(err).ToNot(HaveOccurred())

				var q field.Point
				_, _, err = q.Unmarshal(buf, surge.MaxBytes)
				Expect(err).ToNot(HaveOccurred())
				Expect(q.Eq(&p)).To(BeTrue())
			}
		})
	})
})

var _ = Describe("Surge marshalling", func() {
	trials := 10
	ts := []reflect.Type{
		reflect.TypeOf(field.Fn{}),
	}

	for _, t := range ts {
		t := t

		Context(fmt.Sprintf("surge marshalling and unmarshalling for %v", t), func() {
			It("should be the same after marshalling and unmarshalling", func() {
				for i := 0; i < trials; i++ {
					Expect(surgeutil.MarshalUnmarshalCheck(t)).To(Succeed())
				}
			})

			It("should not panic when fuzzing", func() {
				for i := 0; i < trials; i++ {
					Expect(func() { surgeutil.Fuzz(t) }).ToNot(Panic())
				}
			})

			Context("marshalling", func() {
				It("should return an error when the buffer is too small", func() {
					for i := 0; i < trials; i++ {
						Expect(surgeutil.MarshalBufTooSmall(t)).To(Succeed())
					}
				})

				It("should return an error when the memory quota is too small", func() {
					for i := 0; i < trials; i++ {
						Expect(surgeutil.MarshalRemTooSmall(t)).To(Succeed())
					}
				})
			})

			Context("unmarshalling", func() {
				It("should return an error when the buffer is too small", func() {
					for i := 0; i < trials; i++ {
						Expect(surgeutil.UnmarshalBufTooSmall(t)).To(Succeed())
					}
				})

				It("should return an error when the memory quota is too small", func() {
					for i := 0; i < trials; i++ {
						Expect(surgeutil.UnmarshalRemTooSmall(t)).To(Succeed())
					}
				})
			})
		})
	}
})
