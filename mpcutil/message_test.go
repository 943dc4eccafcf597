package mpcutil_test

import (
	"errors"
	"math/rand"
	"time"

	"github.com/renproject/mpcalg/mpcutil"
	"github.com/renproject/surge"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Message", func() {
	rand.Seed(int64(time.Now().Nanosecond()))

	RandomMessage := func() mpcutil.Message {
		payload := make([]byte, rand.Intn(100)+1)
		rand.Read(payload)
		return mpcutil.Message{
			From:    mpcutil.ID(rand.Int31()),
			To:      mpcutil.ID(rand.Int31()),
			Seq:     rand.Uint32(),
			Kind:    mpcutil.Kind(rand.Intn(2)),
			Payload: payload,
		}
	}

	It("should be the same after marshalling and unmarshalling", func() {
		for i := 0; i < 10; i++ {
			msg := RandomMessage()
			buf := make([]byte, msg.SizeHint())
			tail, _, err := msg.Marshal(buf, surge.MaxBytes)
			Expect(err).ToNot(HaveOccurred())
			Expect(tail).To(BeEmpty())

			var got mpcutil.Message
			_, _, err = got.Unmarshal(buf, surge.MaxBytes)
			Expect(err).ToNot(HaveOccurred())
			Expect(got).To(Equal(msg))
		}
	})

	It("should return an error when the buffer is too small", func() {
		msg := RandomMessage()
		buf := make([]byte, msg.SizeHint()-1)
		_, _, err := msg.Marshal(buf, surge.MaxBytes)
		Expect(err).To(HaveOccurred())
		Expect(errors.Unwrap(err)).ToNot(BeNil())
	})

	It("should return an error when unmarshaling a truncated message", func() {
		msg := RandomMessage()
		buf := make([]byte, msg.SizeHint())
		_, _, err := msg.Marshal(buf, surge.MaxBytes)
		Expect(err).ToNot(HaveOccurred())

		var got mpcutil.Message
		_, _, err = got.Unmarshal(buf[:len(buf)-1], surge.MaxBytes)
		Expect(err).To(HaveOccurred())
		Expect(errors.Unwrap(err)).ToNot(BeNil())
	})

	It("should print the kind of the opening", func() {
		Expect(mpcutil.KindFn.String()).To(Equal("Fn"))
		Expect(mpcutil.KindPoint.String()).To(Equal("Point"))
	})
})
