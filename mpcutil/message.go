package mpcutil

import (
	"fmt"

	"github.com/renproject/surge"
)

// ID represents a unique identifier for a player.
type ID int32

// SizeHint implements the surge.SizeHinter interface.
func (id ID) SizeHint() int { return 4 }

// Marshal implements the surge.Marshaler interface.
func (id ID) Marshal(buf []byte, rem int) ([]byte, int, error) {
	return surge.MarshalI32(int32(id), buf, rem)
}

// Unmarshal implements the surge.Unmarshaler interface.
func (id *ID) Unmarshal(buf []byte, rem int) ([]byte, int, error) {
	return surge.UnmarshalI32((*int32)(id), buf, rem)
}

// Kind is the kind of value carried by a Message.
type Kind uint8

const (
	// KindFn signifies a message carrying a share of a scalar.
	KindFn = Kind(iota)

	// KindPoint signifies a message carrying a share of a curve point.
	KindPoint
)

// String implements the Stringer interface.
func (kind Kind) String() string {
	switch kind {
	case KindFn:
		return "Fn"
	case KindPoint:
		return "Point"
	default:
		return fmt.Sprintf("Unknown(%v)", uint8(kind))
	}
}

// A Message is sent from one player to another during the opening of a
// shared value. Seq is the position of the opening in the sequence of
// openings of the sender, which all players run in the same order.
type Message struct {
	From, To ID
	Seq      uint32
	Kind     Kind
	Payload  []byte
}

// SizeHint implements the surge.SizeHinter interface.
func (msg Message) SizeHint() int {
	return msg.From.SizeHint() +
		msg.To.SizeHint() +
		surge.SizeHint(msg.Seq) +
		surge.SizeHint(uint8(msg.Kind)) +
		surge.SizeHint(msg.Payload)
}

// Marshal implements the surge.Marshaler interface.
func (msg Message) Marshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := msg.From.Marshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling from: %w", err)
	}
	buf, rem, err = msg.To.Marshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling to: %w", err)
	}
	buf, rem, err = surge.MarshalU32(msg.Seq, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling seq: %w", err)
	}
	buf, rem, err = surge.MarshalU8(uint8(msg.Kind), buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling kind: %w", err)
	}
	buf, rem, err = surge.Marshal(msg.Payload, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("marshaling payload: %w", err)
	}
	return buf, rem, nil
}

// Unmarshal implements the surge.Unmarshaler interface.
func (msg *Message) Unmarshal(buf []byte, rem int) ([]byte, int, error) {
	buf, rem, err := msg.From.Unmarshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling from: %w", err)
	}
	buf, rem, err = msg.To.Unmarshal(buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling to: %w", err)
	}
	buf, rem, err = surge.UnmarshalU32(&msg.Seq, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling seq: %w", err)
	}
	buf, rem, err = surge.UnmarshalU8((*uint8)(&msg.Kind), buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling kind: %w", err)
	}
	buf, rem, err = surge.Unmarshal(&msg.Payload, buf, rem)
	if err != nil {
		return buf, rem, fmt.Errorf("unmarshaling payload: %w", err)
	}
	return buf, rem, nil
}
