package sim

import (
	"context"
	"fmt"

	"github.com/renproject/mpcalg/field"
	"github.com/renproject/mpcalg/mpcutil"
	"github.com/renproject/mpcalg/open"
	"github.com/renproject/secp256k1"
	"github.com/renproject/surge"
	"github.com/sirupsen/logrus"
)

// A Party is one of the players of a Network during a run. It implements
// field.Opener. A Party must only be used from the goroutine it was given to.
type Party struct {
	id        mpcutil.ID
	net       *Network
	ctx       context.Context
	mailboxes []*mailbox

	// seq is the sequence number of the next opening. Messages for later
	// openings that arrive early are kept in pending.
	seq     uint32
	pending map[uint32][]mpcutil.Message

	logger logrus.FieldLogger
}

var _ field.Opener = &Party{}

// ID returns the identifier of the player.
func (party *Party) ID() mpcutil.ID { return party.id }

// Index returns the Shamir index of the player.
func (party *Party) Index() secp256k1.Fn { return party.net.indices[party.id] }

// Indices returns the Shamir indices of all players.
func (party *Party) Indices() []secp256k1.Fn { return party.net.Indices() }

// N returns the number of players.
func (party *Party) N() int { return party.net.params.N }

// K returns the reconstruction threshold of Shamir sharings.
func (party *Party) K() int { return party.net.params.K }

// Context returns the context of the run. It is cancelled when any player
// fails.
func (party *Party) Context() context.Context { return party.ctx }

// Fn returns the Conv of field.Fn that opens shares with this player.
func (party *Party) Fn() field.FnConv { return field.Fns(party) }

// Point returns the Conv of field.Point that opens shares with this player.
func (party *Party) Point() field.PointConv { return field.Points(party) }

// OpenFn implements the field.Opener interface. It blocks until enough
// shares have been received from the other players.
func (party *Party) OpenFn(fn field.Fn) (secp256k1.Fn, error) {
	seq, err := party.broadcast(mpcutil.KindFn, fn)
	if err != nil {
		return secp256k1.Fn{}, err
	}

	opener := open.New(party.net.indices, party.net.params.K)
	for {
		msg, err := party.next(seq, mpcutil.KindFn)
		if err != nil {
			return secp256k1.Fn{}, err
		}
		var share field.Fn
		if _, _, err := share.Unmarshal(msg.Payload, surge.MaxBytes); err != nil {
			return secp256k1.Fn{}, fmt.Errorf("unmarshaling share from %v: %w", msg.From, err)
		}

		s := share.Share()
		if share.State() != field.ShamirShared {
			s.Index = party.net.indices[msg.From]
		}
		secret, ok, err := opener.HandleShare(share.State(), s)
		if err != nil {
			return secp256k1.Fn{}, fmt.Errorf("handling share from %v: %w", msg.From, err)
		}
		if ok {
			delete(party.pending, seq)
			party.logger.WithFields(logrus.Fields{"seq": seq, "state": share.State()}).Debug("opened fn")
			return secret, nil
		}
	}
}

// OpenPoint implements the field.Opener interface. It blocks until the
// shares of all players have been received.
func (party *Party) OpenPoint(p field.Point) (secp256k1.Point, error) {
	seq, err := party.broadcast(mpcutil.KindPoint, p)
	if err != nil {
		return secp256k1.Point{}, err
	}

	opener := open.NewPointOpener(party.net.indices)
	for {
		msg, err := party.next(seq, mpcutil.KindPoint)
		if err != nil {
			return secp256k1.Point{}, err
		}
		var share field.Point
		if _, _, err := share.Unmarshal(msg.Payload, surge.MaxBytes); err != nil {
			return secp256k1.Point{}, fmt.Errorf("unmarshaling share from %v: %w", msg.From, err)
		}

		secret, ok, err := opener.HandleShare(party.net.indices[msg.From], share.State(), share.Value())
		if err != nil {
			return secp256k1.Point{}, fmt.Errorf("handling share from %v: %w", msg.From, err)
		}
		if ok {
			delete(party.pending, seq)
			party.logger.WithField("seq", seq).Debug("opened point")
			return secret, nil
		}
	}
}

// encodable is a share that can be sent to the other players.
type encodable interface {
	SizeHint() int
	Marshal(buf []byte, rem int) ([]byte, int, error)
}

// broadcast sends the share to every player, including this one, as the
// next opening in the sequence.
func (party *Party) broadcast(kind mpcutil.Kind, share encodable) (uint32, error) {
	seq := party.seq
	party.seq++

	payload := make([]byte, share.SizeHint())
	if _, _, err := share.Marshal(payload, len(payload)); err != nil {
		return seq, fmt.Errorf("marshaling share: %w", err)
	}

	for to, mb := range party.mailboxes {
		msg := mpcutil.Message{
			From:    party.id,
			To:      mpcutil.ID(to),
			Seq:     seq,
			Kind:    kind,
			Payload: payload,
		}
		buf := make([]byte, msg.SizeHint())
		if _, _, err := msg.Marshal(buf, len(buf)); err != nil {
			return seq, fmt.Errorf("marshaling message: %w", err)
		}
		mb.put(buf)
	}
	party.logger.WithFields(logrus.Fields{"seq": seq, "kind": kind}).Debug("sent share")
	return seq, nil
}

// next returns the next message for the opening with the given sequence
// number. Messages for later openings are kept for later, and messages for
// openings that are already done are dropped.
func (party *Party) next(seq uint32, kind mpcutil.Kind) (mpcutil.Message, error) {
	for {
		var msg mpcutil.Message
		if msgs := party.pending[seq]; len(msgs) > 0 {
			msg = msgs[0]
			if len(msgs) == 1 {
				delete(party.pending, seq)
			} else {
				party.pending[seq] = msgs[1:]
			}
		} else {
			buf, err := party.mailboxes[party.id].take(party.ctx)
			if err != nil {
				return msg, err
			}
			if _, _, err := msg.Unmarshal(buf, surge.MaxBytes); err != nil {
				return msg, fmt.Errorf("unmarshaling message: %w", err)
			}
		}

		switch {
		case msg.Seq < seq:
			party.logger.WithFields(logrus.Fields{"seq": msg.Seq, "from": msg.From}).Debug("dropping late share")
			continue
		case msg.Seq > seq:
			party.pending[msg.Seq] = append(party.pending[msg.Seq], msg)
			continue
		}
		if msg.Kind != kind {
			return msg, fmt.Errorf("%w: opening %v, received %v from %v", ErrUnexpectedKind, kind, msg.Kind, msg.From)
		}
		return msg, nil
	}
}
