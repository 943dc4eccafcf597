package sim

import (
	"context"
	"sync"
)

// mailbox is an unbounded queue of encoded messages. Players that open
// values faster than others never block on sending.
type mailbox struct {
	mu     sync.Mutex
	queue  [][]byte
	signal chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{signal: make(chan struct{}, 1)}
}

func (mb *mailbox) put(msg []byte) {
	mb.mu.Lock()
	mb.queue = append(mb.queue, msg)
	mb.mu.Unlock()

	select {
	case mb.signal <- struct{}{}:
	default:
	}
}

func (mb *mailbox) take(ctx context.Context) ([]byte, error) {
	for {
		mb.mu.Lock()
		if len(mb.queue) > 0 {
			msg := mb.queue[0]
			mb.queue[0] = nil
			mb.queue = mb.queue[1:]
			mb.mu.Unlock()
			return msg, nil
		}
		mb.mu.Unlock()

		select {
		case <-mb.signal:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
