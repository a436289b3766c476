package broadcast

import (
	"context"
	"sync"
)

// subscription is a bounded mailbox that keeps the newest values: a full
// buffer drops its oldest entry to make room.
type subscription[T any] struct {
	mu     sync.Mutex
	ch     chan Message[T]
	ended  chan struct{}
	closed bool
}

func newSubscription[T any](size int) *subscription[T] {
	return &subscription[T]{
		ch:    make(chan Message[T], size),
		ended: make(chan struct{}),
	}
}

func (s *subscription[T]) Receive(context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscription[T]) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	close(s.ch)
	close(s.ended)
	return nil
}

// deliver reports false once the subscription has been closed.
func (s *subscription[T]) deliver(msg Message[T]) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	for {
		select {
		case s.ch <- msg:
			return true
		default:
		}
		// Full: discard the oldest pending value and retry.
		select {
		case <-s.ch:
		default:
		}
	}
}
