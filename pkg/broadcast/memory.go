package broadcast

import (
	"context"
	"sync"
)

// MemoryBroadcaster is an in-process Broadcaster. Broadcasting never blocks
// and a slow subscriber always ends up seeing the most recent value.
type MemoryBroadcaster[T any] struct {
	size int

	mu       sync.RWMutex
	subs     map[*subscription[T]]struct{}
	shutdown bool

	watchers sync.WaitGroup
}

// NewMemoryBroadcaster returns a broadcaster whose subscribers buffer up to
// size values (at least one).
func NewMemoryBroadcaster[T any](size int) *MemoryBroadcaster[T] {
	return &MemoryBroadcaster[T]{
		size: max(size, 1),
		subs: make(map[*subscription[T]]struct{}),
	}
}

// Subscribe registers a subscriber. On a closed broadcaster the returned
// subscriber is already closed.
func (b *MemoryBroadcaster[T]) Subscribe(ctx context.Context) Subscriber[T] {
	sub := newSubscription[T](b.size)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.shutdown {
		_ = sub.Close()
		return sub
	}
	b.subs[sub] = struct{}{}

	if ctx.Done() != nil {
		b.watchers.Add(1)
		go b.watch(ctx, sub)
	}
	return sub
}

// watch drops sub when ctx ends first.
func (b *MemoryBroadcaster[T]) watch(ctx context.Context, sub *subscription[T]) {
	defer b.watchers.Done()
	select {
	case <-ctx.Done():
		b.drop(sub)
	case <-sub.ended:
	}
}

// Broadcast implements Broadcaster. Subscribers closed by their owner are
// forgotten on the way.
func (b *MemoryBroadcaster[T]) Broadcast(_ context.Context, msg Message[T]) error {
	b.mu.RLock()
	var stale []*subscription[T]
	if !b.shutdown {
		for sub := range b.subs {
			if !sub.deliver(msg) {
				stale = append(stale, sub)
			}
		}
	}
	b.mu.RUnlock()

	for _, sub := range stale {
		b.drop(sub)
	}
	return nil
}

// Publish broadcasts v.
func (b *MemoryBroadcaster[T]) Publish(ctx context.Context, v T) {
	_ = b.Broadcast(ctx, Message[T]{Data: v})
}

// Len returns the number of live subscribers.
func (b *MemoryBroadcaster[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Close ends every subscription and waits for the context watchers to exit.
func (b *MemoryBroadcaster[T]) Close() error {
	b.mu.Lock()
	if b.shutdown {
		b.mu.Unlock()
		return nil
	}
	b.shutdown = true
	subs := b.subs
	b.subs = make(map[*subscription[T]]struct{})
	b.mu.Unlock()

	for sub := range subs {
		_ = sub.Close()
	}
	b.watchers.Wait()
	return nil
}

func (b *MemoryBroadcaster[T]) drop(sub *subscription[T]) {
	b.mu.Lock()
	delete(b.subs, sub)
	b.mu.Unlock()
	_ = sub.Close()
}
