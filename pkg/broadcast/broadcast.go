package broadcast

import "context"

// Message carries one published value.
type Message[T any] struct {
	Data T
}

// Subscriber is one receiving end of a Broadcaster. Safe for concurrent use.
type Subscriber[T any] interface {
	// Receive returns the delivery channel. It is closed when the
	// subscription ends.
	Receive(ctx context.Context) <-chan Message[T]

	// Close ends the subscription. Repeated calls are no-ops.
	Close() error
}

// Broadcaster fans values out to every live subscriber.
type Broadcaster[T any] interface {
	// Subscribe starts a subscription that lasts until ctx ends, the
	// subscriber is closed or the broadcaster is closed.
	Subscribe(ctx context.Context) Subscriber[T]

	// Broadcast delivers msg to every subscriber without blocking.
	Broadcast(ctx context.Context, msg Message[T]) error

	// Close ends every subscription.
	Close() error
}
