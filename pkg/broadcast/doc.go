// Package broadcast fans snapshots out to in-process subscribers.
//
// The session manager, fetch resources and the URL filter sync each publish
// their latest state through a MemoryBroadcaster:
//
//	events := broadcast.NewMemoryBroadcaster[Session](8)
//	sub := events.Subscribe(ctx)
//	events.Publish(ctx, snapshot)
//
//	for msg := range sub.Receive(ctx) {
//	    render(msg.Data)
//	}
//
// Publishing never blocks. When a subscriber falls behind its oldest pending
// value is discarded, so the last value it receives is always the newest.
package broadcast
