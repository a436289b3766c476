package broadcast_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/broadcast"
)

func TestMemoryBroadcaster_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("subscribe creates active subscriber", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[string](10)
		defer b.Close()

		sub := b.Subscribe(context.Background())
		require.NotNil(t, sub)
		assert.NotNil(t, sub.Receive(context.Background()))
		assert.Equal(t, 1, b.Len())
	})

	t.Run("subscribe after close returns closed subscriber", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[string](10)
		require.NoError(t, b.Close())

		sub := b.Subscribe(context.Background())
		_, ok := <-sub.Receive(context.Background())
		assert.False(t, ok)
	})

	t.Run("context cancellation unsubscribes", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[string](10)
		defer b.Close()

		ctx, cancel := context.WithCancel(context.Background())
		sub := b.Subscribe(ctx)
		cancel()

		assert.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 5*time.Millisecond)
		_, ok := <-sub.Receive(context.Background())
		assert.False(t, ok)
	})
}

func TestMemoryBroadcaster_Broadcast(t *testing.T) {
	t.Parallel()

	t.Run("delivers to every subscriber", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[int](10)
		defer b.Close()

		ctx := context.Background()
		subs := []broadcast.Subscriber[int]{b.Subscribe(ctx), b.Subscribe(ctx), b.Subscribe(ctx)}

		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 42}))

		for _, sub := range subs {
			msg := <-sub.Receive(ctx)
			assert.Equal(t, 42, msg.Data)
		}
	})

	t.Run("full buffer keeps the latest message", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[int](2)
		defer b.Close()

		ctx := context.Background()
		sub := b.Subscribe(ctx)
		for i := 1; i <= 5; i++ {
			require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: i}))
		}

		first := <-sub.Receive(ctx)
		second := <-sub.Receive(ctx)
		assert.Equal(t, 4, first.Data)
		assert.Equal(t, 5, second.Data)
		assert.Equal(t, 1, b.Len(), "slow subscriber must stay subscribed")
	})

	t.Run("closed subscriber is removed", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[int](1)
		defer b.Close()

		ctx := context.Background()
		sub := b.Subscribe(ctx)
		require.NoError(t, sub.Close())
		require.NoError(t, sub.Close())

		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
		assert.Equal(t, 0, b.Len())
	})

	t.Run("broadcast after close is a no-op", func(t *testing.T) {
		t.Parallel()
		b := broadcast.NewMemoryBroadcaster[int](1)
		require.NoError(t, b.Close())
		require.NoError(t, b.Close())
		assert.NoError(t, b.Broadcast(context.Background(), broadcast.Message[int]{Data: 1}))
	})
}

func TestMemoryBroadcaster_Publish(t *testing.T) {
	t.Parallel()
	b := broadcast.NewMemoryBroadcaster[string](1)
	defer b.Close()

	ctx := context.Background()
	sub := b.Subscribe(ctx)
	b.Publish(ctx, "loading")
	b.Publish(ctx, "settled")

	msg := <-sub.Receive(ctx)
	assert.Equal(t, "settled", msg.Data)
}

func TestMemoryBroadcaster_CloseWithLiveContexts(t *testing.T) {
	t.Parallel()
	b := broadcast.NewMemoryBroadcaster[int](1)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	subs := []broadcast.Subscriber[int]{b.Subscribe(ctx), b.Subscribe(ctx)}

	done := make(chan struct{})
	go func() {
		_ = b.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close blocked on subscribers with live contexts")
	}
	for _, sub := range subs {
		_, ok := <-sub.Receive(ctx)
		assert.False(t, ok)
	}
	assert.Equal(t, 0, b.Len())
}

func TestMemoryBroadcaster_Concurrency(t *testing.T) {
	t.Parallel()
	b := broadcast.NewMemoryBroadcaster[int](4)
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sub := b.Subscribe(ctx)
			_ = b.Broadcast(ctx, broadcast.Message[int]{Data: i})
			if i%2 == 0 {
				_ = sub.Close()
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, b.Len(), 8)
}
