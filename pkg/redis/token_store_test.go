package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/redis"
	"github.com/dmitrymomot/storefront/pkg/session"
)

func connect(t *testing.T) redis.Config {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	return redis.Config{
		ConnectionURL:  url,
		RetryAttempts:  1,
		ConnectTimeout: 5 * time.Second,
		KeyPrefix:      "storefront-test:" + uuid.NewString() + ":",
	}
}

func TestConnect_InvalidURL(t *testing.T) {
	t.Parallel()

	_, err := redis.Connect(context.Background(), redis.Config{ConnectionURL: "://bad"})
	assert.ErrorIs(t, err, redis.ErrFailedToParseRedisConnString)

	_, err = redis.Connect(context.Background(), redis.Config{})
	assert.ErrorIs(t, err, redis.ErrEmptyConnectionURL)
}

func TestTokenStore(t *testing.T) {
	cfg := connect(t)
	ctx := context.Background()

	client, err := redis.Connect(ctx, cfg)
	require.NoError(t, err)
	defer client.Close()

	rs := redis.NewTokenStoreFromConfig(client, cfg, session.DefaultTokenKey)
	require.NoError(t, rs.Ping(ctx))

	var store session.TokenStore = rs
	defer func() { _ = store.Remove(ctx) }()

	tok, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, store.Save(ctx, "abc"))
	tok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, store.Remove(ctx))
	require.NoError(t, store.Remove(ctx))
	tok, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, tok)
}
