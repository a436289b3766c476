package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore keeps the session token in a single Redis key, so several
// clients sharing the server share one sign-in.
type TokenStore struct {
	db  redis.UniversalClient
	key string
	ttl time.Duration
}

// NewTokenStore stores the token under prefix+name. A zero ttl keeps the
// token until it is removed.
func NewTokenStore(db redis.UniversalClient, prefix, name string, ttl time.Duration) *TokenStore {
	return &TokenStore{db: db, key: prefix + name, ttl: ttl}
}

// NewTokenStoreFromConfig uses cfg.KeyPrefix and cfg.TokenTTL.
func NewTokenStoreFromConfig(db redis.UniversalClient, cfg Config, name string) *TokenStore {
	return NewTokenStore(db, cfg.KeyPrefix, name, cfg.TokenTTL)
}

// Key returns the Redis key holding the token.
func (s *TokenStore) Key() string {
	return s.key
}

func (s *TokenStore) Load(ctx context.Context) (string, error) {
	tok, err := s.db.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", errors.Join(ErrTokenStore, err)
	}
	return tok, nil
}

func (s *TokenStore) Save(ctx context.Context, token string) error {
	if token == "" {
		return s.Remove(ctx)
	}
	if err := s.db.Set(ctx, s.key, token, s.ttl).Err(); err != nil {
		return errors.Join(ErrTokenStore, err)
	}
	return nil
}

func (s *TokenStore) Remove(ctx context.Context) error {
	if err := s.db.Del(ctx, s.key).Err(); err != nil {
		return errors.Join(ErrTokenStore, err)
	}
	return nil
}

// Ping reports whether the server behind the store answers.
func (s *TokenStore) Ping(ctx context.Context) error {
	if err := s.db.Ping(ctx).Err(); err != nil {
		return errors.Join(ErrPingFailed, err)
	}
	return nil
}
