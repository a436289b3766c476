package session

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/storefront/pkg/metrics"
)

// Option configures a Manager.
type Option func(*Manager)

// WithStore sets the token persistence backend. Defaults to MemoryTokenStore.
func WithStore(store TokenStore) Option {
	return func(m *Manager) {
		if store != nil {
			m.store = store
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithMetrics records state transitions into c.
func WithMetrics(c *metrics.Collector) Option {
	return func(m *Manager) {
		m.metrics = c
	}
}

// WithClock overrides the time source used for token expiry checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}
