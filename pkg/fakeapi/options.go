package fakeapi

import (
	"log/slog"
	"time"
)

// Option configures an API.
type Option func(*API)

// WithAccounts replaces the fixture users.
func WithAccounts(accounts ...Account) Option {
	return func(a *API) {
		a.seedAccounts = accounts
	}
}

// WithProducts replaces the fixture products. Categories are derived from
// them unless set with WithCategories.
func WithProducts(products ...Product) Option {
	return func(a *API) {
		a.products = products
		a.categories = nil
	}
}

// WithCategories replaces the category list.
func WithCategories(categories ...string) Option {
	return func(a *API) {
		a.categories = categories
	}
}

// WithSecret sets the HS256 signing secret.
func WithSecret(secret string) Option {
	return func(a *API) {
		if secret != "" {
			a.secret = []byte(secret)
		}
	}
}

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(a *API) {
		if ttl > 0 {
			a.tokenTTL = ttl
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(a *API) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithBcryptCost lowers the hashing cost, mostly for tests.
func WithBcryptCost(cost int) Option {
	return func(a *API) {
		a.bcryptCost = cost
	}
}
