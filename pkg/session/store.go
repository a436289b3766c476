package session

import "context"

// DefaultTokenKey is the well-known key the token is persisted under.
const DefaultTokenKey = "token"

// TokenStore persists the bearer token between runs.
type TokenStore interface {
	// Load returns the stored token, or "" when none is stored.
	Load(ctx context.Context) (string, error)

	// Save replaces the stored token.
	Save(ctx context.Context, token string) error

	// Remove deletes the stored token. Removing a missing token is not an error.
	Remove(ctx context.Context) error
}
