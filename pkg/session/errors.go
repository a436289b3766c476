package session

import "errors"

var (
	// ErrTokenStore wraps persistence failures of a TokenStore.
	ErrTokenStore = errors.New("session.token_store")

	// ErrMalformedResponse indicates a 2xx response without the expected fields.
	ErrMalformedResponse = errors.New("session.malformed_response")
)
