package fetch

import "errors"

var (
	// ErrSuperseded resolves the future of a request whose response was
	// discarded because a newer generation had been issued.
	ErrSuperseded = errors.New("fetch: response superseded by a newer request")

	// ErrClosed is returned for requests issued after Close.
	ErrClosed = errors.New("fetch: resource closed")
)

// IsSuperseded reports whether err marks a discarded stale response.
func IsSuperseded(err error) bool {
	return errors.Is(err, ErrSuperseded)
}
