package fetch

import (
	"context"
	"net/url"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
)

// Fetcher performs one GET of url with params and decodes the result.
type Fetcher[T any] func(ctx context.Context, url string, params url.Values) (T, error)

// Getter is the subset of *apiclient.Client a Fetcher needs.
type Getter interface {
	Get(ctx context.Context, path string, out any, opts ...apiclient.RequestOption) error
}

// FromClient returns a Fetcher decoding the JSON body into T.
func FromClient[T any](c Getter) Fetcher[T] {
	return func(ctx context.Context, path string, params url.Values) (T, error) {
		var out T
		err := c.Get(ctx, path, &out, apiclient.WithQuery(params))
		return out, err
	}
}

// Map adapts a Fetcher of T into one of U.
func Map[T, U any](f Fetcher[T], fn func(T) (U, error)) Fetcher[U] {
	return func(ctx context.Context, path string, params url.Values) (U, error) {
		v, err := f(ctx, path, params)
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	}
}
