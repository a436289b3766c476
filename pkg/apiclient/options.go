package apiclient

import (
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/metrics"
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithMetrics records request counts and latency into m.
func WithMetrics(m *metrics.Collector) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTranslator sets the catalog used for fallback error messages.
func WithTranslator(t *i18n.Translator) Option {
	return func(c *Client) {
		if t != nil {
			c.translator = t
		}
	}
}

// WithLanguage selects the language of fallback error messages.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		c.lang = lang
	}
}

// WithRateLimit throttles outgoing requests to rps with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithDefaultHeader sets a header sent with every request.
func WithDefaultHeader(key, value string) Option {
	return func(c *Client) {
		c.header.Set(key, value)
	}
}

// RequestOption adjusts a single request.
type RequestOption func(*requestOptions)

type requestOptions struct {
	query     url.Values
	header    http.Header
	anonymous bool
}

// WithQuery appends query parameters to the request URL.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) {
		for k, vs := range q {
			for _, v := range vs {
				o.query.Add(k, v)
			}
		}
	}
}

// WithHeader sets a header on this request only.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		o.header.Set(key, value)
	}
}

// WithoutAuth strips the Authorization default header from the request.
// Credential exchanges use it so their 401s never count as session expiry.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) {
		o.anonymous = true
	}
}
