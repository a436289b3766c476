package fetch

import (
	"log/slog"

	"github.com/dmitrymomot/storefront/pkg/apiclient"
	"github.com/dmitrymomot/storefront/pkg/i18n"
	"github.com/dmitrymomot/storefront/pkg/metrics"
)

// Option configures a Resource.
type Option func(*options)

type options struct {
	name        string
	logger      *slog.Logger
	metrics     *metrics.Collector
	localizer   i18n.Localizer
	classify    func(error) *apiclient.Error
	clearOnFail bool
}

// WithName labels the resource in logs and metrics. Defaults to the URL.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func WithMetrics(m *metrics.Collector) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithLocalizer selects the language of fallback error messages.
func WithLocalizer(l i18n.Localizer) Option {
	return func(o *options) {
		o.localizer = l
	}
}

// WithClassifier overrides how fetch errors become *apiclient.Error.
// (*apiclient.Client).Classify is a good fit.
func WithClassifier(fn func(error) *apiclient.Error) Option {
	return func(o *options) {
		if fn != nil {
			o.classify = fn
		}
	}
}

// WithClearDataOnError drops Data when a request fails instead of keeping
// the last good value.
func WithClearDataOnError() Option {
	return func(o *options) {
		o.clearOnFail = true
	}
}
