package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the client-side metrics of the storefront core.
// A nil *Collector is valid and records nothing, so components can accept
// one unconditionally.
type Collector struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge

	fetchIssued    *prometheus.CounterVec
	fetchDiscarded *prometheus.CounterVec
	fetchSettled   *prometheus.CounterVec

	sessionTransitions *prometheus.CounterVec
}

// New creates a collector registered in its own registry under namespace.
func New(namespace string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Outgoing API requests by method, path and result.",
		}, []string{"method", "path", "status", "kind"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "Outgoing API request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_in_flight_requests",
			Help:      "Outgoing API requests currently in flight.",
		}),
		fetchIssued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_issued_total",
			Help:      "Fetch generations issued per resource.",
		}, []string{"resource"}),
		fetchDiscarded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_discarded_total",
			Help:      "Responses discarded because a newer generation was issued.",
		}, []string{"resource"}),
		fetchSettled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_settled_total",
			Help:      "Fetch generations applied to state, by outcome.",
		}, []string{"resource", "outcome"}),
		sessionTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "session_transitions_total",
			Help:      "Session status transitions.",
		}, []string{"from", "to", "event"}),
	}

	c.registry.MustRegister(
		c.requests,
		c.requestDuration,
		c.inFlight,
		c.fetchIssued,
		c.fetchDiscarded,
		c.fetchSettled,
		c.sessionTransitions,
	)
	return c
}

// Registry exposes the underlying registry, e.g. for tests or custom exporters.
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.registry
}

// Handler serves the collected metrics in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	if c == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RequestStarted marks a request as in flight and returns a function that
// records its completion.
func (c *Collector) RequestStarted(method, path string) func(status int, kind string) {
	if c == nil {
		return func(int, string) {}
	}
	start := time.Now()
	c.inFlight.Inc()
	return func(status int, kind string) {
		c.inFlight.Dec()
		c.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		c.requests.WithLabelValues(method, path, strconv.Itoa(status), kind).Inc()
	}
}

func (c *Collector) FetchIssued(resource string) {
	if c == nil {
		return
	}
	c.fetchIssued.WithLabelValues(resource).Inc()
}

func (c *Collector) FetchDiscarded(resource string) {
	if c == nil {
		return
	}
	c.fetchDiscarded.WithLabelValues(resource).Inc()
}

// FetchSettled records an applied generation; outcome is "ok" or an error kind.
func (c *Collector) FetchSettled(resource, outcome string) {
	if c == nil {
		return
	}
	c.fetchSettled.WithLabelValues(resource, outcome).Inc()
}

func (c *Collector) SessionTransition(from, to, event string) {
	if c == nil {
		return
	}
	c.sessionTransitions.WithLabelValues(from, to, event).Inc()
}
