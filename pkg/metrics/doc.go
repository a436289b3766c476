// Package metrics exposes Prometheus collectors for the storefront client:
// outgoing API requests, fetch generations (issued, discarded as stale,
// settled) and session status transitions.
//
// Each Collector owns a private registry, so several clients can coexist in
// one process and tests can inspect values with prometheus/testutil. All
// methods are no-ops on a nil *Collector.
package metrics
