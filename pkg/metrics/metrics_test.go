package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/metrics"
)

func TestCollector(t *testing.T) {
	c := metrics.New("storefront")

	done := c.RequestStarted("GET", "/api/products")
	done(200, "ok")
	c.FetchIssued("products")
	c.FetchIssued("products")
	c.FetchDiscarded("products")
	c.FetchSettled("products", "ok")
	c.SessionTransition("unauthenticated", "authenticated", "login")

	expected := `
# HELP storefront_fetch_discarded_total Responses discarded because a newer generation was issued.
# TYPE storefront_fetch_discarded_total counter
storefront_fetch_discarded_total{resource="products"} 1
# HELP storefront_fetch_issued_total Fetch generations issued per resource.
# TYPE storefront_fetch_issued_total counter
storefront_fetch_issued_total{resource="products"} 2
`
	require.NoError(t, testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected),
		"storefront_fetch_issued_total", "storefront_fetch_discarded_total"))

	count, err := testutil.GatherAndCount(c.Registry(), "storefront_api_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `storefront_session_transitions_total{event="login",from="unauthenticated",to="authenticated"} 1`)
}

func TestNilCollector(t *testing.T) {
	var c *metrics.Collector

	assert.NotPanics(t, func() {
		c.RequestStarted("GET", "/")(500, "remote")
		c.FetchIssued("x")
		c.FetchDiscarded("x")
		c.FetchSettled("x", "ok")
		c.SessionTransition("a", "b", "c")
	})
	assert.Nil(t, c.Registry())

	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
