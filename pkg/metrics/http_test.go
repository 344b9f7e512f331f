package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveCountsRequests(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/orders", 200, 5*time.Millisecond)
	m.Observe("GET", "/api/v1/orders", 200, 7*time.Millisecond)
	m.Observe("POST", "/api/v1/orders", 400, time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("GET", "/api/v1/orders", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("POST", "/api/v1/orders", "400")))
}

func TestObserveNormalizesEmptyRoute(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "", 404, time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requests.WithLabelValues("GET", "unknown", "404")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *HTTPMetrics
	m.Observe("GET", "/x", 200, time.Millisecond)

	empty := NewHTTPMetrics(nil)
	empty.Observe("GET", "/x", 200, time.Millisecond)
}
