package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matchLabels(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(metric *dto.Metric, want map[string]string) bool {
	got := map[string]string{}
	for _, pair := range metric.GetLabel() {
		got[pair.GetName()] = pair.GetValue()
	}
	for k, v := range want {
		if got[k] != v {
			return false
		}
	}
	return true
}

func TestHTTPMetricsObserve(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	m.Observe("GET", "/api/v1/cart", "200", 30*time.Millisecond)
	m.Observe("GET", "/api/v1/cart", "200", 10*time.Millisecond)
	m.Observe("POST", "/api/v1/checkout", "503", time.Millisecond)

	assert.Equal(t, 2.0, counterValue(t, reg, "http_requests_total",
		map[string]string{"method": "GET", "route": "/api/v1/cart", "status": "200"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "http_requests_total",
		map[string]string{"method": "POST", "route": "/api/v1/checkout", "status": "503"}))
}

func TestRelayMetricsCount(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := NewRelayMetrics(reg)

	m.IncDelivered("booking.confirmed")
	m.IncDelivered("booking.confirmed")
	m.IncFailed("contact.message")

	assert.Equal(t, 2.0, counterValue(t, reg, "outbox_delivered_total",
		map[string]string{"topic": "booking.confirmed"}))
	assert.Equal(t, 1.0, counterValue(t, reg, "outbox_failed_total",
		map[string]string{"topic": "contact.message"}))
}

func TestNilRegistererIsSafe(t *testing.T) {
	t.Parallel()
	m := NewHTTPMetrics(nil)
	m.Observe("GET", "/", "200", time.Millisecond)
	r := NewRelayMetrics(nil)
	r.IncDelivered("x")
	r.IncFailed("x")
}
