package metrics_test

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ricirt/api-stub/internal/metrics"
)

func TestMetrics_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	m.ObserveRequest("GET", "/health", 200, 5*time.Millisecond)
	m.ObserveRequest("GET", "/health", 200, 7*time.Millisecond)
	m.ObserveRequest("GET", "/health", 429, time.Millisecond)

	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/health", "200")); got != 2 {
		t.Fatalf("expected 2 requests with status 200, got %v", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/health", "429")); got != 1 {
		t.Fatalf("expected 1 request with status 429, got %v", got)
	}
	if n := testutil.CollectAndCount(m.HTTPLatency); n != 1 {
		t.Fatalf("expected 1 latency series, got %d", n)
	}
}

func TestMetrics_HealthObserver(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	observe := m.HealthObserver()

	observe(true)
	observe(true)
	observe(false)

	if got := testutil.ToFloat64(m.HealthResponses.WithLabelValues("ok")); got != 2 {
		t.Fatalf("expected ok=2, got %v", got)
	}
	if got := testutil.ToFloat64(m.HealthResponses.WithLabelValues("empty")); got != 1 {
		t.Fatalf("expected empty=1, got %v", got)
	}
}

func TestMetrics_NewPanicsOnDoubleRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)

	defer func() {
		if recover() == nil {
			t.Fatal("expected MustRegister to panic on duplicate registration")
		}
	}()
	metrics.New(reg)
}
