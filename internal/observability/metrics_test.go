package observability

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestMetricsRegistered verifies that all metrics are registered in the
// default registry and become visible once observed.
func TestMetricsRegistered(t *testing.T) {
	RequestsTotal.WithLabelValues("GET /health", "2xx").Add(0)
	SearchRequestsTotal.WithLabelValues("duckduckgo", "ok").Add(0)
	ChatRepliesTotal.WithLabelValues("answered").Add(0)
	ObserveChat("lorem", time.Now())

	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("unexpected gather error: %v", err)
	}

	expected := map[string]bool{
		"askweb_requests_total":        false,
		"askweb_search_requests_total": false,
		"askweb_chat_replies_total":    false,
		"askweb_chat_latency_seconds":  false,
	}
	for _, mf := range families {
		if _, ok := expected[mf.GetName()]; ok {
			expected[mf.GetName()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("metric %s not registered", name)
		}
	}
}

func TestMetricsMiddleware(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /teapot", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	handler := MetricsMiddleware(mux)

	before := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET /teapot", "4xx"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/teapot", nil))

	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected 418, got %d", rec.Code)
	}
	after := testutil.ToFloat64(RequestsTotal.WithLabelValues("GET /teapot", "4xx"))
	if after-before != 1 {
		t.Errorf("expected counter to increase by 1, got %v", after-before)
	}
}

func TestHandlerServesMetrics(t *testing.T) {
	ChatRepliesTotal.WithLabelValues("failed").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if !strings.Contains(rec.Body.String(), "askweb_chat_replies_total") {
		t.Error("expected askweb_chat_replies_total in exposition output")
	}
}
