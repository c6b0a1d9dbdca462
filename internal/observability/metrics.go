// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the assistant.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LLMBuckets defines histogram buckets suited for chat completion latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts HTTP requests by route pattern and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askweb_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "status"},
	)

	// SearchRequestsTotal counts web search calls by provider and outcome (ok, empty, error).
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askweb_search_requests_total",
			Help: "Web search requests",
		},
		[]string{"provider", "status"},
	)

	// ChatRepliesTotal counts assistant replies by outcome.
	ChatRepliesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "askweb_chat_replies_total",
			Help: "Assistant replies",
		},
		[]string{"outcome"},
	)

	// ChatLatency records chat provider latency in seconds.
	ChatLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "askweb_chat_latency_seconds",
			Help:    "Chat provider latency",
			Buckets: LLMBuckets,
		},
		[]string{"provider"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		SearchRequestsTotal,
		ChatRepliesTotal,
		ChatLatency,
	)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// MetricsMiddleware counts requests by the matched ServeMux pattern.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		RequestsTotal.WithLabelValues(route, statusClass(rec.status)).Inc()
	})
}

// ObserveChat records one chat provider round trip.
func ObserveChat(provider string, started time.Time) {
	ChatLatency.WithLabelValues(provider).Observe(time.Since(started).Seconds())
}

func statusClass(code int) string {
	return strconv.Itoa(code/100) + "xx"
}
