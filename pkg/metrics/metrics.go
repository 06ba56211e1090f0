// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// MessagesTotal tracks messages appended to channel logs.
	MessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total messages appended, by channel kind and sender",
		},
		[]string{"channel", "sender"},
	)

	// ResponderDuration tracks responder round-trip duration.
	ResponderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "responder_duration_seconds",
			Help:    "Responder round-trip duration",
			Buckets: []float64{.1, .25, .5, 1, 1.5, 2, 5, 10, 20, 30},
		},
		[]string{"backend", "status"},
	)

	// FallbacksTotal tracks fallback messages substituted for failed
	// responder calls.
	FallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "responder_fallbacks_total",
			Help: "Total fallback messages substituted after responder failures",
		},
		[]string{"channel"},
	)

	// AlertsTotal tracks local alerts dispatched for inactive channels.
	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_alerts_total",
			Help: "Total local alerts dispatched",
		},
		[]string{"channel"},
	)

	// UnreadMessages tracks the current unread count per channel key.
	UnreadMessages = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "chat_unread_messages",
			Help: "Current unread count per channel key",
		},
		[]string{"channel_key"},
	)

	// CounterWriteFailures tracks best-effort durable writes that failed.
	CounterWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "counter_store_write_failures_total",
			Help: "Durable counter writes that failed and were absorbed",
		},
	)

	// SessionsActive tracks live conversation sessions.
	SessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_sessions_active",
			Help: "Number of live conversation sessions",
		},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordResponder records metrics for one responder round trip.
func RecordResponder(backend, status string, duration float64) {
	ResponderDuration.WithLabelValues(backend, status).Observe(duration)
}
