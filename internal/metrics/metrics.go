// Package metrics defines Prometheus metrics for caseflow.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "caseflow_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caseflow_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caseflow_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	// DeletionsTotal is labeled by the tier that fired (soft_delete,
	// update_deleted_at, hard_delete) or "failure". A deployment steadily
	// counting hard_delete has lost its stored procedures.
	DeletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caseflow_deletions_total",
			Help: "Deletion outcomes by method tier",
		},
		[]string{"method"},
	)

	ChainVerifyFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "caseflow_audit_chain_verify_failures_total",
			Help: "Audit chain verifications that found a broken link",
		},
	)

	WebhookEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caseflow_webhook_events_total",
			Help: "Chat webhook deliveries by result",
		},
		[]string{"result"},
	)

	WSConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "caseflow_websocket_connections",
			Help: "Active WebSocket connections",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		DeletionsTotal, ChainVerifyFailures, WebhookEventsTotal,
		WSConnections,
	)
}
