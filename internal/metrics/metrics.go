package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Execuções
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_alerts_runs_total",
			Help: "Total number of alert runs",
		},
		[]string{"status"}, // status: success, failed
	)

	RunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "traffic_alerts_run_duration_seconds",
			Help:    "Time taken by a complete alert run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	LastRunTimestamp = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "traffic_alerts_last_run_timestamp_seconds",
			Help: "Unix time of the last completed alert run",
		},
	)

	// Contas
	AccountsProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_alerts_accounts_processed_total",
			Help: "Total number of accounts processed",
		},
		[]string{"status"}, // status: ok, fetch_error, parse_error
	)

	// Alertas
	AlertsTriggeredTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_alerts_triggered_total",
			Help: "Total number of new alerts by metric",
		},
		[]string{"metric"},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_alerts_notifications_total",
			Help: "Total number of notifications sent",
		},
		[]string{"status"}, // status: sent, failed, skipped
	)

	// Meta Graph API
	MetaRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_alerts_meta_requests_total",
			Help: "Total number of requests made to the Meta Graph API",
		},
		[]string{"endpoint", "status"},
	)

	MetaRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "traffic_alerts_meta_request_duration_seconds",
			Help:    "Meta Graph API request latency in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"endpoint"},
	)

	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "traffic_alerts_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)
