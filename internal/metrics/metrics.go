package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestCount counts handled HTTP requests by method, path pattern and status.
var RequestCount = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jacketapp_request_count",
		Help: "App request count",
	},
	[]string{"method", "path", "status"},
)

// RequestLatency observes request latency per path pattern.
var RequestLatency = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "jacketapp_request_latency_seconds",
		Help:    "Request latency",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"path"},
)

// APIRequests counts outbound provider calls by provider and outcome.
// Providers: weather, openai, twilio.
var APIRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jacketapp_api_request_count",
		Help: "External API request count",
	},
	[]string{"api", "status"},
)

// NotificationsSent counts scheduled notification outcomes.
// Outcomes: sent, skipped, failed.
var NotificationsSent = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "jacketapp_notifications_total",
		Help: "Scheduled notification outcomes",
	},
	[]string{"outcome"},
)

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
