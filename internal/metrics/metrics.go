// Package metrics defines the prometheus collectors for the login service.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreRecoveries counts the times the credential store healed an unreadable
// backing file by starting from an empty collection. A non-zero value means
// previously persisted records were silently discarded, so operators should
// alert on it.
var StoreRecoveries = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "login_store_recoveries_total",
		Help: "Times an unreadable users file was replaced by an empty collection",
	},
	[]string{"reason"},
)

// HTTPRequests counts handled HTTP requests by route and status code.
var HTTPRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "login_http_requests_total",
		Help: "Total number of handled HTTP requests",
	},
	[]string{"method", "path", "status"},
)

// HTTPDuration is the histogram of request handling latency.
var HTTPDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "login_http_request_duration_seconds",
		Help:    "HTTP request handling duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"method", "path"},
)

// Register registers all service collectors with the given registry.
// Panics on duplicate registration (following prometheus convention).
func Register(reg prometheus.Registerer) {
	reg.MustRegister(StoreRecoveries)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
}

// RecordStoreRecovery increments the self-healing counter.
// reason is "unreadable" or "corrupt"; a missing file is a normal first
// boot and records nothing.
func RecordStoreRecovery(reason string) {
	StoreRecoveries.WithLabelValues(reason).Inc()
}

// RecordHTTPRequest records one handled request.
func RecordHTTPRequest(method, path string, status int, seconds float64) {
	HTTPRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, path).Observe(seconds)
}
