package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bridges", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bridges", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	Operations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bridges", Name: "operations_total", Help: "Bridge operations by name and outcome."},
		[]string{"operation", "outcome"},
	)
	OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "bridges", Name: "operation_duration_seconds", Help: "Bridge operation latency.", Buckets: prometheus.DefBuckets},
		[]string{"operation"},
	)
	ListPageSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{Namespace: "bridges", Name: "list_page_size", Help: "Records returned per listBridges page.", Buckets: []float64{0, 1, 5, 10, 25, 50, 100}},
	)
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "bridges", Name: "http_requests_total", Help: "HTTP requests by route and status code."},
		[]string{"route", "code"},
	)
)

// Outcome labels for Operations.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(Operations)
	reg.MustRegister(OperationDuration)
	reg.MustRegister(ListPageSize)
	reg.MustRegister(HTTPRequests)
}
