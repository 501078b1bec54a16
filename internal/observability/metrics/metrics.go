package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civilregistry_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "civilregistry_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	actesIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civilregistry_actes_issued_total",
		Help: "Certificate generation attempts by result",
	}, []string{"result"})

	auditWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civilregistry_audit_writes_total",
		Help: "Audit log writes by result",
	}, []string{"result"})

	auditPublishes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civilregistry_audit_events_published_total",
		Help: "Audit events published to the broker by result",
	}, []string{"result"})

	loginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civilregistry_login_attempts_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	transitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "civilregistry_status_transitions_total",
		Help: "Mariage and acte status transitions",
	}, []string{"entity", "to"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveActeIssue counts a certificate generation attempt: issued,
// exists, rejected or error.
func ObserveActeIssue(result string) {
	actesIssued.WithLabelValues(result).Inc()
}

// ObserveAuditWrite counts an audit insert: ok or error.
func ObserveAuditWrite(result string) {
	auditWrites.WithLabelValues(result).Inc()
}

// ObserveAuditPublish counts a broker publish: ok or error.
func ObserveAuditPublish(result string) {
	auditPublishes.WithLabelValues(result).Inc()
}

// ObserveLogin counts a login attempt: ok, invalid or disabled.
func ObserveLogin(result string) {
	loginAttempts.WithLabelValues(result).Inc()
}

// ObserveTransition counts a status change of a mariage or acte.
func ObserveTransition(entity, to string) {
	transitions.WithLabelValues(entity, to).Inc()
}
