package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the portal. Methods are
// nil-safe so wiring stays optional in tests.
type Metrics struct {
	LoginsTotal         *prometheus.CounterVec
	LoginFailures       *prometheus.CounterVec
	SessionsRevoked     prometheus.Counter
	AuditAppendFailures prometheus.Counter
	AuditEventsDropped  prometheus.Counter
}

// New creates and registers all portal metrics.
func New() *Metrics {
	return &Metrics{
		LoginsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "opsportal_logins_total",
			Help: "Total successful logins by role",
		}, []string{"role"}),

		LoginFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "opsportal_login_failures_total",
			Help: "Total failed login attempts by failure reason",
		}, []string{"reason"}),

		SessionsRevoked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "opsportal_sessions_revoked_total",
			Help: "Total sessions destroyed by logout",
		}),

		AuditAppendFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "opsportal_audit_append_failures_total",
			Help: "Total audit events that failed to persist",
		}),

		AuditEventsDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "opsportal_audit_events_dropped_total",
			Help: "Total audit events dropped because the recorder inbox was full",
		}),
	}
}

// IncrementLogin records one successful login for the given role.
func (m *Metrics) IncrementLogin(role string) {
	if m != nil {
		m.LoginsTotal.WithLabelValues(role).Inc()
	}
}

// IncrementLoginFailure records one failed login attempt.
func (m *Metrics) IncrementLoginFailure(reason string) {
	if m != nil {
		m.LoginFailures.WithLabelValues(reason).Inc()
	}
}

// IncrementSessionRevoked records one logout.
func (m *Metrics) IncrementSessionRevoked() {
	if m != nil {
		m.SessionsRevoked.Inc()
	}
}

// IncrementAuditAppendFailure records one failed audit append.
func (m *Metrics) IncrementAuditAppendFailure() {
	if m != nil {
		m.AuditAppendFailures.Inc()
	}
}

// IncrementAuditEventDropped records one dropped audit event.
func (m *Metrics) IncrementAuditEventDropped() {
	if m != nil {
		m.AuditEventsDropped.Inc()
	}
}
