package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	UsersCreated    prometheus.Counter
	ActiveSessions  prometheus.Gauge
	AuthFailures    prometheus.Counter
	EndpointLatency *prometheus.HistogramVec

	// Access guard metrics
	GuardDecisions *prometheus.CounterVec

	// Tourist metrics
	DocumentsSubmitted *prometheus.CounterVec
	DocumentsReviewed  *prometheus.CounterVec
	TouristsOnline     prometheus.Gauge

	// Alert metrics
	AlertsRaised *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		UsersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tourshield_users_created_total",
			Help: "Total number of users created",
		}),
		ActiveSessions: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tourshield_active_sessions",
			Help: "Current number of active sessions",
		}),
		AuthFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "tourshield_auth_failures_total",
			Help: "Total number of authentication failures",
		}),
		EndpointLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tourshield_endpoint_latency_seconds",
			Help:    "Latency of endpoints in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		GuardDecisions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tourshield_guard_decisions_total",
			Help: "Access guard decisions, labeled by outcome",
		}, []string{"decision"}),
		DocumentsSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tourshield_documents_submitted_total",
			Help: "Documents submitted for review, labeled by kind",
		}, []string{"kind"}),
		DocumentsReviewed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tourshield_documents_reviewed_total",
			Help: "Documents reviewed by an authority, labeled by kind and outcome",
		}, []string{"kind", "outcome"}),
		TouristsOnline: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "tourshield_tourists_online",
			Help: "Tourists classified online at the last presence tick",
		}),
		AlertsRaised: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "tourshield_alerts_raised_total",
			Help: "Safety alerts raised, labeled by severity",
		}, []string{"severity"}),
	}
}

// IncrementUsersCreated increments the users created counter.
func (m *Metrics) IncrementUsersCreated() {
	m.UsersCreated.Inc()
}

// IncrementActiveSessions adjusts the active sessions gauge.
func (m *Metrics) IncrementActiveSessions(delta float64) {
	m.ActiveSessions.Add(delta)
}

// IncrementAuthFailures increments the auth failures counter.
func (m *Metrics) IncrementAuthFailures() {
	m.AuthFailures.Inc()
}

// ObserveEndpointLatency records request latency for an endpoint.
func (m *Metrics) ObserveEndpointLatency(endpoint string, seconds float64) {
	m.EndpointLatency.WithLabelValues(endpoint).Observe(seconds)
}

// IncrementGuardDecision records a guard decision outcome.
func (m *Metrics) IncrementGuardDecision(decision string) {
	m.GuardDecisions.WithLabelValues(decision).Inc()
}

// IncrementDocumentsSubmitted records a document submission.
func (m *Metrics) IncrementDocumentsSubmitted(kind string) {
	m.DocumentsSubmitted.WithLabelValues(kind).Inc()
}

// IncrementDocumentsReviewed records a document review outcome.
func (m *Metrics) IncrementDocumentsReviewed(kind, outcome string) {
	m.DocumentsReviewed.WithLabelValues(kind, outcome).Inc()
}

// SetTouristsOnline records the online tourist count from a presence tick.
func (m *Metrics) SetTouristsOnline(count int) {
	m.TouristsOnline.Set(float64(count))
}

// IncrementAlertsRaised records a raised alert.
func (m *Metrics) IncrementAlertsRaised(severity string) {
	m.AlertsRaised.WithLabelValues(severity).Inc()
}
