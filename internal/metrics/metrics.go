package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Committed rental status changes by edge
	Transitions *prometheus.CounterVec

	// Lifecycle operations rejected by error kind
	Rejections *prometheus.CounterVec

	HTTPRequests *prometheus.CounterVec
	HTTPLatency  *prometheus.HistogramVec

	// Latest ministry compliance rate, 0..1
	ComplianceRate prometheus.Gauge

	// Invariant violations found by the last integrity scan, by invariant
	IntegrityViolations *prometheus.GaugeVec

	// Properties whose available flag was corrected by reconciliation
	AvailabilityCorrections prometheus.Counter

	JobRuns *prometheus.CounterVec
}

// New creates and registers all metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers all metrics on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rentease_rental_transitions_total",
			Help: "Total committed rental status transitions",
		}, []string{"from", "to"}),

		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rentease_lifecycle_rejections_total",
			Help: "Total lifecycle operations rejected by operation and error kind",
		}, []string{"operation", "kind"}),

		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rentease_http_requests_total",
			Help: "Total HTTP requests by route and status code",
		}, []string{"route", "method", "code"}),

		HTTPLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "rentease_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"route"}),

		ComplianceRate: f.NewGauge(prometheus.GaugeOpts{
			Name: "rentease_compliance_rate",
			Help: "Fraction of live rentals with a paid payment for the current month",
		}),

		IntegrityViolations: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rentease_integrity_violations",
			Help: "Invariant violations found by the last integrity check",
		}, []string{"invariant"}),

		AvailabilityCorrections: f.NewCounter(prometheus.CounterOpts{
			Name: "rentease_availability_corrections_total",
			Help: "Properties whose available flag was cleared because a live rental blocks them",
		}),

		JobRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "rentease_job_runs_total",
			Help: "Scheduled job runs by job and outcome",
		}, []string{"job", "outcome"}),
	}
}

// IncrementTransition records a committed status change.
func (m *Metrics) IncrementTransition(from, to string) {
	if m != nil {
		m.Transitions.WithLabelValues(from, to).Inc()
	}
}

// IncrementRejection records a rejected lifecycle operation.
func (m *Metrics) IncrementRejection(operation, kind string) {
	if m != nil {
		m.Rejections.WithLabelValues(operation, kind).Inc()
	}
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(route, method string, code int, d time.Duration) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(route, method, statusLabel(code)).Inc()
		m.HTTPLatency.WithLabelValues(route).Observe(d.Seconds())
	}
}

func (m *Metrics) SetComplianceRate(rate float64) {
	if m != nil {
		m.ComplianceRate.Set(rate)
	}
}

func (m *Metrics) SetIntegrityViolations(invariant string, count int) {
	if m != nil {
		m.IntegrityViolations.WithLabelValues(invariant).Set(float64(count))
	}
}

func (m *Metrics) AddAvailabilityCorrections(n int) {
	if m != nil && n > 0 {
		m.AvailabilityCorrections.Add(float64(n))
	}
}

// IncrementJobRun records a job run; outcome is "ok", "error" or "panic".
func (m *Metrics) IncrementJobRun(job, outcome string) {
	if m != nil {
		m.JobRuns.WithLabelValues(job, outcome).Inc()
	}
}

func statusLabel(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
