package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Record(t *testing.T) {
	m := NewWithRegisterer(prometheus.NewRegistry())

	m.IncrementTransition("pending", "active")
	m.IncrementTransition("pending", "active")
	m.IncrementRejection("approve_rental", "conflict")
	m.ObserveHTTPRequest("rentals.approve", "POST", 409, 10*time.Millisecond)
	m.SetComplianceRate(0.75)
	m.SetIntegrityViolations("single_live_rental", 2)
	m.AddAvailabilityCorrections(3)
	m.IncrementJobRun("check-integrity", "ok")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Transitions.WithLabelValues("pending", "active")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Rejections.WithLabelValues("approve_rental", "conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("rentals.approve", "POST", "4xx")))
	assert.Equal(t, 0.75, testutil.ToFloat64(m.ComplianceRate))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.IntegrityViolations.WithLabelValues("single_live_rental")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.AvailabilityCorrections))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JobRuns.WithLabelValues("check-integrity", "ok")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.IncrementTransition("a", "b")
		m.IncrementRejection("op", "kind")
		m.ObserveHTTPRequest("r", "GET", 200, time.Second)
		m.SetComplianceRate(1)
		m.SetIntegrityViolations("x", 1)
		m.AddAvailabilityCorrections(1)
		m.IncrementJobRun("j", "ok")
	})
}
