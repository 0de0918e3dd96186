package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.StatusTransition(vo.StatusResolved, vo.StatusClosed)
	m.StatusTransition(vo.StatusResolved, vo.StatusClosed)
	m.SideEffect("survey-dispatch", true)
	m.SideEffect("survey-dispatch", false)
	m.NotificationSent("STATUS_CLOSED", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.StatusTransitionsTotal.WithLabelValues("RESOLVED", "CLOSED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SideEffectsTotal.WithLabelValues("survey-dispatch", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SideEffectsTotal.WithLabelValues("survey-dispatch", "failure")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("STATUS_CLOSED", "success")))
}

func TestMetrics_ObserveRequest(t *testing.T) {
	m := NewMetrics(prometheus.NewRegistry())

	m.ObserveRequest("PATCH", "/reports/:id/status", 409, 15*time.Millisecond)
	m.ObserveRequest("GET", "", 404, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("PATCH", "/reports/:id/status", "409")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestNewMetrics_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewMetrics(prometheus.NewRegistry())
		NewMetrics(prometheus.NewRegistry())
	})
}
