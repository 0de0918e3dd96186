// Package metrics exposes the report workflow counters to Prometheus.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	vo "github.com/civictrack/civictrack/internal/domain/report/valueobjects"
)

// Metrics holds the collectors for status transitions, side effects,
// notifications and HTTP traffic. All names carry the civictrack_ prefix.
type Metrics struct {
	StatusTransitionsTotal *prometheus.CounterVec
	SideEffectsTotal       *prometheus.CounterVec
	NotificationsTotal     *prometheus.CounterVec
	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
}

// NewMetrics registers the collectors with reg. Pass prometheus.NewRegistry()
// in tests to avoid duplicate registration on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		StatusTransitionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "civictrack_report_status_transitions_total",
				Help: "Total number of committed report status transitions",
			},
			[]string{"from", "to"},
		),
		SideEffectsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "civictrack_side_effects_total",
				Help: "Total number of asynchronous side effects by outcome",
			},
			[]string{"name", "result"},
		),
		NotificationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "civictrack_notifications_total",
				Help: "Total number of reporter notifications by event code and outcome",
			},
			[]string{"event", "result"},
		),
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "civictrack_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "civictrack_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

func (m *Metrics) StatusTransition(from, to vo.ReportStatus) {
	m.StatusTransitionsTotal.WithLabelValues(from.String(), to.String()).Inc()
}

func (m *Metrics) SideEffect(name string, ok bool) {
	m.SideEffectsTotal.WithLabelValues(name, result(ok)).Inc()
}

func (m *Metrics) NotificationSent(event string, ok bool) {
	m.NotificationsTotal.WithLabelValues(event, result(ok)).Inc()
}

// ObserveRequest records one HTTP request. route is the matched route
// template, never the raw path, to keep label cardinality bounded.
func (m *Metrics) ObserveRequest(method, route string, status int, latency time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(latency.Seconds())
}

func result(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
