// Package metrics registers and exposes the Prometheus instruments used
// across the application: registration and billing counters, allocation
// retry tracking, and HTTP request durations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registration and billing paths.
type Metrics struct {
	ConsumersRegistered   prometheus.Counter
	RegistrationConflicts prometheus.Counter
	AllocationRetries     prometheus.Counter
	BillsGenerated        prometheus.Counter
	BillsPaid             prometheus.Counter
	OverduePendingBills   prometheus.Gauge
	RequestDuration       *prometheus.HistogramVec
}

// New creates a Metrics instance registered on the default Prometheus
// registerer. Call it once per process.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith creates a Metrics instance registered on reg. Tests pass a fresh
// [prometheus.NewRegistry] to avoid duplicate-registration panics.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ConsumersRegistered: factory.NewCounter(prometheus.CounterOpts{
			Name: "billkeeper_consumers_registered_total",
			Help: "Total number of successfully registered consumers",
		}),
		RegistrationConflicts: factory.NewCounter(prometheus.CounterOpts{
			Name: "billkeeper_registration_conflicts_total",
			Help: "Total number of registrations rejected on a natural-key conflict",
		}),
		AllocationRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "billkeeper_id_allocation_retries_total",
			Help: "Total number of id allocation retries after losing an insert race",
		}),
		BillsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Name: "billkeeper_bills_generated_total",
			Help: "Total number of generated bills",
		}),
		BillsPaid: factory.NewCounter(prometheus.CounterOpts{
			Name: "billkeeper_bills_paid_total",
			Help: "Total number of bills transitioned to PAID",
		}),
		OverduePendingBills: factory.NewGauge(prometheus.GaugeOpts{
			Name: "billkeeper_overdue_pending_bills",
			Help: "Number of pending bills past their due date, updated by the overdue sweeper",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "billkeeper_http_request_duration_seconds",
			Help:    "Duration of inbound HTTP requests",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// ObserveRequest records the duration of a handled HTTP request.
// Call with time.Now() captured at the start of the request.
func (m *Metrics) ObserveRequest(method, route, status string, start time.Time) {
	m.RequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
}
