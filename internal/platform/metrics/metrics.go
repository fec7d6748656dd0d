package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the scheduler.
type Metrics struct {
	registry             *prometheus.Registry
	requestsTotal        prometheus.Counter
	errorsTotal          prometheus.Counter
	itemsAddedTotal      prometheus.Counter
	conflictsTotal       prometheus.Counter
	fillerGeneratedTotal prometheus.Counter
	daysMaterialized     prometheus.Gauge
	itemsScheduled       prometheus.Gauge
}

// New creates and registers Prometheus metrics for the scheduler.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_requests_total",
			Help: "Total number of HTTP requests received",
		}),
		errorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_errors_total",
			Help: "Total number of HTTP responses with error status (4xx or 5xx)",
		}),
		itemsAddedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_items_added_total",
			Help: "Total number of content items inserted into a day",
		}),
		conflictsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_conflicts_total",
			Help: "Total number of insertions rejected for overlapping non-filler content",
		}),
		fillerGeneratedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "schedule_filler_generated_total",
			Help: "Total number of filler items generated to cover gaps",
		}),
		daysMaterialized: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_days_materialized",
			Help: "Number of calendar days held in the store",
		}),
		itemsScheduled: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedule_items_scheduled",
			Help: "Number of content items across all days",
		}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.errorsTotal,
		m.itemsAddedTotal,
		m.conflictsTotal,
		m.fillerGeneratedTotal,
		m.daysMaterialized,
		m.itemsScheduled,
	)

	return m
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncItemsAdded increments the inserted items counter.
func (m *Metrics) IncItemsAdded() {
	m.itemsAddedTotal.Inc()
}

// IncConflicts increments the overlap conflict counter.
func (m *Metrics) IncConflicts() {
	m.conflictsTotal.Inc()
}

// AddFillerGenerated adds n to the generated filler counter.
func (m *Metrics) AddFillerGenerated(n int) {
	if n > 0 {
		m.fillerGeneratedTotal.Add(float64(n))
	}
}

// SetStoreSize sets the materialized days and scheduled items gauges.
func (m *Metrics) SetStoreSize(days, items int) {
	m.daysMaterialized.Set(float64(days))
	m.itemsScheduled.Set(float64(items))
}

// Registry exposes the underlying registry, e.g. for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
