package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge

	BookingOutcomes   *prometheus.CounterVec
	IntentResolutions *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в указанном реестре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}),
		BookingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointment_operations_total",
			Help:        "Appointment operations by outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "outcome"}),
		IntentResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "intent_resolutions_total",
			Help:        "Resolved chat intents by backend and result",
			ConstLabels: constLabels,
		}, []string{"backend", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.BookingOutcomes,
		m.IntentResolutions,
	)

	return m
}

// RecordBookingOutcome безопасен для nil-получателя (метрики выключены)
func (m *Metrics) RecordBookingOutcome(operation, outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(operation, outcome).Inc()
}

// RecordIntentResolution безопасен для nil-получателя (метрики выключены)
func (m *Metrics) RecordIntentResolution(backend, result string) {
	if m == nil {
		return
	}
	m.IntentResolutions.WithLabelValues(backend, result).Inc()
}
