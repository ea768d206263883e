package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBOpenConns     prometheus.Gauge
	DBInUseConns    prometheus.Gauge
	DBIdleConns     prometheus.Gauge
	DBWaitCount     prometheus.Gauge

	ReservationsCreated  prometheus.Counter
	PaymentRedirects     *prometheus.CounterVec
	PaymentNotifications *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConns: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		ReservationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name:        "reservations_created_total",
			Help:        "Reservations created in pending state",
			ConstLabels: constLabels,
		}),
		PaymentRedirects: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_redirects_total",
			Help:        "Payment redirect requests by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		PaymentNotifications: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_notifications_total",
			Help:        "Gateway notifications by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}
}

// Методы ниже безопасны для nil: при выключенных метриках usecase получает nil *Metrics

func (m *Metrics) RecordReservationCreated() {
	if m == nil {
		return
	}
	m.ReservationsCreated.Inc()
}

func (m *Metrics) RecordPaymentRedirect(result string) {
	if m == nil {
		return
	}
	m.PaymentRedirects.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordPaymentNotification(outcome string) {
	if m == nil {
		return
	}
	m.PaymentNotifications.WithLabelValues(outcome).Inc()
}
