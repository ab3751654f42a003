package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP метрики
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Метрики БД
	DBQueryDuration *prometheus.HistogramVec
	DBQueryErrors   *prometheus.CounterVec

	// Метрики connection pool
	DBConnectionsOpen  *prometheus.GaugeVec
	DBConnectionsInUse *prometheus.GaugeVec
	DBConnectionsIdle  *prometheus.GaugeVec

	// Бизнес-метрики sweep'а реконсиляции
	SweepRunsTotal          *prometheus.CounterVec
	SweepContractsCompleted *prometheus.CounterVec
	SweepBookingsCompleted  *prometheus.CounterVec
	SweepExpirationWarnings *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBQueryErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBConnectionsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_open",
			Help:        "Number of open database connections",
			ConstLabels: constLabels,
		}, []string{"pool"}),

		DBConnectionsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_in_use",
			Help:        "Number of database connections currently in use",
			ConstLabels: constLabels,
		}, []string{"pool"}),

		DBConnectionsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_connections_idle",
			Help:        "Number of idle database connections",
			ConstLabels: constLabels,
		}, []string{"pool"}),

		SweepRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reconciliation_sweep_runs_total",
			Help:        "Total number of reconciliation sweep runs",
			ConstLabels: constLabels,
		}, []string{"result"}),

		SweepContractsCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reconciliation_contracts_completed_total",
			Help:        "Total number of contracts auto-completed by the sweep",
			ConstLabels: constLabels,
		}, []string{}),

		SweepBookingsCompleted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reconciliation_bookings_completed_total",
			Help:        "Total number of bookings auto-completed by the sweep",
			ConstLabels: constLabels,
		}, []string{}),

		SweepExpirationWarnings: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "reconciliation_expiration_warnings_total",
			Help:        "Total number of contract expiration warnings dispatched",
			ConstLabels: constLabels,
		}, []string{"days"}),
	}
}
