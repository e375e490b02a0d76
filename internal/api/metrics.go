package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "calccore"

// Operation outcomes used as the "outcome" label.
const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

// metrics holds the server's Prometheus collectors. Each Server owns its
// own registry so tests can build servers side by side.
type metrics struct {
	registry  *prometheus.Registry
	startTime time.Time

	httpInFlight prometheus.Gauge
	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	operations           *prometheus.CounterVec
	historyWriteFailures prometheus.Counter
	historyReadFailures  prometheus.Counter
}

func newMetrics(version string, startTime time.Time, db Database) *metrics {
	m := &metrics{
		registry:  prometheus.NewRegistry(),
		startTime: startTime,

		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms to ~1s
		}, []string{"method", "route"}),

		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "calc",
			Name:      "operations_total",
			Help:      "Arithmetic operations by name and outcome (ok, rejected, error).",
		}, []string{"operation", "outcome"}),
		historyWriteFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "history",
			Name:      "write_failures_total",
			Help:      "History inserts that failed and were dropped.",
		}),
		historyReadFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "history",
			Name:      "read_failures_total",
			Help:      "History reads that failed with storage unavailable.",
		}),
	}

	buildInfo := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace:   metricsNamespace,
		Name:        "build_info",
		Help:        "Build information; always 1.",
		ConstLabels: prometheus.Labels{"version": version},
	})
	buildInfo.Set(1)

	uptime := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "uptime_seconds",
		Help:      "Seconds since the API server was created.",
	}, func() float64 {
		return m.uptime().Seconds()
	})

	m.registry.MustRegister(
		m.httpInFlight,
		m.httpRequests,
		m.httpDuration,
		m.operations,
		m.historyWriteFailures,
		m.historyReadFailures,
		buildInfo,
		uptime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	if db != nil {
		m.registry.MustRegister(
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "database",
				Name:      "open_connections",
				Help:      "Open connections in the history store pool.",
			}, func() float64 { return float64(db.Stats().OpenConnections) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "database",
				Name:      "in_use_connections",
				Help:      "History store connections currently in use.",
			}, func() float64 { return float64(db.Stats().InUse) }),
			prometheus.NewGaugeFunc(prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Subsystem: "database",
				Name:      "wait_count",
				Help:      "Total waits for a history store connection.",
			}, func() float64 { return float64(db.Stats().WaitCount) }),
		)
	}

	return m
}

// uptime is the single uptime source for /health and the uptime gauge.
func (m *metrics) uptime() time.Duration {
	return time.Since(m.startTime)
}

// handler exposes the registry in Prometheus text format.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *metrics) observeOperation(op, outcome string) {
	m.operations.WithLabelValues(op, outcome).Inc()
}

func (m *metrics) observeRequest(method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}
