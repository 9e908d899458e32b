package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	API    APIMetrics
	Checks CheckMetrics
}

type APIMetrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// CheckMetrics - проверки зависимостей из health-проб
type CheckMetrics struct {
	Total           *prometheus.CounterVec
	DurationSeconds *prometheus.HistogramVec
	Up              *prometheus.GaugeVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		API: APIMetrics{
			HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
				Namespace: "appointment",
				Subsystem: "api",
				Name:      "http_requests_total",
				Help:      "Total HTTP requests by method, path and status.",
			}, []string{"method", "path", "status"}),

			HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "appointment",
				Subsystem: "api",
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency.",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			}, []string{"method", "path", "status"}),
		},
		Checks: CheckMetrics{
			Total: f.NewCounterVec(prometheus.CounterOpts{
				Namespace: "appointment",
				Subsystem: "health",
				Name:      "checks_total",
				Help:      "Dependency checks by dependency and result.",
			}, []string{"dependency", "result"}), // ok|error

			DurationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "appointment",
				Subsystem: "health",
				Name:      "check_duration_seconds",
				Help:      "Dependency check duration in seconds.",
				Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			}, []string{"dependency"}),

			Up: f.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "appointment",
				Subsystem: "health",
				Name:      "dependency_up",
				Help:      "Result of the last check: 1 healthy, 0 unhealthy.",
			}, []string{"dependency"}),
		},
	}
}
