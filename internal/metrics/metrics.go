// internal/metrics/metrics.go

// Package metrics exposes Prometheus collectors for ledger operations and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for ledger operations.
const (
	OutcomeOK      = "ok"
	OutcomeFailed  = "failed"
	OutcomePartial = "partial"
)

// Metrics groups the collectors used by the application.
type Metrics struct {
	registry       *prometheus.Registry
	ledgerOps      *prometheus.CounterVec
	ledgerSteps    *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New creates and registers the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ledgerOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "money",
			Name:      "ledger_operations_total",
			Help:      "Ledger operations by name and outcome.",
		}, []string{"operation", "outcome"}),
		ledgerSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "money",
			Name:      "ledger_steps_total",
			Help:      "Individual persistence steps executed by ledger operations.",
		}, []string{"operation", "step"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "money",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	m.registry.MustRegister(
		m.ledgerOps,
		m.ledgerSteps,
		m.requestLatency,
		collectors.NewGoCollector(),
	)
	return m
}

// ObserveOperation counts one finished ledger operation.
func (m *Metrics) ObserveOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.ledgerOps.WithLabelValues(operation, outcome).Inc()
}

// ObserveStep counts one committed persistence step.
func (m *Metrics) ObserveStep(operation, step string) {
	if m == nil {
		return
	}
	m.ledgerSteps.WithLabelValues(operation, step).Inc()
}

// OperationCount returns the current value of a ledger operation counter.
func (m *Metrics) OperationCount(operation, outcome string) float64 {
	return counterValue(m.ledgerOps.WithLabelValues(operation, outcome))
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request latency labelled with the matched chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.requestLatency.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Observe(time.Since(start).Seconds())
	})
}
