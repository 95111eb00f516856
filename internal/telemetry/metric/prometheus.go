// Package metric provides Prometheus metrics for ScanCore.
package metric

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scancore"

// Registry holds all runtime metrics.
type Registry struct {
	registry *prometheus.Registry

	// Lifecycle metrics
	InitCalls       prometheus.Counter
	FinalizeCalls   prometheus.Counter
	Constructions   prometheus.Counter
	Teardowns       prometheus.Counter
	ThreadFinalizes prometheus.Counter
	Errors          *prometheus.CounterVec
	PhaseDuration   *prometheus.HistogramVec

	// Crypto bridge metrics
	CryptoLocks            prometheus.Gauge
	CryptoLockAcquisitions *prometheus.CounterVec
}

// NewRegistry creates a registry with runtime, Go and process collectors.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := &Registry{
		registry: reg,
		InitCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "runtime",
			Name:      "init_calls_total",
			Help:      "Total number of initialize calls",
		}),
		FinalizeCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "runtime",
			Name:      "finalize_calls_total",
			Help:      "Total number of finalize calls",
		}),
		Constructions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "runtime",
			Name:      "constructions_total",
			Help:      "Total number of completed global constructions",
		}),
		Teardowns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "runtime",
			Name:      "teardowns_total",
			Help:      "Total number of global teardowns",
		}),
		ThreadFinalizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "runtime",
			Name:      "thread_finalize_total",
			Help:      "Total number of per-thread finalize calls",
		}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "runtime",
			Name:      "errors_total",
			Help:      "Total number of lifecycle errors by operation",
		}, []string{"op"}),
		PhaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "runtime",
			Name:      "phase_duration_seconds",
			Help:      "Duration of global construction and teardown",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"phase"}),
		CryptoLocks: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "crypto",
			Name:      "locks",
			Help:      "Number of locks in the crypto bridge table",
		}),
		CryptoLockAcquisitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "crypto",
			Name:      "lock_acquisitions_total",
			Help:      "Total number of crypto lock acquisitions by lock index",
		}, []string{"lock"}),
	}

	reg.MustRegister(
		r.InitCalls,
		r.FinalizeCalls,
		r.Constructions,
		r.Teardowns,
		r.ThreadFinalizes,
		r.Errors,
		r.PhaseDuration,
		r.CryptoLocks,
		r.CryptoLockAcquisitions,
	)

	return r
}

var (
	globalRegistry *Registry
	globalOnce     sync.Once
)

// Global returns the process-wide registry.
func Global() *Registry {
	globalOnce.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// Handler returns an HTTP handler serving the global registry.
func Handler() http.Handler {
	return Global().Handler()
}

// Handler returns an HTTP handler for this registry's /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Register adds a custom collector.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.registry.Register(c)
}

// IncInit counts an initialize call.
func (r *Registry) IncInit() { r.InitCalls.Inc() }

// IncFinalize counts a finalize call.
func (r *Registry) IncFinalize() { r.FinalizeCalls.Inc() }

// IncConstruction counts a completed global construction.
func (r *Registry) IncConstruction() { r.Constructions.Inc() }

// IncTeardown counts a global teardown.
func (r *Registry) IncTeardown() { r.Teardowns.Inc() }

// IncThreadFinalize counts a per-thread finalize call.
func (r *Registry) IncThreadFinalize() { r.ThreadFinalizes.Inc() }

// RecordError counts a failed lifecycle operation.
func (r *Registry) RecordError(op string) {
	r.Errors.WithLabelValues(op).Inc()
}

// ObservePhase records how long a lifecycle phase took.
func (r *Registry) ObservePhase(phase string, seconds float64) {
	r.PhaseDuration.WithLabelValues(phase).Observe(seconds)
}

// SetCryptoLocks records the size of the crypto lock table.
func (r *Registry) SetCryptoLocks(n int) {
	r.CryptoLocks.Set(float64(n))
}

// ObserveLock counts an acquisition of crypto lock n.
func (r *Registry) ObserveLock(n int) {
	r.CryptoLockAcquisitions.WithLabelValues(strconv.Itoa(n)).Inc()
}
