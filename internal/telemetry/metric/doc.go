// Package metric provides Prometheus metrics for ScanCore.
//
// This package implements metrics collection and exposition:
//
//   - prometheus.go: Prometheus registry, lifecycle counters and HTTP handler
//   - collector.go: Collector reading live runtime state on scrape
//
// Metrics include:
//
//   - Initialize/finalize call counters and construction/teardown counts
//   - Reference count and readiness of the runtime
//   - Crypto lock table size and acquisitions per lock
//   - Lifecycle phase durations
//
// Metrics are exposed at /metrics in Prometheus format.
package metric
