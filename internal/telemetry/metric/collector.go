// Package metric provides Prometheus metrics for ScanCore.
package metric

import "github.com/prometheus/client_golang/prometheus"

// RuntimeSource exposes the live state read on every scrape.
type RuntimeSource interface {
	Refs() int
	Ready() bool
}

// RuntimeCollector reports the reference count and readiness of a runtime.
type RuntimeCollector struct {
	src        RuntimeSource
	references *prometheus.Desc
	ready      *prometheus.Desc
}

// NewRuntimeCollector creates a collector for src.
func NewRuntimeCollector(src RuntimeSource) *RuntimeCollector {
	return &RuntimeCollector{
		src: src,
		references: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "runtime", "references"),
			"Current initialize reference count",
			nil, nil,
		),
		ready: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "runtime", "ready"),
			"1 when global state is constructed, 0 otherwise",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *RuntimeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.references
	ch <- c.ready
}

// Collect implements prometheus.Collector.
func (c *RuntimeCollector) Collect(ch chan<- prometheus.Metric) {
	ready := 0.0
	if c.src.Ready() {
		ready = 1
	}
	ch <- prometheus.MustNewConstMetric(c.references, prometheus.GaugeValue, float64(c.src.Refs()))
	ch <- prometheus.MustNewConstMetric(c.ready, prometheus.GaugeValue, ready)
}
