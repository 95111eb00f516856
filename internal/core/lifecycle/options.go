package lifecycle

import (
	"log/slog"

	"github.com/yndnr/scancore-go/internal/core/cryptolock"
	"github.com/yndnr/scancore-go/internal/telemetry/metric"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithEngine sets the matching engine.
func WithEngine(s Subsystem) Option {
	return func(r *Runtime) {
		if s != nil {
			r.engine = s
		}
	}
}

// WithModules sets the module subsystem.
func WithModules(s Subsystem) Option {
	return func(r *Runtime) {
		if s != nil {
			r.modules = s
		}
	}
}

// WithHeap sets the heap-tracking subsystem.
func WithHeap(s Subsystem) Option {
	return func(r *Runtime) {
		if s != nil {
			r.heap = s
		}
	}
}

// WithCryptoLibrary sets the crypto library the lock bridge is installed
// into. Without it no bridge is created.
func WithCryptoLibrary(lib cryptolock.Library) Option {
	return func(r *Runtime) {
		r.cryptoLib = lib
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runtime) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics reports lifecycle and lock-bridge metrics to reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(r *Runtime) {
		r.metrics = reg
	}
}

// WithConfigSource adds a configuration source applied on every
// construction, in the order added.
func WithConfigSource(src ConfigSource) Option {
	return func(r *Runtime) {
		if src != nil {
			r.sources = append(r.sources, src)
		}
	}
}
