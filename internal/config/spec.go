// Package config provides ScanCore settings.
package config

import "time"

// Settings is the root configuration of scancore-cli.
type Settings struct {
	Engine  EngineSection  `koanf:"engine"`
	Log     LogSection     `koanf:"log"`
	Metrics MetricsSection `koanf:"metrics"`
	Soak    SoakSection    `koanf:"soak"`
}

// EngineSection holds the runtime configuration values. Field tags match
// the configuration key names of the runtime store.
type EngineSection struct {
	StackSize             uint32 `koanf:"stack_size"`
	MaxStringsPerRule     uint32 `koanf:"max_strings_per_rule"`
	MaxMatchData          uint32 `koanf:"max_match_data"`
	MaxProcessMemoryChunk uint64 `koanf:"max_process_memory_chunk"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// MetricsSection configures the Prometheus endpoint.
type MetricsSection struct {
	// Addr is the listen address of /metrics. Empty disables the endpoint.
	Addr string `koanf:"addr"`
}

// SoakSection configures the soak command.
type SoakSection struct {
	// Workers is the number of concurrent worker goroutines.
	Workers int `koanf:"workers"`

	// Duration bounds the run. Zero runs until interrupted.
	Duration time.Duration `koanf:"duration"`

	// Rate is the per-worker iteration rate in operations per second.
	// Zero means unlimited.
	Rate float64 `koanf:"rate"`

	// Burst is the rate limiter burst size.
	Burst int `koanf:"burst"`

	// MasterKey is the key material workers derive encryption keys from.
	// Empty generates a random key per run.
	MasterKey string `koanf:"master_key"`

	// ShutdownTimeout bounds the time workers get to finish after a stop.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}
