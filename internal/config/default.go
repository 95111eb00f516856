// Package config provides ScanCore settings.
package config

import (
	"time"

	"github.com/yndnr/scancore-go/internal/core/confstore"
)

// Default configuration values.
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	DefaultSoakWorkers         = 4
	DefaultSoakDuration        = 10 * time.Second
	DefaultSoakBurst           = 1
	DefaultSoakShutdownTimeout = 5 * time.Second
)

// Default returns the default settings. Engine values equal the runtime's
// built-in configuration defaults.
func Default() *Settings {
	return &Settings{
		Engine: EngineSection{
			StackSize:             confstore.DefaultStackSize,
			MaxStringsPerRule:     confstore.DefaultMaxStringsPerRule,
			MaxMatchData:          confstore.DefaultMaxMatchData,
			MaxProcessMemoryChunk: confstore.DefaultMaxProcessMemoryChunk,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
		Soak: SoakSection{
			Workers:         DefaultSoakWorkers,
			Duration:        DefaultSoakDuration,
			Burst:           DefaultSoakBurst,
			ShutdownTimeout: DefaultSoakShutdownTimeout,
		},
	}
}
