// Package config provides ScanCore settings.
package config

import "github.com/yndnr/scancore-go/internal/telemetry/logger"

// Sanitize returns a copy of the settings with sensitive fields masked.
//
// This is used for printing and logging settings without exposing secrets.
func Sanitize(cfg *Settings) *Settings {
	sanitized := *cfg
	sanitized.Soak.MasterKey = logger.RedactString(sanitized.Soak.MasterKey)
	return &sanitized
}
