// Package config provides ScanCore settings.
package config

import (
	"fmt"

	"github.com/yndnr/scancore-go/internal/infra/confloader"
)

// Load reads settings from path (optional) and the environment on top of
// the defaults, then verifies them. overrides, typically command-line
// flags keyed like "soak.workers", take precedence over both.
func Load(path string, overrides map[string]any) (*Settings, error) {
	cfg := Default()

	l := confloader.NewLoader()
	if path != "" {
		if err := l.LoadFile(path); err != nil {
			return nil, err
		}
	}
	if err := l.LoadEnv(); err != nil {
		return nil, err
	}
	if len(overrides) > 0 {
		if err := l.LoadMap(overrides); err != nil {
			return nil, err
		}
	}
	if err := l.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}
