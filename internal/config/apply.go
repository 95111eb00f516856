// Package config provides ScanCore settings.
package config

import (
	"fmt"

	"github.com/yndnr/scancore-go/internal/core/confstore"
)

// ApplyTo writes the engine settings into store. It satisfies
// lifecycle.ConfigSource, so a runtime re-applies them on every
// construction.
func (e EngineSection) ApplyTo(store *confstore.Store) error {
	for _, name := range confstore.Names() {
		v, ok := e.value(name)
		if !ok {
			continue
		}
		if err := store.Set(name, v); err != nil {
			return fmt.Errorf("apply %s: %w", name, err)
		}
	}
	return nil
}

func (e EngineSection) value(name confstore.Name) (any, bool) {
	switch name {
	case confstore.StackSize:
		return e.StackSize, true
	case confstore.MaxStringsPerRule:
		return e.MaxStringsPerRule, true
	case confstore.MaxMatchData:
		return e.MaxMatchData, true
	case confstore.MaxProcessMemoryChunk:
		return e.MaxProcessMemoryChunk, true
	}
	return nil, false
}
