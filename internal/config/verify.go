// Package config provides ScanCore settings.
package config

import (
	"errors"
	"fmt"
	"net"

	"github.com/yndnr/scancore-go/internal/telemetry/logger"
)

// MinMasterKeyLength is the shortest accepted soak master key.
const MinMasterKeyLength = 16

// Verify validates the settings.
func Verify(cfg *Settings) error {
	if err := verifyEngine(&cfg.Engine); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	if err := verifyMetrics(&cfg.Metrics); err != nil {
		return err
	}
	return verifySoak(&cfg.Soak)
}

func verifyEngine(cfg *EngineSection) error {
	if cfg.StackSize == 0 {
		return errors.New("engine.stack_size must be positive")
	}
	if cfg.MaxStringsPerRule == 0 {
		return errors.New("engine.max_strings_per_rule must be positive")
	}
	if cfg.MaxMatchData == 0 {
		return errors.New("engine.max_match_data must be positive")
	}
	if cfg.MaxProcessMemoryChunk == 0 {
		return errors.New("engine.max_process_memory_chunk must be positive")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !logger.ValidLevel(cfg.Level) {
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", cfg.Level)
	}
	if !logger.ValidFormat(cfg.Format) {
		return fmt.Errorf("log.format %q is not one of json, text", cfg.Format)
	}
	return nil
}

func verifyMetrics(cfg *MetricsSection) error {
	if cfg.Addr == "" {
		return nil
	}
	if _, _, err := net.SplitHostPort(cfg.Addr); err != nil {
		return fmt.Errorf("metrics.addr: %w", err)
	}
	return nil
}

func verifySoak(cfg *SoakSection) error {
	if cfg.Workers < 1 {
		return errors.New("soak.workers must be at least 1")
	}
	if cfg.Duration < 0 {
		return errors.New("soak.duration must not be negative")
	}
	if cfg.Rate < 0 {
		return errors.New("soak.rate must not be negative")
	}
	if cfg.Rate > 0 && cfg.Burst < 1 {
		return errors.New("soak.burst must be at least 1 when soak.rate is set")
	}
	if cfg.MasterKey != "" && len(cfg.MasterKey) < MinMasterKeyLength {
		return fmt.Errorf("soak.master_key must be at least %d characters", MinMasterKeyLength)
	}
	return nil
}
