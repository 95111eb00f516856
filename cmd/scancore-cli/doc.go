// Package main provides the entry point for scancore-cli.
//
// The CLI drives the ScanCore runtime outside of a scanning host:
//
//   - Build information and crypto support (version)
//   - Effective settings and the runtime configuration store (config)
//   - Case-folding tables (tables)
//   - Runtime contract checks (selftest)
//   - Concurrent stress runs with Prometheus metrics (soak)
//
// Usage:
//
//	scancore-cli [global flags] command [flags]
//	scancore-cli -o json config show
//	scancore-cli --config scancore.yaml soak --workers 16 --duration 1m
//
// Settings come from the --config file and SCANCORE_* environment
// variables, e.g. SCANCORE_ENGINE_STACK_SIZE=131072.
package main
