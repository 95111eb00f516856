// Package command provides CLI command definitions for scancore-cli.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Root command, global flags, settings and logger setup
//   - version.go: Build information
//   - config.go: Effective settings and runtime configuration store
//   - tables.go: Case-folding tables
//   - selftest.go: Runtime contract checks
//   - soak.go: Concurrent stress run with metrics and config reload
//
// Commands follow a consistent pattern of reading the loaded settings,
// driving a runtime, and formatting output with the output package.
package command
