// Package config provides ScanCore settings.
//
// This package defines the settings structure and validation:
//
//   - spec.go: Settings struct definition
//   - default.go: Default values
//   - verify.go: Validation
//   - sanitize.go: Log sanitization (hide the soak master key)
//   - apply.go: Writing engine settings into the runtime configuration store
//   - load.go: Loading from file and environment via internal/infra/confloader
//
// Settings are loaded from a YAML file and SCANCORE_* environment
// variables, e.g. SCANCORE_ENGINE_STACK_SIZE=131072.
package config
