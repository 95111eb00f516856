// Package output provides output formatting for scancore-cli.
//
// This package handles all CLI output formatting:
//
//   - formatter.go: Formatter interface and factory
//   - table.go: Table rendering for structs, slices and maps
//   - json.go: JSON output formatting
//   - yaml.go: YAML output formatting
//
// Table output is meant for people; json and yaml for scripts.
package output
