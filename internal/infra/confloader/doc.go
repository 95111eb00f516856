// Package confloader loads ScanCore settings from files and the
// environment.
//
// It is a thin layer over koanf:
//
//   - Sources: YAML files, SCANCORE_* environment variables, maps
//   - Unmarshaling into koanf-tagged structs
//   - Watcher: fsnotify-based change notification for config files
//
// Priority (highest to lowest):
//
//  1. Maps loaded explicitly (command-line flags)
//  2. Environment variables
//  3. Configuration file
//  4. Values already present in the target struct
package confloader
