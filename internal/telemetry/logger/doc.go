// Package logger provides structured logging for ScanCore.
//
// This package wraps log/slog:
//
//   - logger.go: logger construction, dynamic level, package-level logger
//   - context.go: context-aware logging with soak run IDs and worker indices
//   - redact.go: redaction of key material
//
// Features:
//
//   - JSON and text output formats
//   - Log level filtering with runtime adjustment
//   - Automatic masking of keys and secrets
//
// Library packages accept a plain *slog.Logger; use Logger.Slog to hand
// them one that shares this package's handler.
package logger
