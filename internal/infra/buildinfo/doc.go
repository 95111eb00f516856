// Package buildinfo provides build information for ScanCore.
//
// Values are injected at build time via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/scancore-go/internal/infra/buildinfo.Version=v1.0.0"
//
// When Commit or GoVersion are not injected they are read from the module
// build information embedded by the Go toolchain.
package buildinfo
