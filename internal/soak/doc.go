// Package soak drives a runtime from many goroutines for a bounded time.
//
// Every worker takes its own runtime reference, binds a thread index and a
// recovery state to its goroutine, and then loops: it checks that both
// slots still hold its own values, reads the configuration store, and when
// crypto support is compiled in, round-trips a message through a cipher
// keyed from the run's master key. Iterations are paced by a token bucket.
// Workers finalize their thread before releasing their reference.
//
// Any slot mismatch or crypto failure is counted and makes Run return
// ErrMismatch, so a soak run doubles as a stress test of the per-goroutine
// context and the crypto lock bridge.
package soak
