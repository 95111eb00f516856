// Package lifecycle implements the reference-counted global runtime of
// ScanCore.
//
// A Runtime owns the state shared by every scanning goroutine:
//
//   - case tables
//   - the tidx and recovery-state slots
//   - the crypto lock bridge
//   - the configuration store
//
// The first Initialize call constructs that state and later calls only
// bump the reference count. The matching Finalize call that brings the
// count back to zero tears it down again. Construction is all-or-nothing:
// a failing step rolls back every step already completed, and callers
// never observe a partially built runtime.
//
// Each goroutine that used the runtime should call FinalizeThread before it
// exits; Go has no thread-exit destructors.
package lifecycle
