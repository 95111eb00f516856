// Package cryptolock bridges the cryptographic library's locking model to
// Go mutexes.
//
// The library keeps shared state it does not lock by itself; it asks the
// host for NumLocks() independent locks and calls back into the host to
// take and release them, and to identify the calling thread. Install
// allocates exactly that many mutexes and registers the callbacks.
//
// The library's registry is process-wide, so installations are counted per
// library: runtimes installing on the same library share one lock table,
// and only closing the last of them unregisters the callbacks and drains
// every mutex.
//
// Building with the nocrypto tag removes crypto support: Enabled is false
// and Install returns a nil bridge. Every Bridge method except Lock
// accepts a nil receiver.
package cryptolock
