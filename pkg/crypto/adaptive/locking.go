package adaptive

import (
	"runtime"
	"sync/atomic"
	"time"
)

// LockMode is the flag set passed to a LockingCallback.
type LockMode int

const (
	// LockAcquire requests the lock; its absence means release.
	LockAcquire LockMode = 1 << iota
	// LockRelease marks an unlock request.
	LockRelease
	// LockRead marks a read-only critical section.
	LockRead
	// LockWrite marks a mutating critical section.
	LockWrite
)

// Lock indices.
const (
	LockErrorQueue = iota
	LockRandom
	LockKeyring
	LockStats

	numLocks
)

// IDCallback returns a value identifying the calling thread.
type IDCallback func() uint64

// LockingCallback locks or unlocks lock n depending on mode. file and line
// identify the call site inside the library.
type LockingCallback func(mode LockMode, n int, file string, line int)

var (
	idCallback      atomic.Pointer[IDCallback]
	lockingCallback atomic.Pointer[LockingCallback]

	// inflight counts acquire/release pairs between loading the locking
	// callback and returning from its release call.
	inflight atomic.Int64
)

// NumLocks returns the number of locks a LockingCallback must provide.
func NumLocks() int {
	return numLocks
}

// SetIDCallback registers the thread-id callback. nil unregisters it.
func SetIDCallback(cb IDCallback) {
	if cb == nil {
		idCallback.Store(nil)
		return
	}
	idCallback.Store(&cb)
}

// SetLockingCallback registers the locking callback. nil unregisters it
// and waits until every call into the previous callback has returned, so
// the host may drop its lock table afterwards.
func SetLockingCallback(cb LockingCallback) {
	if cb != nil {
		lockingCallback.Store(&cb)
		return
	}
	lockingCallback.Store(nil)
	for inflight.Load() > 0 {
		time.Sleep(50 * time.Microsecond)
	}
}

// LockingInstalled reports whether a locking callback is registered.
func LockingInstalled() bool {
	return lockingCallback.Load() != nil
}

// threadID returns the calling thread's id, or 0 when no callback is set.
func threadID() uint64 {
	if cb := idCallback.Load(); cb != nil {
		return (*cb)()
	}
	return 0
}

// acquire takes lock n through the registered callback and returns the
// matching release. The release always goes to the callback that served
// the acquire, even if the registration changes in between.
func acquire(n int, mode LockMode) (release func()) {
	inflight.Add(1)
	cbp := lockingCallback.Load()
	if cbp == nil {
		inflight.Add(-1)
		return func() {}
	}
	cb := *cbp

	_, file, line, _ := runtime.Caller(1)
	cb(LockAcquire|mode, n, file, line)
	return func() {
		cb(LockRelease|mode, n, file, line)
		inflight.Add(-1)
	}
}

// Registry exposes the package-level callback registry as a value, so a
// host can inject the library into its lock bridge.
type Registry struct{}

// Default returns the library's callback registry.
func Default() Registry {
	return Registry{}
}

// NumLocks returns NumLocks().
func (Registry) NumLocks() int { return NumLocks() }

// SetIDCallback calls SetIDCallback.
func (Registry) SetIDCallback(cb IDCallback) { SetIDCallback(cb) }

// SetLockingCallback calls SetLockingCallback.
func (Registry) SetLockingCallback(cb LockingCallback) { SetLockingCallback(cb) }

// RemoveThreadState calls RemoveThreadState.
func (Registry) RemoveThreadState() { RemoveThreadState() }
