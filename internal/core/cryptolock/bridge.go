//go:build !nocrypto

package cryptolock

import (
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/yndnr/scancore-go/internal/core/domain"
	"github.com/yndnr/scancore-go/pkg/crypto/adaptive"
	"github.com/yndnr/scancore-go/pkg/threadlocal"
)

// Enabled reports whether crypto support is compiled in.
const Enabled = true

// table is the lock table registered with one library. Every bridge
// installed on the same library shares it.
type table struct {
	lib     Library
	locks   []sync.Mutex
	refs    int // guarded by tablesMu
	members atomic.Pointer[[]*Bridge]
}

var (
	tablesMu sync.Mutex
	tables   = make(map[Library]*table)
)

// Bridge is one installation of a lock table into a crypto library.
type Bridge struct {
	t        *table
	observer Observer
	closed   atomic.Bool
}

// Install registers the thread-id and locking callbacks with lib. The
// first installation allocates lib.NumLocks() mutexes; later
// installations on the same library share that table until the last of
// them is closed. lib must be comparable.
func Install(lib Library, opts ...Option) (*Bridge, error) {
	if lib == nil {
		return nil, domain.ErrInvalidArgument.WithDetails("nil crypto library")
	}
	if !reflect.TypeOf(lib).Comparable() {
		return nil, domain.ErrInvalidArgument.WithDetailsf("crypto library %T is not comparable", lib)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tablesMu.Lock()
	defer tablesMu.Unlock()

	t, ok := tables[lib]
	if !ok {
		n := lib.NumLocks()
		if n <= 0 {
			return nil, domain.ErrInternalFatal.WithDetailsf("crypto library requested %d locks", n)
		}
		t = &table{lib: lib, locks: make([]sync.Mutex, n)}
		t.members.Store(&[]*Bridge{})

		lib.SetIDCallback(threadlocal.GoroutineID)
		lib.SetLockingCallback(t.lock)
		tables[lib] = t
	}
	t.refs++

	b := &Bridge{t: t, observer: o.observer}
	t.setMembers(append(t.snapshot(), b))
	return b, nil
}

func (t *table) snapshot() []*Bridge {
	members := *t.members.Load()
	return append([]*Bridge(nil), members...)
}

func (t *table) setMembers(members []*Bridge) {
	t.members.Store(&members)
}

func (t *table) lock(mode adaptive.LockMode, n int, file string, line int) {
	if n < 0 || n >= len(t.locks) {
		panic(domain.ErrInternalFatal.WithDetailsf(
			"crypto lock index %d out of range [0,%d) at %s:%d", n, len(t.locks), file, line))
	}

	if mode&adaptive.LockAcquire != 0 {
		t.locks[n].Lock()
		for _, b := range *t.members.Load() {
			if b.observer != nil {
				b.observer.ObserveLock(n)
			}
		}
		return
	}
	t.locks[n].Unlock()
}

// NumLocks returns the size of the lock table.
func (b *Bridge) NumLocks() int {
	if b == nil {
		return 0
	}
	return len(b.t.locks)
}

// ThreadID identifies the calling goroutine to the crypto library.
func (b *Bridge) ThreadID() uint64 {
	return threadlocal.GoroutineID()
}

// Lock acquires lock n when mode has adaptive.LockAcquire set and releases
// it otherwise. An index outside the table is a fatal library bug.
func (b *Bridge) Lock(mode adaptive.LockMode, n int, file string, line int) {
	b.t.lock(mode, n, file, line)
}

// FinalizeThread releases the calling goroutine's state inside the
// library.
func (b *Bridge) FinalizeThread() {
	if b == nil {
		return
	}
	if r, ok := b.t.lib.(ThreadStateRemover); ok {
		r.RemoveThreadState()
	}
}

// Closed reports whether Close has run.
func (b *Bridge) Closed() bool {
	return b == nil || b.closed.Load()
}

// Close drops this installation. Closing the last installation on a
// library unregisters the callbacks and then waits until no goroutine
// holds a lock of the table. A library must not invoke a locking callback
// it loaded before unregistering once SetLockingCallback(nil) has
// returned; adaptive waits for such calls itself. Close is safe to call
// more than once.
func (b *Bridge) Close() error {
	if b == nil || !b.closed.CompareAndSwap(false, true) {
		return nil
	}
	t := b.t

	tablesMu.Lock()
	members := t.snapshot()
	for i, m := range members {
		if m == b {
			members = append(members[:i], members[i+1:]...)
			break
		}
	}
	t.setMembers(members)

	t.refs--
	last := t.refs == 0
	if last {
		delete(tables, t.lib)
		t.lib.SetLockingCallback(nil)
		t.lib.SetIDCallback(nil)
	}
	tablesMu.Unlock()

	if !last {
		return nil
	}
	for i := range t.locks {
		t.locks[i].Lock()
		t.locks[i].Unlock()
	}
	return nil
}
