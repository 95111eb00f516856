package lifecycle

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/yndnr/scancore-go/pkg/crypto/adaptive"
)

// fakeLibrary is a crypto library exposing n locks.
type fakeLibrary struct {
	n        int
	mu       sync.Mutex
	id       adaptive.IDCallback
	locking  adaptive.LockingCallback
	installs atomic.Int32
	removed  atomic.Int32
}

func newFakeLibrary(n int) *fakeLibrary {
	return &fakeLibrary{n: n}
}

func (f *fakeLibrary) NumLocks() int { return f.n }

func (f *fakeLibrary) SetIDCallback(cb adaptive.IDCallback) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.id = cb
}

func (f *fakeLibrary) SetLockingCallback(cb adaptive.LockingCallback) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if cb != nil {
		f.installs.Add(1)
	}
	f.locking = cb
}

func (f *fakeLibrary) RemoveThreadState() {
	f.removed.Add(1)
}

func (f *fakeLibrary) installed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id != nil && f.locking != nil
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	return m.GetCounter().GetValue()
}
