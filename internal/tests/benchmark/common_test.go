package benchmark

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"
	"testing"

	"github.com/yndnr/scancore-go/internal/core/lifecycle"
	"github.com/yndnr/scancore-go/pkg/crypto/adaptive"
)

// GoroutineCounts defines how many goroutines hold slot entries while a
// benchmark runs.
var GoroutineCounts = []int{1, 64, 1024, 10000}

// SmallGoroutineCounts for quick benchmarks.
var SmallGoroutineCounts = []int{1, 64, 1024}

// newRuntime creates an initialized runtime with the bundled crypto
// library and registers its finalization with b.
func newRuntime(b *testing.B, opts ...lifecycle.Option) *lifecycle.Runtime {
	b.Helper()

	base := []lifecycle.Option{
		lifecycle.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		lifecycle.WithCryptoLibrary(adaptive.Default()),
	}
	rt := lifecycle.New(append(base, opts...)...)
	if err := rt.Initialize(); err != nil {
		b.Fatalf("Initialize failed: %v", err)
	}
	b.Cleanup(func() {
		if err := rt.Finalize(); err != nil {
			b.Errorf("Finalize failed: %v", err)
		}
	})
	return rt
}

// prefillSlots binds a thread index and recovery state on count
// goroutines that exit afterwards, leaving their entries in place.
func prefillSlots(rt *lifecycle.Runtime, count int) {
	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(tidx int) {
			defer wg.Done()
			rt.SetThreadIndex(tidx)
			rt.SetRecoveryState(tidx)
		}(i)
	}
	wg.Wait()
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithGoroutineCounts runs a benchmark function with various goroutine counts.
func runWithGoroutineCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("goroutines_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
