package scancore

import (
	"errors"
	"sync"
	"testing"

	"github.com/yndnr/scancore-go/internal/core/cryptolock"
	"github.com/yndnr/scancore-go/pkg/crypto/adaptive"
)

func TestInitializeFinalize(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if err := Initialize(); err != nil {
		t.Fatalf("nested Initialize() error = %v", err)
	}
	if Default().Refs() != 2 {
		t.Errorf("Refs() = %d, want 2", Default().Refs())
	}

	if cryptolock.Enabled && !adaptive.LockingInstalled() {
		t.Error("lock bridge not installed in the crypto library")
	}

	if err := Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if err := Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	if adaptive.LockingInstalled() {
		t.Error("lock bridge still installed after teardown")
	}

	if err := Finalize(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("unbalanced Finalize() error = %v, want ErrNotInitialized", err)
	}
}

func TestThreadIndex(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer Finalize()

	if got := ThreadIndex(); got != -1 {
		t.Errorf("ThreadIndex() = %d, want -1", got)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(tidx int) {
			defer wg.Done()
			defer FinalizeThread()

			SetThreadIndex(tidx)
			for j := 0; j < 1000; j++ {
				if got := ThreadIndex(); got != tidx {
					t.Errorf("ThreadIndex() = %d, want %d", got, tidx)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestRecoveryState(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer Finalize()

	SetRecoveryState(7)
	if got := RecoveryState(); got != 7 {
		t.Errorf("RecoveryState() = %v, want 7", got)
	}
	FinalizeThread()
	if got := RecoveryState(); got != nil {
		t.Errorf("RecoveryState() after FinalizeThread() = %v, want nil", got)
	}
}

func TestConfiguration(t *testing.T) {
	if err := Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer Finalize()

	if err := SetConfiguration(StackSize, uint32(131072)); err != nil {
		t.Fatalf("SetConfiguration() error = %v", err)
	}

	var got uint32
	if err := GetConfiguration(StackSize, &got); err != nil {
		t.Fatalf("GetConfiguration() error = %v", err)
	}
	if got != 131072 {
		t.Errorf("stack size = %d, want 131072", got)
	}

	var chunk uint64
	if err := GetConfiguration(MaxProcessMemoryChunk, &chunk); err != nil {
		t.Fatalf("GetConfiguration() error = %v", err)
	}
	if chunk != 1<<30 {
		t.Errorf("max process memory chunk = %d, want %d", chunk, uint64(1<<30))
	}

	if err := GetConfiguration(StackSize, &chunk); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("GetConfiguration() with wrong type error = %v, want ErrInvalidArgument", err)
	}
}

func TestNewRuntime(t *testing.T) {
	r := NewRuntime()
	if r == Default() {
		t.Fatal("NewRuntime() returned the process-wide runtime")
	}
	if err := r.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if Default().Ready() {
		t.Error("independent runtime initialized the process-wide one")
	}
	if err := r.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
}
