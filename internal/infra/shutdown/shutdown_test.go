package shutdown

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"syscall"
	"testing"
	"time"
)

func waitAsync(h *Handler, ctx context.Context) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- h.Wait(ctx)
	}()
	return errCh
}

func receive(t *testing.T, errCh <-chan error) error {
	t.Helper()
	select {
	case err := <-errCh:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Wait() did not complete in time")
		return nil
	}
}

func TestHandler_HookOrder(t *testing.T) {
	h := NewHandler(time.Second)

	var mu sync.Mutex
	var order []int
	for i := 1; i <= 3; i++ {
		h.OnShutdown(func(context.Context) error {
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			return nil
		})
	}

	errCh := waitAsync(h, context.Background())
	h.Trigger()

	if err := receive(t, errCh); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
	if !reflect.DeepEqual(order, []int{3, 2, 1}) {
		t.Errorf("hooks called in order %v, want [3 2 1]", order)
	}
	if h.Reason() != ReasonTrigger {
		t.Errorf("Reason() = %q, want %q", h.Reason(), ReasonTrigger)
	}

	select {
	case <-h.Done():
	default:
		t.Error("Done channel should be closed after Wait completes")
	}
}

func TestHandler_FirstErrorWins(t *testing.T) {
	h := NewHandler(time.Second)

	first := errors.New("finalize failed")
	second := errors.New("flush failed")
	var calls int

	h.OnShutdown(func(context.Context) error { calls++; return second })
	h.OnShutdown(func(context.Context) error { calls++; return first })

	errCh := waitAsync(h, context.Background())
	h.Trigger()

	if err := receive(t, errCh); err != first {
		t.Errorf("Wait() error = %v, want %v", err, first)
	}
	if calls != 2 {
		t.Errorf("hooks called %d times, want 2", calls)
	}
}

func TestHandler_ContextCancel(t *testing.T) {
	h := NewHandler(time.Second)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := waitAsync(h, ctx)
	cancel()

	if err := receive(t, errCh); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
	if h.Reason() != ReasonContext {
		t.Errorf("Reason() = %q, want %q", h.Reason(), ReasonContext)
	}
}

func TestHandler_Signal(t *testing.T) {
	h := NewHandler(time.Second)

	var called bool
	h.OnShutdown(func(context.Context) error {
		called = true
		return nil
	})

	errCh := waitAsync(h, context.Background())

	// Give Wait time to set up the signal handler.
	time.Sleep(50 * time.Millisecond)
	syscall.Kill(syscall.Getpid(), syscall.SIGTERM)

	if err := receive(t, errCh); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
	if !called {
		t.Error("hook not called")
	}
	if h.Reason() != ReasonSignal {
		t.Errorf("Reason() = %q, want %q", h.Reason(), ReasonSignal)
	}
}

func TestHandler_HookTimeout(t *testing.T) {
	h := NewHandler(20 * time.Millisecond)

	h.OnShutdown(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	errCh := waitAsync(h, context.Background())
	h.Trigger()

	if err := receive(t, errCh); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestHandler_TriggerTwice(t *testing.T) {
	h := NewHandler(time.Second)
	h.Trigger()
	h.Trigger()

	if err := h.Wait(context.Background()); err != nil {
		t.Errorf("Wait() error = %v", err)
	}
}
