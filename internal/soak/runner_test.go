package soak

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yndnr/scancore-go/internal/core/cryptolock"
	"github.com/yndnr/scancore-go/internal/core/lifecycle"
	"github.com/yndnr/scancore-go/internal/telemetry/logger"
	"github.com/yndnr/scancore-go/pkg/crypto/adaptive"
)

func testLogger(t *testing.T) (logger.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	l, err := logger.New(logger.Config{Level: "debug", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}
	return l, &buf
}

func newRuntime(l logger.Logger) *lifecycle.Runtime {
	return lifecycle.New(
		lifecycle.WithLogger(l.Slog()),
		lifecycle.WithCryptoLibrary(adaptive.Default()),
	)
}

func TestRunner_Iterations(t *testing.T) {
	l, _ := testLogger(t)
	rt := newRuntime(l)

	r := New(rt, Config{Workers: 4, Iterations: 200, MasterKey: []byte("soak test master key")}, l)
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if report.Iterations != 800 {
		t.Errorf("Iterations = %d, want 800", report.Iterations)
	}
	if report.Mismatches != 0 {
		t.Errorf("Mismatches = %d, want 0", report.Mismatches)
	}
	if cryptolock.Enabled && report.CryptoOps != 800 {
		t.Errorf("CryptoOps = %d, want 800", report.CryptoOps)
	}
	if report.StackSize == 0 {
		t.Error("StackSize should be read from the configuration store")
	}
	if report.RunID == "" {
		t.Error("RunID should be set")
	}
	if rt.Refs() != 0 || rt.Ready() {
		t.Errorf("runtime left with refs = %d, ready = %v", rt.Refs(), rt.Ready())
	}
	if cryptolock.Enabled && adaptive.LockingInstalled() {
		t.Error("crypto callbacks should be unregistered after the run")
	}
}

func TestRunner_Duration(t *testing.T) {
	l, _ := testLogger(t)
	rt := newRuntime(l)

	r := New(rt, Config{Workers: 2, Duration: 50 * time.Millisecond, Rate: 1000, Burst: 10}, l)

	start := time.Now()
	report, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Run() took %v, want it bounded by the duration", elapsed)
	}
	if report.Iterations == 0 {
		t.Error("expected some iterations within the duration")
	}
}

func TestRunner_ContextCancel(t *testing.T) {
	l, _ := testLogger(t)
	rt := newRuntime(l)

	ctx, cancel := context.WithCancel(context.Background())
	r := New(rt, Config{Workers: 3, Rate: 100}, l)

	done := make(chan error, 1)
	go func() {
		_, err := r.Run(ctx)
		done <- err
	}()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not stop after cancel")
	}
	if rt.Refs() != 0 {
		t.Errorf("Refs() = %d, want 0", rt.Refs())
	}
}

func TestRunner_KeepsOuterReference(t *testing.T) {
	l, _ := testLogger(t)
	rt := newRuntime(l)

	if err := rt.Initialize(); err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer rt.Finalize()

	if _, err := New(rt, Config{Workers: 2, Iterations: 10}, l).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if rt.Refs() != 1 || !rt.Ready() {
		t.Errorf("refs = %d, ready = %v; the caller's reference should survive the run", rt.Refs(), rt.Ready())
	}
}

type failingEngine struct{}

func (failingEngine) Name() string      { return "engine" }
func (failingEngine) Initialize() error { return errors.New("engine unavailable") }
func (failingEngine) Finalize() error   { return nil }

func TestRunner_InitializeFailure(t *testing.T) {
	l, _ := testLogger(t)
	rt := lifecycle.New(lifecycle.WithLogger(l.Slog()), lifecycle.WithEngine(failingEngine{}))

	report, err := New(rt, Config{Workers: 1, Iterations: 1}, l).Run(context.Background())
	if err == nil {
		t.Fatal("Run() should fail when the runtime cannot initialize")
	}
	if report.Iterations != 0 {
		t.Errorf("Iterations = %d, want 0", report.Iterations)
	}
}

func TestRunner_LogsRunID(t *testing.T) {
	l, buf := testLogger(t)
	rt := newRuntime(l)

	report, err := New(rt, Config{Workers: 1, Iterations: 1}, l).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(report.RunID)) {
		t.Errorf("log output should carry run_id %s", report.RunID)
	}
	if bytes.Contains(buf.Bytes(), []byte("soak test master key")) {
		t.Error("master key leaked into logs")
	}
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if len(a) != 26 {
		t.Errorf("len(NewRunID()) = %d, want 26", len(a))
	}
	if a == b {
		t.Error("NewRunID() should not repeat")
	}
}
