// Package metric provides Prometheus metrics for ScanCore.
package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func scrape(t *testing.T, r *Registry) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.registry == nil {
		t.Error("registry field is nil")
	}
	if r.InitCalls == nil || r.FinalizeCalls == nil || r.CryptoLockAcquisitions == nil {
		t.Error("registry metrics not initialized")
	}
}

func TestGlobal(t *testing.T) {
	if Global() != Global() {
		t.Error("Global() should return the same instance")
	}
	if Handler() == nil {
		t.Error("Handler() returned nil")
	}
}

func TestHandler_RuntimeMetrics(t *testing.T) {
	body := scrape(t, NewRegistry())

	if !strings.Contains(body, "go_goroutines") {
		t.Error("expected go_goroutines metric")
	}
	if !strings.Contains(body, "process_") {
		t.Error("expected process metrics")
	}
}

func TestLifecycleMetrics(t *testing.T) {
	r := NewRegistry()

	r.IncInit()
	r.IncInit()
	r.IncFinalize()
	r.IncConstruction()
	r.IncTeardown()
	r.IncThreadFinalize()
	r.IncThreadFinalize()
	r.IncThreadFinalize()
	r.RecordError("initialize")
	r.ObservePhase("construct", 0.002)

	body := scrape(t, r)

	for _, want := range []string{
		"scancore_runtime_init_calls_total 2",
		"scancore_runtime_finalize_calls_total 1",
		"scancore_runtime_constructions_total 1",
		"scancore_runtime_teardowns_total 1",
		"scancore_runtime_thread_finalize_total 3",
		`scancore_runtime_errors_total{op="initialize"} 1`,
		`scancore_runtime_phase_duration_seconds_count{phase="construct"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}

func TestCryptoMetrics(t *testing.T) {
	r := NewRegistry()

	r.SetCryptoLocks(4)
	r.ObserveLock(0)
	r.ObserveLock(2)
	r.ObserveLock(2)

	body := scrape(t, r)

	for _, want := range []string{
		"scancore_crypto_locks 4",
		`scancore_crypto_lock_acquisitions_total{lock="0"} 1`,
		`scancore_crypto_lock_acquisitions_total{lock="2"} 2`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}

type fakeRuntime struct {
	refs  int
	ready bool
}

func (f *fakeRuntime) Refs() int   { return f.refs }
func (f *fakeRuntime) Ready() bool { return f.ready }

func TestRuntimeCollector(t *testing.T) {
	r := NewRegistry()
	src := &fakeRuntime{refs: 2, ready: true}
	if err := r.Register(NewRuntimeCollector(src)); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	body := scrape(t, r)
	if !strings.Contains(body, "scancore_runtime_references 2") {
		t.Error("expected scancore_runtime_references 2")
	}
	if !strings.Contains(body, "scancore_runtime_ready 1") {
		t.Error("expected scancore_runtime_ready 1")
	}

	src.refs, src.ready = 0, false
	body = scrape(t, r)
	if !strings.Contains(body, "scancore_runtime_references 0") {
		t.Error("expected scancore_runtime_references 0 after state change")
	}
	if !strings.Contains(body, "scancore_runtime_ready 0") {
		t.Error("expected scancore_runtime_ready 0 after state change")
	}

	if err := r.Register(NewRuntimeCollector(src)); err == nil {
		t.Error("registering a second runtime collector should fail")
	}
}
