package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestWithLogger_FromContext(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Config{Level: "info", Format: "json", Output: &buf})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := WithLogger(context.Background(), l)
	FromContext(ctx).Info("test message")

	if buf.Len() == 0 {
		t.Error("Logger from context should produce output")
	}
}

func TestFromContext_Default(t *testing.T) {
	if l := FromContext(context.Background()); l == nil {
		t.Error("FromContext should return default logger, got nil")
	}
}

func TestRunID(t *testing.T) {
	ctx := WithRunID(context.Background(), "01JA2B3C4D5E6F7G8H9J0KMNPQ")
	if got := RunIDFromContext(ctx); got != "01JA2B3C4D5E6F7G8H9J0KMNPQ" {
		t.Errorf("RunIDFromContext() = %q", got)
	}
	if got := RunIDFromContext(context.Background()); got != "" {
		t.Errorf("RunIDFromContext() = %q, want empty string", got)
	}
}

func TestWorker(t *testing.T) {
	if got := WorkerFromContext(context.Background()); got != -1 {
		t.Errorf("WorkerFromContext() = %d, want -1", got)
	}
	ctx := WithWorker(context.Background(), 0)
	if got := WorkerFromContext(ctx); got != 0 {
		t.Errorf("WorkerFromContext() = %d, want 0", got)
	}
}

func TestL(t *testing.T) {
	tests := []struct {
		name      string
		runID     string
		worker    int
		wantRunID bool
		wantTidx  bool
	}{
		{"no ids", "", -1, false, false},
		{"run id", "run-1", -1, true, false},
		{"worker", "", 3, false, true},
		{"both", "run-1", 0, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(Config{Level: "info", Format: "json", Output: &buf})
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}

			ctx := WithLogger(context.Background(), l)
			if tt.runID != "" {
				ctx = WithRunID(ctx, tt.runID)
			}
			if tt.worker >= 0 {
				ctx = WithWorker(ctx, tt.worker)
			}
			L(ctx).Info("test message")

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("Failed to parse JSON log: %v", err)
			}

			if _, ok := entry["run_id"]; ok != tt.wantRunID {
				t.Errorf("run_id present = %v, want %v", ok, tt.wantRunID)
			}
			if _, ok := entry["tidx"]; ok != tt.wantTidx {
				t.Errorf("tidx present = %v, want %v", ok, tt.wantTidx)
			}
			if tt.wantTidx && entry["tidx"] != float64(tt.worker) {
				t.Errorf("tidx = %v, want %d", entry["tidx"], tt.worker)
			}
		})
	}
}
