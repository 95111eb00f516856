package soak

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/scancore-go/internal/core/confstore"
	"github.com/yndnr/scancore-go/internal/core/cryptolock"
	"github.com/yndnr/scancore-go/internal/core/lifecycle"
	"github.com/yndnr/scancore-go/internal/telemetry/logger"
	"github.com/yndnr/scancore-go/pkg/crypto/adaptive"
)

// ErrMismatch is returned by Run when any worker observed state that was
// not its own or a crypto round trip failed.
var ErrMismatch = errors.New("soak: worker state mismatch")

const derivedKeySize = 32

// Config configures a soak run.
type Config struct {
	// Workers is the number of worker goroutines.
	Workers int

	// Duration bounds the run. Zero runs until the context is done or
	// every worker reached Iterations.
	Duration time.Duration

	// Rate is the per-worker iteration rate per second. Zero is unlimited.
	Rate float64

	// Burst is the token bucket size when Rate is set.
	Burst int

	// Iterations caps the iterations of each worker. Zero is unbounded.
	Iterations int

	// MasterKey seeds the per-worker cipher keys. Empty picks a random key.
	MasterKey []byte
}

// Report summarizes a finished run.
type Report struct {
	RunID      string        `json:"run_id" yaml:"run_id"`
	Workers    int           `json:"workers" yaml:"workers"`
	Iterations uint64        `json:"iterations" yaml:"iterations"`
	CryptoOps  uint64        `json:"crypto_ops" yaml:"crypto_ops"`
	Mismatches uint64        `json:"mismatches" yaml:"mismatches"`
	StackSize  uint32        `json:"stack_size" yaml:"stack_size" table:"wide"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
}

// Runner runs soak workers against a runtime.
type Runner struct {
	rt     *lifecycle.Runtime
	cfg    Config
	logger logger.Logger

	iterations atomic.Uint64
	cryptoOps  atomic.Uint64
	mismatches atomic.Uint64
	stackSize  atomic.Uint32
}

// New creates a runner. A nil logger uses logger.Default().
func New(rt *lifecycle.Runtime, cfg Config, log logger.Logger) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}
	if log == nil {
		log = logger.Default()
	}
	return &Runner{rt: rt, cfg: cfg, logger: log}
}

// NewRunID returns a new lowercase ULID.
func NewRunID() string {
	id := ulid.MustNew(ulid.Timestamp(time.Now()), ulid.Monotonic(rand.Reader, 0))
	return strings.ToLower(id.String())
}

// Run starts the workers and blocks until they all stop. The runner holds
// its own runtime reference for the duration of the run.
func (r *Runner) Run(ctx context.Context) (Report, error) {
	runID := NewRunID()
	ctx = logger.WithLogger(logger.WithRunID(ctx, runID), r.logger)
	log := logger.L(ctx)

	if r.cfg.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Duration)
		defer cancel()
	}

	if err := r.rt.Initialize(); err != nil {
		return Report{RunID: runID}, fmt.Errorf("initialize runtime: %w", err)
	}

	master := r.cfg.MasterKey
	if len(master) == 0 {
		master = make([]byte, derivedKeySize)
		if _, err := rand.Read(master); err != nil {
			_ = r.rt.Finalize()
			return Report{RunID: runID}, fmt.Errorf("generate master key: %w", err)
		}
	}

	log.Info("soak run started",
		"workers", r.cfg.Workers,
		"duration", r.cfg.Duration,
		"rate", r.cfg.Rate,
		"crypto", cryptolock.Enabled,
	)

	start := time.Now()
	var wg sync.WaitGroup
	errs := make(chan error, r.cfg.Workers)
	for i := 0; i < r.cfg.Workers; i++ {
		wg.Add(1)
		go func(tidx int) {
			defer wg.Done()
			if err := r.worker(logger.WithWorker(ctx, tidx), tidx, master); err != nil {
				errs <- err
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	report := Report{
		RunID:      runID,
		Workers:    r.cfg.Workers,
		Iterations: r.iterations.Load(),
		CryptoOps:  r.cryptoOps.Load(),
		Mismatches: r.mismatches.Load(),
		StackSize:  r.stackSize.Load(),
		Elapsed:    time.Since(start),
	}

	var runErr error
	for err := range errs {
		runErr = errors.Join(runErr, err)
	}
	if err := r.rt.Finalize(); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("finalize runtime: %w", err))
	}
	if report.Mismatches > 0 {
		runErr = errors.Join(runErr, fmt.Errorf("%w: %d of %d iterations", ErrMismatch, report.Mismatches, report.Iterations))
	}

	log.Info("soak run finished",
		"iterations", report.Iterations,
		"crypto_ops", report.CryptoOps,
		"mismatches", report.Mismatches,
		"elapsed", report.Elapsed,
	)
	return report, runErr
}

// checkpoint is the recovery state a worker binds to its goroutine.
type checkpoint struct {
	tidx int
}

func (r *Runner) worker(ctx context.Context, tidx int, master []byte) error {
	log := logger.L(ctx)

	if err := r.rt.Initialize(); err != nil {
		return fmt.Errorf("worker %d: initialize: %w", tidx, err)
	}
	defer func() {
		if err := r.rt.Finalize(); err != nil {
			log.Error("worker finalize failed", "error", err)
		}
	}()

	cp := &checkpoint{tidx: tidx}
	r.rt.SetThreadIndex(tidx)
	r.rt.SetRecoveryState(cp)

	var c adaptive.Cipher
	if cryptolock.Enabled && r.rt.Bridge() != nil {
		key, err := adaptive.DeriveKey(master, fmt.Sprintf("soak-worker-%d", tidx), derivedKeySize)
		if err != nil {
			return fmt.Errorf("worker %d: derive key: %w", tidx, err)
		}
		if c, err = adaptive.New(key); err != nil {
			return fmt.Errorf("worker %d: cipher: %w", tidx, err)
		}
	}

	limit := rate.Inf
	if r.cfg.Rate > 0 {
		limit = rate.Limit(r.cfg.Rate)
	}
	limiter := rate.NewLimiter(limit, r.cfg.Burst)
	payload := []byte(fmt.Sprintf("soak payload from worker %d", tidx))
	ad := []byte(logger.RunIDFromContext(ctx))

	log.Debug("worker started")
	n := 0
	for r.cfg.Iterations == 0 || n < r.cfg.Iterations {
		if err := limiter.Wait(ctx); err != nil {
			break
		}
		if ctx.Err() != nil {
			break
		}
		n++
		r.iterations.Add(1)

		if detail := r.verify(tidx, cp); detail != "" {
			r.mismatches.Add(1)
			log.Warn("worker state mismatch", "detail", detail)
			continue
		}
		if c != nil {
			if err := roundTrip(c, payload, ad); err != nil {
				r.mismatches.Add(1)
				log.Warn("crypto round trip failed", "error", err)
				continue
			}
			r.cryptoOps.Add(1)
		}
	}
	log.Debug("worker stopped", "iterations", n)
	return nil
}

// verify returns a non-empty description when the calling goroutine's
// context does not match what the worker bound.
func (r *Runner) verify(tidx int, cp *checkpoint) string {
	if got := r.rt.ThreadIndex(); got != tidx {
		return fmt.Sprintf("tidx = %d, want %d", got, tidx)
	}
	if got, _ := r.rt.RecoveryState().(*checkpoint); got != cp {
		return "recovery state belongs to another goroutine"
	}
	var stack uint32
	if err := r.rt.GetConfiguration(confstore.StackSize, &stack); err != nil {
		return err.Error()
	}
	if stack == 0 {
		return "stack size is zero"
	}
	r.stackSize.Store(stack)
	return ""
}

func roundTrip(c adaptive.Cipher, payload, ad []byte) error {
	ct, err := c.Encrypt(payload, ad)
	if err != nil {
		return err
	}
	pt, err := c.Decrypt(ct, ad)
	if err != nil {
		return err
	}
	if !bytes.Equal(pt, payload) {
		return errors.New("plaintext mismatch")
	}
	return nil
}
