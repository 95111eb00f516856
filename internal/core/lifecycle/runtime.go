package lifecycle

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/yndnr/scancore-go/internal/core/confstore"
	"github.com/yndnr/scancore-go/internal/core/cryptolock"
	"github.com/yndnr/scancore-go/internal/core/domain"
	"github.com/yndnr/scancore-go/internal/telemetry/metric"
	"github.com/yndnr/scancore-go/pkg/casetable"
	"github.com/yndnr/scancore-go/pkg/threadlocal"
)

// owned is the state constructed on the first Initialize call. It is
// published only once complete.
type owned struct {
	tables   *casetable.Tables
	tidx     *threadlocal.IndexSlot
	recovery *threadlocal.Slot[any]
	bridge   *cryptolock.Bridge
}

// Runtime is the reference-counted global state of the engine.
type Runtime struct {
	// mu serializes count transitions together with construction and
	// teardown.
	mu    sync.Mutex
	refs  atomic.Int32
	state atomic.Int32
	owned atomic.Pointer[owned]

	config *confstore.Store

	engine    Subsystem
	modules   Subsystem
	heap      Subsystem
	cryptoLib cryptolock.Library
	sources   []ConfigSource

	logger  *slog.Logger
	metrics *metric.Registry
}

// New creates an uninitialized runtime.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		config:  confstore.New(),
		engine:  nopSubsystem("engine"),
		modules: nopSubsystem("modules"),
		heap:    nopSubsystem("heap"),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.metrics != nil {
		if err := r.metrics.Register(metric.NewRuntimeCollector(r)); err != nil {
			r.logger.Warn("runtime collector not registered", "error", err)
		}
	}
	return r
}

// Refs returns the current reference count.
func (r *Runtime) Refs() int {
	return int(r.refs.Load())
}

// State returns the construction state.
func (r *Runtime) State() State {
	return State(r.state.Load())
}

// Ready reports whether global state is constructed.
func (r *Runtime) Ready() bool {
	return r.owned.Load() != nil
}

// Tables returns the case tables, or nil when not initialized.
func (r *Runtime) Tables() *casetable.Tables {
	if o := r.owned.Load(); o != nil {
		return o.tables
	}
	return nil
}

// Config returns the configuration store.
func (r *Runtime) Config() *confstore.Store {
	return r.config
}

// Bridge returns the installed crypto lock bridge, or nil when none is
// installed.
func (r *Runtime) Bridge() *cryptolock.Bridge {
	if o := r.owned.Load(); o != nil {
		return o.bridge
	}
	return nil
}

// Initialize takes a reference on the runtime, constructing global state
// on the first call.
//
// If any construction step fails, the steps already completed are undone
// in reverse order, the reference count stays zero and the first error is
// returned.
func (r *Runtime) Initialize() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.observe(func(m *metric.Registry) { m.IncInit() })

	if r.refs.Load() > 0 {
		r.refs.Add(1)
		r.logger.Debug("runtime reference taken", "refs", r.refs.Load())
		return nil
	}

	r.state.Store(int32(StateInitializing))
	start := time.Now()

	o, err := r.construct()
	if err != nil {
		r.state.Store(int32(StateUninitialized))
		r.observe(func(m *metric.Registry) { m.RecordError("initialize") })
		r.logger.Error("runtime initialization failed", "error", err)
		return err
	}

	r.owned.Store(o)
	r.refs.Store(1)
	r.state.Store(int32(StateReady))

	r.observe(func(m *metric.Registry) {
		m.IncConstruction()
		m.ObservePhase("construct", time.Since(start).Seconds())
	})
	r.logger.Debug("runtime initialized",
		"crypto_locks", o.bridge.NumLocks(),
		"duration", time.Since(start))
	return nil
}

// step is one construction step and its undo action.
type step struct {
	name string
	do   func(o *owned) error
	undo func(o *owned) error
}

func (r *Runtime) steps() []step {
	return []step{
		{
			name: "case tables",
			do: func(o *owned) error {
				o.tables = casetable.Build()
				return nil
			},
		},
		{
			name: r.heap.Name(),
			do:   func(*owned) error { return initSubsystem(r.heap) },
			undo: func(*owned) error { return finalizeSubsystem(r.heap) },
		},
		{
			name: "thread slots",
			do: func(o *owned) error {
				o.tidx = threadlocal.NewIndexSlot("tidx")
				o.recovery = threadlocal.NewSlot[any]("recovery")
				return nil
			},
			undo: func(o *owned) error {
				o.tidx.Free()
				o.recovery.Free()
				return nil
			},
		},
		{
			name: "crypto bridge",
			do:   r.installBridge,
			undo: func(o *owned) error { return o.bridge.Close() },
		},
		{
			name: r.engine.Name(),
			do:   func(*owned) error { return initSubsystem(r.engine) },
			undo: func(*owned) error { return finalizeSubsystem(r.engine) },
		},
		{
			name: r.modules.Name(),
			do:   func(*owned) error { return initSubsystem(r.modules) },
			undo: func(*owned) error { return finalizeSubsystem(r.modules) },
		},
		{
			name: "configuration",
			do: func(*owned) error {
				r.config.Reset()
				for _, src := range r.sources {
					if err := src.ApplyTo(r.config); err != nil {
						return fmt.Errorf("lifecycle: apply configuration: %w", err)
					}
				}
				return nil
			},
			undo: func(*owned) error {
				r.config.Reset()
				return nil
			},
		},
	}
}

func (r *Runtime) construct() (*owned, error) {
	o := &owned{}
	steps := r.steps()

	for i, s := range steps {
		if err := s.do(o); err != nil {
			r.rollback(o, steps[:i])
			return nil, err
		}
		r.logger.Debug("runtime step constructed", "step", s.name)
	}
	return o, nil
}

func (r *Runtime) rollback(o *owned, done []step) {
	for i := len(done) - 1; i >= 0; i-- {
		s := done[i]
		if s.undo == nil {
			continue
		}
		if err := s.undo(o); err != nil {
			r.logger.Warn("runtime rollback step failed", "step", s.name, "error", err)
		}
	}
}

func (r *Runtime) installBridge(o *owned) error {
	if !cryptolock.Enabled || r.cryptoLib == nil {
		return nil
	}

	var opts []cryptolock.Option
	if r.metrics != nil {
		opts = append(opts, cryptolock.WithObserver(r.metrics))
	}

	b, err := cryptolock.Install(r.cryptoLib, opts...)
	if err != nil {
		return err
	}
	o.bridge = b
	r.observe(func(m *metric.Registry) { m.SetCryptoLocks(b.NumLocks()) })
	return nil
}

// FinalizeThread releases the calling goroutine's per-thread state: the
// engine's per-thread data, the crypto library's thread state and the
// goroutine's tidx and recovery-state values. The reference count is not
// touched. It is safe to call repeatedly and without prior use.
func (r *Runtime) FinalizeThread() {
	if tf, ok := r.engine.(ThreadFinalizer); ok {
		tf.FinalizeThread()
	}

	if o := r.owned.Load(); o != nil {
		o.bridge.FinalizeThread()
		o.tidx.Clear()
		o.recovery.Clear()
	}

	r.observe(func(m *metric.Registry) { m.IncThreadFinalize() })
}

// Finalize releases the calling goroutine's per-thread state and drops a
// reference. The last reference tears down global state: the crypto bridge
// is closed, both slots are freed and the engine, modules and heap are
// finalized. Every teardown step is attempted and the first error is
// returned.
//
// Calling Finalize without a matching Initialize returns
// domain.ErrNotInitialized and changes nothing.
func (r *Runtime) Finalize() error {
	r.FinalizeThread()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.observe(func(m *metric.Registry) { m.IncFinalize() })

	refs := r.refs.Load()
	if refs == 0 {
		r.observe(func(m *metric.Registry) { m.RecordError("finalize") })
		return domain.ErrNotInitialized.WithDetails("finalize called more times than initialize")
	}

	if refs > 1 {
		r.refs.Add(-1)
		r.logger.Debug("runtime reference released", "refs", refs-1)
		return nil
	}

	r.state.Store(int32(StateFinalizing))
	start := time.Now()

	o := r.owned.Swap(nil)
	r.refs.Store(0)
	err := r.teardown(o)

	r.state.Store(int32(StateUninitialized))

	r.observe(func(m *metric.Registry) {
		m.IncTeardown()
		m.ObservePhase("teardown", time.Since(start).Seconds())
		if err != nil {
			m.RecordError("finalize")
		}
	})
	if err != nil {
		r.logger.Error("runtime teardown failed", "error", err)
	} else {
		r.logger.Debug("runtime finalized", "duration", time.Since(start))
	}
	return err
}

func (r *Runtime) teardown(o *owned) error {
	var first error
	keep := func(err error) {
		if err != nil && first == nil {
			first = err
		}
	}

	keep(o.bridge.Close())
	o.tidx.Free()
	o.recovery.Free()
	keep(finalizeSubsystem(r.engine))
	keep(finalizeSubsystem(r.modules))
	keep(finalizeSubsystem(r.heap))
	return first
}

func (r *Runtime) observe(fn func(m *metric.Registry)) {
	if r.metrics != nil {
		fn(r.metrics)
	}
}

func initSubsystem(s Subsystem) error {
	if err := s.Initialize(); err != nil {
		return wrapSubsystemError(domain.ErrSubsystemInit, s, err)
	}
	return nil
}

func finalizeSubsystem(s Subsystem) error {
	if err := s.Finalize(); err != nil {
		return wrapSubsystemError(domain.ErrSubsystemFinalize, s, err)
	}
	return nil
}

func wrapSubsystemError(base *domain.DomainError, s Subsystem, err error) error {
	// Subsystems may already report a coded error; keep it as is.
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	return base.WithDetails(s.Name()).WithCause(err)
}
