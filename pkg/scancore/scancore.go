package scancore

import (
	"sync"

	"github.com/yndnr/scancore-go/internal/core/confstore"
	"github.com/yndnr/scancore-go/internal/core/domain"
	"github.com/yndnr/scancore-go/internal/core/lifecycle"
	"github.com/yndnr/scancore-go/pkg/crypto/adaptive"
)

type (
	// Runtime is a reference-counted engine runtime.
	Runtime = lifecycle.Runtime
	// Option configures a Runtime.
	Option = lifecycle.Option
	// Subsystem is an external collaborator initialized with the runtime.
	Subsystem = lifecycle.Subsystem
	// ThreadFinalizer is implemented by subsystems with per-thread state.
	ThreadFinalizer = lifecycle.ThreadFinalizer
	// State is the construction state of a Runtime.
	State = lifecycle.State
	// Name identifies a configuration key.
	Name = confstore.Name
	// Error is the coded error type returned by the runtime.
	Error = domain.DomainError
)

// Configuration keys.
const (
	StackSize             = confstore.StackSize
	MaxStringsPerRule     = confstore.MaxStringsPerRule
	MaxMatchData          = confstore.MaxMatchData
	MaxProcessMemoryChunk = confstore.MaxProcessMemoryChunk
)

// Errors returned by the runtime. Compare with errors.Is.
var (
	ErrInvalidArgument    = domain.ErrInvalidArgument
	ErrInternalFatal      = domain.ErrInternalFatal
	ErrNotInitialized     = domain.ErrNotInitialized
	ErrInsufficientMemory = domain.ErrInsufficientMemory
	ErrSubsystemInit      = domain.ErrSubsystemInit
	ErrSubsystemFinalize  = domain.ErrSubsystemFinalize
)

// Runtime options.
var (
	WithEngine        = lifecycle.WithEngine
	WithModules       = lifecycle.WithModules
	WithHeap          = lifecycle.WithHeap
	WithCryptoLibrary = lifecycle.WithCryptoLibrary
	WithLogger        = lifecycle.WithLogger
)

// NewRuntime creates an independent runtime.
func NewRuntime(opts ...Option) *Runtime {
	return lifecycle.New(opts...)
}

var (
	defaultRuntime *Runtime
	defaultOnce    sync.Once
)

// Default returns the process-wide runtime used by the package-level
// functions.
func Default() *Runtime {
	defaultOnce.Do(func() {
		defaultRuntime = lifecycle.New(lifecycle.WithCryptoLibrary(adaptive.Default()))
	})
	return defaultRuntime
}

// Initialize takes a reference on the process-wide runtime.
func Initialize() error { return Default().Initialize() }

// Finalize releases the calling goroutine's state and drops a reference on
// the process-wide runtime.
func Finalize() error { return Default().Finalize() }

// FinalizeThread releases the calling goroutine's state.
func FinalizeThread() { Default().FinalizeThread() }

// SetThreadIndex records the calling goroutine's zero-based thread index.
func SetThreadIndex(tidx int) { Default().SetThreadIndex(tidx) }

// ThreadIndex returns the calling goroutine's thread index, or -1.
func ThreadIndex() int { return Default().ThreadIndex() }

// SetRecoveryState stores the calling goroutine's recovery handle.
func SetRecoveryState(state any) { Default().SetRecoveryState(state) }

// RecoveryState returns the calling goroutine's recovery handle, or nil.
func RecoveryState() any { return Default().RecoveryState() }

// SetConfiguration stores src under name. src must match the key's type,
// as a value or a non-nil pointer.
func SetConfiguration(name Name, src any) error {
	return Default().SetConfiguration(name, src)
}

// GetConfiguration copies the value of name into dst, a non-nil pointer of
// the key's type.
func GetConfiguration(name Name, dst any) error {
	return Default().GetConfiguration(name, dst)
}
