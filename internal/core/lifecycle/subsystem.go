package lifecycle

import "github.com/yndnr/scancore-go/internal/core/confstore"

// Subsystem is an external collaborator initialized and finalized together
// with the runtime: the matching engine, the module subsystem and the heap.
type Subsystem interface {
	Name() string
	Initialize() error
	Finalize() error
}

// ThreadFinalizer is implemented by subsystems that keep per-goroutine
// state.
type ThreadFinalizer interface {
	FinalizeThread()
}

// ConfigSource writes configuration values into the store after the
// built-in defaults have been set.
type ConfigSource interface {
	ApplyTo(store *confstore.Store) error
}

// ConfigSourceFunc adapts a function to ConfigSource.
type ConfigSourceFunc func(store *confstore.Store) error

// ApplyTo calls f(store).
func (f ConfigSourceFunc) ApplyTo(store *confstore.Store) error {
	return f(store)
}

type nopSubsystem string

func (n nopSubsystem) Name() string      { return string(n) }
func (n nopSubsystem) Initialize() error { return nil }
func (n nopSubsystem) Finalize() error   { return nil }
