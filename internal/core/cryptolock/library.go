package cryptolock

import "github.com/yndnr/scancore-go/pkg/crypto/adaptive"

// Library is the callback registration surface of the crypto library.
type Library interface {
	NumLocks() int
	SetIDCallback(cb adaptive.IDCallback)
	SetLockingCallback(cb adaptive.LockingCallback)
}

// ThreadStateRemover is implemented by libraries that keep per-thread
// state which must be released when a worker exits.
type ThreadStateRemover interface {
	RemoveThreadState()
}

// Observer is notified of every lock acquisition.
type Observer interface {
	ObserveLock(n int)
}

// Option configures a Bridge.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver reports lock acquisitions to o.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		opts.observer = o
	}
}

var _ Library = adaptive.Registry{}
