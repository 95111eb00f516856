//go:build nocrypto

package cryptolock

import "github.com/yndnr/scancore-go/pkg/crypto/adaptive"

// Enabled reports whether crypto support is compiled in.
const Enabled = false

// Bridge is empty without crypto support.
type Bridge struct{}

// Install does nothing without crypto support.
func Install(Library, ...Option) (*Bridge, error) {
	return nil, nil
}

func (b *Bridge) NumLocks() int                            { return 0 }
func (b *Bridge) ThreadID() uint64                         { return 0 }
func (b *Bridge) Lock(adaptive.LockMode, int, string, int) {}
func (b *Bridge) FinalizeThread()                          {}
func (b *Bridge) Closed() bool                             { return true }
func (b *Bridge) Close() error                             { return nil }
