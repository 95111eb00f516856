package threadlocal

import (
	"sync/atomic"

	"github.com/yndnr/scancore-go/pkg/cmap"
)

// Local is a per-goroutine value holder.
type Local[T any] interface {
	// Get returns the calling goroutine's value and whether one was set.
	Get() (T, bool)
	// Set associates v with the calling goroutine.
	Set(v T)
	// Clear removes the calling goroutine's value.
	Clear()
}

var _ Local[int] = (*Slot[int])(nil)

// Slot is a Local backed by a sharded map keyed by goroutine id.
//
// A freed slot ignores writes and reads as unset.
type Slot[T any] struct {
	name   string
	values *cmap.Map[uint64, T]
	freed  atomic.Bool
}

// NewSlot allocates a slot.
func NewSlot[T any](name string) *Slot[T] {
	return &Slot[T]{
		name:   name,
		values: cmap.NewUint64[T](),
	}
}

// Name returns the slot's name.
func (s *Slot[T]) Name() string {
	return s.name
}

// Get returns the calling goroutine's value.
func (s *Slot[T]) Get() (T, bool) {
	if s.freed.Load() {
		var zero T
		return zero, false
	}
	return s.values.Get(GoroutineID())
}

// Set stores v for the calling goroutine.
func (s *Slot[T]) Set(v T) {
	if s.freed.Load() {
		return
	}
	s.values.Set(GoroutineID(), v)
}

// Clear removes the calling goroutine's value.
func (s *Slot[T]) Clear() {
	s.values.Delete(GoroutineID())
}

// Len returns the number of goroutines holding a value.
func (s *Slot[T]) Len() int {
	return s.values.Count()
}

// Free releases the slot and every value stored in it.
func (s *Slot[T]) Free() {
	s.freed.Store(true)
	s.values.Clear()
}

// Freed reports whether Free has been called.
func (s *Slot[T]) Freed() bool {
	return s.freed.Load()
}
