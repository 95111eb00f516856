// Package confstore provides the fixed-slot configuration store of the
// ScanCore runtime.
//
// Every key has a value type fixed by its Name; setters and getters are
// type-checked against it. The store is guarded by a RWMutex, so concurrent
// reads during scanning and writes from a reloading configuration are safe.
package confstore

import (
	"sync"

	"github.com/yndnr/scancore-go/internal/core/domain"
)

// Store holds one value per configuration key.
type Store struct {
	mu     sync.RWMutex
	values [nameCount]Value
}

// New returns a store populated with the built-in defaults.
func New() *Store {
	return &Store{values: defaults()}
}

// Reset restores every key to its built-in default.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = defaults()
}

// Set stores src under name.
//
// src must match the key's declared type, either as a value or as a
// non-nil pointer (uint32 / *uint32, uint64 / *uint64, or a Value of the
// right kind). Any other input fails with domain.ErrInvalidArgument and
// leaves the store unchanged.
func (s *Store) Set(name Name, src any) error {
	if !name.Valid() {
		return unknownName(name)
	}
	v, err := toValue(name, src)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.values[name] = v
	s.mu.Unlock()
	return nil
}

// Get copies the value of name into dst.
//
// dst must be a non-nil *uint32 or *uint64 matching the key's type, a
// *Value, or a *any.
func (s *Store) Get(name Name, dst any) error {
	if !name.Valid() {
		return unknownName(name)
	}
	if dst == nil {
		return domain.ErrInvalidArgument.WithDetailsf("nil destination for %s", name)
	}

	v := s.load(name)

	switch d := dst.(type) {
	case *uint32:
		if d == nil {
			return nilPointer(name, "destination")
		}
		if v.kind != KindUint32 {
			return kindMismatch(name, dst)
		}
		*d = v.u32
	case *uint64:
		if d == nil {
			return nilPointer(name, "destination")
		}
		if v.kind != KindUint64 {
			return kindMismatch(name, dst)
		}
		*d = v.u64
	case *Value:
		if d == nil {
			return nilPointer(name, "destination")
		}
		*d = v
	case *any:
		if d == nil {
			return nilPointer(name, "destination")
		}
		*d = v.Interface()
	default:
		return kindMismatch(name, dst)
	}
	return nil
}

// Value returns the tagged value of name.
func (s *Store) Value(name Name) (Value, error) {
	if !name.Valid() {
		return Value{}, unknownName(name)
	}
	return s.load(name), nil
}

// Uint32 returns the value of a 32-bit key.
func (s *Store) Uint32(name Name) (uint32, error) {
	var v uint32
	err := s.Get(name, &v)
	return v, err
}

// SetUint32 sets a 32-bit key.
func (s *Store) SetUint32(name Name, v uint32) error {
	return s.Set(name, v)
}

// Uint64 returns the value of a 64-bit key.
func (s *Store) Uint64(name Name) (uint64, error) {
	var v uint64
	err := s.Get(name, &v)
	return v, err
}

// SetUint64 sets a 64-bit key.
func (s *Store) SetUint64(name Name, v uint64) error {
	return s.Set(name, v)
}

// Snapshot returns every key and its current value, keyed by settings name.
func (s *Store) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, nameCount)
	for n := Name(0); n < nameCount; n++ {
		out[n.String()] = s.values[n].Interface()
	}
	return out
}

func (s *Store) load(name Name) Value {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[name]
}

func toValue(name Name, src any) (Value, error) {
	if src == nil {
		return Value{}, nilPointer(name, "source")
	}

	switch name.Kind() {
	case KindUint32:
		switch x := src.(type) {
		case uint32:
			return Uint32Value(x), nil
		case *uint32:
			if x == nil {
				return Value{}, nilPointer(name, "source")
			}
			return Uint32Value(*x), nil
		case Value:
			if x.kind == KindUint32 {
				return x, nil
			}
		}
	case KindUint64:
		switch x := src.(type) {
		case uint64:
			return Uint64Value(x), nil
		case *uint64:
			if x == nil {
				return Value{}, nilPointer(name, "source")
			}
			return Uint64Value(*x), nil
		case Value:
			if x.kind == KindUint64 {
				return x, nil
			}
		}
	case KindPointer:
		if x, ok := src.(Value); ok {
			if x.kind == KindPointer {
				return x, nil
			}
			break
		}
		return PointerValue(src), nil
	}

	return Value{}, kindMismatch(name, src)
}

func unknownName(name Name) error {
	return domain.ErrInvalidArgument.WithDetailsf("unknown configuration key %d", int(name))
}

func nilPointer(name Name, what string) error {
	return domain.ErrInvalidArgument.WithDetailsf("nil %s for %s", what, name)
}

func kindMismatch(name Name, got any) error {
	return domain.ErrInvalidArgument.WithDetailsf("%s expects %s, got %T", name, name.Kind(), got)
}
