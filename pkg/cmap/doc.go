// Package cmap provides a concurrent map implementation for ScanCore.
//
// This package implements a sharded concurrent map used as the backing
// store of per-goroutine slots:
//
//   - Sharding: Configurable shard count (power of two) for parallelism
//   - Fine-grained Locking: Per-shard RWMutex for minimal contention
//   - Pluggable Hashing: murmur3 hashers for integer and string keys
//
// Usage:
//
//	m := cmap.NewUint64[uint32]()
//	m.Set(gid, 1)
//	val, ok := m.Get(gid)
//
// Thread Safety:
//
// All operations are thread-safe. Read operations (Get, Has, Range) use
// RLock, write operations (Set, Delete, Clear) use Lock.
package cmap
