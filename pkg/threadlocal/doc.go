// Package threadlocal provides per-goroutine storage slots for ScanCore.
//
// The scanning engine keys per-worker data by "thread index" without
// threading an extra parameter through every call. Go has no native
// thread-local storage, so slots are keyed by the identity of the calling
// goroutine:
//
//   - goroutine.go: goroutine identity resolution
//   - slot.go: the Local capability and its goroutine-keyed Slot
//   - index.go: the biased thread-index slot (unset reads as -1)
//
// A goroutine only ever reads and writes its own entry. Entries are not
// released automatically when a goroutine exits; workers call Clear (the
// runtime does this in FinalizeThread) before returning.
//
// Usage:
//
//	idx := threadlocal.NewIndexSlot("tidx")
//	idx.Set(3)
//	idx.Get() // 3 on this goroutine, -1 on every other one
package threadlocal
