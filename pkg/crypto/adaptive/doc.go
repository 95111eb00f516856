// Package adaptive is the cryptographic library used by ScanCore modules.
//
// It provides AEAD ciphers and HKDF key derivation:
//
//   - AES-256-GCM: Preferred when hardware AES support is available
//   - ChaCha20-Poly1305: Fallback for systems without AES-NI
//   - DeriveKey: HKDF-SHA256 sub-keys, cached in a shared keyring
//
// Locking:
//
// The library keeps process-wide mutable state (random pool, keyring,
// per-thread error queues, counters) and does not lock it by itself. A
// multi-threaded host must register a LockingCallback and an IDCallback
// before using the library from more than one goroutine, and unregister
// them (pass nil) before releasing its locks:
//
//	adaptive.SetIDCallback(bridge.ThreadID)
//	adaptive.SetLockingCallback(bridge.Lock)
//
// NumLocks reports how many independent locks the callback must manage.
package adaptive
