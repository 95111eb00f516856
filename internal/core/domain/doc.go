// Package domain defines the error taxonomy shared by the ScanCore runtime.
//
// Errors fall into four classes:
//
//   - ARGS: invalid arguments (unknown configuration key, nil pointers)
//   - SYS: internal fatal conditions and lifecycle misuse
//   - SYS-5070: resource exhaustion
//   - SUBS: failures propagated from external subsystems, wrapped with
//     the original error as Cause
//
// Callers compare with errors.Is against the exported sentinels.
package domain
