// Package selftest runs the runtime's contract checks against fresh
// runtimes and reports one Result per check.
//
// The checks cover nested initialize/finalize, over-finalize, rollback of a
// failed construction, per-goroutine thread indices and recovery state,
// the configuration store, and the crypto lock bridge when crypto support
// is compiled in. scancore-cli exposes them as the selftest command.
package selftest
