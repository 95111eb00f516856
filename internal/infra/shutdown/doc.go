// Package shutdown provides graceful shutdown for ScanCore commands.
//
// A Handler waits for SIGINT/SIGTERM, an explicit Trigger or context
// cancellation, then runs the registered hooks in reverse order of
// registration under a timeout. Long-running commands register the
// runtime's Finalize as the first hook so it runs last.
//
// Usage:
//
//	h := shutdown.NewHandler(5 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return rt.Finalize() })
//	err := h.Wait(ctx)
package shutdown
