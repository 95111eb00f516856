// Package scancore is the embedding API of the ScanCore runtime.
//
// Applications call Initialize once before scanning and Finalize when
// done; nested pairs are allowed and only the outermost pair constructs
// and destroys global state. Worker goroutines identify themselves with
// SetThreadIndex and call FinalizeThread before they exit.
//
//	if err := scancore.Initialize(); err != nil {
//		return err
//	}
//	defer scancore.Finalize()
//
//	scancore.SetConfiguration(scancore.StackSize, uint32(128*1024))
//
// The package-level functions operate on a process-wide runtime that
// installs the lock bridge into the bundled crypto library. NewRuntime
// creates independent runtimes with custom subsystems.
package scancore
