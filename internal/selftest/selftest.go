package selftest

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/yndnr/scancore-go/internal/core/confstore"
	"github.com/yndnr/scancore-go/internal/core/cryptolock"
	"github.com/yndnr/scancore-go/internal/core/domain"
	"github.com/yndnr/scancore-go/internal/core/lifecycle"
	"github.com/yndnr/scancore-go/pkg/crypto/adaptive"
)

// Result is the outcome of one check.
type Result struct {
	Name     string        `json:"check" yaml:"check"`
	Passed   bool          `json:"passed" yaml:"passed"`
	Skipped  bool          `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Duration time.Duration `json:"duration" yaml:"duration" table:"wide"`
	Detail   string        `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Check is a single named check. It returns a detail string, or an error
// when the check fails. errSkip marks a check that does not apply.
type Check struct {
	Name string
	Run  func(env Env) (string, error)
}

// Env is what checks build runtimes from.
type Env struct {
	Logger    *slog.Logger
	CryptoLib cryptolock.Library
}

func (e Env) runtime(opts ...lifecycle.Option) *lifecycle.Runtime {
	base := []lifecycle.Option{lifecycle.WithLogger(e.Logger)}
	return lifecycle.New(append(base, opts...)...)
}

var errSkip = errors.New("skipped")

// Checks returns the built-in checks in run order.
func Checks() []Check {
	return []Check{
		{"nested initialize", checkNested},
		{"over-finalize", checkOverFinalize},
		{"construction rollback", checkRollback},
		{"tidx unset", checkTidxUnset},
		{"tidx isolation", checkTidxIsolation},
		{"recovery state", checkRecoveryState},
		{"stack size", checkStackSize},
		{"invalid configuration key", checkInvalidKey},
		{"crypto lock bridge", checkCryptoBridge},
	}
}

// Run executes checks in order. A nil logger discards runtime logs; a nil
// crypto library uses the bundled one.
func Run(logger *slog.Logger, lib cryptolock.Library, checks []Check) []Result {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(discard{}, nil))
	}
	if lib == nil {
		lib = adaptive.Default()
	}
	env := Env{Logger: logger, CryptoLib: lib}

	results := make([]Result, 0, len(checks))
	for _, c := range checks {
		start := time.Now()
		detail, err := c.Run(env)
		r := Result{Name: c.Name, Duration: time.Since(start), Detail: detail}
		switch {
		case errors.Is(err, errSkip):
			r.Passed, r.Skipped = true, true
		case err != nil:
			r.Detail = err.Error()
		default:
			r.Passed = true
		}
		results = append(results, r)
	}
	return results
}

// Failed returns the number of failed results.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if !r.Passed {
			n++
		}
	}
	return n
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

func checkNested(env Env) (string, error) {
	rt := env.runtime()
	for i := 0; i < 3; i++ {
		if err := rt.Initialize(); err != nil {
			return "", err
		}
	}
	if rt.Refs() != 3 {
		return "", fmt.Errorf("refs = %d after three initialize calls", rt.Refs())
	}
	for i := 0; i < 2; i++ {
		if err := rt.Finalize(); err != nil {
			return "", err
		}
	}
	if !rt.Ready() {
		return "", errors.New("torn down while a reference remained")
	}
	if err := rt.Finalize(); err != nil {
		return "", err
	}
	if rt.Ready() || rt.Refs() != 0 {
		return "", errors.New("not torn down by the last finalize")
	}
	return "3 references, one construction, one teardown", nil
}

func checkOverFinalize(env Env) (string, error) {
	rt := env.runtime()
	err := rt.Finalize()
	if !errors.Is(err, domain.ErrNotInitialized) {
		return "", fmt.Errorf("finalize without initialize returned %v", err)
	}
	if rt.Refs() != 0 {
		return "", fmt.Errorf("refs = %d after over-finalize", rt.Refs())
	}
	return domain.GetErrorCode(err), nil
}

type failingModules struct{}

func (failingModules) Name() string      { return "modules" }
func (failingModules) Initialize() error { return errors.New("module registry unavailable") }
func (failingModules) Finalize() error   { return nil }

func checkRollback(env Env) (string, error) {
	rt := env.runtime(lifecycle.WithModules(failingModules{}), lifecycle.WithCryptoLibrary(env.CryptoLib))
	err := rt.Initialize()
	if !errors.Is(err, domain.ErrSubsystemInit) {
		return "", fmt.Errorf("initialize returned %v, want subsystem failure", err)
	}
	if rt.Ready() || rt.Refs() != 0 {
		return "", errors.New("partial state visible after failed initialize")
	}
	if _, bundled := env.CryptoLib.(adaptive.Registry); bundled && cryptolock.Enabled && adaptive.LockingInstalled() {
		return "", errors.New("crypto callbacks left registered")
	}
	return "failed construction fully undone", nil
}

func checkTidxUnset(env Env) (string, error) {
	rt := env.runtime()
	if err := rt.Initialize(); err != nil {
		return "", err
	}
	defer rt.Finalize()

	if got := rt.ThreadIndex(); got != -1 {
		return "", fmt.Errorf("unset tidx reads %d", got)
	}
	rt.SetThreadIndex(0)
	if got := rt.ThreadIndex(); got != 0 {
		return "", fmt.Errorf("tidx 0 reads %d", got)
	}
	return "unset reads -1, zero is distinct", nil
}

func checkTidxIsolation(env Env) (string, error) {
	const workers, rounds = 8, 1000

	rt := env.runtime()
	if err := rt.Initialize(); err != nil {
		return "", err
	}
	defer rt.Finalize()

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(tidx int) {
			defer wg.Done()
			defer rt.FinalizeThread()

			rt.SetThreadIndex(tidx)
			for j := 0; j < rounds; j++ {
				if got := rt.ThreadIndex(); got != tidx {
					errs <- fmt.Errorf("worker %d read %d", tidx, got)
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return "", err
	}
	return fmt.Sprintf("%d workers x %d reads", workers, rounds), nil
}

func checkRecoveryState(env Env) (string, error) {
	rt := env.runtime()
	if err := rt.Initialize(); err != nil {
		return "", err
	}
	defer rt.Finalize()

	handle := &struct{ offset int }{offset: 1}
	rt.SetRecoveryState(handle)
	if rt.RecoveryState() != handle {
		return "", errors.New("recovery state not returned to its goroutine")
	}

	other := make(chan any)
	go func() { other <- rt.RecoveryState() }()
	if v := <-other; v != nil {
		return "", fmt.Errorf("another goroutine saw %v", v)
	}

	rt.FinalizeThread()
	if rt.RecoveryState() != nil {
		return "", errors.New("recovery state survived FinalizeThread")
	}
	return "per-goroutine, cleared by FinalizeThread", nil
}

func checkStackSize(env Env) (string, error) {
	rt := env.runtime()
	if err := rt.Initialize(); err != nil {
		return "", err
	}
	defer rt.Finalize()

	var got uint32
	if err := rt.GetConfiguration(confstore.StackSize, &got); err != nil {
		return "", err
	}
	if got != confstore.DefaultStackSize {
		return "", fmt.Errorf("default stack size %d", got)
	}

	want := uint32(128 * 1024)
	if err := rt.SetConfiguration(confstore.StackSize, &want); err != nil {
		return "", err
	}
	if err := rt.GetConfiguration(confstore.StackSize, &got); err != nil {
		return "", err
	}
	if got != want {
		return "", fmt.Errorf("stack size reads %d after setting %d", got, want)
	}
	return fmt.Sprintf("default %d, set %d", confstore.DefaultStackSize, got), nil
}

func checkInvalidKey(env Env) (string, error) {
	rt := env.runtime()
	if err := rt.Initialize(); err != nil {
		return "", err
	}
	defer rt.Finalize()

	var v uint32
	err := rt.GetConfiguration(confstore.Name(-1), &v)
	if !errors.Is(err, domain.ErrInvalidArgument) {
		return "", fmt.Errorf("unknown key returned %v", err)
	}
	return domain.GetErrorCode(err), nil
}

func checkCryptoBridge(env Env) (string, error) {
	if !cryptolock.Enabled {
		return "crypto support not compiled in", errSkip
	}

	rt := env.runtime(lifecycle.WithCryptoLibrary(env.CryptoLib))
	if err := rt.Initialize(); err != nil {
		return "", err
	}
	defer rt.Finalize()

	n := rt.Bridge().NumLocks()
	if n != env.CryptoLib.NumLocks() {
		return "", fmt.Errorf("bridge has %d locks, library wants %d", n, env.CryptoLib.NumLocks())
	}

	master := []byte("selftest master key material")
	const workers = 8

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer rt.FinalizeThread()

			key, err := adaptive.DeriveKey(master, fmt.Sprintf("worker-%d", i%2), 32)
			if err != nil {
				errs <- err
				return
			}
			c, err := adaptive.New(key)
			if err != nil {
				errs <- err
				return
			}
			msg := []byte(fmt.Sprintf("payload %d", i))
			for j := 0; j < 50; j++ {
				ct, err := c.Encrypt(msg, nil)
				if err != nil {
					errs <- err
					return
				}
				pt, err := c.Decrypt(ct, nil)
				if err != nil {
					errs <- err
					return
				}
				if !bytes.Equal(pt, msg) {
					errs <- errors.New("decrypt mismatch")
					return
				}
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	if err := <-errs; err != nil {
		return "", err
	}
	return fmt.Sprintf("%d locks, %d workers", n, workers), nil
}
