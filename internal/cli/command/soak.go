package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/scancore-go/internal/config"
	"github.com/yndnr/scancore-go/internal/core/confstore"
	"github.com/yndnr/scancore-go/internal/core/lifecycle"
	"github.com/yndnr/scancore-go/internal/infra/confloader"
	"github.com/yndnr/scancore-go/internal/infra/shutdown"
	"github.com/yndnr/scancore-go/internal/soak"
	"github.com/yndnr/scancore-go/internal/telemetry/logger"
	"github.com/yndnr/scancore-go/internal/telemetry/metric"
	"github.com/yndnr/scancore-go/pkg/crypto/adaptive"
)

// SoakCommand returns the soak command.
func SoakCommand() *cli.Command {
	return &cli.Command{
		Name:  "soak",
		Usage: "Drive the runtime from concurrent workers",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of worker goroutines",
			},
			&cli.DurationFlag{
				Name:  "duration",
				Usage: "Run time; 0 runs until interrupted",
			},
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Per-worker iterations per second; 0 is unlimited",
			},
			&cli.IntFlag{
				Name:  "burst",
				Usage: "Rate limiter burst",
			},
			&cli.IntFlag{
				Name:  "iterations",
				Usage: "Stop each worker after this many iterations; 0 is unbounded",
			},
			&cli.StringFlag{
				Name:  "metrics-addr",
				Usage: "Serve Prometheus metrics on this address during the run",
			},
		},
		Action: soakAction,
	}
}

// soakOverrides maps the soak flags that were set to settings keys.
func soakOverrides(c *cli.Context) map[string]any {
	overrides := make(map[string]any)
	if c.IsSet("workers") {
		overrides["soak.workers"] = c.Int("workers")
	}
	if c.IsSet("duration") {
		overrides["soak.duration"] = c.Duration("duration")
	}
	if c.IsSet("rate") {
		overrides["soak.rate"] = c.Float64("rate")
	}
	if c.IsSet("burst") {
		overrides["soak.burst"] = c.Int("burst")
	}
	if c.IsSet("metrics-addr") {
		overrides["metrics.addr"] = c.String("metrics-addr")
	}
	return overrides
}

func soakAction(c *cli.Context) error {
	flags := ParseGlobalFlags(c)
	log := GetLogger(c)

	cfg, err := config.Load(flags.Config, soakOverrides(c))
	if err != nil {
		return err
	}
	log.Debug("soak settings", "settings", config.Sanitize(cfg))

	var engine atomic.Pointer[config.EngineSection]
	engine.Store(&cfg.Engine)

	reg := metric.NewRegistry()
	rt := lifecycle.New(
		lifecycle.WithLogger(log.Slog()),
		lifecycle.WithMetrics(reg),
		lifecycle.WithCryptoLibrary(adaptive.Default()),
		lifecycle.WithConfigSource(lifecycle.ConfigSourceFunc(func(store *confstore.Store) error {
			return engine.Load().ApplyTo(store)
		})),
	)
	if err := rt.Initialize(); err != nil {
		return err
	}

	// Hooks run in reverse order: the runtime reference goes last.
	sd := shutdown.NewHandler(cfg.Soak.ShutdownTimeout)
	sd.OnShutdown(func(context.Context) error {
		return rt.Finalize()
	})

	if cfg.Metrics.Addr != "" {
		srv := metricsServer(cfg.Metrics.Addr, reg)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server failed", "addr", cfg.Metrics.Addr, "error", err)
			}
		}()
		sd.OnShutdown(srv.Shutdown)
		log.Info("serving metrics", "addr", cfg.Metrics.Addr)
	}

	if flags.Config != "" {
		w, err := watchSettings(flags.Config, rt, &engine, log)
		if err != nil {
			log.Warn("configuration reload disabled", "error", err)
		} else {
			sd.OnShutdown(func(context.Context) error { return w.Stop() })
		}
	}

	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	runner := soak.New(rt, soak.Config{
		Workers:    cfg.Soak.Workers,
		Duration:   cfg.Soak.Duration,
		Rate:       cfg.Soak.Rate,
		Burst:      cfg.Soak.Burst,
		Iterations: c.Int("iterations"),
		MasterKey:  []byte(cfg.Soak.MasterKey),
	}, log)

	var (
		report soak.Report
		runErr error
	)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		report, runErr = runner.Run(ctx)
		sd.Trigger()
	}()

	sd.OnShutdown(func(hookCtx context.Context) error {
		cancel()
		select {
		case <-finished:
			return nil
		case <-hookCtx.Done():
			return fmt.Errorf("soak workers did not stop: %w", hookCtx.Err())
		}
	})

	shutdownErr := sd.Wait(c.Context)
	if sd.Reason() == shutdown.ReasonSignal {
		log.Info("soak interrupted")
	}

	select {
	case <-finished:
	default:
		return errors.Join(shutdownErr, errors.New("soak workers still running"))
	}

	if err := render(c, report); err != nil {
		return err
	}
	return errors.Join(runErr, shutdownErr)
}

func metricsServer(addr string, reg *metric.Registry) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// watchSettings re-applies engine settings and the log level whenever the
// settings file changes. The runtime store is updated in place and the
// next construction picks up the new values.
func watchSettings(path string, rt *lifecycle.Runtime, engine *atomic.Pointer[config.EngineSection], log logger.Logger) (*confloader.Watcher, error) {
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log.Slog()))
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	w.OnChange(func(changed string) {
		cfg, err := config.Load(changed, nil)
		if err != nil {
			log.Warn("ignoring invalid settings", "path", changed, "error", err)
			return
		}
		engine.Store(&cfg.Engine)
		if rt.Ready() {
			if err := cfg.Engine.ApplyTo(rt.Config()); err != nil {
				log.Warn("failed to apply engine settings", "error", err)
				return
			}
		}
		logger.SetLevel(cfg.Log.Level)
		log.Info("settings reloaded", "path", changed)
	})
	w.StartAsync()
	return w, nil
}
