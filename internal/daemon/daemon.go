// Package daemon implements twigd, the resident process that keeps
// cacheable provider output fresh so client invocations can read a cache
// document instead of paying a live fetch cost on every prompt render.
package daemon

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jeffjose/twig/internal/cache"
	"github.com/jeffjose/twig/internal/config"
	"github.com/jeffjose/twig/internal/providers"
)

// Daemon refreshes cacheable providers on a fixed-rate tick and publishes
// their results to a cache.Store.
type Daemon struct {
	Registry *providers.Registry
	Config   *config.Config
	Store    *cache.Store
	Logger   *slog.Logger

	LockPath string
	PIDPath  string
}

// New builds a Daemon with sensible defaults for unset fields.
func New(reg *providers.Registry, cfg *config.Config, store *cache.Store) *Daemon {
	return &Daemon{
		Registry: reg,
		Config:   cfg,
		Store:    store,
		Logger:   slog.Default(),
		LockPath: DefaultLockPath(),
		PIDPath:  DefaultPIDPath(),
	}
}

// Run acquires the singleton lock, writes the PID file, and blocks in the
// main collection loop until ctx is cancelled or an INT/TERM/HUP signal
// arrives. It returns ErrAlreadyRunning immediately if another instance
// already holds the lock.
func (d *Daemon) Run(ctx context.Context) error {
	lock, err := Acquire(d.LockPath)
	if err != nil {
		return err
	}
	defer lock.Release()

	if err := WritePID(d.PIDPath); err != nil {
		return err
	}
	defer RemovePID(d.PIDPath)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer stop()

	frequency := d.Config.Daemon.FrequencyDuration()
	d.Logger.Info("twigd started", "pid", os.Getpid(), "frequency", frequency)

	d.tick(ctx)

	ticker := time.NewTicker(frequency)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.Logger.Info("twigd shutting down")
			return nil
		case <-ticker.C:
			d.tick(ctx)
		}
	}
}

// tick runs one collection cycle: every cacheable provider is collected and
// the result document is atomically rewritten. A provider failure is
// logged and that provider's prior cache entry is left untouched.
func (d *Daemon) tick(ctx context.Context) {
	for _, p := range d.Registry.All() {
		if !p.Cacheable() {
			continue
		}

		cfg := d.Config.Section(p.Name())
		vars, err := p.Collect(ctx, cfg, false)
		if err != nil {
			d.Logger.Warn("provider collection failed, keeping previous entry", "provider", p.Name(), "error", err)
			continue
		}

		if err := d.Store.Set(p.Name(), vars); err != nil {
			d.Logger.Warn("cache write failed", "provider", p.Name(), "error", err)
		}
	}
}
