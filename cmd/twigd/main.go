// twigd is the resident process that keeps cacheable provider output fresh
// in twig's cache document, so client invocations can avoid paying a live
// fetch cost (a git subprocess, a sysfs read) on every prompt render.
//
// Usage:
//
//	twigd        acquire the singleton lock and run the collection loop
//	twigd --fg   same; twigd never forks, this flag only documents intent
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jeffjose/twig/internal/cache"
	"github.com/jeffjose/twig/internal/config"
	"github.com/jeffjose/twig/internal/daemon"
	"github.com/jeffjose/twig/internal/providers"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.toml")
		_          = flag.Bool("fg", false, "run in the foreground (twigd never forks; accepted for compatibility)")
		debug      = flag.Bool("debug", os.Getenv("TWIG_DEBUG") == "1", "emit debug lines to stderr")
	)
	flag.Parse()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	path := *configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			logger.Error("resolve config path", "error", err)
			os.Exit(1)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	reg := providers.NewRegistry()
	reg.Register(providers.NewTimeProvider())
	reg.Register(providers.NewHostnameProvider())
	reg.Register(providers.NewCwdProvider())
	reg.Register(providers.NewGitProvider())
	reg.Register(providers.NewIPProvider())
	reg.Register(providers.NewBatteryProvider())

	config.Materialize(cfg, reg.All())

	store, err := cache.NewStore(daemon.DefaultCachePath(), logger)
	if err != nil {
		logger.Error("open cache store", "error", err)
		os.Exit(1)
	}

	d := daemon.New(reg, cfg, store)
	d.Logger = logger

	if err := d.Run(context.Background()); err != nil {
		if errors.Is(err, daemon.ErrAlreadyRunning) {
			fmt.Fprintln(os.Stderr, "twigd: already running")
			os.Exit(2)
		}
		logger.Error("daemon exited with error", "error", err)
		os.Exit(1)
	}
}
