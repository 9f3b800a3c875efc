// twig renders a shell prompt from a template, a handful of small
// providers (time, hostname, cwd, git, ip, battery), and a responsive
// selector that picks between wide and narrow formats.
//
// Usage:
//
//	twig                        development-mode boxed display, timing to stderr
//	twig --prompt               raw ANSI, for shells that don't need wrapping (fish)
//	twig --mode {bash|zsh|tcsh} shell-specific wrapping and finalization
//	twig --config PATH          use a non-default config file
//	twig --validate             run all providers in validate mode, report errors
//	twig --debug                emit debug lines to stderr (never stdout)
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/jeffjose/twig/internal/cache"
	"github.com/jeffjose/twig/internal/colorenv"
	"github.com/jeffjose/twig/internal/config"
	"github.com/jeffjose/twig/internal/daemon"
	"github.com/jeffjose/twig/internal/providers"
	"github.com/jeffjose/twig/internal/selector"
	"github.com/jeffjose/twig/internal/shell"
	"github.com/jeffjose/twig/internal/template"

	"github.com/charmbracelet/lipgloss"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to config.toml")
		promptMode = flag.Bool("prompt", false, "render with raw ANSI, no shell wrapping")
		mode       = flag.String("mode", "", "shell-specific wrapping: bash, zsh, or tcsh")
		validate   = flag.Bool("validate", false, "run all providers in validate mode and report errors")
		debug      = flag.Bool("debug", os.Getenv("TWIG_DEBUG") == "1", "emit debug lines to stderr")
	)
	flag.Parse()

	var handler slog.Handler = slog.DiscardHandler
	if *debug {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	logger := slog.New(handler)

	os.Exit(run(*configPath, *promptMode, *mode, *validate, logger))
}

func run(configPath string, promptMode bool, modeFlag string, validate bool, logger *slog.Logger) int {
	start := time.Now()

	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			logger.Error("resolve config path", "error", err)
			path = ""
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		if validate {
			fmt.Fprintf(os.Stderr, "config error: %v\n", err)
			return 1
		}
		logger.Warn("config load failed, falling back to defaults", "error", err)
		cfg = &config.Config{Sections: map[string]providers.Config{}}
	}

	reg := providers.NewRegistry()
	reg.Register(providers.NewTimeProvider())
	reg.Register(providers.NewHostnameProvider())
	reg.Register(providers.NewCwdProvider())
	reg.Register(providers.NewGitProvider())
	reg.Register(providers.NewIPProvider())
	reg.Register(providers.NewBatteryProvider())

	config.Materialize(cfg, reg.All())

	if validate {
		return runValidate(cfg, reg, logger)
	}

	target := shell.Raw
	if modeFlag != "" {
		target, err = shell.ParseTarget(modeFlag)
		if err != nil {
			logger.Error("invalid --mode", "error", err)
			return 1
		}
	}

	cacheStore, err := cache.NewStore(daemon.DefaultCachePath(), logger)
	if err != nil {
		logger.Warn("cache unavailable, collecting live", "error", err)
		cacheStore = nil
	}

	width, widthOK := selector.DetectWidth()
	format, err := selector.Select(cfg.Prompt, width, widthOK, func(candidate string) (string, error) {
		return renderOnce(candidate, reg, cfg, cacheStore, shell.New(shell.Raw), logger)
	})
	if err != nil {
		logger.Warn("responsive selection failed, using base format", "error", err)
		format = cfg.Prompt.Format
	}

	output, err := renderOnce(format, reg, cfg, cacheStore, shell.New(target), logger)
	if err != nil {
		logger.Warn("render failed, echoing template verbatim", "error", err)
		output = format
	}

	if promptMode || modeFlag != "" {
		fmt.Print(output)
		logger.Debug("rendered", "elapsed", time.Since(start))
		return 0
	}

	printDebugBox(format, output, time.Since(start))
	return 0
}

// renderOnce parses format, collects the providers it references, and
// renders it through f. Errors here are always recoverable: the caller
// falls back to echoing the template verbatim.
func renderOnce(format string, reg *providers.Registry, cfg *config.Config, store *cache.Store, f shell.Formatter, logger *slog.Logger) (string, error) {
	ast, parseErrs := template.Parse(format)
	for _, pe := range parseErrs {
		logger.Debug("template parse finding", "kind", pe.Kind, "pos", pe.Pos, "msg", pe.Msg)
	}

	names := template.Discover(ast)
	needed := reg.DetermineProviders(names)

	vars := collect(needed, cfg, store, false, logger)

	return template.Render(ast, vars, f), nil
}

// collect runs every provider concurrently, consulting the cache for
// cacheable providers first (spec §4.E), and merges their disjoint key
// namespaces into one map.
func collect(needed []providers.Provider, cfg *config.Config, store *cache.Store, validate bool, logger *slog.Logger) map[string]string {
	vars := make(map[string]string)
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, p := range needed {
		p := p
		wg.Add(1)
		go func() {
			defer wg.Done()

			sectionCfg := cfg.Section(p.Name())

			if !validate && p.Cacheable() && store != nil {
				ttl := p.CacheTTL()
				if staleAfter := cfg.Daemon.StaleAfterDuration(); staleAfter > ttl {
					ttl = staleAfter
				}
				if cached, fresh, err := store.Get(p.Name(), ttl); err == nil && fresh {
					mu.Lock()
					for k, v := range cached {
						vars[k] = v
					}
					mu.Unlock()
					return
				}
			}

			ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
			defer cancel()

			result, err := p.Collect(ctx, sectionCfg, validate)
			if err != nil {
				logger.Debug("provider failed", "provider", p.Name(), "error", err)
				return
			}
			mu.Lock()
			for k, v := range result {
				vars[k] = v
			}
			mu.Unlock()
		}()
	}

	wg.Wait()
	return vars
}

// runValidate runs every registered provider in validate mode, reporting
// any error to stderr. Every template and provider is checked; it returns 1
// if any of them reported a problem, 0 otherwise.
func runValidate(cfg *config.Config, reg *providers.Registry, logger *slog.Logger) int {
	clean := true

	for _, format := range []string{cfg.Prompt.Format, cfg.Prompt.FormatWide, cfg.Prompt.FormatNarrow} {
		if format == "" {
			continue
		}
		_, parseErrs := template.Parse(format)
		for _, pe := range parseErrs {
			fmt.Fprintf(os.Stderr, "%s\n", pe.Error())
			clean = false
		}
	}

	for _, p := range reg.All() {
		sectionCfg := cfg.Section(p.Name())
		ctx, cancel := context.WithTimeout(context.Background(), 250*time.Millisecond)
		_, err := p.Collect(ctx, sectionCfg, true)
		cancel()
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", p.Name(), err)
			clean = false
		}
	}

	if !clean {
		return 1
	}
	return 0
}

// printDebugBox is twig's no-flags default: a boxed, human-readable view on
// stdout of the template and what it rendered to, plus the timing on
// stderr. It never
// writes ANSI the shell would try to interpret as part of its own prompt.
func printDebugBox(format, output string, elapsed time.Duration) {
	plain := template.StripEscapes(output)

	var body strings.Builder
	fmt.Fprintf(&body, "format: %s\n", format)
	fmt.Fprintf(&body, "render: %s", plain)

	style := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)
	if !colorenv.Apply() {
		style = style.Border(lipgloss.NormalBorder())
	}

	fmt.Println(style.Render(body.String()))
	fmt.Fprintf(os.Stderr, "twig: rendered in %s\n", elapsed)
}
