package main

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/jeffjose/twig/internal/config"
	"github.com/jeffjose/twig/internal/providers"
	"github.com/jeffjose/twig/internal/shell"
)

type stubProvider struct {
	name string
	vars map[string]string
	err  error
}

func (s *stubProvider) Name() string                   { return s.name }
func (s *stubProvider) Sections() []string             { return []string{s.name} }
func (s *stubProvider) DefaultConfig() providers.Config { return providers.Config{} }
func (s *stubProvider) Collect(ctx context.Context, cfg providers.Config, validate bool) (map[string]string, error) {
	return s.vars, s.err
}
func (s *stubProvider) Cacheable() bool         { return false }
func (s *stubProvider) CacheTTL() time.Duration { return 0 }

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRenderOnce_SubstitutesProviderVariables(t *testing.T) {
	reg := providers.NewRegistry()
	reg.Register(&stubProvider{name: "cwd", vars: map[string]string{"cwd": "/home/ada"}})

	cfg := &config.Config{Sections: map[string]providers.Config{}}

	out, err := renderOnce(`{cwd} $ `, reg, cfg, nil, shell.New(shell.Raw), discardLogger())
	if err != nil {
		t.Fatalf("renderOnce: %v", err)
	}
	if out != "/home/ada $ " {
		t.Fatalf("got %q", out)
	}
}

func TestRenderOnce_MalformedTemplateFallsBackGracefully(t *testing.T) {
	reg := providers.NewRegistry()
	cfg := &config.Config{Sections: map[string]providers.Config{}}

	out, err := renderOnce(`{unterminated`, reg, cfg, nil, shell.New(shell.Raw), discardLogger())
	if err != nil {
		t.Fatalf("renderOnce should never error on malformed input: %v", err)
	}
	if out != `{unterminated` {
		t.Fatalf("got %q, want the template echoed verbatim", out)
	}
}

func TestRenderOnce_ConditionalSpaceElidesOnEmptyProvider(t *testing.T) {
	reg := providers.NewRegistry()
	reg.Register(&stubProvider{name: "git", vars: map[string]string{}})
	cfg := &config.Config{Sections: map[string]providers.Config{}}

	out, err := renderOnce(`A~{git_branch}B`, reg, cfg, nil, shell.New(shell.Raw), discardLogger())
	if err != nil {
		t.Fatalf("renderOnce: %v", err)
	}
	if out != "AB" {
		t.Fatalf("got %q, want conditional space elided", out)
	}
}

func TestCollect_MergesDisjointProviderNamespaces(t *testing.T) {
	a := &stubProvider{name: "hostname", vars: map[string]string{"hostname": "box"}}
	b := &stubProvider{name: "cwd", vars: map[string]string{"cwd": "/tmp"}}
	cfg := &config.Config{Sections: map[string]providers.Config{}}

	vars := collect([]providers.Provider{a, b}, cfg, nil, false, discardLogger())

	if vars["hostname"] != "box" || vars["cwd"] != "/tmp" {
		t.Fatalf("got %+v", vars)
	}
}

func TestCollect_FailedProviderLeavesVariablesUnset(t *testing.T) {
	failing := &stubProvider{name: "git", err: context.DeadlineExceeded}
	cfg := &config.Config{Sections: map[string]providers.Config{}}

	vars := collect([]providers.Provider{failing}, cfg, nil, false, discardLogger())

	if len(vars) != 0 {
		t.Fatalf("expected no variables from a failing provider, got %+v", vars)
	}
}

func TestRunValidate_CleanConfigExitsZero(t *testing.T) {
	reg := providers.NewRegistry()
	reg.Register(&stubProvider{name: "cwd", vars: map[string]string{"cwd": "/tmp"}})
	cfg := &config.Config{
		Prompt:   config.PromptConfig{Format: "{cwd} $ "},
		Sections: map[string]providers.Config{},
	}

	if got := runValidate(cfg, reg, discardLogger()); got != 0 {
		t.Fatalf("got exit code %d, want 0", got)
	}
}

func TestRunValidate_ProviderErrorExitsNonZero(t *testing.T) {
	reg := providers.NewRegistry()
	reg.Register(&stubProvider{name: "git", err: context.DeadlineExceeded})
	cfg := &config.Config{
		Prompt:   config.PromptConfig{Format: "{git_branch} $ "},
		Sections: map[string]providers.Config{},
	}

	if got := runValidate(cfg, reg, discardLogger()); got == 0 {
		t.Fatalf("expected a non-zero exit code when a provider fails validation")
	}
}
