package providers

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/jeffjose/twig/internal/format"
)

// GitProvider supplies branch, upstream tracking, status, and
// time-since-last-commit variables by shelling out to the git binary.
// Never cacheable: git state changes on every commit, checkout, and index
// edit, none of which the daemon would otherwise know to invalidate on.
type GitProvider struct {
	// Timeout bounds each git subprocess so a hung or enormous repository
	// never stalls prompt rendering (spec §5: suggested cap 250ms per
	// live call).
	Timeout time.Duration

	// runner invokes one git subcommand and returns stdout with trailing
	// newlines removed; leading whitespace is kept, since `status
	// --porcelain` columns depend on it. Tests substitute a fake to avoid
	// depending on a real git checkout.
	runner func(ctx context.Context, args ...string) (string, error)
}

// NewGitProvider returns a GitProvider with the default subprocess timeout.
func NewGitProvider() *GitProvider {
	return &GitProvider{Timeout: 250 * time.Millisecond, runner: runGit}
}

func (p *GitProvider) Name() string       { return "git" }
func (p *GitProvider) Sections() []string { return []string{"git"} }

func (p *GitProvider) DefaultConfig() Config {
	return Config{}
}

func (p *GitProvider) Cacheable() bool         { return false }
func (p *GitProvider) CacheTTL() time.Duration { return 0 }

func (p *GitProvider) Collect(ctx context.Context, _ Config, validate bool) (map[string]string, error) {
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 250 * time.Millisecond
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := p.run(ctx, "--version"); err != nil {
		if validate {
			return nil, err
		}
		return map[string]string{}, nil
	}

	branch, err := p.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		// Not inside a git repository: every git_* variable is absent,
		// not merely empty, so templates built around git fully elide.
		if validate {
			return nil, err
		}
		return map[string]string{}, nil
	}

	out := map[string]string{
		"git_branch":   branch,
		"git_tracking": p.tracking(ctx),
		"git_elapsed":  p.elapsed(ctx),
	}
	clean, staged, unstaged := p.status(ctx)
	out["git_status_clean"] = clean
	out["git_status_staged"] = staged
	out["git_status_unstaged"] = unstaged
	return out, nil
}

// tracking reports how HEAD compares to its upstream: "" in sync (or no
// upstream configured), "(ahead.N)", "(behind.N)", or
// "(ahead.N.behind.M)".
func (p *GitProvider) tracking(ctx context.Context) string {
	out, err := p.run(ctx, "rev-list", "--left-right", "--count", "@{upstream}...HEAD")
	if err != nil || out == "" {
		return ""
	}
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return ""
	}
	behind, errB := strconv.Atoi(fields[0])
	ahead, errA := strconv.Atoi(fields[1])
	if errA != nil || errB != nil {
		return ""
	}

	switch {
	case ahead > 0 && behind > 0:
		return "(ahead." + strconv.Itoa(ahead) + ".behind." + strconv.Itoa(behind) + ")"
	case ahead > 0:
		return "(ahead." + strconv.Itoa(ahead) + ")"
	case behind > 0:
		return "(behind." + strconv.Itoa(behind) + ")"
	default:
		return ""
	}
}

// status parses `git status --porcelain` into clean/staged/unstaged
// indicators. Staged counts index (X) column changes; unstaged counts
// worktree (Y) column changes and untracked files ("??").
func (p *GitProvider) status(ctx context.Context) (clean, staged, unstaged string) {
	out, err := p.run(ctx, "status", "--porcelain")
	if err != nil {
		return "", "", ""
	}

	stagedCount, unstagedCount := 0, 0
	for _, line := range strings.Split(out, "\n") {
		if len(line) < 2 {
			continue
		}
		if strings.HasPrefix(line, "??") {
			unstagedCount++
			continue
		}
		if line[0] != ' ' {
			stagedCount++
		}
		if line[1] != ' ' {
			unstagedCount++
		}
	}

	if stagedCount == 0 && unstagedCount == 0 {
		clean = "✓"
	}
	if stagedCount > 0 {
		staged = strconv.Itoa(stagedCount)
	}
	if unstagedCount > 0 {
		unstaged = strconv.Itoa(unstagedCount)
	}
	return clean, staged, unstaged
}

func (p *GitProvider) elapsed(ctx context.Context) string {
	out, err := p.run(ctx, "log", "-1", "--format=%ct")
	if err != nil || out == "" {
		return ""
	}
	sec, err := strconv.ParseInt(out, 10, 64)
	if err != nil {
		return ""
	}
	commitTime := time.Unix(sec, 0)
	return format.ElapsedCompact(time.Since(commitTime))
}

func (p *GitProvider) run(ctx context.Context, args ...string) (string, error) {
	run := p.runner
	if run == nil {
		run = runGit
	}
	return run(ctx, args...)
}

func runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return strings.TrimRight(stdout.String(), "\r\n"), nil
}
