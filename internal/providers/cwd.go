package providers

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// CwdProvider supplies the current working directory, optionally shortened
// to just its basename. Never cacheable: a cached cwd would be wrong the
// moment the shell changes directory.
type CwdProvider struct {
	Getwd func() (string, error)
}

// NewCwdProvider returns a CwdProvider backed by the real process state.
func NewCwdProvider() *CwdProvider {
	return &CwdProvider{Getwd: os.Getwd}
}

func (p *CwdProvider) Name() string       { return "cwd" }
func (p *CwdProvider) Sections() []string { return []string{"cwd"} }

func (p *CwdProvider) DefaultConfig() Config {
	return Config{"name": "cwd", "shorten": false}
}

func (p *CwdProvider) Cacheable() bool         { return false }
func (p *CwdProvider) CacheTTL() time.Duration { return 0 }

func (p *CwdProvider) Collect(_ context.Context, cfg Config, _ bool) (map[string]string, error) {
	dir, err := p.Getwd()
	if err != nil {
		return nil, err
	}

	if cfg.GetBool("shorten", false) {
		dir = filepath.Base(dir)
	}

	name := cfg.GetString("name", "cwd")
	return map[string]string{name: dir}, nil
}
