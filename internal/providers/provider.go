// Package providers collects the variables a template references. Each
// Provider claims one or more "sections" — the prefix before the first
// underscore in a variable name, e.g. "git" claims git_branch, git_status,
// and git_elapsed — and the registry routes a template's referenced
// variables to the providers that can supply them.
package providers

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Config is the already-decoded TOML table for one provider's section, plus
// whatever that provider's DefaultConfig contributed for keys the user
// config omitted. Providers read from it with the Get* helpers below rather
// than a typed struct, since section shape is owned by the provider, not
// by internal/config.
type Config map[string]any

func (c Config) GetString(key, def string) string {
	if v, ok := c[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

func (c Config) GetBool(key string, def bool) bool {
	if v, ok := c[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

func (c Config) GetDuration(key string, def time.Duration) time.Duration {
	if v, ok := c[key]; ok {
		if s, ok := v.(string); ok {
			if d, err := time.ParseDuration(s); err == nil {
				return d
			}
		}
	}
	return def
}

// Provider is a single source of template variables (spec §4.C.1).
type Provider interface {
	// Name is the provider's unique identifier, used in logs and errors.
	Name() string

	// Sections lists the variable-name prefixes this provider supplies.
	// A variable is routed to a provider by the text before its first
	// underscore, e.g. "git_branch" routes to the provider whose Sections
	// includes "git".
	Sections() []string

	// DefaultConfig returns the section's configuration defaults, merged
	// under whatever the user's config.toml supplies for the same keys.
	DefaultConfig() Config

	// Collect gathers this provider's variables. validate is true only
	// when running under --validate, where providers that shell out
	// (git) or hit the filesystem (battery) should still attempt the
	// real call so validate also catches environment problems, not just
	// template syntax problems.
	Collect(ctx context.Context, cfg Config, validate bool) (map[string]string, error)

	// Cacheable reports whether Collect's result may be served from the
	// daemon's cache instead of run inline by the client.
	Cacheable() bool

	// CacheTTL is how long a cached result remains fresh. Meaningless
	// when Cacheable is false.
	CacheTTL() time.Duration
}

// Registry routes variable names to the providers that supply them.
type Registry struct {
	bySection map[string]Provider
	providers []Provider
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{bySection: make(map[string]Provider)}
}

// Register claims every section p.Sections() lists. Two providers claiming
// the same section is a programming error, not a runtime condition a user
// can trigger (sections are fixed at compile time, never user-configured),
// so Register panics rather than silently replacing the earlier claimant.
func (r *Registry) Register(p Provider) {
	for _, section := range p.Sections() {
		if existing, ok := r.bySection[section]; ok {
			panic(fmt.Sprintf("providers: section %q already claimed by %q, cannot also register %q", section, existing.Name(), p.Name()))
		}
	}
	for _, section := range p.Sections() {
		r.bySection[section] = p
	}
	r.providers = append(r.providers, p)
}

// All returns every registered provider, in registration order.
func (r *Registry) All() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}

// Section returns the provider claiming a section name, if any.
func (r *Registry) Section(name string) (Provider, bool) {
	p, ok := r.bySection[name]
	return p, ok
}

// DetermineProviders maps a set of referenced variable names (as returned
// by internal/template.Discover) to the distinct providers that must run to
// satisfy them, in first-occurrence order. A variable with no section match
// is silently dropped — it renders empty, per the template's own missing
// variable rule.
func (r *Registry) DetermineProviders(varNames []string) []Provider {
	seen := make(map[string]bool)
	var out []Provider
	for _, name := range varNames {
		section := sectionOf(name)
		p, ok := r.bySection[section]
		if !ok || seen[p.Name()] {
			continue
		}
		seen[p.Name()] = true
		out = append(out, p)
	}
	return out
}

func sectionOf(varName string) string {
	if idx := strings.IndexByte(varName, '_'); idx >= 0 {
		return varName[:idx]
	}
	return varName
}
