// Package config loads twig's TOML configuration file. Provider-specific
// sections are kept as open property bags (internal/providers.Config)
// rather than typed structs, since the set of sections is owned by the
// provider registry, not by this package — a section this package has
// never heard of (because it is materialized implicitly from a template
// reference) must still round-trip correctly.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jeffjose/twig/internal/providers"
)

// PromptConfig is the [prompt] section: the templates the responsive
// selector chooses between (internal/selector).
type PromptConfig struct {
	Format         string `toml:"format"`
	FormatWide     string `toml:"format_wide"`
	FormatNarrow   string `toml:"format_narrow"`
	WidthThreshold *int   `toml:"width_threshold"`
	Padding        int    `toml:"padding"`
}

// DaemonConfig is the [daemon] section.
type DaemonConfig struct {
	Frequency  float64 `toml:"frequency"`
	StaleAfter float64 `toml:"stale_after"`
}

// FrequencyDuration returns Frequency as a time.Duration, defaulting to 1s.
func (d DaemonConfig) FrequencyDuration() time.Duration {
	if d.Frequency <= 0 {
		return time.Second
	}
	return time.Duration(d.Frequency * float64(time.Second))
}

// StaleAfterDuration returns StaleAfter as a time.Duration, defaulting to 5s.
func (d DaemonConfig) StaleAfterDuration() time.Duration {
	if d.StaleAfter <= 0 {
		return 5 * time.Second
	}
	return time.Duration(d.StaleAfter * float64(time.Second))
}

// Config is the fully decoded configuration file plus every provider
// section, implicit or explicit.
type Config struct {
	Prompt   PromptConfig
	Daemon   DaemonConfig
	Sections map[string]providers.Config
}

// rawDoc mirrors the TOML document's typed top-level tables; provider
// sections are recovered separately by decoding the file a second time
// into a generic map (see Load), since a struct destination silently drops
// tables it has no field for.
type rawDoc struct {
	Prompt PromptConfig `toml:"prompt"`
	Daemon DaemonConfig `toml:"daemon"`
}

// DefaultPath returns the config file path: $XDG_CONFIG_HOME/twig/config.toml
// or ~/.config/twig/config.toml.
func DefaultPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "twig", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "twig", "config.toml"), nil
}

// Load reads and decodes the config file at path. A missing file is not an
// error: it decodes to an empty Config, which Materialize then fills in
// from provider defaults.
func Load(path string) (*Config, error) {
	var doc rawDoc
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg := &Config{
		Prompt:   doc.Prompt,
		Daemon:   doc.Daemon,
		Sections: map[string]providers.Config{},
	}

	var generic map[string]map[string]interface{}
	if _, err := toml.DecodeFile(path, &generic); err == nil {
		for name, table := range generic {
			if name == "prompt" || name == "daemon" {
				continue
			}
			cfg.Sections[name] = providers.Config(table)
		}
	}

	return cfg, nil
}

// Materialize ensures every provider in ps has a section in cfg.Sections,
// filling missing sections (and missing keys within present sections) from
// the provider's DefaultConfig (spec §3: "a section may be implicit").
func Materialize(cfg *Config, ps []providers.Provider) {
	if cfg.Sections == nil {
		cfg.Sections = map[string]providers.Config{}
	}
	for _, p := range ps {
		for _, section := range p.Sections() {
			existing := cfg.Sections[section]
			merged := providers.Config{}
			for k, v := range p.DefaultConfig() {
				merged[k] = v
			}
			for k, v := range existing {
				merged[k] = v
			}
			cfg.Sections[section] = merged
		}
	}

	if cfg.Prompt.Padding == 0 {
		cfg.Prompt.Padding = 5
	}
}

// Section returns the provider config for a section name, or an empty
// Config if none exists.
func (c *Config) Section(name string) providers.Config {
	if c.Sections == nil {
		return providers.Config{}
	}
	if cfg, ok := c.Sections[name]; ok {
		return cfg
	}
	return providers.Config{}
}
