package daemon

import (
	"os"
	"path/filepath"
)

// DefaultDir returns the directory twigd keeps its lock file, PID file,
// and cache document in: $XDG_DATA_HOME/twig, falling back to
// ~/.local/share/twig.
func DefaultDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "twig")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "twig")
	}
	return filepath.Join(home, ".local", "share", "twig")
}

// DefaultLockPath returns the default path for daemon.lock.
func DefaultLockPath() string { return filepath.Join(DefaultDir(), "daemon.lock") }

// DefaultPIDPath returns the default path for daemon.pid.
func DefaultPIDPath() string { return filepath.Join(DefaultDir(), "daemon.pid") }

// DefaultCachePath returns the default path for the cache document.
func DefaultCachePath() string { return filepath.Join(DefaultDir(), "data.json") }
