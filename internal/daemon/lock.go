package daemon

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Lock is an exclusive advisory lock on a file, held for the lifetime of one
// daemon process. Only one twigd may hold the lock at a time; a second
// instance must fail fast rather than run concurrently and race the first
// over the cache document.
type Lock struct {
	file *os.File
}

// Acquire opens (creating if needed) the lock file at path and takes an
// exclusive, non-blocking advisory lock (flock LOCK_EX|LOCK_NB). If another
// process already holds the lock, it returns ErrAlreadyRunning.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("daemon: create lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("daemon: open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if err == unix.EWOULDBLOCK {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("daemon: acquire lock: %w", err)
	}

	return &Lock{file: f}, nil
}

// Release drops the advisory lock and closes the underlying file. The lock
// file itself is left in place; flock releases automatically on process
// exit too, so Release is a best-effort courtesy for orderly shutdown.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	return l.file.Close()
}

// ErrAlreadyRunning is returned by Acquire when another twigd instance holds
// the lock.
var ErrAlreadyRunning = fmt.Errorf("already running")
