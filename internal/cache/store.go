// Package cache implements twig's client-readable, daemon-written cache
// file: a single JSON document holding one entry per cacheable provider,
// replaced atomically on every write.
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

const documentVersion = 1

// Entry is one provider's most recent collection result.
type Entry struct {
	TimestampMs int64             `json:"timestamp_ms"`
	Vars        map[string]string `json:"vars"`
}

// document is the on-disk shape of the cache file.
type document struct {
	Version int              `json:"version"`
	Entries map[string]Entry `json:"entries"`
}

// Store reads and writes the single cache document at path (typically
// $XDG_DATA_HOME/twig/data.json). The daemon is the sole writer; the
// client only reads, so Set does not need to coordinate with concurrent
// writers beyond the atomic temp-file-then-rename swap.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore opens a Store at path, creating its parent directory with 0700
// permissions if necessary.
func NewStore(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("cache: create directory for %s: %w", path, err)
	}
	return &Store{path: path, logger: logger}, nil
}

func (s *Store) read() (document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return document{Version: documentVersion, Entries: map[string]Entry{}}, nil
		}
		return document{}, fmt.Errorf("cache: read %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("cache: discarding corrupted cache file", slog.String("path", s.path), slog.String("error", err.Error()))
		return document{Version: documentVersion, Entries: map[string]Entry{}}, nil
	}
	if doc.Entries == nil {
		doc.Entries = map[string]Entry{}
	}
	return doc, nil
}

// write atomically replaces the cache file: write to a temp file in the
// same directory, then rename over the target, so a reader never observes
// a partially written document.
func (s *Store) write(doc document) error {
	encoded, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("cache: marshal: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".tmp-cache-*.json")
	if err != nil {
		return fmt.Errorf("cache: create temp file: %w", err)
	}
	tmpName := tmp.Name()

	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpName)
		}
	}()

	if err := os.Chmod(tmpName, 0600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cache: chmod temp file: %w", err)
	}
	if _, err := tmp.Write(encoded); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("cache: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cache: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("cache: rename temp file: %w", err)
	}

	success = true
	return nil
}

// Get returns a provider's cached variables and whether the entry is still
// within ttl. A missing entry returns (nil, false, nil) — a cache miss,
// not an error.
func (s *Store) Get(provider string, ttl time.Duration) (map[string]string, bool, error) {
	doc, err := s.read()
	if err != nil {
		return nil, false, err
	}

	entry, ok := doc.Entries[provider]
	if !ok {
		return nil, false, nil
	}

	age := time.Since(time.UnixMilli(entry.TimestampMs))
	return entry.Vars, age < ttl, nil
}

// Set stores a provider's collection result, stamped with the current
// time, replacing any prior entry for that provider.
func (s *Store) Set(provider string, vars map[string]string) error {
	doc, err := s.read()
	if err != nil {
		return err
	}
	doc.Version = documentVersion
	doc.Entries[provider] = Entry{
		TimestampMs: time.Now().UnixMilli(),
		Vars:        vars,
	}
	return s.write(doc)
}

// Age returns how long ago a provider's cache entry was written, or 0 if
// there is no entry.
func (s *Store) Age(provider string) time.Duration {
	doc, err := s.read()
	if err != nil {
		return 0
	}
	entry, ok := doc.Entries[provider]
	if !ok {
		return 0
	}
	return time.Since(time.UnixMilli(entry.TimestampMs))
}

// Keys returns every provider name with a cache entry.
func (s *Store) Keys() []string {
	doc, err := s.read()
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(doc.Entries))
	for k := range doc.Entries {
		keys = append(keys, k)
	}
	return keys
}

// Clear replaces the cache file with an empty document.
func (s *Store) Clear() error {
	return s.write(document{Version: documentVersion, Entries: map[string]Entry{}})
}
