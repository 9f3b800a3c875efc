package daemon

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/jeffjose/twig/internal/cache"
	"github.com/jeffjose/twig/internal/config"
	"github.com/jeffjose/twig/internal/providers"
)

func TestAcquire_SecondCallerGetsAlreadyRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.lock")

	first, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	defer first.Release()

	_, err = Acquire(path)
	if !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("got %v, want ErrAlreadyRunning", err)
	}
}

func TestAcquire_ReleaseAllowsReacquire(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.lock")

	first, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("Release: %v", err)
	}

	second, err := Acquire(path)
	if err != nil {
		t.Fatalf("Acquire after release: %v", err)
	}
	second.Release()
}

func TestWriteReadRemovePID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "daemon.pid")

	if err := WritePID(path); err != nil {
		t.Fatalf("WritePID: %v", err)
	}

	pid, err := ReadPID(path)
	if err != nil {
		t.Fatalf("ReadPID: %v", err)
	}
	if !IsProcessAlive(pid) {
		t.Fatalf("expected our own PID %d to be alive", pid)
	}

	if err := RemovePID(path); err != nil {
		t.Fatalf("RemovePID: %v", err)
	}
	if _, err := ReadPID(path); err == nil {
		t.Fatalf("expected ReadPID to fail after removal")
	}
}

func TestRemovePID_MissingFileIsNotAnError(t *testing.T) {
	if err := RemovePID(filepath.Join(t.TempDir(), "nonexistent.pid")); err != nil {
		t.Fatalf("RemovePID on missing file: %v", err)
	}
}

type fakeCacheableProvider struct {
	name string
	vars map[string]string
	err  error
}

func (f *fakeCacheableProvider) Name() string                   { return f.name }
func (f *fakeCacheableProvider) Sections() []string             { return []string{f.name} }
func (f *fakeCacheableProvider) DefaultConfig() providers.Config { return providers.Config{} }
func (f *fakeCacheableProvider) Collect(ctx context.Context, cfg providers.Config, validate bool) (map[string]string, error) {
	return f.vars, f.err
}
func (f *fakeCacheableProvider) Cacheable() bool            { return true }
func (f *fakeCacheableProvider) CacheTTL() time.Duration    { return time.Minute }

type fakeNonCacheableProvider struct{ calls *int }

func (f *fakeNonCacheableProvider) Name() string                   { return "time" }
func (f *fakeNonCacheableProvider) Sections() []string             { return []string{"time"} }
func (f *fakeNonCacheableProvider) DefaultConfig() providers.Config { return providers.Config{} }
func (f *fakeNonCacheableProvider) Collect(ctx context.Context, cfg providers.Config, validate bool) (map[string]string, error) {
	*f.calls++
	return map[string]string{"time": "now"}, nil
}
func (f *fakeNonCacheableProvider) Cacheable() bool         { return false }
func (f *fakeNonCacheableProvider) CacheTTL() time.Duration { return 0 }

func newTestDaemon(t *testing.T, ps ...providers.Provider) (*Daemon, *cache.Store) {
	t.Helper()
	reg := providers.NewRegistry()
	for _, p := range ps {
		reg.Register(p)
	}
	store, err := cache.NewStore(filepath.Join(t.TempDir(), "data.json"), slog.Default())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	cfg := &config.Config{Sections: map[string]providers.Config{}}
	return &Daemon{Registry: reg, Config: cfg, Store: store, Logger: slog.Default()}, store
}

func TestTick_WritesCacheableProvidersOnly(t *testing.T) {
	calls := 0
	hostname := &fakeCacheableProvider{name: "hostname", vars: map[string]string{"hostname": "box"}}
	clock := &fakeNonCacheableProvider{calls: &calls}

	d, store := newTestDaemon(t, hostname, clock)
	d.tick(context.Background())

	vars, fresh, err := store.Get("hostname", time.Minute)
	if err != nil || !fresh {
		t.Fatalf("Get(hostname): vars=%v fresh=%v err=%v", vars, fresh, err)
	}
	if vars["hostname"] != "box" {
		t.Fatalf("got %+v", vars)
	}

	if calls != 0 {
		t.Fatalf("non-cacheable provider should never be written to the daemon cache")
	}
	if _, _, err := store.Get("time", time.Minute); err != nil {
		t.Fatalf("Get(time): %v", err)
	}
}

func TestTick_FailurePreservesPreviousEntry(t *testing.T) {
	hostname := &fakeCacheableProvider{name: "hostname", vars: map[string]string{"hostname": "box"}}
	d, store := newTestDaemon(t, hostname)

	d.tick(context.Background())

	hostname.err = errors.New("gopsutil unavailable")
	hostname.vars = nil
	d.tick(context.Background())

	vars, fresh, err := store.Get("hostname", time.Minute)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !fresh || vars["hostname"] != "box" {
		t.Fatalf("expected previous entry preserved, got vars=%+v fresh=%v", vars, fresh)
	}
}
