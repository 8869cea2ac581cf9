package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/noa-physics/dcsdata/internal/artifact"
	"github.com/noa-physics/dcsdata/internal/manifest"
	"github.com/noa-physics/dcsdata/internal/mirror"
	"github.com/pdevine/tensor"
)

// slot holds one artifact. value is nil until the first successful load and
// never changes afterwards.
type slot struct {
	name artifact.Name

	// path is written once by resolveLocked under Cache.mu and read either
	// under Cache.mu or after observing Cache.resolved.
	path string

	value atomic.Pointer[tensor.Dense]
}

// Cache is the reference-data cache. It is safe for concurrent use by
// multiple goroutines.
//
// Synchronization strategy:
//   - Get on a populated slot is a single atomic load.
//   - mu serializes loads and path-table resolution, so every path is read
//     at most once successfully even under concurrent first access.
//   - initMu serializes Initialize calls; ready records a successful one.
//   - report holds the most recent LoadReport.
type Cache struct {
	cfg CacheConfig

	// names and slots are fixed at construction.
	names []artifact.Name
	slots map[artifact.Name]*slot

	mu       sync.Mutex
	dataDir  string // effective data dir after manifest resolution; guarded by mu
	resolved atomic.Bool

	initMu sync.Mutex
	ready  atomic.Bool

	report atomic.Pointer[LoadReport]
}

// NewCacheWithConfig creates a Cache with every slot empty. It performs no
// I/O: the manifest is read on first use.
//
// Panics if cfg.Validate() reports any errors.
func NewCacheWithConfig(cfg CacheConfig) *Cache {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("dcsdata: invalid cache config: %v", err))
	}

	names := artifact.Names()
	slots := make(map[artifact.Name]*slot, len(names))
	for _, n := range names {
		slots[n] = &slot{name: n}
	}
	return &Cache{cfg: cfg, names: names, slots: slots}
}

// Get returns the tensor for name, loading it on first access.
//
// Unknown names return ErrUnknownArtifact. A failed load returns a *LoadError
// and leaves the slot empty; the caller decides whether to abort.
func (c *Cache) Get(name artifact.Name) (*tensor.Dense, error) {
	s, ok := c.slots[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArtifact, name)
	}
	if t := s.value.Load(); t != nil {
		return t, nil
	}
	return c.load(s)
}

// MustGet is like Get but panics on any error.
func (c *Cache) MustGet(name artifact.Name) *tensor.Dense {
	t, err := c.Get(name)
	if err != nil {
		panic(fmt.Sprintf("dcsdata: %v", err))
	}
	return t
}

// load fills s under mu. Another goroutine may have filled it while we
// waited for the lock.
func (c *Cache) load(s *slot) (*tensor.Dense, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t := s.value.Load(); t != nil {
		return t, nil
	}
	if err := c.resolveLocked(); err != nil {
		return nil, &LoadError{Name: s.name, Err: err}
	}

	start := time.Now()
	t, err := c.cfg.Loader.Load(s.path)
	if err == nil && t == nil {
		err = fmt.Errorf("%w: loader returned no tensor", ErrMalformedTensor)
	}
	if err != nil {
		Logger().Error("failed to load reference artifact", "name", s.name, "path", s.path, "error", err)
		return nil, &LoadError{Name: s.name, Path: s.path, Err: err}
	}

	s.value.Store(t)
	Logger().Debug("loaded reference artifact",
		"name", s.name, "path", s.path, "shape", t.Shape(), "elapsed", time.Since(start).Round(time.Microsecond))
	return t, nil
}

// resolveLocked builds the path table: defaults under DataDir, then the
// manifest, then per-artifact overrides. A failure is not cached so a later
// call can retry. Caller must hold mu.
func (c *Cache) resolveLocked() error {
	if c.resolved.Load() {
		return nil
	}

	dataDir := c.cfg.DataDir
	table := artifact.DefaultTable(dataDir)

	if c.cfg.ManifestPath != "" {
		m, err := manifest.Load(c.cfg.ManifestPath)
		if err != nil {
			return err
		}
		m.Apply(table)
		if m.RelocatesDefaults() {
			dataDir = m.DataDir
		}
	}
	for name, p := range c.cfg.Paths {
		table[name] = p
	}

	for _, n := range c.names {
		c.slots[n].path = table[n]
	}
	c.dataDir = dataDir
	c.resolved.Store(true)
	return nil
}

// resolve is resolveLocked for callers that do not hold mu.
func (c *Cache) resolve() error {
	if c.resolved.Load() {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolveLocked()
}

// EnsureAllLoaded loads every declared artifact in declaration order. It
// stops at the first failure unless ReportAllFailures is set. Artifacts that
// are already resident are not read again.
func (c *Cache) EnsureAllLoaded() LoadReport {
	start := time.Now()
	var r LoadReport

	for i, name := range c.names {
		if _, err := c.Get(name); err != nil {
			var le *LoadError
			if !errors.As(err, &le) {
				le = &LoadError{Name: name, Err: err}
			}
			r.Failures = append(r.Failures, le)
			if !c.cfg.ReportAllFailures {
				r.Skipped = slices.Clone(c.names[i+1:])
				break
			}
			continue
		}
		r.Loaded = append(r.Loaded, name)
	}

	r.Elapsed = time.Since(start)
	c.report.Store(&r)
	return r
}

// Initialize prepares the cache for a test run: it validates the
// configuration, synchronizes the data directory from the remote (if one is
// configured) and loads every artifact.
//
// Safe to call multiple times: after a successful initialization, subsequent
// calls return nil immediately. After a failure, the next call retries;
// artifacts that did load stay resident and are not read again.
func (c *Cache) Initialize(ctx context.Context) error {
	c.initMu.Lock()
	defer c.initMu.Unlock()

	if c.ready.Load() {
		return nil
	}

	// NewCacheWithConfig already validated; this catches struct-literal
	// construction.
	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.resolve(); err != nil {
		return fmt.Errorf("resolve artifact paths: %w", err)
	}

	if c.cfg.Remote != "" {
		if err := c.syncMirror(ctx); err != nil {
			return fmt.Errorf("sync reference data from %s: %w", c.cfg.Remote, err)
		}
	}

	report := c.EnsureAllLoaded()
	if err := report.Err(); err != nil {
		return fmt.Errorf("initialize: %w", err)
	}

	c.ready.Store(true)
	Logger().Info("reference data ready",
		"artifacts", len(report.Loaded), "elapsed", report.Elapsed.Round(time.Millisecond))
	return nil
}

// syncMirror fetches missing or changed artifacts from the remote into the
// data directory. Slots are not touched.
func (c *Cache) syncMirror(ctx context.Context) error {
	src, err := mirror.ParseSource(ctx, c.cfg.Remote)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			Logger().Warn("failed to close remote source", "source", src.String(), "error", cerr)
		}
	}()

	dataDir, files, err := c.MirrorFiles()
	if err != nil {
		return err
	}

	m, err := mirror.New(mirror.Config{
		DataDir:     dataDir,
		Source:      src,
		Concurrency: c.cfg.SyncConcurrency,
		Logger:      Logger(),
	})
	if err != nil {
		return err
	}

	res, err := m.Sync(ctx, files)
	if err != nil {
		return err
	}
	for _, name := range res.Skipped {
		Logger().Warn("artifact outside data directory not mirrored", "name", name)
	}
	return nil
}

// Names returns every declared artifact in load order.
func (c *Cache) Names() []artifact.Name {
	return slices.Clone(c.names)
}

// DataDir returns the effective data directory: the configured one, or the
// manifest's dataDir when the manifest sets one.
func (c *Cache) DataDir() (string, error) {
	if err := c.resolve(); err != nil {
		return "", fmt.Errorf("resolve artifact paths: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dataDir, nil
}

// MirrorFiles returns the effective data directory and one mirror.File per
// declared artifact, in load order.
func (c *Cache) MirrorFiles() (string, []mirror.File, error) {
	if err := c.resolve(); err != nil {
		return "", nil, fmt.Errorf("resolve artifact paths: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	files := make([]mirror.File, 0, len(c.names))
	for _, n := range c.names {
		files = append(files, mirror.File{Name: string(n), Path: c.slots[n].path})
	}
	return c.dataDir, files, nil
}

// Path returns the resolved path of name. It resolves the path table if that
// has not happened yet.
func (c *Cache) Path(name artifact.Name) (string, error) {
	s, ok := c.slots[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownArtifact, name)
	}
	if err := c.resolve(); err != nil {
		return "", fmt.Errorf("resolve artifact paths: %w", err)
	}
	return s.path, nil
}

// Loaded reports whether name is resident. Unknown names report false.
func (c *Cache) Loaded(name artifact.Name) bool {
	s, ok := c.slots[name]
	return ok && s.value.Load() != nil
}

// Report returns the report of the most recent EnsureAllLoaded, or the zero
// LoadReport if none has run.
func (c *Cache) Report() LoadReport {
	if r := c.report.Load(); r != nil {
		return *r
	}
	return LoadReport{}
}
