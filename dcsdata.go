package dcsdata

import (
	"context"
	"sync"

	"github.com/noa-physics/dcsdata/internal/core"
	"github.com/noa-physics/dcsdata/internal/tensorio"
	"github.com/pdevine/tensor"
)

// Singleton state for NewCache. The first call creates the cache;
// subsequent calls return the same instance and log a warning.
//
// singletonMu protects both singletonCache and singletonOnce so that
// resetForTesting is concurrency-safe with NewCache.
var (
	singletonMu    sync.Mutex
	singletonCache Cache
	singletonOnce  sync.Once
)

var _ Cache = (*cacheWrapper)(nil)

// cacheWrapper wraps core.Cache to implement the Cache interface. The
// core.Cache is a named field rather than embedded so that type assertions
// cannot reach methods outside the interface.
type cacheWrapper struct {
	cache *core.Cache
}

func (w *cacheWrapper) Initialize(ctx context.Context) error {
	return w.cache.Initialize(ctx)
}

func (w *cacheWrapper) Get(name Name) (*tensor.Dense, error) {
	return w.cache.Get(name)
}

func (w *cacheWrapper) MustGet(name Name) *tensor.Dense {
	return w.cache.MustGet(name)
}

func (w *cacheWrapper) EnsureAllLoaded() LoadReport {
	return w.cache.EnsureAllLoaded()
}

func (w *cacheWrapper) Names() []Name {
	return w.cache.Names()
}

func (w *cacheWrapper) Path(name Name) (string, error) {
	return w.cache.Path(name)
}

func (w *cacheWrapper) DataDir() (string, error) {
	return w.cache.DataDir()
}

func (w *cacheWrapper) Loaded(name Name) bool {
	return w.cache.Loaded(name)
}

func (w *cacheWrapper) Report() LoadReport {
	return w.cache.Report()
}

// defaultCacheConfig returns a cacheConfig populated with all default values.
func defaultCacheConfig() cacheConfig {
	return cacheConfig{core.CacheConfig{
		DataDir:         DefaultDataDir,
		SyncConcurrency: DefaultSyncConcurrency,
		Loader:          tensorio.NewExtLoader(),
	}}
}

// resetForTesting resets the singleton state so that the next call to
// NewCache creates a fresh cache. It must only be called from tests.
func resetForTesting() {
	singletonMu.Lock()
	defer singletonMu.Unlock()

	singletonCache = nil
	singletonOnce = sync.Once{}
}

// New returns a cache that is not shared with NewCache. It is meant for
// tools and tests that need several independently configured caches in one
// process; test suites should use NewCache.
//
// Panics if any option receives an invalid value.
//
//nolint:ireturn // Returns Cache interface by design for testability (mockable).
func New(opts ...CacheOption) Cache {
	cfg := defaultCacheConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &cacheWrapper{cache: core.NewCacheWithConfig(cfg.toCoreConfig())}
}

// NewCache returns the process-level singleton Cache.
//
// The first call creates the cache with the given options and stores it.
// Subsequent calls return the same instance; their options are ignored, with
// a warning if any were passed. This performs no I/O operations.
//
// Panics if any option receives an invalid value. See individual With*
// functions for constraints.
//
//nolint:ireturn // Returns Cache interface by design for testability (mockable).
func NewCache(opts ...CacheOption) Cache {
	singletonMu.Lock()
	defer singletonMu.Unlock()

	created := false
	singletonOnce.Do(func() {
		singletonCache = New(opts...)
		created = true
	})
	if !created && len(opts) > 0 {
		core.Logger().Warn("NewCache called more than once; returning existing singleton (options ignored)")
	}
	return singletonCache
}
