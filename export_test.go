package dcsdata

import "github.com/noa-physics/dcsdata/internal/tensorio"

// ResetForTesting resets the singleton cache state so that the next call to
// NewCache creates a fresh instance. This is exported only for use in test
// packages (package dcsdata_test).
func ResetForTesting() { resetForTesting() }

// ConfigSnapshot holds a copy of cacheConfig fields for test assertions.
type ConfigSnapshot struct {
	DataDir           string
	ManifestPath      string
	Paths             map[Name]string
	Remote            string
	SyncConcurrency   int
	Loader            tensorio.Loader
	ReportAllFailures bool
}

// ApplyOptionsForTesting creates a default cacheConfig, applies the given
// options, and returns a ConfigSnapshot of the result.
func ApplyOptionsForTesting(opts ...CacheOption) ConfigSnapshot {
	cfg := defaultCacheConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		DataDir:           cfg.DataDir,
		ManifestPath:      cfg.ManifestPath,
		Paths:             cfg.Paths,
		Remote:            cfg.Remote,
		SyncConcurrency:   cfg.SyncConcurrency,
		Loader:            cfg.Loader,
		ReportAllFailures: cfg.ReportAllFailures,
	}
}
