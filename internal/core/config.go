package core

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/noa-physics/dcsdata/internal/artifact"
	"github.com/noa-physics/dcsdata/internal/tensorio"
)

// CacheConfig holds configuration for a Cache.
//
// All fields are immutable after construction via NewCacheWithConfig.
type CacheConfig struct {
	// DataDir is the directory holding artifacts at their default paths
	// (<DataDir>/<name>.pt). A manifest that sets dataDir replaces it.
	DataDir string

	// ManifestPath is an optional YAML or JSON manifest overriding the
	// default path table. Empty means no manifest.
	ManifestPath string

	// Paths overrides the path of individual artifacts. It takes precedence
	// over both the defaults and the manifest.
	Paths map[artifact.Name]string

	// Remote is an optional source URL (gs://, s3://, file:// or a bare
	// directory). When set, Initialize synchronizes the data directory from
	// it before loading.
	Remote string

	// SyncConcurrency is the number of parallel fetches during a mirror
	// sync. Zero uses the mirror default.
	SyncConcurrency int

	// Loader reads one tensor file. Required.
	Loader tensorio.Loader

	// ReportAllFailures makes EnsureAllLoaded attempt every artifact and
	// report every failure instead of stopping at the first one.
	ReportAllFailures bool
}

// Validate checks all CacheConfig invariants and returns an error describing
// every violation found.
func (c CacheConfig) Validate() error {
	var errs []error

	if c.DataDir == "" {
		errs = append(errs, errors.New("data directory must not be empty"))
	}
	if c.Loader == nil {
		errs = append(errs, errors.New("loader must not be nil"))
	}
	if c.SyncConcurrency < 0 {
		errs = append(errs, fmt.Errorf("sync concurrency must not be negative, got %d", c.SyncConcurrency))
	}

	for _, name := range slices.Sorted(maps.Keys(c.Paths)) {
		if !name.IsValid() {
			errs = append(errs, fmt.Errorf("path override: %w: %q", ErrUnknownArtifact, name))
			continue
		}
		if c.Paths[name] == "" {
			errs = append(errs, fmt.Errorf("path override for %s must not be empty", name))
		}
	}

	return errors.Join(errs...)
}
