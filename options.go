package dcsdata

import (
	"fmt"
	"maps"

	"github.com/noa-physics/dcsdata/internal/artifact"
	"github.com/noa-physics/dcsdata/internal/tensorio"
)

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("dcsdata: %s must not be empty", name))
	}
}

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive(name string, v int) {
	if v <= 0 {
		panic(fmt.Sprintf("dcsdata: %s must be greater than 0, got %d", name, v))
	}
}

// CacheOption configures a Cache during construction via NewCache.
//
// Several With* functions panic on invalid input (empty paths, unknown
// names). Option values are normally constants, so an invalid value is a
// programmer error and fails at construction, like [regexp.MustCompile].
type CacheOption func(*cacheConfig)

// WithDataDir sets the directory artifacts are read from at their default
// paths (<dir>/<name>.pt).
//
// Default: DefaultDataDir.
//
// Panics if dir is empty.
func WithDataDir(dir string) CacheOption {
	requireNonEmpty("data directory", dir)
	return func(c *cacheConfig) {
		c.DataDir = dir
	}
}

// WithPath overrides the file of a single artifact. It takes precedence over
// the default path and the manifest. The loader is chosen by the file
// extension, so the override may point at a .safetensors file.
//
// Panics if name is not declared or path is empty.
func WithPath(name Name, path string) CacheOption {
	if !name.IsValid() {
		panic(fmt.Sprintf("dcsdata: unknown artifact %q", name))
	}
	requireNonEmpty(fmt.Sprintf("path for %s", name), path)
	return func(c *cacheConfig) {
		paths := make(map[artifact.Name]string, len(c.Paths)+1)
		maps.Copy(paths, c.Paths)
		paths[name] = path
		c.Paths = paths
	}
}

// WithManifest reads the path table from a YAML or JSON manifest:
//
//	dataDir: noa-test-data/pms
//	artifacts:
//	  pumas_photo: pumas_photo_v2.safetensors
//
// A relative dataDir is resolved against the manifest's directory and
// relative artifact paths against dataDir. The manifest is read on first use,
// not here.
//
// Panics if path is empty.
func WithManifest(path string) CacheOption {
	requireNonEmpty("manifest path", path)
	return func(c *cacheConfig) {
		c.ManifestPath = path
	}
}

// WithRemote makes Initialize mirror the data directory from rawURL before
// loading. Supported forms are gs://bucket/prefix, s3://bucket/prefix,
// file:///dir and a bare directory path. Only artifacts inside the data
// directory are mirrored.
//
// Panics if rawURL is empty. An unsupported scheme is reported by Initialize
// as ErrUnsupportedRemote.
func WithRemote(rawURL string) CacheOption {
	requireNonEmpty("remote URL", rawURL)
	return func(c *cacheConfig) {
		c.Remote = rawURL
	}
}

// WithSyncConcurrency sets the number of artifacts fetched in parallel from
// the remote.
//
// Default: DefaultSyncConcurrency.
//
// Panics if n <= 0.
func WithSyncConcurrency(n int) CacheOption {
	requirePositive("sync concurrency", n)
	return func(c *cacheConfig) {
		c.SyncConcurrency = n
	}
}

// WithLoader replaces the tensor loader. The default dispatches on the file
// extension to the PyTorch (.pt, .pth) and safetensors (.safetensors)
// readers.
//
// Panics if l is nil.
func WithLoader(l tensorio.Loader) CacheOption {
	if l == nil {
		panic("dcsdata: loader must not be nil")
	}
	return func(c *cacheConfig) {
		c.Loader = l
	}
}

// WithReportAllFailures makes EnsureAllLoaded and Initialize attempt every
// artifact and report all failures instead of stopping at the first one.
func WithReportAllFailures() CacheOption {
	return func(c *cacheConfig) {
		c.ReportAllFailures = true
	}
}
