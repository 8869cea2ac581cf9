package dcsdata

import (
	"context"

	"github.com/pdevine/tensor"
)

// Cache hands out the golden reference tensors.
//
// Callers should follow this lifecycle ordering:
//
//	NewCache → Initialize (once, in TestMain) → Get/MustGet (any number, concurrently)
//
// Get also works without Initialize and loads artifacts lazily, but only
// Initialize guarantees that a broken data set stops the run before any test
// executes.
type Cache interface {
	// Initialize validates the configuration, mirrors the data directory from
	// the remote (if WithRemote is set) and loads every artifact.
	// Safe to call multiple times: after a successful initialization,
	// subsequent calls return nil immediately. If initialization fails,
	// subsequent calls retry; artifacts that did load are not read again.
	Initialize(ctx context.Context) error

	// Get returns the tensor for name, loading it on first access. A loaded
	// tensor is returned without I/O or locking. The tensor is shared by all
	// callers and must not be modified.
	//
	// Returns an error matching ErrUnknownArtifact for an undeclared name
	// and a *LoadError matching ErrMissingOrInvalidReferenceData if the
	// artifact cannot be loaded.
	Get(name Name) (*tensor.Dense, error)

	// MustGet is like Get but panics on error.
	MustGet(name Name) *tensor.Dense

	// EnsureAllLoaded loads every declared artifact in declaration order and
	// reports the outcome. It stops at the first failure unless
	// WithReportAllFailures is set.
	EnsureAllLoaded() LoadReport

	// Names returns every declared artifact in load order.
	Names() []Name

	// Path returns the resolved file path of name.
	Path(name Name) (string, error)

	// DataDir returns the effective data directory, which a manifest may
	// relocate.
	DataDir() (string, error)

	// Loaded reports whether name is resident.
	Loaded(name Name) bool

	// Report returns the most recent EnsureAllLoaded report.
	Report() LoadReport
}
