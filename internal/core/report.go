package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/noa-physics/dcsdata/internal/artifact"
)

// LoadError reports a failed load of one artifact. It matches both
// ErrMissingOrInvalidReferenceData and the underlying cause under errors.Is.
type LoadError struct {
	Name artifact.Name
	Path string // empty if the path table could not be resolved
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s: %v", ErrMissingOrInvalidReferenceData, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %s at %s: %v", ErrMissingOrInvalidReferenceData, e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrMissingOrInvalidReferenceData, e.Err}
}

// LoadReport is the outcome of EnsureAllLoaded.
type LoadReport struct {
	// Loaded lists the artifacts resident after the run, in load order.
	Loaded []artifact.Name

	// Failures lists every artifact that failed to load, in load order.
	// Without ReportAllFailures it holds at most one entry.
	Failures []*LoadError

	// Skipped lists the artifacts not attempted because the run stopped at
	// the first failure.
	Skipped []artifact.Name

	Elapsed time.Duration
}

// OK reports whether every declared artifact loaded.
func (r LoadReport) OK() bool {
	return len(r.Failures) == 0 && len(r.Skipped) == 0
}

// FailedNames returns the names of the failed artifacts.
func (r LoadReport) FailedNames() []artifact.Name {
	names := make([]artifact.Name, 0, len(r.Failures))
	for _, f := range r.Failures {
		names = append(names, f.Name)
	}
	return names
}

// Err returns nil if every artifact loaded, otherwise the failures joined
// into a single error.
func (r LoadReport) Err() error {
	if len(r.Failures) == 0 {
		return nil
	}
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
