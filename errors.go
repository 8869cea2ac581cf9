package dcsdata

import "github.com/noa-physics/dcsdata/internal/core"

// Sentinel errors for error inspection with errors.Is.
const (
	// ErrMissingOrInvalidReferenceData is matched by every failure to load
	// a declared artifact, whether the file is missing, unreadable or
	// malformed. A *LoadError carries the artifact name and path.
	ErrMissingOrInvalidReferenceData = core.ErrMissingOrInvalidReferenceData

	// ErrUnknownArtifact is returned for a name outside the declared set.
	// It indicates a programming error.
	ErrUnknownArtifact = core.ErrUnknownArtifact

	// ErrUnsupportedFormat is returned when an artifact's file extension
	// has no registered loader.
	ErrUnsupportedFormat = core.ErrUnsupportedFormat

	// ErrMalformedTensor is returned when an artifact file cannot be decoded
	// into exactly one numeric tensor.
	ErrMalformedTensor = core.ErrMalformedTensor

	// ErrUnsupportedRemote is returned by Initialize when the WithRemote URL
	// has an unknown scheme.
	ErrUnsupportedRemote = core.ErrUnsupportedRemote
)

// LoadError reports a failed load of one artifact. It matches both
// ErrMissingOrInvalidReferenceData and its cause under errors.Is.
type LoadError = core.LoadError

// LoadReport is the outcome of EnsureAllLoaded. Its Err method returns nil
// on success or every failure joined into one error.
type LoadReport = core.LoadReport
