package core

import (
	"github.com/noa-physics/dcsdata/internal/artifact"
	"github.com/noa-physics/dcsdata/internal/mirror"
	"github.com/noa-physics/dcsdata/internal/sentinel"
	"github.com/noa-physics/dcsdata/internal/tensorio"
)

// ErrMissingOrInvalidReferenceData is wrapped by every failure to load a
// declared artifact, whatever the underlying cause.
const ErrMissingOrInvalidReferenceData = sentinel.Error("missing or invalid reference data")

// ErrUnknownArtifact is re-exported from artifact so the public API imports
// only from core.
const ErrUnknownArtifact = artifact.ErrUnknown

// ErrUnsupportedFormat is re-exported from tensorio.
const ErrUnsupportedFormat = tensorio.ErrUnsupportedFormat

// ErrMalformedTensor is re-exported from tensorio.
const ErrMalformedTensor = tensorio.ErrMalformedTensor

// ErrUnsupportedRemote is re-exported from mirror.
const ErrUnsupportedRemote = mirror.ErrUnsupportedRemote
