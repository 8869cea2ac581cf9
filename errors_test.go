package dcsdata_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/noa-physics/dcsdata"
)

// TestPublicErrorConstants verifies that every exported error constant has a
// message, matches itself directly and through wrapping, and does not match
// an unrelated error.
func TestPublicErrorConstants(t *testing.T) {
	t.Parallel()

	allErrors := map[string]error{
		"ErrMalformedTensor":               dcsdata.ErrMalformedTensor,
		"ErrMissingOrInvalidReferenceData": dcsdata.ErrMissingOrInvalidReferenceData,
		"ErrUnknownArtifact":               dcsdata.ErrUnknownArtifact,
		"ErrUnsupportedFormat":             dcsdata.ErrUnsupportedFormat,
		"ErrUnsupportedRemote":             dcsdata.ErrUnsupportedRemote,
	}

	for name, sentinel := range allErrors {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if msg := sentinel.Error(); msg == "" {
				t.Errorf("%s.Error() returned empty string", name)
			}
			if !errors.Is(sentinel, sentinel) {
				t.Errorf("errors.Is(%s, %s) = false, want true", name, name)
			}
			if wrapped := fmt.Errorf("wrapping: %w", sentinel); !errors.Is(wrapped, sentinel) {
				t.Errorf("errors.Is(wrapped %s) = false, want true", name)
			}
			if errors.Is(sentinel, errors.New("some other error")) {
				t.Errorf("errors.Is(%s, errors.New(...)) = true, want false", name)
			}
		})
	}
}

// TestPublicErrorConstantsAreDistinct verifies that no two exported error
// constants match each other.
func TestPublicErrorConstantsAreDistinct(t *testing.T) {
	t.Parallel()

	named := []struct {
		name string
		err  error
	}{
		{"ErrMalformedTensor", dcsdata.ErrMalformedTensor},
		{"ErrMissingOrInvalidReferenceData", dcsdata.ErrMissingOrInvalidReferenceData},
		{"ErrUnknownArtifact", dcsdata.ErrUnknownArtifact},
		{"ErrUnsupportedFormat", dcsdata.ErrUnsupportedFormat},
		{"ErrUnsupportedRemote", dcsdata.ErrUnsupportedRemote},
	}

	for i, a := range named {
		for _, b := range named[i+1:] {
			if errors.Is(a.err, b.err) || errors.Is(b.err, a.err) {
				t.Errorf("%s and %s match each other: constants must be distinct", a.name, b.name)
			}
		}
	}
}

func TestLoadErrorMatchesSentinelAndCause(t *testing.T) {
	t.Parallel()

	var err error = &dcsdata.LoadError{
		Name: dcsdata.PumasPhoto,
		Path: "noa-test-data/pms/pumas_photo.pt",
		Err:  fmt.Errorf("open: %w", fs.ErrNotExist),
	}

	if !errors.Is(err, dcsdata.ErrMissingOrInvalidReferenceData) {
		t.Error("LoadError does not match ErrMissingOrInvalidReferenceData")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("LoadError does not match its cause")
	}

	var le *dcsdata.LoadError
	if !errors.As(fmt.Errorf("initialize: %w", err), &le) || le.Name != dcsdata.PumasPhoto {
		t.Errorf("errors.As did not recover the LoadError for pumas_photo")
	}
}
