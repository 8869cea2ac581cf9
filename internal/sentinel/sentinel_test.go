package sentinel

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Message(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  Error
		want string
	}{
		"artifact message": {err: Error("reference data missing"), want: "reference data missing"},
		"empty":            {err: Error(""), want: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestError_MatchesThroughWrapping(t *testing.T) {
	t.Parallel()

	const errMissing = Error("missing")
	const errOther = Error("other")

	tests := map[string]struct {
		err    error
		target error
		want   bool
	}{
		"direct":              {err: errMissing, target: errMissing, want: true},
		"wrapped once":        {err: fmt.Errorf("load: %w", errMissing), target: errMissing, want: true},
		"wrapped twice":       {err: fmt.Errorf("init: %w", fmt.Errorf("load: %w", errMissing)), target: errMissing, want: true},
		"joined":              {err: errors.Join(errOther, errMissing), target: errMissing, want: true},
		"different sentinel":  {err: errMissing, target: errOther, want: false},
		"same text std error": {err: errMissing, target: errors.New("missing"), want: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := errors.Is(tc.err, tc.target); got != tc.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tc.err, tc.target, got, tc.want)
			}
		})
	}
}
