package dcsdata_test

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/noa-physics/dcsdata"
	"github.com/noa-physics/dcsdata/internal/tensorio"
	"github.com/pdevine/tensor"
)

// panicTestCase defines a test case for option validation panic tests.
type panicTestCase struct {
	name     string
	panics   bool
	panicMsg string
	fn       func()
}

// requirePanics calls fn and verifies it panics (or not) with the expected message.
func requirePanics(t *testing.T, shouldPanic bool, wantMsg string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if shouldPanic && r == nil {
			t.Fatal("expected panic but didn't get one")
		}
		if !shouldPanic && r != nil {
			t.Fatalf("unexpected panic: %v", r)
		}
		if shouldPanic && r != nil {
			if msg := fmt.Sprint(r); msg != wantMsg {
				t.Fatalf("expected panic message %q, got %q", wantMsg, msg)
			}
		}
	}()
	fn()
}

// runPanicTests runs a slice of panic test cases using requirePanics.
func runPanicTests(t *testing.T, tests []panicTestCase) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			requirePanics(t, tt.panics, tt.panicMsg, tt.fn)
		})
	}
}

func TestWithPathPanicsOnInvalid(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "unknown name",
			panics:   true,
			panicMsg: `dcsdata: unknown artifact "pumas_gravity"`,
			fn:       func() { dcsdata.WithPath("pumas_gravity", "/x.pt") },
		},
		{
			name:     "empty path",
			panics:   true,
			panicMsg: "dcsdata: path for pumas_photo must not be empty",
			fn:       func() { dcsdata.WithPath(dcsdata.PumasPhoto, "") },
		},
		{name: "valid", fn: func() { dcsdata.WithPath(dcsdata.PumasPhoto, "/x.pt") }},
	})
}

func TestWithSyncConcurrencyPanicsOnInvalid(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "zero",
			panics:   true,
			panicMsg: "dcsdata: sync concurrency must be greater than 0, got 0",
			fn:       func() { dcsdata.WithSyncConcurrency(0) },
		},
		{
			name:     "negative",
			panics:   true,
			panicMsg: "dcsdata: sync concurrency must be greater than 0, got -3",
			fn:       func() { dcsdata.WithSyncConcurrency(-3) },
		},
		{name: "valid", fn: func() { dcsdata.WithSyncConcurrency(8) }},
	})
}

func TestWithEmptyStringOptionsPanic(t *testing.T) {
	t.Parallel()
	runPanicTests(t, []panicTestCase{
		{
			name:     "WithDataDir",
			panics:   true,
			panicMsg: "dcsdata: data directory must not be empty",
			fn:       func() { dcsdata.WithDataDir("") },
		},
		{
			name:     "WithManifest",
			panics:   true,
			panicMsg: "dcsdata: manifest path must not be empty",
			fn:       func() { dcsdata.WithManifest("") },
		},
		{
			name:     "WithRemote",
			panics:   true,
			panicMsg: "dcsdata: remote URL must not be empty",
			fn:       func() { dcsdata.WithRemote("") },
		},
		{
			name:     "WithLoader",
			panics:   true,
			panicMsg: "dcsdata: loader must not be nil",
			fn:       func() { dcsdata.WithLoader(nil) },
		},
	})
}

func TestOptionApplicationDefaults(t *testing.T) {
	t.Parallel()

	snap := dcsdata.ApplyOptionsForTesting()

	if snap.DataDir != dcsdata.DefaultDataDir {
		t.Errorf("DataDir = %q, want %q", snap.DataDir, dcsdata.DefaultDataDir)
	}
	if snap.SyncConcurrency != dcsdata.DefaultSyncConcurrency {
		t.Errorf("SyncConcurrency = %d, want %d", snap.SyncConcurrency, dcsdata.DefaultSyncConcurrency)
	}
	if _, ok := snap.Loader.(*tensorio.ExtLoader); !ok {
		t.Errorf("Loader = %T, want *tensorio.ExtLoader", snap.Loader)
	}
	if snap.ManifestPath != "" || snap.Remote != "" || snap.Paths != nil || snap.ReportAllFailures {
		t.Errorf("unexpected non-default snapshot: %+v", snap)
	}
}

func TestOptionApplicationOverrides(t *testing.T) {
	t.Parallel()

	loader := tensorio.LoaderFunc(func(string) (*tensor.Dense, error) { return nil, nil })
	snap := dcsdata.ApplyOptionsForTesting(
		dcsdata.WithDataDir("/golden"),
		dcsdata.WithManifest("/golden/manifest.yaml"),
		dcsdata.WithPath(dcsdata.PumasPhoto, "/golden/photo.safetensors"),
		dcsdata.WithPath(dcsdata.PumasIon, "/golden/ion.pt"),
		dcsdata.WithPath(dcsdata.PumasPhoto, "/golden/photo_v2.safetensors"),
		dcsdata.WithRemote("gs://noa-golden/pms"),
		dcsdata.WithSyncConcurrency(16),
		dcsdata.WithLoader(loader),
		dcsdata.WithReportAllFailures(),
	)

	if snap.DataDir != "/golden" {
		t.Errorf("DataDir = %q, want /golden", snap.DataDir)
	}
	if snap.ManifestPath != "/golden/manifest.yaml" {
		t.Errorf("ManifestPath = %q, want /golden/manifest.yaml", snap.ManifestPath)
	}
	wantPaths := map[dcsdata.Name]string{
		dcsdata.PumasPhoto: "/golden/photo_v2.safetensors",
		dcsdata.PumasIon:   "/golden/ion.pt",
	}
	if diff := cmp.Diff(wantPaths, snap.Paths); diff != "" {
		t.Errorf("Paths mismatch (-want +got):\n%s", diff)
	}
	if snap.Remote != "gs://noa-golden/pms" {
		t.Errorf("Remote = %q, want gs://noa-golden/pms", snap.Remote)
	}
	if snap.SyncConcurrency != 16 {
		t.Errorf("SyncConcurrency = %d, want 16", snap.SyncConcurrency)
	}
	if snap.Loader == nil {
		t.Error("Loader not applied")
	}
	if !snap.ReportAllFailures {
		t.Error("ReportAllFailures not applied")
	}
}

// TestWithPathDoesNotAlias verifies that applying the same option list to two
// configs does not share the Paths map between them.
func TestWithPathDoesNotAlias(t *testing.T) {
	t.Parallel()

	opts := []dcsdata.CacheOption{dcsdata.WithPath(dcsdata.PumasMu0, "/a.pt")}
	first := dcsdata.ApplyOptionsForTesting(opts...)
	second := dcsdata.ApplyOptionsForTesting(append(opts, dcsdata.WithPath(dcsdata.PumasLbH, "/b.pt"))...)

	if len(first.Paths) != 1 {
		t.Errorf("first config has %d overrides, want 1", len(first.Paths))
	}
	if len(second.Paths) != 2 {
		t.Errorf("second config has %d overrides, want 2", len(second.Paths))
	}
}

func TestNamesAndParse(t *testing.T) {
	t.Parallel()

	names := dcsdata.Names()
	if len(names) != 20 {
		t.Fatalf("Names() returned %d names, want 20", len(names))
	}
	if names[0] != dcsdata.KineticEnergies || names[len(names)-1] != dcsdata.PumasSoftScatter {
		t.Errorf("Names() order = %v, want kinetic_energies first and pumas_soft_scatter last", names)
	}

	if n, err := dcsdata.ParseName("pumas_lb_h"); err != nil || n != dcsdata.PumasLbH {
		t.Errorf("ParseName(pumas_lb_h) = %q, %v", n, err)
	}
	if _, err := dcsdata.ParseName("pumas_gravity"); err == nil {
		t.Error("ParseName accepted an undeclared name")
	}
}
