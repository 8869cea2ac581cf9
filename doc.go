// Package dcsdata provides the golden reference tensors used by the DCS
// regression tests.
//
// Every artifact is a precomputed tensor file identified by a fixed Name. The
// cache loads each one at most once per process and hands out the same
// tensor on every later request. A missing or corrupt artifact is an
// environment error, so the intended entry point is TestMain: initialize the
// cache there and exit before any test runs if loading fails.
//
// # Basic Usage
//
//	import "github.com/noa-physics/dcsdata"
//
//	func TestMain(m *testing.M) {
//	    cache := dcsdata.NewCache(dcsdata.WithDataDir("testdata/pms"))
//	    if err := cache.Initialize(context.Background()); err != nil {
//	        fmt.Fprintln(os.Stderr, err)
//	        os.Exit(1)
//	    }
//	    os.Exit(m.Run())
//	}
//
//	func TestBremsstrahlung(t *testing.T) {
//	    want := dcsdata.NewCache().MustGet(dcsdata.PumasBrems)
//	    // compare against the computed table...
//	}
//
// The testenv package wraps this TestMain pattern and reads its configuration
// from the environment.
//
// # Path Table
//
// By default an artifact lives at <DataDir>/<name>.pt. A manifest
// (WithManifest) may move the data directory or individual artifacts, and
// WithPath overrides a single artifact. Later sources win: defaults, then the
// manifest, then WithPath.
//
// # Remote Data
//
// WithRemote names a gs://, s3:// or file:// location holding the canonical
// copy. Initialize then mirrors missing or changed artifacts into the data
// directory before loading, under a file lock shared with other test
// processes.
package dcsdata
