// Package testenv wires the dcsdata cache into a test binary's TestMain.
//
//	func TestMain(m *testing.M) {
//	    testenv.Run(m, dcsdata.WithDataDir("../noa-test-data/pms"))
//	}
//
//	func TestIonisation(t *testing.T) {
//	    want := testenv.Tensor(t, dcsdata.PumasIon)
//	    // ...
//	}
//
// Run loads every reference artifact before any test executes. If one is
// missing or corrupt it prints a diagnostic naming the artifact and its path
// and exits with status 1 without running a single test.
//
// The environment can redirect a run without code changes:
//
//	DCSDATA_DIR        data directory (overrides WithDataDir)
//	DCSDATA_MANIFEST   manifest file (overrides WithManifest)
//	DCSDATA_REMOTE     remote to mirror from before loading
//	DCSDATA_LOG_LEVEL  slog level for the run (DEBUG, INFO, WARN, ERROR)
package testenv
