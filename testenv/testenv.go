package testenv

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"testing"

	"github.com/noa-physics/dcsdata"
	"github.com/pdevine/tensor"
)

// Environment variables read by EnvOptions and SetupLogging.
const (
	EnvDataDir  = "DCSDATA_DIR"
	EnvManifest = "DCSDATA_MANIFEST"
	EnvRemote   = "DCSDATA_REMOTE"
	EnvLogLevel = "DCSDATA_LOG_LEVEL"
)

// SetupLogging configures slog from DCSDATA_LOG_LEVEL (default INFO) and
// routes dcsdata's logger through it.
func SetupLogging() {
	levelStr := os.Getenv(EnvLogLevel)
	if levelStr == "" {
		levelStr = "INFO"
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))

	dcsdata.SetLogger(slog.Default().With("component", "dcsdata"))
}

// EnvOptions returns the cache options selected by the DCSDATA_*
// environment variables. Unset or empty variables contribute nothing.
func EnvOptions() []dcsdata.CacheOption {
	var opts []dcsdata.CacheOption
	if dir := os.Getenv(EnvDataDir); dir != "" {
		opts = append(opts, dcsdata.WithDataDir(dir))
	}
	if path := os.Getenv(EnvManifest); path != "" {
		opts = append(opts, dcsdata.WithManifest(path))
	}
	if remote := os.Getenv(EnvRemote); remote != "" {
		opts = append(opts, dcsdata.WithRemote(remote))
	}
	return opts
}

// runner is the part of *testing.M that Main uses.
type runner interface {
	Run() int
}

// Run initializes the process cache with opts followed by EnvOptions, runs
// the tests and exits. If initialization fails it exits with status 1
// before m.Run is called. Run never returns.
func Run(m *testing.M, opts ...dcsdata.CacheOption) {
	os.Exit(Main(m, opts...))
}

// Main is Run without the os.Exit, for TestMain functions that need to clean
// up after the tests. It returns the exit code.
func Main(m *testing.M, opts ...dcsdata.CacheOption) int {
	flag.Parse()
	SetupLogging()

	cache := dcsdata.NewCache(slices.Concat(opts, EnvOptions())...)
	return run(context.Background(), m, cache, os.Stderr)
}

// run initializes cache and, only if that succeeds, runs m.
func run(ctx context.Context, m runner, cache dcsdata.Cache, stderr io.Writer) int {
	if err := cache.Initialize(ctx); err != nil {
		printFailure(stderr, err, cache.Report())
		return 1
	}
	return m.Run()
}

// printFailure writes the setup diagnostic. Load failures are listed one per
// line with their artifact name and path; any other setup error (bad
// manifest, mirror sync) is printed as is.
func printFailure(w io.Writer, err error, report dcsdata.LoadReport) {
	fmt.Fprintln(w, "dcsdata: reference data unavailable; no tests were run")

	if len(report.Failures) == 0 || !errors.Is(err, dcsdata.ErrMissingOrInvalidReferenceData) {
		fmt.Fprintf(w, "  %v\n", err)
		return
	}
	for _, f := range report.Failures {
		path := f.Path
		if path == "" {
			path = "(path unresolved)"
		}
		fmt.Fprintf(w, "  %s: %s: %v\n", f.Name, path, f.Err)
	}
	if n := len(report.Skipped); n > 0 {
		fmt.Fprintf(w, "  (%d more artifacts not attempted)\n", n)
	}
}

// Tensor returns the reference tensor for name from the process cache,
// failing the test if it cannot be loaded. The tensor is shared and must not
// be modified.
func Tensor(t testing.TB, name dcsdata.Name) *tensor.Dense {
	t.Helper()
	d, err := dcsdata.NewCache().Get(name)
	if err != nil {
		t.Fatalf("reference data: %v", err)
	}
	return d
}
