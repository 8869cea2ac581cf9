package dcsdata

// Default configuration values for NewCache.
const (
	// DefaultDataDir is the directory artifacts are read from when neither
	// WithDataDir nor a manifest sets one. It is relative to the working
	// directory of the test binary.
	DefaultDataDir = "noa-test-data/pms"

	// DefaultSyncConcurrency is the number of artifacts fetched in parallel
	// when WithRemote is set.
	DefaultSyncConcurrency = 4
)
