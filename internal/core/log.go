package core

import (
	"log/slog"
	"sync/atomic"
)

// logger is the package-level logger, stored as an atomic pointer so that
// SetLogger may race with loads. A nil value means no custom logger has been
// set.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches slog.Default() with the dcsdata component attribute so
// it is not rebuilt on every Logger call. A later slog.SetDefault is only
// picked up after SetLogger(nil).
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the current package-level logger. It is safe to call from
// multiple goroutines.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := slog.Default().With("component", "dcsdata")
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	// A concurrent SetLogger may have cleared the cache after our CAS lost.
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// SetLogger replaces the package-level logger. If l is nil, the logger resets
// to slog.Default() with the component attribute, re-derived on the next
// Logger call.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
