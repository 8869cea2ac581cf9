package dcsdata

import (
	"log/slog"

	"github.com/noa-physics/dcsdata/internal/core"
)

// SetLogger replaces the package-level logger used by dcsdata. The provided
// logger should already carry any desired attributes; dcsdata adds none.
//
// If l is nil, the logger resets to slog.Default() with a "component"
// attribute, re-derived on the next log call. Call SetLogger(nil) after
// slog.SetDefault() to pick up the change.
//
// SetLogger is safe to call concurrently with other dcsdata operations. For a
// strict happens-before guarantee, call it in TestMain before m.Run.
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
