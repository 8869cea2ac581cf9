package artifact

import "github.com/noa-physics/dcsdata/internal/sentinel"

// ErrUnknown is returned when a name is not one of the declared artifacts.
const ErrUnknown = sentinel.Error("unknown reference artifact")
