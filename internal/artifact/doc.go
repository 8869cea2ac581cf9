// Package artifact declares the fixed set of golden reference artifacts used by
// the DCS regression suite.
//
// The set of names is closed: it is defined here at compile time and nothing
// at runtime can add to it. Configuration may only relocate an artifact by
// overriding its path. Names() returns the declaration order, which is also
// the order in which the cache loads artifacts during initialization.
package artifact
