// Package core provides the internal implementation of the dcsdata reference
// cache. It contains the Cache (a fixed table of named slots, each filled at
// most once from its path and read lock-free afterwards), the LoadReport
// produced by EnsureAllLoaded, and the package logger.
package core
