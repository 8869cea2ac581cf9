// Package fileutil provides the small set of filesystem helpers the mirror
// needs: recursive directory creation and atomic temp-file-then-rename
// writes, so that a test process never observes a half-written reference
// artifact.
package fileutil
