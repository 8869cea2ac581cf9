// Package sentinel provides a string-backed error type that can be declared
// as a const.
//
// Errors created with errors.New live in package variables that any importer
// could reassign. Error values are plain constants instead, and still work
// with errors.Is through wrapped chains because the type is comparable.
package sentinel
