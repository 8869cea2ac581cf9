// Package manifest reads path-table manifests that relocate reference
// artifacts.
//
// A manifest is a YAML or JSON document with an optional data directory and a
// map from artifact name to path. It can only move declared artifacts; a name
// that is not declared in package artifact is rejected.
package manifest
