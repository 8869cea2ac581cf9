// Package mirror keeps a local data directory in step with a remote copy of
// the golden reference artifacts.
//
// Sync runs under an exclusive file lock in the data directory, so several
// test binaries started in parallel (go test ./...) can share one mirror: the
// first one fetches, the others wait on the lock and then find every file up
// to date. A SQLite index in the data directory records the sha256 and size of
// every fetched file; a local file whose content no longer matches its index
// entry is fetched again. Files are written atomically, so a reader never
// sees a partial artifact.
//
// Remote stores are reached through Source. ParseSource understands gs://
// (Google Cloud Storage), s3:// (Amazon S3) and file:// or plain directory
// paths.
package mirror
