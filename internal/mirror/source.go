package mirror

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/noa-physics/dcsdata/internal/sentinel"
)

// ErrUnsupportedRemote is returned by ParseSource for an unknown URL scheme.
const ErrUnsupportedRemote = sentinel.Error("unsupported remote URL")

// Source is a read-only store of reference artifacts addressed by
// slash-separated keys relative to the store's root.
type Source interface {
	// Fetch streams the object named key into w. If the object does not
	// exist, the returned error satisfies errors.Is(err, fs.ErrNotExist).
	Fetch(ctx context.Context, key string, w io.Writer) error

	// Close releases any client held by the source.
	Close() error

	// String returns the source URL for logs and diagnostics.
	String() string
}

// ParseSource returns the Source for rawURL. Supported forms are
// gs://bucket/prefix, s3://bucket/prefix, file:///dir and a bare directory
// path.
//
//nolint:ireturn // the concrete type depends on the URL scheme
func ParseSource(ctx context.Context, rawURL string) (Source, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: empty", ErrUnsupportedRemote)
	}
	if !strings.Contains(rawURL, "://") {
		return &DirSource{Root: rawURL}, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "file":
		return &DirSource{Root: u.Path}, nil
	case "gs":
		bucket, prefix, err := splitBucketURL(u)
		if err != nil {
			return nil, err
		}
		src, err := NewGCSSource(ctx, bucket, prefix)
		if err != nil {
			return nil, err
		}
		return src, nil
	case "s3":
		bucket, prefix, err := splitBucketURL(u)
		if err != nil {
			return nil, err
		}
		src, err := NewS3Source(ctx, bucket, prefix)
		if err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("%w: scheme %q in %q", ErrUnsupportedRemote, u.Scheme, rawURL)
	}
}

// splitBucketURL extracts the bucket (host) and the object key prefix (path
// without leading or trailing slashes) from a bucket URL.
func splitBucketURL(u *url.URL) (string, string, error) {
	if u.Host == "" {
		return "", "", fmt.Errorf("%w: %q has no bucket", ErrUnsupportedRemote, u.String())
	}
	return u.Host, strings.Trim(u.Path, "/"), nil
}

// objectKey joins a store prefix and an artifact key.
func objectKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}
