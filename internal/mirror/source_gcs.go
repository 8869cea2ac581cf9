package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"cloud.google.com/go/storage"
)

// GCSSource serves artifacts from a Google Cloud Storage bucket.
type GCSSource struct {
	Bucket string
	Prefix string

	client *storage.Client
}

var _ Source = (*GCSSource)(nil)

// NewGCSSource creates a storage client using application default
// credentials.
func NewGCSSource(ctx context.Context, bucket, prefix string) (*GCSSource, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating GCS storage client: %w", err)
	}
	return &GCSSource{Bucket: bucket, Prefix: prefix, client: client}, nil
}

// Fetch streams gs://Bucket/Prefix/key into w.
func (g *GCSSource) Fetch(ctx context.Context, key string, w io.Writer) error {
	name := objectKey(g.Prefix, key)

	r, err := g.client.Bucket(g.Bucket).Object(name).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return fmt.Errorf("gs://%s/%s: %w", g.Bucket, name, fs.ErrNotExist)
		}
		return fmt.Errorf("opening object gs://%s/%s: %w", g.Bucket, name, err)
	}
	defer r.Close() //nolint:errcheck // read-only object

	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("downloading gs://%s/%s: %w", g.Bucket, name, err)
	}
	return nil
}

// Close closes the storage client.
func (g *GCSSource) Close() error {
	return g.client.Close()
}

func (g *GCSSource) String() string {
	return "gs://" + objectKey(g.Bucket, g.Prefix)
}
