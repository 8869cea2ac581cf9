package mirror

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirSource serves artifacts from a directory, typically a shared or network
// mount holding the canonical copy.
type DirSource struct {
	Root string
}

var _ Source = (*DirSource)(nil)

// Fetch copies Root/key into w.
func (d *DirSource) Fetch(ctx context.Context, key string, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p := filepath.Join(d.Root, filepath.FromSlash(key))
	f, err := os.Open(p) //nolint:gosec // G304: key comes from the artifact table
	if err != nil {
		return fmt.Errorf("open %s: %w", p, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("copy %s: %w", p, err)
	}
	return nil
}

// Close is a no-op.
func (d *DirSource) Close() error { return nil }

func (d *DirSource) String() string {
	return "file://" + filepath.ToSlash(d.Root)
}
