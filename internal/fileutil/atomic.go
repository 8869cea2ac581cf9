package fileutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/noa-physics/dcsdata/internal/sentinel"
)

// ErrEmptyDst is returned when a destination path is empty.
const ErrEmptyDst = sentinel.Error("destination path must not be empty")

// WriteFileAtomic creates dst with the content produced by write.
//
// The content goes to a temporary file in dst's directory, is fsynced, and is
// renamed over dst only if write succeeds. On any error the temporary file is
// removed and dst is left untouched. The file is created with mode 0o644.
// It returns the number of bytes written.
func WriteFileAtomic(dst string, write func(w io.Writer) error) (n int64, retErr error) {
	if dst == "" {
		return 0, ErrEmptyDst
	}
	if err := EnsureDirForFile(dst); err != nil {
		return 0, fmt.Errorf("prepare destination: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".tmp-"+filepath.Base(dst)+"-*")
	if err != nil {
		return 0, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if retErr != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if err := tmp.Chmod(0o644); err != nil {
		return 0, fmt.Errorf("chmod temp file: %w", err)
	}

	cw := &countingWriter{w: tmp}
	if err := write(cw); err != nil {
		return 0, err
	}

	// fsync before rename so a crash cannot leave a renamed file with
	// incomplete contents.
	if err := tmp.Sync(); err != nil {
		return 0, fmt.Errorf("sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dst); err != nil {
		return 0, fmt.Errorf("rename temp file to destination: %w", err)
	}
	return cw.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
