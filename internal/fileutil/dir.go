package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates path and any missing parents with mode 0o755.
func EnsureDir(path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// EnsureDirForFile creates the directory that will hold filePath.
func EnsureDirForFile(filePath string) error {
	return EnsureDir(filepath.Dir(filePath))
}
