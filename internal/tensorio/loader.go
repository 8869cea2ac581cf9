package tensorio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/noa-physics/dcsdata/internal/sentinel"
	"github.com/pdevine/tensor"
)

// ErrUnsupportedFormat is returned when no loader is registered for a file's
// extension.
const ErrUnsupportedFormat = sentinel.Error("unsupported tensor file format")

// ErrMalformedTensor is returned when a file exists but does not hold exactly
// one well-formed numeric tensor.
const ErrMalformedTensor = sentinel.Error("malformed tensor file")

// Loader reads one tensor from a file.
type Loader interface {
	Load(path string) (*tensor.Dense, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(path string) (*tensor.Dense, error)

// Load calls f(path).
func (f LoaderFunc) Load(path string) (*tensor.Dense, error) {
	return f(path)
}

// Compile-time interface satisfaction checks.
var (
	_ Loader = LoaderFunc(nil)
	_ Loader = TorchLoader{}
	_ Loader = SafetensorsLoader{}
	_ Loader = (*ExtLoader)(nil)
	_ Loader = (*CountingLoader)(nil)
)

// ExtLoader selects a Loader by the lower-cased file extension of the path.
// The zero value is not usable; create one with NewExtLoader.
type ExtLoader struct {
	byExt map[string]Loader
}

// NewExtLoader returns an ExtLoader that understands .pt, .pth and
// .safetensors files.
func NewExtLoader() *ExtLoader {
	return &ExtLoader{byExt: map[string]Loader{
		".pt":          TorchLoader{},
		".pth":         TorchLoader{},
		".safetensors": SafetensorsLoader{},
	}}
}

// Register installs l for files ending in ext (for example ".npy"),
// replacing any previous registration. It must be called before the loader is
// shared between goroutines.
func (e *ExtLoader) Register(ext string, l Loader) {
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	e.byExt[strings.ToLower(ext)] = l
}

// Load dispatches to the loader registered for the extension of path.
func (e *ExtLoader) Load(path string) (*tensor.Dense, error) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := e.byExt[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %q (%s)", ErrUnsupportedFormat, ext, path)
	}
	return l.Load(path)
}

// requireRegularFile stats path up front so that a missing file always
// surfaces as fs.ErrNotExist, independent of how the decoder reports it.
func requireRegularFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrMalformedTensor, path)
	}
	return nil
}

// newDense builds a tensor with the given shape over data. A nil or empty
// shape yields a scalar, which requires exactly one element. Reference data
// is never empty, so a zero dimension is rejected.
func newDense(shape []int, data []float64) (*tensor.Dense, error) {
	want := 1
	for _, d := range shape {
		if d <= 0 {
			return nil, fmt.Errorf("%w: non-positive dimension in shape %v", ErrMalformedTensor, shape)
		}
		want *= d
	}
	if len(data) != want {
		return nil, fmt.Errorf("%w: shape %v needs %d elements, got %d", ErrMalformedTensor, shape, want, len(data))
	}
	if len(shape) == 0 {
		return tensor.New(tensor.FromScalar(data[0])), nil
	}
	return tensor.New(tensor.WithShape(shape...), tensor.WithBacking(data)), nil
}
