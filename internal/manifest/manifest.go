package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"github.com/noa-physics/dcsdata/internal/artifact"
	yamlutil "k8s.io/apimachinery/pkg/util/yaml"
)

// decoderBufferSize is the initial buffer size for the YAML/JSON decoder.
const decoderBufferSize = 4096

// Manifest is the decoded form of a manifest file.
type Manifest struct {
	// DataDir is the directory artifact paths are resolved against. A
	// relative DataDir is resolved against the manifest's own directory.
	DataDir string `json:"dataDir,omitempty"`

	// Artifacts maps artifact names to paths. Relative paths are resolved
	// against DataDir.
	Artifacts map[string]string `json:"artifacts,omitempty"`

	explicitDataDir bool
}

// Load reads and validates the manifest at path and resolves every relative
// path it contains.
func Load(path string) (*Manifest, error) {
	content, err := os.ReadFile(path) //nolint:gosec // G304: manifest path is caller-controlled configuration
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m, err := Parse(content)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}

	base, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve manifest dir: %w", err)
	}
	m.resolve(base)
	return m, nil
}

// Parse decodes a manifest document without resolving relative paths.
func Parse(content []byte) (*Manifest, error) {
	m := &Manifest{}
	dec := yamlutil.NewYAMLOrJSONDecoder(bytes.NewReader(content), decoderBufferSize)
	if err := dec.Decode(m); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	m.explicitDataDir = m.DataDir != ""
	return m, nil
}

// Validate reports every undeclared artifact name and empty path.
func (m *Manifest) Validate() error {
	var errs []error

	keys := make([]string, 0, len(m.Artifacts))
	for k := range m.Artifacts {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if !artifact.Name(k).IsValid() {
			errs = append(errs, fmt.Errorf("%w: %q", artifact.ErrUnknown, k))
			continue
		}
		if m.Artifacts[k] == "" {
			errs = append(errs, fmt.Errorf("artifact %q: path must not be empty", k))
		}
	}
	return errors.Join(errs...)
}

// resolve makes DataDir absolute relative to base and every artifact path
// absolute relative to DataDir.
func (m *Manifest) resolve(base string) {
	switch {
	case m.DataDir == "":
		m.DataDir = base
	case !filepath.IsAbs(m.DataDir):
		m.DataDir = filepath.Join(base, m.DataDir)
	}

	for k, p := range m.Artifacts {
		if !filepath.IsAbs(p) {
			m.Artifacts[k] = filepath.Join(m.DataDir, p)
		}
	}
}

// RelocatesDefaults reports whether the manifest set dataDir explicitly, in
// which case DataDir replaces the configured data directory.
func (m *Manifest) RelocatesDefaults() bool {
	return m.explicitDataDir
}

// Apply overlays the manifest onto table. When the manifest sets dataDir,
// artifacts it does not list move to their default location under it.
func (m *Manifest) Apply(table map[artifact.Name]string) {
	if m.explicitDataDir {
		for _, n := range artifact.Names() {
			table[n] = n.DefaultPath(m.DataDir)
		}
	}
	for k, p := range m.Artifacts {
		table[artifact.Name(k)] = p
	}
}
