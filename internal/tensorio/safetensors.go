package tensorio

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/d4l3k/go-bfloat16"
	"github.com/pdevine/tensor"
	"github.com/x448/float16"
)

// maxSafetensorsHeader bounds the JSON header length read from disk so that a
// corrupt length prefix cannot trigger a huge allocation.
const maxSafetensorsHeader = 100 << 20

// safetensorsMetadataKey is the reserved header entry carrying free-form
// string metadata rather than a tensor description.
const safetensorsMetadataKey = "__metadata__"

type safetensorEntry struct {
	DType   string  `json:"dtype"`
	Shape   []int   `json:"shape"`
	Offsets []int64 `json:"data_offsets"`
}

// SafetensorsLoader reads .safetensors files that hold exactly one tensor.
type SafetensorsLoader struct{}

// Load parses the header, reads the tensor's byte range and decodes it to
// float64.
func (SafetensorsLoader) Load(path string) (*tensor.Dense, error) {
	if err := requireRegularFile(path); err != nil {
		return nil, err
	}

	f, err := os.Open(path) //nolint:gosec // G304: paths come from the artifact table
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // read-only file

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	name, entry, dataStart, err := readSafetensorsHeader(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	size := entry.Offsets[1] - entry.Offsets[0]
	buf := make([]byte, size)
	if _, err := f.ReadAt(buf, dataStart+entry.Offsets[0]); err != nil {
		return nil, fmt.Errorf("%w: %s: read tensor %q: %v", ErrMalformedTensor, path, name, err)
	}

	values, err := decodeSafetensorsData(entry.DType, buf)
	if err != nil {
		return nil, fmt.Errorf("%s: tensor %q: %w", path, name, err)
	}

	t, err := newDense(entry.Shape, values)
	if err != nil {
		return nil, fmt.Errorf("%s: tensor %q: %w", path, name, err)
	}
	return t, nil
}

// readSafetensorsHeader returns the single tensor entry of the file and the
// absolute offset at which the data section starts. The header length and
// the tensor's byte range must both fit within fileSize.
func readSafetensorsHeader(r io.Reader, fileSize int64) (string, safetensorEntry, int64, error) {
	var n uint64
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", safetensorEntry{}, 0, fmt.Errorf("%w: read header length: %v", ErrMalformedTensor, err)
	}
	if n == 0 || n > maxSafetensorsHeader || n > uint64(max(fileSize-8, 0)) { //nolint:gosec // clamped to non-negative
		return "", safetensorEntry{}, 0, fmt.Errorf("%w: header length %d out of range for %d-byte file", ErrMalformedTensor, n, fileSize)
	}

	raw := make([]byte, n)
	if _, err := io.ReadFull(r, raw); err != nil {
		return "", safetensorEntry{}, 0, fmt.Errorf("%w: read header: %v", ErrMalformedTensor, err)
	}

	var header map[string]json.RawMessage
	if err := json.Unmarshal(raw, &header); err != nil {
		return "", safetensorEntry{}, 0, fmt.Errorf("%w: decode header: %v", ErrMalformedTensor, err)
	}
	delete(header, safetensorsMetadataKey)

	if len(header) != 1 {
		return "", safetensorEntry{}, 0, fmt.Errorf("%w: expected exactly one tensor, found %d", ErrMalformedTensor, len(header))
	}

	var (
		name  string
		entry safetensorEntry
	)
	for k, v := range header {
		name = k
		if err := json.Unmarshal(v, &entry); err != nil {
			return "", safetensorEntry{}, 0, fmt.Errorf("%w: decode entry %q: %v", ErrMalformedTensor, k, err)
		}
	}

	if len(entry.Offsets) != 2 || entry.Offsets[0] < 0 || entry.Offsets[1] < entry.Offsets[0] {
		return "", safetensorEntry{}, 0, fmt.Errorf("%w: tensor %q has invalid data_offsets %v", ErrMalformedTensor, name, entry.Offsets)
	}

	dataStart := int64(8 + n) //nolint:gosec // n is bounded by maxSafetensorsHeader
	if entry.Offsets[1] > fileSize-dataStart {
		return "", safetensorEntry{}, 0, fmt.Errorf("%w: tensor %q data_offsets %v exceed data section of %d bytes",
			ErrMalformedTensor, name, entry.Offsets, fileSize-dataStart)
	}

	return name, entry, dataStart, nil
}

// decodeSafetensorsData converts little-endian raw bytes of the given dtype
// into float64 values.
func decodeSafetensorsData(dtype string, b []byte) ([]float64, error) {
	width, ok := map[string]int{"F64": 8, "I64": 8, "F32": 4, "I32": 4, "F16": 2, "BF16": 2}[dtype]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported dtype %q", ErrMalformedTensor, dtype)
	}
	if len(b)%width != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %s width %d", ErrMalformedTensor, len(b), dtype, width)
	}

	out := make([]float64, len(b)/width)
	switch dtype {
	case "F64":
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(b[i*8:]))
		}
	case "I64":
		for i := range out {
			out[i] = float64(int64(binary.LittleEndian.Uint64(b[i*8:]))) //nolint:gosec // two's complement reinterpretation
		}
	case "F32":
		for i := range out {
			out[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
		}
	case "I32":
		for i := range out {
			out[i] = float64(int32(binary.LittleEndian.Uint32(b[i*4:]))) //nolint:gosec // two's complement reinterpretation
		}
	case "F16":
		for i := range out {
			out[i] = float64(float16.Frombits(binary.LittleEndian.Uint16(b[i*2:])).Float32())
		}
	case "BF16":
		for i, v := range bfloat16.DecodeFloat32(b) {
			out[i] = float64(v)
		}
	}
	return out, nil
}
