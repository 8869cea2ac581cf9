package tensorio

import (
	"fmt"

	"github.com/nlpodyssey/gopickle/pytorch"
	"github.com/nlpodyssey/gopickle/types"
	"github.com/pdevine/tensor"
)

// TorchLoader reads tensors saved with torch.save.
//
// The pickle may hold the tensor itself, or a dict, ordered dict, list or
// tuple containing exactly one tensor. Anything else is ErrMalformedTensor.
type TorchLoader struct{}

// Load unpickles path and converts its tensor to float64.
func (TorchLoader) Load(path string) (*tensor.Dense, error) {
	if err := requireRegularFile(path); err != nil {
		return nil, err
	}

	obj, err := pytorch.Load(path)
	if err != nil {
		return nil, fmt.Errorf("%w: unpickle %s: %v", ErrMalformedTensor, path, err)
	}

	pt, err := singleTorchTensor(obj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	data, err := torchStorageData(pt.Source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	values, err := gatherStrided(data, pt.StorageOffset, pt.Size, pt.Stride)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	t, err := newDense(pt.Size, values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// singleTorchTensor unwraps the top-level pickle object down to the one
// tensor it is expected to contain.
func singleTorchTensor(obj any) (*pytorch.Tensor, error) {
	var candidates []any

	switch v := obj.(type) {
	case *pytorch.Tensor:
		return v, nil
	case *types.Dict:
		for _, k := range v.Keys() {
			val, _ := v.Get(k)
			candidates = append(candidates, val)
		}
	case *types.OrderedDict:
		for e := v.List.Front(); e != nil; e = e.Next() {
			entry, ok := e.Value.(*types.OrderedDictEntry)
			if !ok {
				continue
			}
			candidates = append(candidates, entry.Value)
		}
	case *types.List:
		for i := range v.Len() {
			candidates = append(candidates, v.Get(i))
		}
	case *types.Tuple:
		for i := range v.Len() {
			candidates = append(candidates, v.Get(i))
		}
	default:
		return nil, fmt.Errorf("%w: top-level object is %T, not a tensor", ErrMalformedTensor, obj)
	}

	var found *pytorch.Tensor
	for _, c := range candidates {
		pt, ok := c.(*pytorch.Tensor)
		if !ok {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("%w: container holds more than one tensor", ErrMalformedTensor)
		}
		found = pt
	}
	if found == nil {
		return nil, fmt.Errorf("%w: container holds no tensor", ErrMalformedTensor)
	}
	return found, nil
}

// torchStorageData widens a typed torch storage to float64.
func torchStorageData(s pytorch.StorageInterface) ([]float64, error) {
	switch st := s.(type) {
	case *pytorch.DoubleStorage:
		return st.Data, nil
	case *pytorch.FloatStorage:
		return widen(st.Data), nil
	case *pytorch.HalfStorage:
		return widen(st.Data), nil
	case *pytorch.BFloat16Storage:
		return widen(st.Data), nil
	case *pytorch.LongStorage:
		return widen(st.Data), nil
	case *pytorch.IntStorage:
		return widen(st.Data), nil
	case *pytorch.ShortStorage:
		return widen(st.Data), nil
	case *pytorch.CharStorage:
		return widen(st.Data), nil
	case *pytorch.ByteStorage:
		return widen(st.Data), nil
	case *pytorch.BoolStorage:
		out := make([]float64, len(st.Data))
		for i, b := range st.Data {
			if b {
				out[i] = 1
			}
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("%w: tensor has no storage", ErrMalformedTensor)
	default:
		return nil, fmt.Errorf("%w: unsupported storage type %T", ErrMalformedTensor, s)
	}
}

type number interface {
	~float32 | ~float64 | ~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16
}

func widen[T number](in []T) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

// gatherStrided copies the elements addressed by (offset, size, stride) out
// of storage in row-major order.
func gatherStrided(storage []float64, offset int, size, stride []int) ([]float64, error) {
	if len(stride) != len(size) {
		return nil, fmt.Errorf("%w: size %v and stride %v differ in rank", ErrMalformedTensor, size, stride)
	}

	n := 1
	for _, d := range size {
		n *= d
	}
	out := make([]float64, 0, n)
	if n == 0 {
		return out, nil
	}

	idx := make([]int, len(size))
	for range n {
		pos := offset
		for d, i := range idx {
			pos += i * stride[d]
		}
		if pos < 0 || pos >= len(storage) {
			return nil, fmt.Errorf("%w: element offset %d outside storage of %d", ErrMalformedTensor, pos, len(storage))
		}
		out = append(out, storage[pos])

		for d := len(idx) - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < size[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out, nil
}
