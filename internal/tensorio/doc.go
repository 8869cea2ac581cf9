// Package tensorio loads golden reference tensors from disk.
//
// Loader is the capability the reference cache depends on: given a path it
// returns a dense float64 tensor or an error explaining why the file could not
// be used. TorchLoader reads PyTorch pickles (.pt, .pth) and SafetensorsLoader
// reads single-tensor safetensors files. ExtLoader dispatches between them by
// file extension, and CountingLoader records how often each path was read so
// callers can verify that a path is only ever touched once.
//
// All loaders widen their source dtype to float64. A missing file is reported
// with fs.ErrNotExist in the error chain; unparsable content is reported with
// ErrMalformedTensor.
package tensorio
