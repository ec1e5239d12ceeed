package spz

import "errors"

// Error kinds shared by the converter and the verifier. Call sites wrap them
// with fmt.Errorf so errors.Is can classify a failure without string matching.
var (
	ErrIO         = errors.New("io error")
	ErrFormat     = errors.New("format error")
	ErrDecompress = errors.New("decompress error")
	ErrExport     = errors.New("export error")
)
