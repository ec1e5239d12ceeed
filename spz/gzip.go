package spz

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
)

// IsGzip reports whether data starts with the gzip magic bytes 1F 8B.
func IsGzip(data []byte) bool {
	return len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b
}

// Peek returns the inflated form of a gzip-wrapped buffer, or data itself
// when it is not gzip-wrapped. The result exists only to expose header
// fields; callers must keep embedding the original bytes.
func Peek(data []byte) ([]byte, error) {
	if !IsGzip(data) {
		return data, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	defer zr.Close()
	// Stop at the end of the first member; trailing bytes are ignored.
	zr.Multistream(false)

	// bytes.Buffer doubles its capacity when exhausted.
	var out bytes.Buffer
	out.Grow(len(data) * 10)
	if _, err := io.Copy(&out, zr); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	return out.Bytes(), nil
}

// Envelope is the diagnostic view of an SPZ file.
type Envelope struct {
	Header  Header
	Gzipped bool
	RawSize int
}

// Inspect peeks through an optional gzip wrapper and parses the header.
func Inspect(raw []byte) (Envelope, error) {
	env := Envelope{Gzipped: IsGzip(raw), RawSize: len(raw)}
	inflated, err := Peek(raw)
	if err != nil {
		return env, err
	}
	hdr, err := ParseHeader(inflated)
	if err != nil {
		return env, err
	}
	env.Header = hdr
	return env, nil
}
