// Package digest provides the content digests used to prove that a payload
// survived a container round trip byte for byte.
package digest

import (
	"fmt"
	"io"
	"strings"

	xxhash "github.com/cespare/xxhash/v2"
)

// Algorithm names a digest algorithm.
type Algorithm string

const (
	AlgorithmMD5    Algorithm = "md5"
	AlgorithmXXHash Algorithm = "xxhash"
)

// Hasher is a streaming digest that renders its result as lowercase hex.
type Hasher interface {
	io.Writer
	Finalize() string
}

// ParseAlgorithm accepts md5 and xxhash (also xxh64), case-insensitively.
// The empty string selects md5.
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "md5":
		return AlgorithmMD5, nil
	case "xxhash", "xxh64":
		return AlgorithmXXHash, nil
	default:
		return "", fmt.Errorf("digest: unsupported algorithm %q", s)
	}
}

// New returns a fresh Hasher for alg. Names that did not come from
// ParseAlgorithm are rejected.
func New(alg Algorithm) (Hasher, error) {
	switch alg {
	case AlgorithmMD5:
		return NewMD5(), nil
	case AlgorithmXXHash:
		return &XXHash64{d: xxhash.New()}, nil
	default:
		return nil, fmt.Errorf("digest: unsupported algorithm %q", alg)
	}
}

// Sum digests data in one shot.
func Sum(alg Algorithm, data []byte) (string, error) {
	h, err := New(alg)
	if err != nil {
		return "", err
	}
	_, _ = h.Write(data)
	return h.Finalize(), nil
}

// XXHash64 adapts xxhash to the Hasher interface.
type XXHash64 struct {
	d *xxhash.Digest
}

func (x *XXHash64) Write(p []byte) (int, error) { return x.d.Write(p) }

// Finalize returns the 64-bit sum as 16 hex characters.
func (x *XXHash64) Finalize() string {
	return fmt.Sprintf("%016x", x.d.Sum64())
}
