package spz

import (
	"bytes"
	"errors"
	"testing"

	"github.com/klauspost/compress/gzip"
)

func envelope(t *testing.T, size int) []byte {
	t.Helper()
	raw, err := testHeader().MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	for i := len(raw); i < size; i++ {
		raw = append(raw, byte(i*7))
	}
	return raw
}

func gzipBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestPeekPassthrough(t *testing.T) {
	raw := envelope(t, 64)
	out, err := Peek(raw)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Fatalf("non-gzip input was modified")
	}
}

func TestPeekInflates(t *testing.T) {
	raw := envelope(t, 4096)
	wrapped := gzipBytes(t, raw)
	original := append([]byte(nil), wrapped...)

	out, err := Peek(wrapped)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Fatalf("inflated bytes differ from source")
	}
	if !bytes.Equal(wrapped, original) {
		t.Fatalf("Peek mutated its input")
	}
}

func TestPeekIgnoresTrailingBytes(t *testing.T) {
	raw := envelope(t, 2048)
	wrapped := append(gzipBytes(t, raw), make([]byte, 8)...)

	out, err := Peek(wrapped)
	if err != nil {
		t.Fatalf("Peek: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Fatalf("inflated bytes differ from source")
	}
	env, err := Inspect(wrapped)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if env.RawSize != len(wrapped) || env.Header.NumPoints != 100 {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestPeekTruncated(t *testing.T) {
	wrapped := gzipBytes(t, envelope(t, 4096))
	if _, err := Peek(wrapped[:len(wrapped)/2]); !errors.Is(err, ErrDecompress) {
		t.Fatalf("expected ErrDecompress, got %v", err)
	}
}

func TestPeekCorruptHeader(t *testing.T) {
	if _, err := Peek([]byte{0x1f, 0x8b, 0x00, 0x00}); !errors.Is(err, ErrDecompress) {
		t.Fatalf("expected ErrDecompress, got %v", err)
	}
}

func TestInspect(t *testing.T) {
	raw := envelope(t, 1024)
	wrapped := gzipBytes(t, raw)

	env, err := Inspect(wrapped)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if !env.Gzipped || env.RawSize != len(wrapped) {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if env.Header.NumPoints != 100 || env.Header.Version != 2 {
		t.Fatalf("unexpected header %+v", env.Header)
	}

	env, err = Inspect(raw)
	if err != nil {
		t.Fatalf("Inspect plain: %v", err)
	}
	if env.Gzipped {
		t.Fatalf("plain envelope reported as gzip")
	}
}
