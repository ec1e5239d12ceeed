package api

import (
	"bytes"
	"errors"
	"testing"

	"github.com/voxelsplace/spzglb/spz"
)

func makeSPZ(t *testing.T) []byte {
	t.Helper()
	raw, err := spz.Header{Magic: spz.Magic, Version: 3, NumPoints: 42, SHDegree: 2}.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	return append(raw, bytes.Repeat([]byte{0xab, 0xcd, 0xef}, 100)...)
}

func TestSPZToGLBThenExtract(t *testing.T) {
	src := makeSPZ(t)
	out, err := SPZToGLB(src)
	if err != nil {
		t.Fatalf("SPZToGLB failed: %v", err)
	}
	got, err := ExtractSPZ(out)
	if err != nil {
		t.Fatalf("ExtractSPZ failed: %v", err)
	}
	if !bytes.Equal(got, src) {
		t.Fatalf("round trip changed the stream")
	}
	if MD5(got) != MD5(src) {
		t.Fatalf("digests differ")
	}
	if rep := VerifyGLB(src, out); !rep.Passed() {
		t.Fatalf("verification failed:\n%s", rep)
	}
}

func TestInspectSPZ(t *testing.T) {
	env, err := InspectSPZ(makeSPZ(t))
	if err != nil {
		t.Fatal(err)
	}
	if env.Header.Version != 3 || env.Header.NumPoints != 42 || env.Header.SHDegree != 2 {
		t.Fatalf("unexpected header %+v", env.Header)
	}
}

func TestSPZToGLBRejectsBadInput(t *testing.T) {
	if _, err := SPZToGLB([]byte("short")); !errors.Is(err, spz.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
	if _, err := ExtractSPZ([]byte("nope")); !errors.Is(err, spz.ErrFormat) {
		t.Fatalf("expected ErrFormat, got %v", err)
	}
}
