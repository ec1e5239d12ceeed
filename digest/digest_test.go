package digest

import (
	"bytes"
	"io"
	"testing"

	xxhash "github.com/cespare/xxhash/v2"
)

func TestParseAlgorithm(t *testing.T) {
	cases := map[string]Algorithm{
		"":       AlgorithmMD5,
		"MD5":    AlgorithmMD5,
		"xxhash": AlgorithmXXHash,
		" xxh64": AlgorithmXXHash,
	}
	for in, want := range cases {
		got, err := ParseAlgorithm(in)
		if err != nil {
			t.Fatalf("ParseAlgorithm(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseAlgorithm(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := ParseAlgorithm("sha1"); err == nil {
		t.Fatalf("expected error for sha1")
	}
}

func TestSum(t *testing.T) {
	data := []byte("abc")
	if got, err := Sum(AlgorithmMD5, data); err != nil || got != "900150983cd24fb0d6963f7d28e17f72" {
		t.Fatalf("md5 sum %s (%v)", got, err)
	}
	want := xxhash.Sum64(data)
	got, err := Sum(AlgorithmXXHash, data)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 16 {
		t.Fatalf("xxhash hex length %d", len(got))
	}
	var parsed uint64
	for _, c := range got {
		parsed <<= 4
		switch {
		case c >= '0' && c <= '9':
			parsed |= uint64(c - '0')
		default:
			parsed |= uint64(c-'a') + 10
		}
	}
	if parsed != want {
		t.Fatalf("xxhash sum %s does not encode %x", got, want)
	}
}

func TestStreamingMatchesOneShot(t *testing.T) {
	data := bytes.Repeat([]byte("spz-payload-"), 500)
	for _, alg := range []Algorithm{AlgorithmMD5, AlgorithmXXHash} {
		h, err := New(alg)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := io.Copy(h, bytes.NewReader(data)); err != nil {
			t.Fatal(err)
		}
		want, err := Sum(alg, data)
		if err != nil {
			t.Fatal(err)
		}
		if got := h.Finalize(); got != want {
			t.Fatalf("%s: streaming %s != one-shot %s", alg, got, want)
		}
	}
}

func TestNewRejectsUnknownAlgorithm(t *testing.T) {
	for _, alg := range []Algorithm{"", "sha1", "MD5"} {
		if h, err := New(alg); err == nil || h != nil {
			t.Fatalf("New(%q) = %v, %v; want error", alg, h, err)
		}
		if _, err := Sum(alg, []byte("abc")); err == nil {
			t.Fatalf("Sum(%q) accepted an unknown algorithm", alg)
		}
	}
}
