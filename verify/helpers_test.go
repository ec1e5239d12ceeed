package verify

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"

	"github.com/voxelsplace/spzglb/glb"
	"github.com/voxelsplace/spzglb/spz"
)

func makeSPZ(t *testing.T, size int) []byte {
	t.Helper()
	hdr := spz.Header{Magic: spz.Magic, Version: 2, NumPoints: 100, SHDegree: 0, FractionalBits: 12}
	raw, err := hdr.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	for i := len(raw); i < size; i++ {
		raw = append(raw, byte(i*31+7))
	}
	return raw
}

func gzipSPZ(t *testing.T, raw []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func buildGLB(t *testing.T, source []byte) []byte {
	t.Helper()
	env, err := spz.Inspect(source)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	out, err := glb.Build(source, env.Header, glb.Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return out
}

// writePair writes source and its container to a temp dir.
func writePair(t *testing.T, source, container []byte) (spzPath, glbPath string) {
	t.Helper()
	dir := t.TempDir()
	spzPath = filepath.Join(dir, "model.spz")
	glbPath = filepath.Join(dir, "model.glb")
	if err := os.WriteFile(spzPath, source, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(glbPath, container, 0o644); err != nil {
		t.Fatal(err)
	}
	return spzPath, glbPath
}

// binOffset is the offset of the first payload byte in a container.
func binOffset(t *testing.T, container []byte) int {
	t.Helper()
	c, err := ParseContainer(container)
	if err != nil {
		t.Fatal(err)
	}
	return fileHeaderSize + chunkHeaderSize + int(c.JSONChunkLength) + chunkHeaderSize
}
