package verify

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/voxelsplace/spzglb/spz"
)

// GLB constants, kept separate from the builder.
const (
	MagicGLTF     uint32 = 0x46546C67 // "glTF"
	VersionGLB    uint32 = 2
	ChunkTypeJSON uint32 = 0x4E4F534A // "JSON"
	ChunkTypeBIN  uint32 = 0x004E4942 // "BIN\x00"

	fileHeaderSize  = 12
	chunkHeaderSize = 8
)

// Container is a parsed GLB file.
type Container struct {
	Magic   uint32
	Version uint32
	Length  uint32 // declared in the file header
	Size    int    // actual byte count

	JSONChunkLength uint32
	JSONChunkType   uint32
	JSON            []byte // padding stripped

	HasBIN         bool
	BINChunkLength uint32
	BINChunkType   uint32
	bin            []byte

	doc gjson.Result
}

// ReadContainer loads and parses the GLB at path.
func ReadContainer(path string) (*Container, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", spz.ErrIO, err)
	}
	return ParseContainer(data)
}

// ParseContainer validates the file header and both chunk headers and slices
// out the chunks. Chunk lengths must be 4-byte aligned and fit in data.
func ParseContainer(data []byte) (*Container, error) {
	if len(data) < fileHeaderSize {
		return nil, fmt.Errorf("%w: glb needs %d header bytes, got %d", spz.ErrFormat, fileHeaderSize, len(data))
	}
	c := &Container{
		Magic:   binary.LittleEndian.Uint32(data[0:]),
		Version: binary.LittleEndian.Uint32(data[4:]),
		Length:  binary.LittleEndian.Uint32(data[8:]),
		Size:    len(data),
	}
	if c.Magic != MagicGLTF {
		return nil, fmt.Errorf("%w: invalid glb magic 0x%08x", spz.ErrFormat, c.Magic)
	}
	if c.Version != VersionGLB {
		return nil, fmt.Errorf("%w: invalid glb version %d", spz.ErrFormat, c.Version)
	}

	off := fileHeaderSize
	if len(data) < off+chunkHeaderSize {
		return nil, fmt.Errorf("%w: missing json chunk header", spz.ErrFormat)
	}
	c.JSONChunkLength = binary.LittleEndian.Uint32(data[off:])
	c.JSONChunkType = binary.LittleEndian.Uint32(data[off+4:])
	off += chunkHeaderSize
	if uint64(off)+uint64(c.JSONChunkLength) > uint64(len(data)) {
		return nil, fmt.Errorf("%w: json chunk of %d bytes overruns file", spz.ErrFormat, c.JSONChunkLength)
	}
	if c.JSONChunkLength%4 != 0 {
		return nil, fmt.Errorf("%w: json chunk length %d is not 4-byte aligned", spz.ErrFormat, c.JSONChunkLength)
	}
	raw := data[off : off+int(c.JSONChunkLength)]
	c.JSON = bytes.TrimRight(raw, "\x00 ")
	off += int(c.JSONChunkLength)

	switch {
	case off == len(data):
	case off+chunkHeaderSize > len(data):
		return nil, fmt.Errorf("%w: truncated bin chunk header", spz.ErrFormat)
	default:
		c.HasBIN = true
		c.BINChunkLength = binary.LittleEndian.Uint32(data[off:])
		c.BINChunkType = binary.LittleEndian.Uint32(data[off+4:])
		off += chunkHeaderSize
		if c.BINChunkType != ChunkTypeBIN {
			return nil, fmt.Errorf("%w: second chunk type 0x%08x is not BIN", spz.ErrFormat, c.BINChunkType)
		}
		if c.BINChunkLength%4 != 0 {
			return nil, fmt.Errorf("%w: bin chunk length %d is not 4-byte aligned", spz.ErrFormat, c.BINChunkLength)
		}
		if uint64(off)+uint64(c.BINChunkLength) > uint64(len(data)) {
			return nil, fmt.Errorf("%w: bin chunk of %d bytes overruns file", spz.ErrFormat, c.BINChunkLength)
		}
		c.bin = data[off : off+int(c.BINChunkLength)]
	}

	c.doc = gjson.ParseBytes(c.JSON)
	return c, nil
}

// Doc is the parsed JSON chunk.
func (c *Container) Doc() gjson.Result {
	return c.doc
}

// ValidJSON reports whether the JSON chunk is well-formed.
func (c *Container) ValidJSON() bool {
	return gjson.ValidBytes(c.JSON)
}

// BufferByteLength returns buffers[0].byteLength. The lookup is scoped to
// the first buffer, so byteLength fields on buffer views never match.
func (c *Container) BufferByteLength() (int, error) {
	v := c.doc.Get("buffers.0.byteLength")
	if !v.Exists() {
		return 0, fmt.Errorf("%w: buffers[0].byteLength missing", spz.ErrFormat)
	}
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("%w: buffers[0].byteLength is %s", spz.ErrFormat, v.Type)
	}
	n, err := strconv.ParseUint(v.Raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: buffers[0].byteLength %q: %w", spz.ErrFormat, v.Raw, err)
	}
	return int(n), nil
}

// Payload returns the first BufferByteLength bytes of the binary chunk.
func (c *Container) Payload() ([]byte, error) {
	n, err := c.BufferByteLength()
	if err != nil {
		return nil, err
	}
	if !c.HasBIN {
		return nil, fmt.Errorf("%w: glb has no binary chunk", spz.ErrFormat)
	}
	if n > len(c.bin) {
		return nil, fmt.Errorf("%w: json declares %d bytes, binary chunk holds %d", spz.ErrFormat, n, len(c.bin))
	}
	return c.bin[:n], nil
}
