package spz

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Magic is the envelope magic ("NGSP") as read little-endian.
const Magic uint32 = 0x5053474e

// HeaderSize is the fixed on-disk size of Header: three uint32 fields
// followed by four single-byte fields.
const HeaderSize = 16

// Header represents the fixed fields at the start of an (unwrapped) SPZ
// envelope. Only used for diagnostics: the payload is embedded verbatim
// whatever these fields say.
type Header struct {
	Magic          uint32
	Version        uint32
	NumPoints      uint32
	SHDegree       uint8
	FractionalBits uint8
	Flags          uint8
	Reserved       uint8
}

// ParseHeader reads the header from the first HeaderSize bytes of data.
// Bytes past the header are never inspected.
func ParseHeader(data []byte) (Header, error) {
	var hdr Header
	if len(data) < HeaderSize {
		return hdr, fmt.Errorf("%w: spz header needs %d bytes, got %d", ErrFormat, HeaderSize, len(data))
	}
	if err := binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, &hdr); err != nil {
		return hdr, fmt.Errorf("%w: %w", ErrFormat, err)
	}
	if hdr.Magic != Magic {
		return hdr, fmt.Errorf("%w: invalid spz magic 0x%08x", ErrFormat, hdr.Magic)
	}
	return hdr, nil
}

// MarshalBinary encodes the header in its on-disk layout.
func (h Header) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize)
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// KnownVersion reports whether the envelope version is one this tool has
// been exercised against (2 or 3).
func (h Header) KnownVersion() bool {
	return h.Version == 2 || h.Version == 3
}

// AccessorCount is the number of accessors a decoder would need to expand
// this envelope into standard attributes: position, color, scale and
// rotation plus 3, 5 and 7 per spherical-harmonics band.
func AccessorCount(shDegree uint8) int {
	n := 4
	if shDegree >= 1 {
		n += 3
	}
	if shDegree >= 2 {
		n += 5
	}
	if shDegree >= 3 {
		n += 7
	}
	return n
}
