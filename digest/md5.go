package digest

import (
	"encoding/binary"
	"encoding/hex"
	"math/bits"
)

// BlockSize is the MD5 compression block size in bytes.
const BlockSize = 64

var md5Init = [4]uint32{0x67452301, 0xefcdab89, 0x98badcfe, 0x10325476}

// Per-step left-rotation amounts, four per round.
var md5Shift = [64]int{
	7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22, 7, 12, 17, 22,
	5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20, 5, 9, 14, 20,
	4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23, 4, 11, 16, 23,
	6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21, 6, 10, 15, 21,
}

// floor(abs(sin(i+1)) * 2^32)
var md5Table = [64]uint32{
	0xd76aa478, 0xe8c7b756, 0x242070db, 0xc1bdceee,
	0xf57c0faf, 0x4787c62a, 0xa8304613, 0xfd469501,
	0x698098d8, 0x8b44f7af, 0xffff5bb1, 0x895cd7be,
	0x6b901122, 0xfd987193, 0xa679438e, 0x49b40821,
	0xf61e2562, 0xc040b340, 0x265e5a51, 0xe9b6c7aa,
	0xd62f105d, 0x02441453, 0xd8a1e681, 0xe7d3fbc8,
	0x21e1cde6, 0xc33707d6, 0xf4d50d87, 0x455a14ed,
	0xa9e3e905, 0xfcefa3f8, 0x676f02d9, 0x8d2a4c8a,
	0xfffa3942, 0x8771f681, 0x6d9d6122, 0xfde5380c,
	0xa4beea44, 0x4bdecfa9, 0xf6bb4b60, 0xbebfbc70,
	0x289b7ec6, 0xeaa127fa, 0xd4ef3085, 0x04881d05,
	0xd9d4d039, 0xe6db99e5, 0x1fa27cf8, 0xc4ac5665,
	0xf4292244, 0x432aff97, 0xab9423a7, 0xfc93a039,
	0x655b59c3, 0x8f0ccc92, 0xffeff47d, 0x85845dd1,
	0x6fa87e4f, 0xfe2ce6e0, 0xa3014314, 0x4e0811a1,
	0xf7537e82, 0xbd3af235, 0x2ad7d2bb, 0xeb86d391,
}

// MD5 is a streaming MD5 digest. It is used to compare payloads for
// equality, never for anything security related.
//
// Update may be called with any chunking; Finalize consumes the state.
type MD5 struct {
	s    [4]uint32
	buf  [BlockSize]byte
	nbuf int
	len  uint64 // bytes consumed
	sum  string
}

// NewMD5 returns an MD5 digest in its initial state.
func NewMD5() *MD5 {
	return &MD5{s: md5Init}
}

// Update appends p to the digest input.
func (d *MD5) Update(p []byte) {
	if d.sum != "" {
		panic("digest: MD5 updated after Finalize")
	}
	d.update(p)
}

// Write implements io.Writer so payloads can be streamed with io.Copy.
func (d *MD5) Write(p []byte) (int, error) {
	d.Update(p)
	return len(p), nil
}

func (d *MD5) update(p []byte) {
	d.len += uint64(len(p))
	if d.nbuf > 0 {
		n := copy(d.buf[d.nbuf:], p)
		d.nbuf += n
		p = p[n:]
		if d.nbuf < BlockSize {
			return
		}
		d.block(d.buf[:])
		d.nbuf = 0
	}
	for len(p) >= BlockSize {
		d.block(p[:BlockSize])
		p = p[BlockSize:]
	}
	d.nbuf = copy(d.buf[:], p)
}

// Finalize pads the input, flushes the last blocks and returns the digest
// as 32 lowercase hex characters. Repeated calls return the same value.
func (d *MD5) Finalize() string {
	if d.sum != "" {
		return d.sum
	}
	bitLen := d.len << 3

	// 0x80, zeros up to 56 mod 64, then the 64-bit little-endian bit count.
	var pad [BlockSize + 8]byte
	pad[0] = 0x80
	n := 56 - int(d.len%BlockSize)
	if n <= 0 {
		n += BlockSize
	}
	binary.LittleEndian.PutUint64(pad[n:], bitLen)
	d.update(pad[:n+8])

	var out [16]byte
	for i, v := range d.s {
		binary.LittleEndian.PutUint32(out[i*4:], v)
	}
	d.sum = hex.EncodeToString(out[:])
	return d.sum
}

func (d *MD5) block(p []byte) {
	var m [16]uint32
	for i := range m {
		m[i] = binary.LittleEndian.Uint32(p[i*4:])
	}
	a, b, c, dd := d.s[0], d.s[1], d.s[2], d.s[3]
	for i := 0; i < 64; i++ {
		var f uint32
		var g int
		switch {
		case i < 16:
			f = (b & c) | (^b & dd)
			g = i
		case i < 32:
			f = (dd & b) | (^dd & c)
			g = (5*i + 1) % 16
		case i < 48:
			f = b ^ c ^ dd
			g = (3*i + 5) % 16
		default:
			f = c ^ (b | ^dd)
			g = (7 * i) % 16
		}
		f += a + md5Table[i] + m[g]
		a, dd, c = dd, c, b
		b += bits.RotateLeft32(f, md5Shift[i])
	}
	d.s[0] += a
	d.s[1] += b
	d.s[2] += c
	d.s[3] += dd
}

// Hash is the one-shot form: init, update, finalize.
func Hash(data []byte) string {
	d := NewMD5()
	d.Update(data)
	return d.Finalize()
}
