// Package glb wraps an SPZ stream into a glTF binary container without
// touching the stream itself.
package glb

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/voxelsplace/spzglb/spz"
)

// Extension identifiers declared as both used and required.
const (
	ExtGaussianSplatting = "KHR_gaussian_splatting"
	ExtSPZCompression    = "KHR_gaussian_splatting_compression_spz_2"
)

// DefaultGenerator is written to asset.generator when Options leave it empty.
const DefaultGenerator = "spzglb"

// Options tunes document construction.
type Options struct {
	Generator string
	Logger    *slog.Logger
}

// spzCompression points the decoder at the buffer view holding the stream.
type spzCompression struct {
	BufferView int `json:"bufferView"`
}

type gaussianSplatting struct {
	Extensions map[string]any `json:"extensions"`
}

// NewDocument describes payload as a single point primitive whose data is
// reachable only through the SPZ compression extension. payload is copied
// into the document's only buffer as-is: nothing is decoded.
func NewDocument(payload []byte, opts Options) *gltf.Document {
	doc := gltf.NewDocument()
	doc.Asset.Generator = opts.Generator
	if doc.Asset.Generator == "" {
		doc.Asset.Generator = DefaultGenerator
	}
	doc.ExtensionsUsed = []string{ExtGaussianSplatting, ExtSPZCompression}
	doc.ExtensionsRequired = []string{ExtGaussianSplatting, ExtSPZCompression}

	// Creates buffer 0 and bufferView 0 spanning the whole payload.
	modeler.WriteBufferView(doc, gltf.TargetNone, payload)

	// No attributes and no accessors: the decoder reads the stream itself.
	prim := &gltf.Primitive{
		Attributes: gltf.PrimitiveAttributes{},
		Mode:       gltf.PrimitivePoints,
		Extensions: gltf.Extensions{
			ExtGaussianSplatting: &gaussianSplatting{
				Extensions: map[string]any{
					ExtSPZCompression: &spzCompression{BufferView: 0},
				},
			},
		},
	}

	doc.Meshes = []*gltf.Mesh{{Name: "GaussianSplats", Primitives: []*gltf.Primitive{prim}}}
	doc.Nodes = []*gltf.Node{{Mesh: gltf.Index(0)}}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, 0)
	doc.Scene = gltf.Index(0)
	return doc
}

// Encode serialises doc as GLB into w.
func Encode(w io.Writer, doc *gltf.Document) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("%w: glb encode: %w", spz.ErrExport, err)
	}
	return nil
}

// Build wraps the original, possibly gzip-wrapped SPZ bytes into a GLB and
// returns the serialised container. hdr only feeds diagnostics.
func Build(payload []byte, hdr spz.Header, opts Options) ([]byte, error) {
	if opts.Logger != nil && hdr.SHDegree > 0 {
		opts.Logger.Debug("payload carries spherical harmonics",
			"sh_degree", hdr.SHDegree,
			"decoder_accessors", spz.AccessorCount(hdr.SHDegree),
		)
	}
	doc := NewDocument(payload, opts)
	var out bytes.Buffer
	out.Grow(len(payload) + 1024)
	if err := Encode(&out, doc); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
