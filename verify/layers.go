// Package verify re-reads a produced GLB independently of the builder and
// proves, in three layers, that it is structurally sound, that it carries
// the SPZ stream byte for byte, and that its metadata agrees with the source.
package verify

import (
	"fmt"
	"os"
	"slices"

	"github.com/tidwall/gjson"

	"github.com/voxelsplace/spzglb/digest"
	"github.com/voxelsplace/spzglb/spz"
)

const (
	extGaussianSplatting = "KHR_gaussian_splatting"
	extSPZCompression    = "KHR_gaussian_splatting_compression_spz_2"
)

// Layer titles.
const (
	TitleStructure = "GLB Structure & SPZ_2 Specification Validation"
	TitleLossless  = "Binary Lossless Verification"
	TitleDecoding  = "Decoding Consistency Verification"
)

const layer1Checks = 6

// Options configures layer 2.
type Options struct {
	Digest digest.Algorithm
}

// Layer1 validates the container structure and the compression stream
// mode markers of the GLB at glbPath.
func Layer1(glbPath string) LayerReport {
	data, err := os.ReadFile(glbPath)
	if err != nil {
		r := LayerReport{Layer: 1, Title: TitleStructure, Total: layer1Checks}
		return r.fail(fmt.Errorf("%w: %w", spz.ErrIO, err))
	}
	return Layer1Bytes(data)
}

// Layer1Bytes is Layer1 over an in-memory container.
func Layer1Bytes(glb []byte) LayerReport {
	r := LayerReport{Layer: 1, Title: TitleStructure, Total: layer1Checks}

	c, err := ParseContainer(glb)
	if err != nil {
		return r.fail(err)
	}
	r.note("Magic: glTF (0x%08X)", c.Magic)
	r.note("Version: %d", c.Version)
	if int(c.Length) != c.Size {
		return r.fail(fmt.Errorf("%w: header declares %d bytes, file has %d", spz.ErrFormat, c.Length, c.Size))
	}
	r.note("Length: %d bytes", c.Length)
	if c.JSONChunkType != ChunkTypeJSON {
		return r.fail(fmt.Errorf("%w: first chunk type 0x%08x is not JSON", spz.ErrFormat, c.JSONChunkType))
	}
	if !c.ValidJSON() {
		return r.fail(fmt.Errorf("%w: json chunk is not valid JSON", spz.ErrFormat))
	}
	doc := c.Doc()

	for _, ext := range []string{extGaussianSplatting, extSPZCompression} {
		used := hasString(doc.Get("extensionsUsed"), ext)
		required := hasString(doc.Get("extensionsRequired"), ext)
		r.check("extension "+ext, used && required, "used=%t required=%t", used, required)
	}

	buffers := doc.Get("buffers")
	n := len(buffers.Array())
	byteLength := buffers.Get("0.byteLength")
	r.check("buffers", n == 1 && byteLength.Type == gjson.Number,
		"%d buffer(s), byteLength=%s", n, rawOr(byteLength, "missing"))

	r.check("attributes empty", attributesEmpty(doc), "compression stream mode")

	accessors := doc.Get("accessors")
	accessorsOK := !accessors.Exists() || (accessors.IsArray() && len(accessors.Array()) == 0)
	r.check("accessors empty", accessorsOK, "%d accessor(s)", len(accessors.Array()))

	view, ok := spzBufferView(doc)
	viewOK := ok && doc.Get(fmt.Sprintf("bufferViews.%d", view)).Exists() &&
		doc.Get(fmt.Sprintf("bufferViews.%d.buffer", view)).Int() == 0
	r.check("spz bufferView", viewOK, "bufferView=%s", rawOr(spzBufferViewResult(doc), "missing"))

	return r.finish()
}

// Layer2 compares the original SPZ bytes with the buffer extracted from the
// GLB: equal length and equal digest.
func Layer2(spzPath, glbPath string, opts Options) LayerReport {
	original, err := os.ReadFile(spzPath)
	if err != nil {
		r := LayerReport{Layer: 2, Title: TitleLossless, Total: 2}
		return r.fail(fmt.Errorf("%w: %w", spz.ErrIO, err))
	}
	glb, err := os.ReadFile(glbPath)
	if err != nil {
		r := LayerReport{Layer: 2, Title: TitleLossless, Total: 2}
		return r.fail(fmt.Errorf("%w: %w", spz.ErrIO, err))
	}
	return Layer2Bytes(original, glb, opts)
}

// Layer2Bytes is Layer2 over in-memory inputs. original is used exactly as
// given, without gzip peeking.
func Layer2Bytes(original, glb []byte, opts Options) LayerReport {
	r := LayerReport{Layer: 2, Title: TitleLossless, Total: 2}
	alg := opts.Digest
	if alg == "" {
		alg = digest.AlgorithmMD5
	}
	r.note("Original SPZ: %d bytes", len(original))

	c, err := ParseContainer(glb)
	if err != nil {
		return r.fail(err)
	}
	declared, err := c.BufferByteLength()
	if err != nil {
		return r.fail(err)
	}
	r.note("Buffer size from JSON: %d bytes", declared)
	extracted, err := c.Payload()
	if err != nil {
		return r.fail(err)
	}
	r.note("Extracted from GLB: %d bytes", len(extracted))

	originalSum, err := digest.Sum(alg, original)
	if err != nil {
		return r.fail(err)
	}
	extractedSum, err := digest.Sum(alg, extracted)
	if err != nil {
		return r.fail(err)
	}
	r.note("Original %s:  %s", alg, originalSum)
	r.note("Extracted %s: %s", alg, extractedSum)

	r.check("byte length", len(original) == len(extracted), "original=%d extracted=%d", len(original), len(extracted))
	r.check("digest", originalSum == extractedSum, "%s", alg)
	return r.finish()
}

// Layer3 checks that the GLB metadata a decoder relies on agrees with the
// source: the SPZ extension is declared and buffers[0].byteLength equals
// the source file size.
func Layer3(spzPath, glbPath string) LayerReport {
	source, err := os.ReadFile(spzPath)
	if err != nil {
		r := LayerReport{Layer: 3, Title: TitleDecoding, Total: 2}
		return r.fail(fmt.Errorf("%w: %w", spz.ErrIO, err))
	}
	glb, err := os.ReadFile(glbPath)
	if err != nil {
		r := LayerReport{Layer: 3, Title: TitleDecoding, Total: 2}
		return r.fail(fmt.Errorf("%w: %w", spz.ErrIO, err))
	}
	return Layer3Bytes(source, glb)
}

// Layer3Bytes is Layer3 over in-memory inputs.
func Layer3Bytes(source, glb []byte) LayerReport {
	r := LayerReport{Layer: 3, Title: TitleDecoding, Total: 2}
	r.note("SPZ size: %d bytes", len(source))
	r.note("Gzip: %s", yesNo(spz.IsGzip(source)))
	if env, err := spz.Inspect(source); err == nil {
		r.note("Envelope: version=%d points=%d shDegree=%d", env.Header.Version, env.Header.NumPoints, env.Header.SHDegree)
	} else {
		r.note("Envelope: unreadable (%v)", err)
	}

	c, err := ParseContainer(glb)
	if err != nil {
		return r.fail(err)
	}
	r.note("Valid GLB format")
	doc := c.Doc()

	if !r.check("spz extension", hasString(doc.Get("extensionsUsed"), extSPZCompression), "%s", extSPZCompression) {
		return r.finish()
	}
	r.note("Attributes: %d", len(doc.Get("meshes.0.primitives.0.attributes").Map()))

	declared, err := c.BufferByteLength()
	if err != nil {
		return r.fail(err)
	}
	r.note("Buffer size: %d bytes", declared)
	r.check("buffer size", declared == len(source), "json=%d source=%d", declared, len(source))
	return r.finish()
}

// All runs every layer, never short-circuiting, so a single run shows all
// diagnostics.
func All(spzPath, glbPath string, opts Options) Report {
	return Report{Layers: []LayerReport{
		Layer1(glbPath),
		Layer2(spzPath, glbPath, opts),
		Layer3(spzPath, glbPath),
	}}
}

// AllBytes is All over in-memory inputs.
func AllBytes(source, glb []byte, opts Options) Report {
	return Report{Layers: []LayerReport{
		Layer1Bytes(glb),
		Layer2Bytes(source, glb, opts),
		Layer3Bytes(source, glb),
	}}
}

func hasString(arr gjson.Result, want string) bool {
	if !arr.IsArray() {
		return false
	}
	var names []string
	for _, v := range arr.Array() {
		names = append(names, v.String())
	}
	return slices.Contains(names, want)
}

// attributesEmpty requires every primitive to carry an empty attributes
// object.
func attributesEmpty(doc gjson.Result) bool {
	prims := 0
	empty := true
	doc.Get("meshes").ForEach(func(_, mesh gjson.Result) bool {
		mesh.Get("primitives").ForEach(func(_, prim gjson.Result) bool {
			prims++
			attrs := prim.Get("attributes")
			if !attrs.IsObject() || len(attrs.Map()) != 0 {
				empty = false
			}
			return empty
		})
		return empty
	})
	return prims > 0 && empty
}

// spzBufferViewResult finds the SPZ compression bufferView reference on the
// first primitive, nested under KHR_gaussian_splatting or, as older drafts
// placed it, directly on the primitive.
func spzBufferViewResult(doc gjson.Result) gjson.Result {
	prim := doc.Get("meshes.0.primitives.0.extensions")
	if v := prim.Get(extGaussianSplatting + ".extensions." + extSPZCompression + ".bufferView"); v.Exists() {
		return v
	}
	return prim.Get(extSPZCompression + ".bufferView")
}

func spzBufferView(doc gjson.Result) (int64, bool) {
	v := spzBufferViewResult(doc)
	if v.Type != gjson.Number || v.Int() < 0 {
		return 0, false
	}
	return v.Int(), true
}

func rawOr(v gjson.Result, fallback string) string {
	if !v.Exists() {
		return fallback
	}
	return v.Raw
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
