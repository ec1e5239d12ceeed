//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/voxelsplace/spzglb/api"
)

func bytesFromJS(v js.Value) []byte {
	buf := make([]byte, v.Get("length").Int())
	js.CopyBytesToGo(buf, v)
	return buf
}

func bytesToJS(b []byte) js.Value {
	arr := js.Global().Get("Uint8Array").New(len(b))
	js.CopyBytesToJS(arr, b)
	return arr
}

func spz2glb(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing spz bytes")
	}
	out, err := api.SPZToGLB(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

func inspectSpz(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing spz bytes")
	}
	env, err := api.InspectSPZ(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	result := js.Global().Get("Object").New()
	result.Set("version", int(env.Header.Version))
	result.Set("numPoints", int(env.Header.NumPoints))
	result.Set("shDegree", int(env.Header.SHDegree))
	result.Set("gzip", env.Gzipped)
	return result
}

// verifyGlb returns { passed, layers: [{ layer, title, passed, notes, checks, error }] }.
func verifyGlb(this js.Value, args []js.Value) any {
	if len(args) < 2 {
		return js.ValueOf("missing spz and glb bytes")
	}
	rep := api.VerifyGLB(bytesFromJS(args[0]), bytesFromJS(args[1]))
	layers := js.Global().Get("Array").New()
	for _, l := range rep.Layers {
		obj := js.Global().Get("Object").New()
		obj.Set("layer", l.Layer)
		obj.Set("title", l.Title)
		obj.Set("passed", l.Passed)
		notes := js.Global().Get("Array").New()
		for _, n := range l.Notes {
			notes.Call("push", n)
		}
		obj.Set("notes", notes)
		checks := js.Global().Get("Array").New()
		for _, c := range l.Checks {
			co := js.Global().Get("Object").New()
			co.Set("name", c.Name)
			co.Set("passed", c.Passed)
			co.Set("detail", c.Detail)
			checks.Call("push", co)
		}
		obj.Set("checks", checks)
		if l.Err != nil {
			obj.Set("error", l.Err.Error())
		}
		layers.Call("push", obj)
	}
	result := js.Global().Get("Object").New()
	result.Set("passed", rep.Passed())
	result.Set("layers", layers)
	return result
}

func extractSpz(this js.Value, args []js.Value) any {
	if len(args) < 1 {
		return js.ValueOf("missing glb bytes")
	}
	out, err := api.ExtractSPZ(bytesFromJS(args[0]))
	if err != nil {
		return js.ValueOf(err.Error())
	}
	return bytesToJS(out)
}

func main() {
	js.Global().Set("spz2glb", js.FuncOf(spz2glb))
	js.Global().Set("inspectSpz", js.FuncOf(inspectSpz))
	js.Global().Set("verifyGlb", js.FuncOf(verifyGlb))
	js.Global().Set("extractSpz", js.FuncOf(extractSpz))
	select {}
}
