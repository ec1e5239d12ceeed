package utils

import (
	"fmt"
	"io"

	"github.com/voxelsplace/spzglb/digest"
	"github.com/voxelsplace/spzglb/verify"
)

// VerifyOptions configures RunVerify.
type VerifyOptions struct {
	Digest digest.Algorithm
	Out    io.Writer
	Color  bool
}

// RunVerify runs the layers selected by command, renders them to opts.Out
// and returns the aggregate report. command is one of layer1, layer2,
// layer3, all or verify; layer1 ignores spzPath.
func RunVerify(command, spzPath, glbPath string, opts VerifyOptions) (verify.Report, error) {
	vopts := verify.Options{Digest: opts.Digest}
	var rep verify.Report
	switch command {
	case "layer1":
		rep.Layers = []verify.LayerReport{verify.Layer1(glbPath)}
	case "layer2":
		rep.Layers = []verify.LayerReport{verify.Layer2(spzPath, glbPath, vopts)}
	case "layer3":
		rep.Layers = []verify.LayerReport{verify.Layer3(spzPath, glbPath)}
	case "all", "verify":
		rep = verify.All(spzPath, glbPath, vopts)
	default:
		return rep, fmt.Errorf("unknown verify command %q", command)
	}
	if opts.Out != nil {
		verify.Render(opts.Out, rep, verify.RenderOptions{Color: opts.Color})
	}
	return rep, nil
}
