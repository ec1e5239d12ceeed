package api

import (
	"github.com/voxelsplace/spzglb/digest"
	"github.com/voxelsplace/spzglb/glb"
	"github.com/voxelsplace/spzglb/spz"
	"github.com/voxelsplace/spzglb/verify"
)

// SPZToGLB takes .spz file bytes (gzip-wrapped or not) and returns .glb bytes
// embedding them unchanged.
func SPZToGLB(spzBytes []byte) ([]byte, error) {
	env, err := spz.Inspect(spzBytes)
	if err != nil {
		return nil, err
	}
	return glb.Build(spzBytes, env.Header, glb.Options{})
}

// InspectSPZ returns the envelope header fields of an .spz blob.
func InspectSPZ(spzBytes []byte) (spz.Envelope, error) {
	return spz.Inspect(spzBytes)
}

// VerifyGLB runs all three verification layers over in-memory inputs.
func VerifyGLB(spzBytes, glbBytes []byte) verify.Report {
	return verify.AllBytes(spzBytes, glbBytes, verify.Options{Digest: digest.AlgorithmMD5})
}

// ExtractSPZ returns the embedded stream of a .glb produced by SPZToGLB.
func ExtractSPZ(glbBytes []byte) ([]byte, error) {
	c, err := verify.ParseContainer(glbBytes)
	if err != nil {
		return nil, err
	}
	payload, err := c.Payload()
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), payload...), nil
}

// MD5 returns the lowercase hex MD5 of data.
func MD5(data []byte) string {
	return digest.Hash(data)
}
