package utils

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/voxelsplace/spzglb/glb"
	"github.com/voxelsplace/spzglb/logging"
	"github.com/voxelsplace/spzglb/spz"
)

// ConvertOptions configures RunSPZ2GLB.
type ConvertOptions struct {
	Generator string
	Logger    *slog.Logger
}

// RunSPZ2GLB converts an .spz file into a .glb that embeds the file's bytes
// unchanged. The envelope is only peeked at for logging.
func RunSPZ2GLB(inPath, outPath string, opts ConvertOptions) error {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}

	log.Info("loading spz", "path", inPath)
	raw, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("%w: read spz: %w", spz.ErrIO, err)
	}

	env, err := spz.Inspect(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", inPath, err)
	}
	log.Info("spz envelope",
		"version", env.Header.Version,
		"points", env.Header.NumPoints,
		"sh_degree", env.Header.SHDegree,
		"gzip", env.Gzipped,
		"bytes", len(raw),
		"size", humanize.IBytes(uint64(len(raw))),
	)
	if !env.Header.KnownVersion() {
		log.Warn("unexpected spz version, embedding anyway", "version", env.Header.Version)
	}
	if env.Header.SHDegree > 3 {
		log.Warn("sh degree out of range, embedding anyway", "sh_degree", env.Header.SHDegree)
	}

	log.Info("creating glTF asset", "extensions", []string{glb.ExtGaussianSplatting, glb.ExtSPZCompression})
	out, err := glb.Build(raw, env.Header, glb.Options{Generator: opts.Generator, Logger: log})
	if err != nil {
		return err
	}
	if err := WriteFileAtomic(outPath, out, 0o644); err != nil {
		return err
	}
	log.Info("glb exported", "path", outPath, "bytes", len(out), "size", humanize.IBytes(uint64(len(out))))
	return nil
}
