package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/voxelsplace/spzglb/config"
	"github.com/voxelsplace/spzglb/digest"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spzglb.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *cfg != config.Default() {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.DigestAlgorithm() != digest.AlgorithmMD5 {
		t.Fatalf("default digest %q", cfg.DigestAlgorithm())
	}
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
generator = "  splat-pipeline  "
digest = "XXHASH"
log_level = "Debug"
color = "never"
`)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Generator != "splat-pipeline" {
		t.Fatalf("generator %q", cfg.Generator)
	}
	if cfg.DigestAlgorithm() != digest.AlgorithmXXHash {
		t.Fatalf("digest %q", cfg.Digest)
	}
	if cfg.LogLevel != "debug" || cfg.LogFormat != "console" {
		t.Fatalf("log settings %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.ColorEnabled(os.Stdout) {
		t.Fatalf("color should be disabled")
	}
}

func TestLoadRejects(t *testing.T) {
	cases := map[string]string{
		"digest":  `digest = "sha1"`,
		"level":   `log_level = "loud"`,
		"format":  `log_format = "xml"`,
		"color":   `color = "rainbow"`,
		"unknown": `verbose = true`,
		"syntax":  `digest = `,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := config.Load(writeConfig(t, body)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.Contains(err.Error(), "nope.toml") {
		t.Fatalf("expected missing file error, got %v", err)
	}
}

func TestDefaultRoundTripsThroughTOML(t *testing.T) {
	data, err := toml.Marshal(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if *cfg != config.Default() {
		t.Fatalf("round trip changed config: %+v", cfg)
	}
}

func TestColorAlways(t *testing.T) {
	cfg := config.Default()
	cfg.Color = config.ColorAlways
	if !cfg.ColorEnabled(nil) {
		t.Fatalf("always should force color")
	}
	cfg.Color = config.ColorAuto
	if cfg.ColorEnabled(nil) {
		t.Fatalf("auto with no file should disable color")
	}
}
