// Package config loads the optional TOML settings shared by the convert and
// verify commands.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pelletier/go-toml/v2"

	"github.com/voxelsplace/spzglb/digest"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds every knob the CLI exposes.
type Config struct {
	Generator string `toml:"generator"`
	Digest    string `toml:"digest"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Color     string `toml:"color"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Generator: "spzglb",
		Digest:    string(digest.AlgorithmMD5),
		LogLevel:  "info",
		LogFormat: "console",
		Color:     ColorAuto,
	}
}

// Load decodes path over Default. An empty path returns the defaults; a path
// that does not exist is an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		file, err := os.Open(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config %s: %w", path, err)
			}
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Generator = strings.TrimSpace(c.Generator)
	if c.Generator == "" {
		c.Generator = Default().Generator
	}
	c.Digest = strings.ToLower(strings.TrimSpace(c.Digest))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.Color = strings.ToLower(strings.TrimSpace(c.Color))
	if c.Color == "" {
		c.Color = ColorAuto
	}
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	if _, err := digest.ParseAlgorithm(c.Digest); err != nil {
		return fmt.Errorf("config digest: %w", err)
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config log_level: unsupported value %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "", "console", "json":
	default:
		return fmt.Errorf("config log_format: unsupported value %q", c.LogFormat)
	}
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("config color: unsupported value %q", c.Color)
	}
	return nil
}

// DigestAlgorithm returns the validated digest algorithm.
func (c *Config) DigestAlgorithm() digest.Algorithm {
	alg, err := digest.ParseAlgorithm(c.Digest)
	if err != nil {
		return digest.AlgorithmMD5
	}
	return alg
}

// ColorEnabled resolves the color mode against f.
func (c *Config) ColorEnabled(f *os.File) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
