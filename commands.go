//go:build !(js && wasm)

package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/voxelsplace/spzglb/config"
	"github.com/voxelsplace/spzglb/logging"
	"github.com/voxelsplace/spzglb/utils"
)

var (
	errUsage              = errors.New("invalid usage")
	errVerificationFailed = errors.New("verification failed")
)

type commandContext struct {
	stdout, stderr io.Writer

	configPath string
	logLevel   string
	logFormat  string
	digest     string
	noColor    bool

	cfg *config.Config
}

// load resolves the config file and applies flag overrides on top of it.
func (c *commandContext) load(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = c.logFormat
	}
	if flags.Changed("digest") {
		cfg.Digest = c.digest
	}
	if c.noColor {
		cfg.Color = config.ColorNever
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

func (c *commandContext) colorEnabled() bool {
	f, _ := c.stdout.(*os.File)
	return c.cfg.ColorEnabled(f)
}

// exactArgs shows help instead of cobra's terse error on a wrong arg count.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != n {
			_ = cmd.Help()
			return errUsage
		}
		return nil
	}
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	ctx := &commandContext{stdout: stdout, stderr: stderr}

	rootCmd := &cobra.Command{
		Use:           "spztool",
		Short:         "Wrap SPZ gaussian splats into GLB and verify the result",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          exactArgs(0),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return ctx.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errUsage
		},
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&ctx.configPath, "config", "c", "", "TOML configuration file")
	pf.StringVar(&ctx.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	pf.StringVar(&ctx.logFormat, "log-format", "console", "Log format (console, json)")
	pf.BoolVar(&ctx.noColor, "no-color", false, "Disable coloured output")

	rootCmd.AddCommand(newConvertCommand(ctx))
	rootCmd.AddCommand(newVerifyCommand(ctx))
	return rootCmd
}

func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input.spz> <output.glb>",
		Short: "Embed an SPZ stream, unchanged, in a GLB container",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(logging.Options{
				Level:  ctx.cfg.LogLevel,
				Format: ctx.cfg.LogFormat,
				Writer: ctx.stderr,
			})
			if err != nil {
				return err
			}
			return utils.RunSPZ2GLB(args[0], args[1], utils.ConvertOptions{
				Generator: ctx.cfg.Generator,
				Logger:    logger,
			})
		},
	}
}

func newVerifyCommand(ctx *commandContext) *cobra.Command {
	verifyCmd := &cobra.Command{
		Use:   "verify <command> [args]",
		Short: "Verify a GLB produced by convert",
		Example: "  spztool verify all model.spz model.glb\n" +
			"  spztool verify layer1 model.glb",
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errUsage
		},
	}
	verifyCmd.PersistentFlags().StringVar(&ctx.digest, "digest", "md5", "Digest for the lossless layer (md5, xxhash)")

	run := func(command string, spzPath, glbPath string) error {
		rep, err := utils.RunVerify(command, spzPath, glbPath, utils.VerifyOptions{
			Digest: ctx.cfg.DigestAlgorithm(),
			Out:    ctx.stdout,
			Color:  ctx.colorEnabled(),
		})
		if err != nil {
			return err
		}
		if !rep.Passed() {
			return errVerificationFailed
		}
		return nil
	}

	verifyCmd.AddCommand(&cobra.Command{
		Use:   "layer1 <glb>",
		Short: "Validate GLB structure (Layer 1)",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run("layer1", "", args[0])
		},
	})
	verifyCmd.AddCommand(&cobra.Command{
		Use:   "layer2 <spz> <glb>",
		Short: "Binary lossless verification (Layer 2)",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run("layer2", args[0], args[1])
		},
	})
	verifyCmd.AddCommand(&cobra.Command{
		Use:   "layer3 <spz> <glb>",
		Short: "Decoding consistency (Layer 3)",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run("layer3", args[0], args[1])
		},
	})
	verifyCmd.AddCommand(&cobra.Command{
		Use:     "all <spz> <glb>",
		Aliases: []string{"verify"},
		Short:   "Run all three layers",
		Args:    exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run("all", args[0], args[1])
		},
	})
	return verifyCmd
}
