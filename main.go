package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"compress-pdf/compressor"
	"compress-pdf/pdf"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Compression failed: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := defaultConfig()

	cmd := &cobra.Command{
		Use:   "compress-pdf <input.pdf> <output.pdf>",
		Short: "Compress a PDF by re-encoding every page's content stream",
		Long: `Re-encodes the content stream of every page with pdfium and writes the
result to a new file, then reports the size reduction.

The default preset keeps quality; --maximum compresses as hard as possible and
flattens annotations and form fields into the page content.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.InputPath, cfg.OutputPath = args[0], args[1]

			logger := cfg.newLogger()
			engine, err := pdf.StartEngine(cfg.InstanceTimeout)
			if err != nil {
				return err
			}
			defer func() {
				if err := engine.Close(); err != nil {
					logger.Warn("close pdfium", "error", err)
				}
			}()

			return run(cmd.Context(), cfg, engine, logger, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&cfg.Maximum, "maximum", "m", false, "use maximum compression instead of the quality-preserving preset")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (trace, debug, info, warn, error), env "+EnvLogLevel)
	flags.BoolVar(&cfg.LogJSON, "log-json", false, "write logs as JSON")
	flags.BoolVarP(&cfg.Quiet, "quiet", "q", false, "only log warnings and errors")
	flags.DurationVar(&cfg.InstanceTimeout, "instance-timeout", cfg.InstanceTimeout, "how long to wait for a pdfium instance, env "+EnvInstanceTimeout)

	return cmd
}

func run(ctx context.Context, cfg *Config, lib pdf.Library, logger hclog.Logger, out io.Writer) error {
	c := compressor.New(lib,
		compressor.WithLogger(logger.Named("compressor")),
	)

	stats, err := c.Compress(ctx, cfg.InputPath, cfg.OutputPath, pdf.LevelFor(!cfg.Maximum))
	if err != nil {
		return err
	}

	printSummary(out, stats)
	return nil
}
