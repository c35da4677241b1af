// Package main is the entry point for the freightdocs CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"freightdocs/internal/config"
	"freightdocs/internal/engine"
	"freightdocs/internal/parser"
	"freightdocs/internal/textsource"
)

// version is set at build time via ldflags.
var version = "dev"

// app holds what every subcommand needs once flags and config are resolved.
type app struct {
	cfgFile   string
	logLevel  string
	logFormat string

	cfg        *config.Config
	logger     *slog.Logger
	source     *textsource.FileSource
	dispatcher *parser.Dispatcher
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "freightdocs",
		Short: "Extract structured records from freight document text",
		Long: `freightdocs reads the text of trucking documents (insurance certificates,
driver licenses, carrier agreements, rate confirmations, proofs of delivery
and invoices) and extracts typed records with a confidence score and a
verification flag.

Inputs are plain text files, OCR provider results in JSON, or PDFs with a
text layer.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file (environment variables FREIGHTDOCS_* override it)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: json or console")

	root.AddCommand(newParseCmd(a), newBatchCmd(a), newVersionCmd())
	return root
}

func (a *app) init(logOut io.Writer) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	logger, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	a.cfg = cfg
	a.logger = logger
	a.source = textsource.NewFileSource(0, logger)
	a.dispatcher = engine.New(cfg.Engine, logger, nil)
	return nil
}

func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
