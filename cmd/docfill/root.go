package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Navl-bm/go-docx-tables/internal/config"
	"github.com/Navl-bm/go-docx-tables/version"
)

type rootOptions struct {
	cfgFile string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "docfill",
		Short: "Fill placeholder tables in Word documents",
		Long: `docfill fills a table of a .docx template with data records.

The table is the first one holding a text run equal to the first placeholder
token. Every record is substituted into the rows of that table and the result
is written to a new document.`,
		Version:      version.GitRelease,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(
		&opts.cfgFile, "config", "", "config file (default: ./docfill.yaml or ~/.docfill/docfill.yaml)",
	)
	cmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	cmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	cmd.AddCommand(
		newFillCmd(opts),
		newInspectCmd(opts),
		newInitConfigCmd(),
		newVersionCmd(),
	)
	return cmd
}

// load resolves the configuration for cmd and builds its logger.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(o.cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, newLogger(cfg.Log, cmd.ErrOrStderr()), nil
}

func newLogger(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
