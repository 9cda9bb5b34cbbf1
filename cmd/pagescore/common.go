package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/nao1215/pagescore/internal/aggregator"
	"github.com/nao1215/pagescore/internal/batch"
	"github.com/nao1215/pagescore/internal/client"
	"github.com/nao1215/pagescore/internal/config"
	"github.com/nao1215/pagescore/internal/log"
	"github.com/nao1215/pagescore/internal/model"
	"github.com/nao1215/pagescore/internal/pagespeed"
	"github.com/nao1215/pagescore/internal/report"
)

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// getConfigFlag retrieves the config file flag from the command or its parent.
func getConfigFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path, err = cmd.Root().PersistentFlags().GetString("config")
		if err != nil {
			return ""
		}
	}
	return path
}

// loadConfig layers the configuration file and the environment over the
// defaults. Command flags are applied by each command afterwards.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(getConfigFlag(cmd))
	if err != nil {
		return nil, errors.Wrap(err, "failed to load configuration")
	}
	cfg.Verbose = getVerboseFlag(cmd)
	return cfg, nil
}

// newLogger creates the command logger writing to stderr. Verbose mode
// lowers the level to Debug.
func newLogger(cmd *cobra.Command, cfg *config.Config, level slog.Level) *slog.Logger {
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return log.New(cmd.ErrOrStderr(), log.Options{
		Level:  level,
		Format: log.ParseFormat(cfg.LogFormat),
		Name:   config.AppName,
	})
}

// newPageSpeedClient creates the scoring API client from cfg.
func newPageSpeedClient(cfg *config.Config, logger *slog.Logger) (*pagespeed.Client, error) {
	pc, err := pagespeed.NewClient(cfg.APIKey,
		pagespeed.WithEndpoint(cfg.PageSpeedEndpoint),
		pagespeed.WithTimeout(cfg.Timeout),
		pagespeed.WithLogger(logger),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PageSpeed client")
	}
	return pc, nil
}

// evaluatorFlags registers the flags choosing where URLs are evaluated.
func evaluatorFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("server", "s", "",
		"Aggregator service base URL (default "+config.DefaultServerURL+")")
	cmd.Flags().Bool("direct", false,
		"Call the PageSpeed Insights API directly instead of the aggregator service")
}

// newEvaluator returns the aggregator service client, or an in-process
// aggregator when --direct is set.
func newEvaluator(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (batch.Evaluator, error) {
	if cmd.Flags().Changed("server") {
		serverURL, err := cmd.Flags().GetString("server")
		if err != nil {
			return nil, err
		}
		cfg.ServerURL = serverURL
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration error")
	}

	direct, err := cmd.Flags().GetBool("direct")
	if err != nil {
		return nil, err
	}
	if direct {
		if !cfg.HasAPIKey() {
			logger.Warn("no PageSpeed API key configured, every URL will fail", "env", config.EnvAPIKey)
		}
		pc, err := newPageSpeedClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		return aggregator.New(pc, aggregator.WithLogger(logger)), nil
	}

	c, err := client.New(cfg.ServerURL, client.WithTimeout(cfg.Timeout), client.WithLogger(logger))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create service client")
	}
	return c, nil
}

// exportFlags registers the flags controlling report output.
func exportFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "",
		"Write the report to this file (format inferred from the extension)")
	cmd.Flags().StringSliceP("format", "f", nil,
		"Export formats: csv, xls, json, markdown (repeatable)")
	cmd.Flags().BoolP("extended", "x", false,
		"Include Speed Index, Total Blocking Time and Time to Interactive")
}

// exportTarget is one report file to write.
type exportTarget struct {
	path   string
	format report.Format
}

// exportTargets resolves the report files requested by flags. When neither
// --output nor --format is given, defaultFormats are written under their
// default file names.
func exportTargets(cmd *cobra.Command, isBatch bool, defaultFormats ...report.Format) ([]exportTarget, error) {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}
	names, err := cmd.Flags().GetStringSlice("format")
	if err != nil {
		return nil, err
	}

	formats := make([]report.Format, 0, len(names))
	for _, name := range names {
		f, err := report.ParseFormat(name)
		if err != nil {
			return nil, err
		}
		formats = append(formats, f)
	}

	switch {
	case output != "" && len(formats) > 1:
		return nil, errors.New("--output accepts a single --format")
	case output != "" && len(formats) == 1:
		return []exportTarget{{path: output, format: formats[0]}}, nil
	case output != "":
		f, err := report.FormatFromPath(output)
		if err != nil {
			return nil, err
		}
		return []exportTarget{{path: output, format: f}}, nil
	case len(formats) == 0:
		formats = defaultFormats
	}

	targets := make([]exportTarget, 0, len(formats))
	for _, f := range formats {
		targets = append(targets, exportTarget{path: report.DefaultFileName(isBatch, f), format: f})
	}
	return targets, nil
}

// emitRun renders run as a terminal table on out and exports it to every
// target in the same pass. A run without records is reported as a warning
// and no file is written.
func emitRun(out, status io.Writer, run *model.BatchRun, targets []exportTarget, extended bool, logger *slog.Logger) (err error) {
	writers := []report.Writer{
		report.NewTableWriter(out, report.WithTableColumns(report.WithExtendedMetrics(extended))),
	}

	if len(targets) > 0 && (run == nil || len(run.Records) == 0) {
		logger.Warn("nothing to export", "error", report.ErrNoRecords)
		fmt.Fprintln(status, "Warning: no data to export")
		targets = nil
	}

	for _, target := range targets {
		f, createErr := createReportFile(target.path)
		if createErr != nil {
			return createErr
		}
		defer func() {
			if closeErr := f.Close(); closeErr != nil && err == nil {
				err = errors.Wrapf(closeErr, "failed to close %s", target.path)
			}
		}()

		w, formatErr := report.NewWriter(target.format, f, report.WithExtendedMetrics(extended))
		if formatErr != nil {
			return formatErr
		}
		writers = append(writers, w)
	}

	if _, err := report.NewMultiWriter(writers...).Write(run); err != nil {
		return errors.Wrap(err, "failed to write report")
	}
	for _, target := range targets {
		fmt.Fprintf(status, "Exported %d record(s) to %s\n", len(run.Records), target.path)
	}
	return nil
}

// createReportFile creates or truncates a report file, creating parent
// directories.
func createReportFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, errors.Wrap(err, "failed to create output directory")
		}
	}

	// Reports list the audited URLs, so keep them owner-readable only.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create output file")
	}
	return f, nil
}

// interrupted reports whether ctx was cancelled by a signal.
func interrupted(ctx context.Context) bool {
	return errors.Is(ctx.Err(), context.Canceled)
}

// trimmedArg returns args[0] without surrounding blanks.
func trimmedArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.TrimSpace(args[0])
}
