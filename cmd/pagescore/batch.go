package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/nao1215/pagescore/internal/batch"
	"github.com/nao1215/pagescore/internal/client"
	"github.com/nao1215/pagescore/internal/report"
)

// NewBatchCmd creates the batch command.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Score every URL listed in a file",
		Long: `Batch reads one URL per line (only the first comma-separated field is used,
blank lines are skipped) and scores them one after another, in file order.

A URL that cannot be scored still gets a row: every metric reads "Error"
and its status is "failed". Results are printed as a table and exported to
WebsitePerformance.csv unless --output or --format says otherwise.

Use "-" to read the list from standard input.

Examples:
  # Score urls.txt through the aggregator service
  pagescore batch urls.txt

  # Export both CSV and XLS with the extended metrics
  pagescore batch -f csv -f xls --extended urls.txt

  # Call PageSpeed Insights directly
  cat urls.txt | pagescore batch --direct -`,
		Args: cobra.ExactArgs(1),
		RunE: runBatchCmd,
	}

	evaluatorFlags(cmd)
	exportFlags(cmd)
	cmd.Flags().BoolP("quiet", "q", false, "Do not print per-URL progress")

	return cmd
}

// runBatchCmd executes the batch command.
func runBatchCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg, slog.LevelWarn)

	urls, err := readURLList(cmd.InOrStdin(), trimmedArg(args))
	if err != nil {
		return err
	}

	targets, err := exportTargets(cmd, true, report.FormatCSV)
	if err != nil {
		return err
	}
	extended, err := cmd.Flags().GetBool("extended")
	if err != nil {
		return err
	}
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}

	evaluator, err := newEvaluator(cmd, cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stderr := cmd.ErrOrStderr()
	pingService(ctx, stderr, evaluator, logger)

	opts := []batch.Option{batch.WithLogger(logger)}
	if !quiet {
		opts = append(opts, batch.WithProgress(func(p batch.Progress) {
			fmt.Fprintf(stderr, "[%d/%d] %3d%% %-7s %s\n", p.Index, p.Total, p.Percent, p.Record.Status, p.Record.URL)
		}))
	}

	start := time.Now()
	run := batch.NewRunner(evaluator, opts...).Run(ctx, urls)
	if run.Total == 0 {
		fmt.Fprintln(stderr, "Warning: the URL list is empty, nothing to evaluate")
		return nil
	}
	fmt.Fprintf(stderr, "Batch completed in %s: %d succeeded, %d failed\n\n",
		time.Since(start).Round(time.Millisecond), run.Succeeded(), run.Failed())

	if err := emitRun(cmd.OutOrStdout(), stderr, run, targets, extended, logger); err != nil {
		return err
	}

	if interrupted(ctx) {
		return errors.New("batch interrupted")
	}
	return nil
}

// pingService warns when the aggregator service does not answer its
// health check. The batch still runs; each URL then fails on its own.
func pingService(ctx context.Context, stderr io.Writer, evaluator batch.Evaluator, logger *slog.Logger) {
	c, ok := evaluator.(*client.Client)
	if !ok {
		return
	}
	if _, err := c.Health(ctx); err != nil {
		logger.Warn("aggregator service health check failed", "service", c.BaseURL(), "error", err)
		fmt.Fprintf(stderr, "Warning: aggregator service at %s is not reachable\n", c.BaseURL())
	}
}

// readURLList reads the URL list from path, or from stdin when path is "-".
func readURLList(stdin io.Reader, path string) ([]string, error) {
	if path == "" {
		return nil, errors.New("no URL list provided")
	}
	if path == "-" {
		return batch.ParseURLs(stdin)
	}

	f, err := os.Open(path) //nolint:gosec // User-provided input path is intentional
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()
	return batch.ParseURLs(f)
}
