package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/nao1215/pagescore/internal/batch"
	"github.com/nao1215/pagescore/internal/model"
)

// NewCheckCmd creates the check command.
func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <url>",
		Short: "Score a single URL",
		Long: `Check scores one URL for the mobile and desktop profiles and prints the
flattened metrics.

Examples:
  # Ask the aggregator service on localhost:8000
  pagescore check https://example.com

  # Call PageSpeed Insights directly and export WebsiteScores.xls
  pagescore check --direct -f xls https://example.com

  # Export CSV to a chosen path
  pagescore check -o reports/example.csv https://example.com`,
		Args: cobra.ExactArgs(1),
		RunE: runCheckCmd,
	}

	evaluatorFlags(cmd)
	exportFlags(cmd)

	return cmd
}

// runCheckCmd executes the check command.
func runCheckCmd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd, cfg, slog.LevelWarn)

	target := trimmedArg(args)
	if target == "" {
		return errors.New("no URL provided")
	}

	targets, err := exportTargets(cmd, false)
	if err != nil {
		return err
	}
	extended, err := cmd.Flags().GetBool("extended")
	if err != nil {
		return err
	}

	evaluator, err := newEvaluator(cmd, cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.ErrOrStderr(), "Evaluating %s...\n", target)
	rec := batch.NewRunner(evaluator, batch.WithLogger(logger)).Evaluate(ctx, target)
	run := model.NewSingleRun(rec)

	if err := emitRun(cmd.OutOrStdout(), cmd.ErrOrStderr(), run, targets, extended, logger); err != nil {
		return err
	}

	if !rec.Succeeded() {
		return errors.Newf("evaluation of %s failed: %s", target, rec.Error)
	}
	return nil
}
