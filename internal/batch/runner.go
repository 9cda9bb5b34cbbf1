package batch

//go:generate mockgen -source=runner.go -destination=mock_evaluator_test.go -package=batch

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/pagescore/internal/log"
	"github.com/nao1215/pagescore/internal/model"
)

// Evaluator scores one URL. Both *aggregator.Aggregator (in-process) and
// *client.Client (remote service) implement it.
type Evaluator interface {
	Evaluate(ctx context.Context, url string) (*model.ScoreResult, error)
}

// Progress is reported after every processed URL.
type Progress struct {
	// Index is the 1-based position of the URL just processed.
	Index int
	// Total is the number of URLs in the batch.
	Total int
	// Percent is the completion ratio, from 0 to 100.
	Percent int
	// Record is the outcome of the URL.
	Record model.Record
}

// Runner evaluates URLs strictly one after another.
type Runner struct {
	evaluator  Evaluator
	logger     *slog.Logger
	onProgress func(Progress)
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithProgress registers a callback invoked after each URL, on the
// goroutine running the batch.
func WithProgress(fn func(Progress)) Option {
	return func(r *Runner) {
		r.onProgress = fn
	}
}

// NewRunner creates a Runner using evaluator.
func NewRunner(evaluator Evaluator, opts ...Option) *Runner {
	r := &Runner{
		evaluator:  evaluator,
		logger:     log.Discard(),
		onProgress: func(Progress) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.onProgress == nil {
		r.onProgress = func(Progress) {}
	}
	return r
}

// Run evaluates urls in input order, waiting for each one before starting
// the next. Blank entries are dropped first and do not count toward the
// total. Every remaining URL yields exactly one record; a failure becomes
// a placeholder record and the batch moves on.
func (r *Runner) Run(ctx context.Context, urls []string) *model.BatchRun {
	urls = NormalizeURLs(urls)
	run := model.NewBatchRun(len(urls))
	if run.Total == 0 {
		r.logger.Warn("batch has no URLs", "run_id", run.ID)
		return run
	}

	start := time.Now()
	r.logger.Info("starting batch", "run_id", run.ID, "total", run.Total)

	for i, u := range urls {
		rec := r.Evaluate(ctx, u)
		if err := run.Append(rec); err != nil {
			// Total is fixed from urls above, so this is unreachable.
			r.logger.Error("dropping record", "run_id", run.ID, "url", u, "error", err)
			continue
		}
		r.onProgress(Progress{
			Index:   i + 1,
			Total:   run.Total,
			Percent: run.Progress(),
			Record:  rec,
		})
	}

	r.logger.Info("batch complete",
		"run_id", run.ID,
		"total", run.Total,
		"succeeded", run.Succeeded(),
		"failed", run.Failed(),
		"elapsed", time.Since(start),
	)
	return run
}

// Evaluate scores a single URL and flattens the outcome. It never fails:
// errors are reported inside the returned record.
func (r *Runner) Evaluate(ctx context.Context, url string) model.Record {
	result, err := r.evaluator.Evaluate(ctx, url)
	if err != nil {
		r.logger.Warn("evaluation failed", "url", url, "error", err)
		return model.NewFailedRecord(url, err)
	}

	rec := model.NewSuccessRecord(url, result)
	if !rec.Succeeded() {
		r.logger.Warn("incomplete evaluation result", "url", url, "error", rec.Error)
	}
	return rec
}
