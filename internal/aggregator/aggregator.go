package aggregator

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/pagescore/internal/log"
	"github.com/nao1215/pagescore/internal/model"
)

// Fetcher retrieves the raw scoring payload of one profile.
// *pagespeed.Client implements it.
type Fetcher interface {
	// CheckCredential reports a configuration error without any network access.
	CheckCredential() error

	// Fetch runs one analysis and returns the raw response body.
	Fetch(ctx context.Context, target string, profile model.Profile) (json.RawMessage, error)
}

// Recorder observes every upstream call. Implementations must be safe for
// concurrent use since both profiles report from their own goroutine.
type Recorder interface {
	ObserveUpstream(profile model.Profile, err error)
}

// Aggregator turns one URL into a combined mobile and desktop result.
type Aggregator struct {
	fetcher  Fetcher
	logger   *slog.Logger
	recorder Recorder
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aggregator) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithRecorder sets the upstream call observer.
func WithRecorder(r Recorder) Option {
	return func(a *Aggregator) {
		a.recorder = r
	}
}

// New creates an Aggregator fetching through fetcher.
func New(fetcher Fetcher, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher: fetcher,
		logger:  log.Discard(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Evaluate scores target with both profiles concurrently and returns the
// two payloads together. If either call fails the whole evaluation fails;
// a half-filled result is never returned.
//
// The credential is checked before the URL, so a service without an API
// key answers every request with ErrMissingAPIKey and sends nothing upstream.
func (a *Aggregator) Evaluate(ctx context.Context, target string) (*model.ScoreResult, error) {
	if err := a.fetcher.CheckCredential(); err != nil {
		return nil, errors.Mark(err, ErrMissingAPIKey)
	}

	target = strings.TrimSpace(target)
	if target == "" {
		return nil, ErrEmptyURL
	}

	start := time.Now()
	profiles := model.Profiles()
	payloads := make([]json.RawMessage, len(profiles))

	g, gctx := errgroup.WithContext(ctx)
	for i, profile := range profiles {
		g.Go(func() error {
			body, err := a.fetcher.Fetch(gctx, target, profile)
			if a.recorder != nil {
				a.recorder.ObserveUpstream(profile, err)
			}
			if err != nil {
				return err
			}
			payloads[i] = body
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		a.logger.Warn("evaluation failed", "target", target, "error", err)
		return nil, err
	}

	a.logger.Debug("evaluation completed", "target", target, "elapsed", time.Since(start))
	return &model.ScoreResult{
		URL:     target,
		Mobile:  payloads[0],
		Desktop: payloads[1],
	}, nil
}
