package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/nao1215/pagescore/internal/aggregator"
	"github.com/nao1215/pagescore/internal/config"
	"github.com/nao1215/pagescore/internal/metrics"
	"github.com/nao1215/pagescore/internal/pagespeed"
	"github.com/nao1215/pagescore/internal/server"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the aggregator service",
		Long: `Serve runs the aggregator service.

POST /sendUrl with {"url": "..."} queries PageSpeed Insights for the mobile
and desktop profiles concurrently and answers {"mobile": ..., "desktop": ...}.
GET / is a health check and GET /metrics exposes request counters.

Examples:
  # Listen on port 8000
  PAGESPEED_API_KEY=... pagescore serve

  # Listen on localhost:9000 and reload the API key when the config changes
  pagescore serve --host 127.0.0.1 --port 9000 --watch-config -c .pagescore`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}

	cmd.Flags().String("host", config.DefaultHost,
		"Listen host (default: every interface)")
	cmd.Flags().IntP("port", "p", config.DefaultPort,
		"Listen port (overrides PORT)")
	cmd.Flags().Bool("watch-config", false,
		"Reload the API key when the configuration file changes")

	return cmd
}

// runServeCmd executes the serve command.
func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyServeFlags(cmd, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration error")
	}

	logger := newLogger(cmd, cfg, slog.LevelInfo)
	slog.SetDefault(logger)

	watch, err := cmd.Flags().GetBool("watch-config")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runServe(ctx, cmd.OutOrStdout(), cfg, watch, logger)
}

// applyServeFlags overlays explicitly set flags onto cfg.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("host") {
		host, err := cmd.Flags().GetString("host")
		if err != nil {
			return err
		}
		cfg.Host = host
	}
	if cmd.Flags().Changed("port") {
		port, err := cmd.Flags().GetInt("port")
		if err != nil {
			return err
		}
		cfg.Port = port
	}
	return nil
}

// service bundles the aggregator service with the client whose key can be
// rotated while it runs.
type service struct {
	server    *server.Server
	pagespeed *pagespeed.Client
}

// newService wires the scoring client, the aggregator and the HTTP server.
func newService(cfg *config.Config, logger *slog.Logger) (*service, error) {
	pc, err := newPageSpeedClient(cfg, logger)
	if err != nil {
		return nil, err
	}

	reg := metrics.NewRegistry()
	agg := aggregator.New(pc,
		aggregator.WithLogger(logger),
		aggregator.WithRecorder(reg),
	)
	srv := server.New(agg,
		server.WithAddress(cfg.Host, cfg.Port),
		server.WithLogger(logger),
		server.WithMetrics(reg),
		server.WithReadHeaderTimeout(config.DefaultReadHeaderTimeout),
	)
	return &service{server: srv, pagespeed: pc}, nil
}

// runServe serves until ctx is cancelled, then shuts down gracefully.
func runServe(ctx context.Context, out io.Writer, cfg *config.Config, watch bool, logger *slog.Logger) error {
	svc, err := newService(cfg, logger)
	if err != nil {
		return err
	}

	if !cfg.HasAPIKey() {
		logger.Warn("no PageSpeed API key configured, /sendUrl answers 500 until one is set",
			"env", config.EnvAPIKey)
	}

	if watch {
		startConfigWatch(ctx, cfg, svc.pagespeed, logger)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.server.Start()
	}()
	fmt.Fprintf(out, "Aggregator service listening on %s\n", svc.server.Addr())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("received shutdown signal, stopping...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := svc.server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}
	return <-errCh
}

// startConfigWatch reloads the API key whenever the configuration file
// changes. Other settings require a restart.
func startConfigWatch(ctx context.Context, cfg *config.Config, pc *pagespeed.Client, logger *slog.Logger) {
	if cfg.ConfigFilePath == "" {
		logger.Warn("--watch-config ignored, no configuration file in use")
		return
	}

	go func() {
		err := config.Watch(ctx, cfg.ConfigFilePath, logger, func(next *config.Config) {
			if next.APIKey != "" && next.APIKey != cfg.APIKey {
				logger.Info("PageSpeed API key updated")
			}
			pc.SetAPIKey(next.APIKey)
		})
		if err != nil {
			logger.Error("configuration watch stopped", "error", err)
		}
	}()
}
