package config

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"
)

// Watch monitors the configuration file at path and calls onChange with a
// freshly loaded Config each time the file is written. It runs until ctx is
// cancelled. A reload that fails keeps the previous settings and is logged.
//
// The parent directory is watched rather than the file, so saves that
// rename a temporary file over path are seen as well.
func Watch(ctx context.Context, path string, logger *slog.Logger, onChange func(*Config)) error {
	if logger == nil {
		logger = slog.Default()
	}

	target := filepath.Clean(path)
	if _, err := LoadConfigFile(target); err != nil {
		return errors.Wrapf(err, "failed to watch %s", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create config watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return errors.Wrapf(err, "failed to watch %s", path)
	}
	logger.Info("watching configuration file", "path", target)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(target)
			if err != nil {
				logger.Error("configuration reload failed, keeping previous settings", "path", target, "error", err)
				continue
			}
			logger.Info("configuration reloaded", "path", target)
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("configuration watcher error", "error", err)
		}
	}
}
