// Package log builds the slog loggers used across pagescore.
//
// Loggers write through a zap core (via zapslog) and always wrap it in a
// SecureHandler, which masks the scoring API key wherever it could leak:
// attributes named after credentials, values that look like a Google API
// key, and "key=" query parameters inside URLs or error messages.
//
//	logger := log.New(os.Stderr, log.Options{Level: slog.LevelDebug, Format: log.FormatText})
//	logger.Debug("fetching", "url", upstreamURL) // key=***REDACTED***
package log
