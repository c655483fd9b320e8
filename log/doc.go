// Package log provides a thin, concurrency-safe wrapper over
// [log/slog] with a Trace level, functional-option configuration, and
// an optional colorized text handler.
//
// A zero-valued [Logger] is safe to use and discards everything, so
// library code can carry a Logger without nil checks:
//
//	logger := log.Make(os.Stderr, log.WithLevel(log.LevelDebug))
//	logger.Info("compiled", slog.Int("commits", n))
//
// The package-level functions log through a default logger which the
// command-line layer reconfigures at startup via [Config].
package log
