package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// Logger is a value type wrapping a configured slog handler. The zero
// value discards all records.
type Logger struct {
	handler slog.Handler
	cfg     config
}

// Make creates a Logger writing to w. Options override the defaults
// of [DefaultLevel], [DefaultFormat], and [DefaultTimeLayout].
func Make(w io.Writer, opts ...Option) Logger {
	cfg := apply(defaults(w), opts...)

	return Logger{handler: cfg.handler(), cfg: cfg}
}

// Wrap returns a new Logger with the receiver's configuration as the
// base and the given options applied over it.
func (l Logger) Wrap(opts ...Option) Logger {
	cfg := apply(l.cfg, opts...)

	return Logger{handler: cfg.handler(), cfg: cfg}
}

// With returns a new Logger that includes the given attributes in
// every record.
func (l Logger) With(attrs ...slog.Attr) Logger {
	if l.handler == nil {
		return l
	}

	return Logger{handler: l.handler.WithAttrs(attrs), cfg: l.cfg}
}

// Level returns the minimum level the logger emits.
func (l Logger) Level() Level {
	if l.handler == nil {
		return DefaultLevel
	}

	return l.cfg.level
}

// Format returns the configured output encoding.
func (l Logger) Format() Format {
	if l.handler == nil {
		return DefaultFormat
	}

	return l.cfg.format
}

// TraceContext logs at Trace level with the provided context.
func (l Logger) TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelTrace, msg, attrs...)
}

// Trace logs at Trace level.
func (l Logger) Trace(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelTrace, msg, attrs...)
}

// DebugContext logs at Debug level with the provided context.
func (l Logger) DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelDebug, msg, attrs...)
}

// Debug logs at Debug level.
func (l Logger) Debug(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelDebug, msg, attrs...)
}

// InfoContext logs at Info level with the provided context.
func (l Logger) InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelInfo, msg, attrs...)
}

// Info logs at Info level.
func (l Logger) Info(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelInfo, msg, attrs...)
}

// WarnContext logs at Warn level with the provided context.
func (l Logger) WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelWarn, msg, attrs...)
}

// Warn logs at Warn level.
func (l Logger) Warn(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelWarn, msg, attrs...)
}

// ErrorContext logs at Error level with the provided context.
func (l Logger) ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.log(ctx, LevelError, msg, attrs...)
}

// Error logs at Error level.
func (l Logger) Error(msg string, attrs ...slog.Attr) {
	l.log(context.Background(), LevelError, msg, attrs...)
}

func (l Logger) log(
	ctx context.Context,
	level Level,
	msg string,
	attrs ...slog.Attr,
) {
	if l.handler == nil || !l.handler.Enabled(ctx, slog.Level(level)) {
		return
	}

	var pcs [1]uintptr

	// Skip runtime.Callers, log, and the level method to reach the
	// caller.
	runtime.Callers(3, pcs[:])

	r := slog.NewRecord(time.Now(), slog.Level(level), msg, pcs[0])
	r.AddAttrs(attrs...)

	_ = l.handler.Handle(ctx, r)
}

// defaultLogger backs the package-level functions. It is replaced
// wholesale by Config, never mutated.
var defaultLogger = Make(os.Stderr)

// Config reconfigures the package-level default logger.
func Config(opts ...Option) {
	defaultLogger = defaultLogger.Wrap(opts...)
}

// Default returns the package-level default logger.
func Default() Logger { return defaultLogger }

// Trace logs at Trace level through the default logger.
func Trace(msg string, attrs ...slog.Attr) {
	defaultLogger.log(context.Background(), LevelTrace, msg, attrs...)
}

// Debug logs at Debug level through the default logger.
func Debug(msg string, attrs ...slog.Attr) {
	defaultLogger.log(context.Background(), LevelDebug, msg, attrs...)
}

// Info logs at Info level through the default logger.
func Info(msg string, attrs ...slog.Attr) {
	defaultLogger.log(context.Background(), LevelInfo, msg, attrs...)
}

// Warn logs at Warn level through the default logger.
func Warn(msg string, attrs ...slog.Attr) {
	defaultLogger.log(context.Background(), LevelWarn, msg, attrs...)
}

// Error logs at Error level through the default logger.
func Error(msg string, attrs ...slog.Attr) {
	defaultLogger.log(context.Background(), LevelError, msg, attrs...)
}
