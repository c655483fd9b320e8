package lang

import (
	"errors"
	"log/slog"

	"github.com/ardnew/revtmpl/log"
)

// Option applies a configuration option to compilation.
type Option func(*config)

type config struct {
	logger log.Logger
}

// WithLogger sets the structured logger for trace-level debugging.
// If not provided, the logger is zero-valued and all logging is a no-op.
func WithLogger(logger log.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// Compile parses source and builds an evaluation tree for records of
// type C. Identifiers are resolved through resolve. The returned
// template holds no reference to the source text or the resolver's
// transient state and may be rendered repeatedly and concurrently.
//
// Errors carry the offending source span and render with a caret
// excerpt. The first error encountered is returned and no partial
// template is produced.
func Compile[C any](
	source string,
	resolve Resolver[C],
	opts ...Option,
) (Template[C], error) {
	var cfg config

	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.logger.Trace(
		"compile start",
		slog.Int("source_length", len(source)),
	)

	node, err := ParseTemplate(source)
	if err != nil {
		cfg.logger.Error("parse failed", slog.Any("error", err))

		return nil, err
	}

	expr, err := buildExpression(node, resolve)
	if err != nil {
		cfg.logger.Error("build failed", slog.Any("error", err))

		return nil, attachSource(err, source)
	}

	cfg.logger.Debug("compile done")

	return expr.intoTemplate(), nil
}

// attachSource decorates build errors with the template source so
// they render with a caret excerpt. Resolver errors that are not
// [*Error] values pass through untouched.
func attachSource(err error, source string) error {
	var langErr *Error
	if errors.As(err, &langErr) {
		return langErr.WithSource(source)
	}

	return err
}
