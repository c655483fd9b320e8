package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/revtmpl/commit"
	"github.com/ardnew/revtmpl/lang"
	"github.com/ardnew/revtmpl/log"
	"github.com/ardnew/revtmpl/pkg"
)

// Check compiles a template and reports diagnostics without rendering.
type Check struct {
	templateArg `embed:""`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	source, err := c.source()
	if err != nil {
		return err
	}

	// Keyword kinds are known without any loaded commits, so an empty
	// repository is enough to type-check every template.
	repo := commit.NewRepo(nil, "")

	_, err = lang.Compile(source, commit.Keywords(repo),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return pkg.ErrCompile.Wrap(err)
	}

	log.Default().DebugContext(ctx, "template ok",
		slog.Int("source_len", len(source)),
	)

	return nil
}
