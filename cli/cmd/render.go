package cmd

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/revtmpl/commit"
	"github.com/ardnew/revtmpl/lang"
	"github.com/ardnew/revtmpl/log"
	"github.com/ardnew/revtmpl/pkg"
)

// Render compiles a template once and renders every commit of a log.
type Render struct {
	templateArg `embed:""`

	Log    string `default:"-" help:"Commit log file (YAML), or '-' for stdin" short:"l"`
	Styles string `help:"YAML style map for labeled output" type:"existingfile" optional:""`
}

// Run executes the render command.
func (r *Render) Run(ctx context.Context) error {
	if r.Template == "" && r.Log == stdinSource {
		return pkg.ErrReadInput.Wrapf(
			"template and commit log cannot both come from stdin",
		)
	}

	source, err := r.source()
	if err != nil {
		return err
	}

	repo, err := loadRepo(r.Log)
	if err != nil {
		return err
	}

	styles, err := loadStyles(r.Styles)
	if err != nil {
		return err
	}

	tmpl, err := lang.Compile(source, commit.Keywords(repo),
		lang.WithLogger(log.Default()),
	)
	if err != nil {
		return pkg.ErrCompile.Wrap(err)
	}

	log.Default().DebugContext(ctx, "render start",
		slog.Int("commit_count", len(repo.Commits)),
		slog.Bool("styled", styles != nil),
	)

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	var formatter lang.Formatter = &lang.PlainFormatter{W: out}
	if styles != nil {
		formatter = lang.NewColorFormatter(out, styles)
	}

	// The compiled tree is reused across records.
	for _, c := range repo.Commits {
		lang.Render(tmpl, c, formatter)
		formatter.WriteString("\n")
	}

	return nil
}
