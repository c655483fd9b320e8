package cmd

import (
	"context"

	"github.com/ardnew/revtmpl/cli/cmd/repl"
	"github.com/ardnew/revtmpl/log"
	"github.com/ardnew/revtmpl/pkg"
)

// Repl starts an interactive template session against a loaded log.
type Repl struct {
	Log    string `help:"Commit log file (YAML)" optional:"" short:"l" type:"existingfile"`
	Styles string `help:"YAML style map for labeled output" optional:"" type:"existingfile"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	repo, err := loadRepo(r.Log)
	if err != nil {
		return err
	}

	styles, err := loadStyles(r.Styles)
	if err != nil {
		return err
	}

	return repl.Run(ctx, repo, styles, pkg.CacheDir(), log.Default())
}
