package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/ardnew/revtmpl/commit"
	"github.com/ardnew/revtmpl/lang"
)

// Keywords lists the template keywords with their value kinds, and the
// methods defined on each kind.
type Keywords struct{}

// Run executes the keywords command.
func (k *Keywords) Run(_ context.Context) error {
	// The resolver reports each keyword's kind without evaluating it,
	// so an empty repository is enough.
	resolve := commit.Keywords(commit.NewRepo(nil, ""))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "Keywords:")

	for _, name := range commit.KeywordNames() {
		labeled, err := resolve(name, lang.Span{})
		if err != nil {
			return err
		}

		fmt.Fprintf(w, "  %s\t%s\n", name, labeled.Property.Kind())
	}

	fmt.Fprintln(w, "\nMethods:")

	for _, kind := range lang.Kinds() {
		methods := lang.MethodNames(kind)
		if len(methods) == 0 {
			continue
		}

		for i := range methods {
			methods[i] += "()"
		}

		fmt.Fprintf(w, "  %s\t%s\n", kind, strings.Join(methods, "  "))
	}

	return w.Flush()
}
