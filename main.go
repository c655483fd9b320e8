package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ardnew/revtmpl/cli"
	"github.com/ardnew/revtmpl/lang"
	"github.com/ardnew/revtmpl/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// Template diagnostics carry their own caret display; print
		// them verbatim instead of through the logger.
		var diag *lang.Error
		if errors.As(err, &diag) {
			fmt.Fprintln(os.Stderr, diag.Error())
			os.Exit(1)
		}

		log.Error(
			"run failed",
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
