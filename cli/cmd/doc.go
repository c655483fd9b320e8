// Package cmd implements the revtmpl subcommands: check, render,
// keywords, and repl.
//
// Each command compiles template text against the commit keyword
// resolver and either reports diagnostics (check), renders every commit
// of a loaded log (render), or hands the compiled pipeline to the
// interactive session (repl). Shared input plumbing lives in cmd.go:
// template text comes from the -T flag or stdin, commit logs and style
// maps are YAML documents.
package cmd
