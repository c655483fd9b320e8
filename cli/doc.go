// Package cli contains the command line interface for revtmpl.
//
// # Commands
//
//   - check: compile a template and report diagnostics with caret context
//   - render: compile a template once and render every commit in a log
//   - keywords: list the available keywords and per-kind methods
//   - repl: interactive template session against a loaded log
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, DateTime, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Enable colorized output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof .
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory (default:
//     ~/.cache/revtmpl/pprof)
//
// # Configuration
//
// Flag defaults may be stored in ~/.config/revtmpl/config.json or
// config.yaml. Command-line flags override config file values.
//
// # Examples
//
//	# Check a template for errors
//	revtmpl check -T 'commit_id.short() " " description.first_line()'
//
//	# Render a commit log with styles
//	revtmpl render -T 'label("id", commit_id.short())' --log jj.yaml \
//	    --styles styles.yaml
//
//	# Debug logging with CPU profiling
//	revtmpl render -T description --log jj.yaml --log-level=debug \
//	    --pprof-mode=cpu
package cli
