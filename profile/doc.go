// Package profile provides optional runtime profiling for the revtmpl
// command.
//
// It integrates [github.com/pkg/profile] behind the "pprof" build tag.
// When built without the tag (the default), all operations are no-ops
// with zero runtime overhead.
//
// The supported modes when built with the tag are allocs, block,
// clock, cpu, goroutine, heap, mem, mutex, thread, and trace; use
// [Modes] to retrieve the list programmatically. Profile files are
// written to the configured directory with names matching the mode
// (cpu.pprof, mem.pprof) and analyzed with go tool pprof:
//
//	go tool pprof ./revtmpl /path/to/cpu.pprof
//
// The pprof build also imports [net/http/pprof], registering the
// /debug/pprof/ HTTP handlers for applications that serve HTTP.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
