package lang

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// ErrorKind discriminates the build-time error taxonomy. Every kind is
// deterministic and non-retryable; the first error detected aborts the
// whole compilation.
type ErrorKind int

const (
	// ErrSyntax reports a grammar violation.
	ErrSyntax ErrorKind = iota

	// ErrParseInt reports an integer literal outside the signed 64-bit
	// range.
	ErrParseInt

	// ErrNoSuchKeyword reports an identifier the resolver rejected.
	ErrNoSuchKeyword

	// ErrNoSuchFunction reports an unknown builtin function name.
	ErrNoSuchFunction

	// ErrNoSuchMethod reports a method undefined for the receiver's
	// kind, or any method called on a renderable receiver.
	ErrNoSuchMethod

	// ErrInvalidArgumentCountExact reports an arity mismatch against an
	// exact count.
	ErrInvalidArgumentCountExact

	// ErrInvalidArgumentCountRange reports an arity mismatch against an
	// inclusive range.
	ErrInvalidArgumentCountRange

	// ErrInvalidArgumentCountRangeFrom reports too few arguments for a
	// variadic call.
	ErrInvalidArgumentCountRangeFrom

	// ErrInvalidArgumentType reports an argument of the wrong kind with
	// no applicable coercion.
	ErrInvalidArgumentType
)

// String returns the kind's identifier for structured logging.
func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "SyntaxError"
	case ErrParseInt:
		return "ParseIntError"
	case ErrNoSuchKeyword:
		return "NoSuchKeyword"
	case ErrNoSuchFunction:
		return "NoSuchFunction"
	case ErrNoSuchMethod:
		return "NoSuchMethod"
	case ErrInvalidArgumentCountExact:
		return "InvalidArgumentCountExact"
	case ErrInvalidArgumentCountRange:
		return "InvalidArgumentCountRange"
	case ErrInvalidArgumentCountRangeFrom:
		return "InvalidArgumentCountRangeFrom"
	case ErrInvalidArgumentType:
		return "InvalidArgumentType"
	default:
		return "Unknown"
	}
}

// Error is a template compilation error. It carries a kind, a message,
// the source span the error points at, and optional structured logging
// attributes. When the originating source text is attached (see
// [Error.WithSource]), Error renders a caret-style display.
//
// It implements both error and slog.LogValuer.
type Error struct {
	kind   ErrorKind
	msg    string
	span   Span
	source string
	err    error       // wrapped cause (for errors.Unwrap)
	attrs  []slog.Attr // attributes for structured logging
}

// newError creates an Error of the given kind at the given span.
func newError(kind ErrorKind, span Span, msg string) *Error {
	return &Error{kind: kind, msg: msg, span: span}
}

// Kind returns the error's taxonomy kind.
func (e *Error) Kind() ErrorKind { return e.kind }

// Span returns the source span the error points at.
func (e *Error) Span() Span { return e.span }

// Message returns the bare human-readable message without location
// context.
func (e *Error) Message() string { return e.msg }

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Wrap returns a copy of the error wrapping the given cause.
func (e *Error) Wrap(err error) *Error {
	dup := *e
	dup.err = err

	return &dup
}

// With returns a copy of the error carrying additional structured
// logging attributes.
func (e *Error) With(attrs ...slog.Attr) *Error {
	dup := *e
	dup.attrs = make([]slog.Attr, 0, len(e.attrs)+len(attrs))
	dup.attrs = append(dup.attrs, e.attrs...)
	dup.attrs = append(dup.attrs, attrs...)

	return &dup
}

// WithSource returns a copy of the error with the originating source
// text attached, enabling the caret-style display.
func (e *Error) WithSource(source string) *Error {
	dup := *e
	dup.source = source

	return &dup
}

// Error implements the error interface. With source attached the
// message includes the location and a caret marker:
//
//	line 1, column 5: Keyword "foo" doesn't exist
//	  1 | x.y(foo)
//	          ^
func (e *Error) Error() string {
	if e.source == "" {
		return e.msg
	}

	line, col := lineColumn(e.source, e.span.Start)

	var buf strings.Builder

	buf.WriteString("line ")
	buf.WriteString(strconv.Itoa(line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(col))
	buf.WriteString(": ")
	buf.WriteString(e.msg)

	lines := strings.Split(e.source, "\n")
	if line > 0 && line <= len(lines) {
		text := lines[line-1]

		buf.WriteString("\n  ")
		buf.WriteString(strconv.Itoa(line))
		buf.WriteString(" | ")
		buf.WriteString(text)
		buf.WriteRune('\n')

		// +5 accounts for: 2 leading spaces + " | " (3 chars)
		padding := strings.Repeat(" ", len(strconv.Itoa(line))+5)
		if col > 0 {
			padding += strings.Repeat(" ", col-1)
		}

		buf.WriteString(padding + "^")
	}

	return buf.String()
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+4)
	attrs = append(attrs,
		slog.String("kind", e.kind.String()),
		slog.String("error", e.msg),
		slog.Int("start", e.span.Start),
		slog.Int("end", e.span.End),
	)

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Error constructors, one per taxonomy kind. Messages match the wire
// format the CLI presents to users.

func syntaxError(span Span, detail string) *Error {
	err := newError(ErrSyntax, span, "Syntax error")
	if detail != "" {
		err = err.With(slog.String("detail", detail))
	}

	return err
}

func parseIntError(span Span, cause error) *Error {
	msg := fmt.Sprintf("Invalid integer literal: %v", cause)

	return newError(ErrParseInt, span, msg).Wrap(cause)
}

// NoSuchKeywordError reports an identifier the resolver does not bind.
// Resolvers call this for unknown names; the span is the identifier's.
func NoSuchKeywordError(name string, span Span) *Error {
	msg := fmt.Sprintf("Keyword %q doesn't exist", name)

	return newError(ErrNoSuchKeyword, span, msg).
		With(slog.String("keyword", name))
}

func noSuchFunction(fn *FunctionCallNode) *Error {
	msg := fmt.Sprintf("Function %q doesn't exist", fn.Name)

	return newError(ErrNoSuchFunction, fn.NameSpan, msg).
		With(slog.String("function", fn.Name))
}

func noSuchMethod(typeName string, fn *FunctionCallNode) *Error {
	msg := fmt.Sprintf(
		"Method %q doesn't exist for type %q", fn.Name, typeName,
	)

	return newError(ErrNoSuchMethod, fn.NameSpan, msg).
		With(
			slog.String("type", typeName),
			slog.String("method", fn.Name),
		)
}

func invalidArgumentCountExact(n int, span Span) *Error {
	msg := fmt.Sprintf("Expected %d arguments", n)

	return newError(ErrInvalidArgumentCountExact, span, msg).
		With(slog.Int("expected", n))
}

func invalidArgumentCountRange(lo, hi int, span Span) *Error {
	msg := fmt.Sprintf("Expected %d to %d arguments", lo, hi)

	return newError(ErrInvalidArgumentCountRange, span, msg).
		With(slog.Int("min", lo), slog.Int("max", hi))
}

func invalidArgumentCountRangeFrom(lo int, span Span) *Error {
	msg := fmt.Sprintf("Expected at least %d arguments", lo)

	return newError(ErrInvalidArgumentCountRangeFrom, span, msg).
		With(slog.Int("min", lo))
}

func invalidArgumentType(expected string, span Span) *Error {
	msg := fmt.Sprintf("Expected argument of type %q", expected)

	return newError(ErrInvalidArgumentType, span, msg).
		With(slog.String("expected", expected))
}
