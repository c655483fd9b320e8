package lang

import (
	"strings"
	"unicode/utf8"
)

// Span is a half-open byte range into the template source text.
// Spans are attached to every syntax and AST node so that diagnostics
// can point at the offending characters.
type Span struct {
	Start int
	End   int
}

// makeSpan constructs a span from start/end byte offsets.
func makeSpan(start, end int) Span {
	return Span{Start: start, End: end}
}

// Union returns the smallest span covering both s and t.
func (s Span) Union(t Span) Span {
	if t.Start < s.Start {
		s.Start = t.Start
	}

	if t.End > s.End {
		s.End = t.End
	}

	return s
}

// Text returns the portion of source covered by the span.
// Out-of-range spans yield an empty string.
func (s Span) Text(source string) string {
	if s.Start < 0 || s.End > len(source) || s.Start > s.End {
		return ""
	}

	return source[s.Start:s.End]
}

// lineColumn computes the 1-based line and column of a byte offset
// within source. Columns count runes, matching the caret display which
// pads with one space per rune of the offending line prefix.
func lineColumn(source string, offset int) (line, col int) {
	if offset > len(source) {
		offset = len(source)
	}

	before := source[:offset]
	line = strings.Count(before, "\n") + 1

	lineStart := 0
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		lineStart = i + 1
	}

	col = utf8.RuneCountInString(before[lineStart:]) + 1

	return line, col
}
