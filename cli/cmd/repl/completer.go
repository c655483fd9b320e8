package repl

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/ardnew/revtmpl/commit"
	"github.com/ardnew/revtmpl/lang"
)

// ctrlCommands are the available colon-prefixed commands.
var ctrlCommands = []string{"help", "keywords", "commits", "clear", "quit"}

// builtinFunctions are the global template functions.
var builtinFunctions = []string{"label", "if", "separate"}

// methodCandidates is the union of every kind's method names, used for
// completion after a member-access dot.
func methodCandidates() []string {
	var names []string

	for _, kind := range lang.Kinds() {
		names = append(names, lang.MethodNames(kind)...)
	}

	return names
}

// keywordCandidates are the top-level completions: keywords plus
// builtin function names.
func keywordCandidates() []string {
	return append(commit.KeywordNames(), builtinFunctions...)
}

// isWordBoundary reports whether the rune delimits words for
// completion. This covers whitespace, the member-access dot, and the
// template grammar's punctuation.
func isWordBoundary(r rune) bool {
	switch r {
	case '.', ' ', '\t', '(', ')', ',', '"':
		return true
	}

	return false
}

// wordBounds returns the word at the cursor and its byte boundaries
// within input. An empty word results when the cursor sits on a
// boundary.
func wordBounds(input string, cursor int) (word string, start, end int) {
	if cursor > len(input) {
		cursor = len(input)
	}

	start = cursor

	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(input[:start])
		if isWordBoundary(r) {
			break
		}

		start -= size
	}

	end = cursor

	for end < len(input) {
		r, size := utf8.DecodeRuneInString(input[end:])
		if isWordBoundary(r) {
			break
		}

		end += size
	}

	return input[start:end], start, end
}

// afterDot reports whether the word starting at wordStart is a method
// position, i.e. immediately preceded by a member-access dot.
func afterDot(input string, wordStart int) bool {
	return wordStart > 0 && input[wordStart-1] == '.'
}

// insideString reports whether the position sits inside a string
// literal, where completion would be noise. Escaped quotes don't
// toggle the state.
func insideString(input string, pos int) bool {
	open := false

	for i := 0; i < pos && i < len(input); i++ {
		switch input[i] {
		case '\\':
			i++
		case '"':
			open = !open
		}
	}

	return open
}

// computeMatches returns the fuzzy matches for the current input state
// along with the word boundaries they would replace.
func (m model) computeMatches() (fuzzy.Matches, int, int) {
	input := m.input.Value()
	cursor := m.input.Position()

	if strings.HasPrefix(input, ":") {
		word, start, end := wordBounds(input, cursor)
		if start == 0 {
			word, start = word[1:], 1
		}

		if word == "" {
			return nil, start, end
		}

		return fuzzy.Find(word, ctrlCommands), start, end
	}

	if insideString(input, cursor) {
		return nil, cursor, cursor
	}

	word, start, end := wordBounds(input, cursor)
	if word == "" {
		return nil, start, end
	}

	candidates := keywordCandidates()
	if afterDot(input, start) {
		candidates = methodCandidates()
	}

	return fuzzy.Find(word, candidates), start, end
}

// renderCandidateBar renders the horizontal completion bar, ellipsized
// to the given width. The selected candidate is highlighted while
// tab-cycling.
func renderCandidateBar(
	matches fuzzy.Matches,
	selected int,
	active bool,
	width int,
) string {
	var b strings.Builder

	for i, match := range matches {
		if i > 0 {
			b.WriteString("  ")
		}

		if active && i == selected {
			b.WriteString(selectedStyle.Render(match.Str))
		} else {
			b.WriteString(suggestionStyle.Render(match.Str))
		}
	}

	bar := b.String()
	if width > 1 && lipgloss.Width(bar) > width {
		bar = lipgloss.NewStyle().MaxWidth(width - 1).Render(bar) + "…"
	}

	return bar
}
