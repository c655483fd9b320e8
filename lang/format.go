package lang

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// PlainFormatter writes template output as-is and discards all label
// events. It also backs the plain-text coercion used when a template
// is consumed where a string is required.
type PlainFormatter struct {
	W io.Writer
}

func (f *PlainFormatter) WriteString(s string) {
	_, _ = io.WriteString(f.W, s)
}

func (f *PlainFormatter) PushLabel(string) {}

func (f *PlainFormatter) PopLabel() {}

// ColorFormatter styles template output with lipgloss styles selected
// by the active label stack. When nested labels both define a style,
// the innermost label's properties win; unset properties fall through
// to enclosing labels.
type ColorFormatter struct {
	w      io.Writer
	styles map[string]lipgloss.Style
	stack  []string
}

// NewColorFormatter creates a ColorFormatter writing to w with the
// given label-to-style map.
func NewColorFormatter(
	w io.Writer,
	styles map[string]lipgloss.Style,
) *ColorFormatter {
	return &ColorFormatter{w: w, styles: styles}
}

func (f *ColorFormatter) WriteString(s string) {
	if s == "" {
		return
	}

	_, _ = io.WriteString(f.w, f.currentStyle().Render(s))
}

func (f *ColorFormatter) PushLabel(label string) {
	f.stack = append(f.stack, label)
}

func (f *ColorFormatter) PopLabel() {
	if len(f.stack) > 0 {
		f.stack = f.stack[:len(f.stack)-1]
	}
}

// currentStyle folds the styles of the active labels, innermost
// outward. Inherit only copies properties not already set, so the
// innermost definition of each property survives.
func (f *ColorFormatter) currentStyle() lipgloss.Style {
	style := lipgloss.NewStyle()

	for i := len(f.stack) - 1; i >= 0; i-- {
		if s, ok := f.styles[f.stack[i]]; ok {
			style = style.Inherit(s)
		}
	}

	return style
}
