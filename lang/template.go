package lang

import "strings"

// Formatter receives the rendered output of a template. Text arrives
// through WriteString; label scopes arrive as push/pop events around
// the text they annotate. Labels are metadata for the styling layer,
// never inline markup.
type Formatter interface {
	WriteString(s string)
	PushLabel(label string)
	PopLabel()
}

// Template is a compiled evaluation-tree node. It is immutable and
// holds no per-render state: the same tree may be rendered repeatedly,
// and concurrently, against distinct records.
type Template[C any] interface {
	Render(rec C, f Formatter)
}

// Render renders a compiled template for one record through the given
// formatter.
func Render[C any](t Template[C], rec C, f Formatter) {
	t.Render(rec, f)
}

// RenderPlain renders a template for one record, discarding labels,
// and returns the text.
func RenderPlain[C any](t Template[C], rec C) string {
	var buf strings.Builder

	t.Render(rec, &PlainFormatter{W: &buf})

	return buf.String()
}

// literalTemplate renders fixed text.
type literalTemplate[C any] struct {
	text string
}

// LiteralTemplate returns a template that renders fixed text.
func LiteralTemplate[C any](text string) Template[C] {
	return literalTemplate[C]{text: text}
}

func (t literalTemplate[C]) Render(_ C, f Formatter) {
	f.WriteString(t.text)
}

// concatTemplate renders its children in order with no separator.
type concatTemplate[C any] struct {
	contents []Template[C]
}

// ConcatTemplate returns a template rendering each child in order.
func ConcatTemplate[C any](contents ...Template[C]) Template[C] {
	return concatTemplate[C]{contents: contents}
}

func (t concatTemplate[C]) Render(rec C, f Formatter) {
	for _, content := range t.contents {
		content.Render(rec, f)
	}
}

// labelTemplate annotates its child's output with a label set that is
// recomputed per record.
type labelTemplate[C any] struct {
	content Template[C]
	labels  func(C) []string
}

// LabelTemplate returns a template annotating content with the labels
// produced by the given function, innermost last.
func LabelTemplate[C any](
	content Template[C],
	labels func(C) []string,
) Template[C] {
	return labelTemplate[C]{content: content, labels: labels}
}

// ConstantLabels adapts a fixed label list for LabelTemplate.
func ConstantLabels[C any](labels []string) func(C) []string {
	return func(C) []string { return labels }
}

func (t labelTemplate[C]) Render(rec C, f Formatter) {
	labels := t.labels(rec)

	for _, label := range labels {
		f.PushLabel(label)
	}

	t.content.Render(rec, f)

	for range labels {
		f.PopLabel()
	}
}

// conditionalTemplate renders one of two branches depending on a
// boolean property. A nil false branch renders nothing.
type conditionalTemplate[C any] struct {
	condition   func(C) bool
	trueBranch  Template[C]
	falseBranch Template[C]
}

// ConditionalTemplate returns a template rendering trueBranch when the
// condition holds and falseBranch (which may be nil) otherwise.
func ConditionalTemplate[C any](
	condition func(C) bool,
	trueBranch, falseBranch Template[C],
) Template[C] {
	return conditionalTemplate[C]{
		condition:   condition,
		trueBranch:  trueBranch,
		falseBranch: falseBranch,
	}
}

func (t conditionalTemplate[C]) Render(rec C, f Formatter) {
	if t.condition(rec) {
		t.trueBranch.Render(rec, f)

		return
	}

	if t.falseBranch != nil {
		t.falseBranch.Render(rec, f)
	}
}

// separateTemplate joins the non-empty renderings of its contents with
// a separator. Contents are probed with a plain render first so that
// empty results produce no stray separators.
type separateTemplate[C any] struct {
	separator Template[C]
	contents  []Template[C]
}

// SeparateTemplate returns a template joining non-empty contents with
// the separator's rendering.
func SeparateTemplate[C any](
	separator Template[C],
	contents []Template[C],
) Template[C] {
	return separateTemplate[C]{separator: separator, contents: contents}
}

func (t separateTemplate[C]) Render(rec C, f Formatter) {
	first := true

	for _, content := range t.contents {
		if RenderPlain(content, rec) == "" {
			continue
		}

		if !first {
			t.separator.Render(rec, f)
		}

		first = false

		content.Render(rec, f)
	}
}
