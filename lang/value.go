package lang

import "strconv"

// Kind enumerates the closed set of property value kinds. The set is
// fixed: methods and coercions are defined per kind in build.go, and
// extending the language means adding table entries, not new kinds.
type Kind int

const (
	KindString Kind = iota
	KindBoolean
	KindInteger
	KindCommitOrChangeID
	KindShortestIDPrefix
	KindSignature
	KindTimestamp
)

// Kinds returns every value kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindString,
		KindBoolean,
		KindInteger,
		KindCommitOrChangeID,
		KindShortestIDPrefix,
		KindSignature,
		KindTimestamp,
	}
}

// MethodNames returns the names of the methods defined on values of
// kind k, in the order build.go dispatches them. Kinds with no methods
// return nil.
func MethodNames(k Kind) []string {
	switch k {
	case KindString:
		return []string{"contains", "first_line"}
	case KindCommitOrChangeID:
		return []string{"short", "shortest"}
	case KindShortestIDPrefix:
		return []string{"with_brackets"}
	case KindSignature:
		return []string{"name", "email", "username", "timestamp"}
	case KindTimestamp:
		return []string{"ago"}
	}

	return nil
}

// String returns the kind's name as it appears in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "String"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindCommitOrChangeID:
		return "CommitOrChangeId"
	case KindShortestIDPrefix:
		return "ShortestIdPrefix"
	case KindSignature:
		return "Signature"
	case KindTimestamp:
		return "Timestamp"
	default:
		return "Unknown"
	}
}

// Property is a typed, pure computation from a record to one scalar
// value. Exactly one of the function fields is set, matching kind.
// Properties are immutable and safe to invoke repeatedly against
// different records.
type Property[C any] struct {
	kind      Kind
	str       func(C) string
	boolean   func(C) bool
	integer   func(C) int64
	id        func(C) CommitOrChangeID
	prefix    func(C) ShortestIDPrefix
	signature func(C) Signature
	timestamp func(C) Timestamp
}

// Kind returns the property's value kind.
func (p Property[C]) Kind() Kind { return p.kind }

// Property constructors, one per kind.

func StringProperty[C any](fn func(C) string) Property[C] {
	return Property[C]{kind: KindString, str: fn}
}

func BooleanProperty[C any](fn func(C) bool) Property[C] {
	return Property[C]{kind: KindBoolean, boolean: fn}
}

func IntegerProperty[C any](fn func(C) int64) Property[C] {
	return Property[C]{kind: KindInteger, integer: fn}
}

func CommitOrChangeIDProperty[C any](
	fn func(C) CommitOrChangeID,
) Property[C] {
	return Property[C]{kind: KindCommitOrChangeID, id: fn}
}

func ShortestIDPrefixProperty[C any](
	fn func(C) ShortestIDPrefix,
) Property[C] {
	return Property[C]{kind: KindShortestIDPrefix, prefix: fn}
}

func SignatureProperty[C any](fn func(C) Signature) Property[C] {
	return Property[C]{kind: KindSignature, signature: fn}
}

func TimestampProperty[C any](fn func(C) Timestamp) Property[C] {
	return Property[C]{kind: KindTimestamp, timestamp: fn}
}

// ConstantString returns a property yielding a fixed string.
func ConstantString[C any](s string) Property[C] {
	return StringProperty(func(C) string { return s })
}

// ConstantInteger returns a property yielding a fixed integer.
func ConstantInteger[C any](v int64) Property[C] {
	return IntegerProperty(func(C) int64 { return v })
}

// tryIntoBoolean returns a boolean computation for kinds coercible to
// Boolean. Strings coerce to their non-emptiness; no other kind
// coerces.
func (p Property[C]) tryIntoBoolean() (func(C) bool, bool) {
	switch p.kind {
	case KindBoolean:
		return p.boolean, true

	case KindString:
		str := p.str

		return func(rec C) bool { return str(rec) != "" }, true

	default:
		return nil, false
	}
}

// tryIntoInteger returns the integer computation for Integer
// properties. There are no coercions into Integer.
func (p Property[C]) tryIntoInteger() (func(C) int64, bool) {
	if p.kind != KindInteger {
		return nil, false
	}

	return p.integer, true
}

// intoPlainText returns a computation of the property's unstyled text.
// Strings pass through; every other kind renders its canonical display
// form through a plain buffer.
func (p Property[C]) intoPlainText() func(C) string {
	if p.kind == KindString {
		return p.str
	}

	template := p.intoTemplate()

	return func(rec C) string { return RenderPlain(template, rec) }
}

// intoTemplate adapts the property into a renderable producing its
// canonical text representation.
func (p Property[C]) intoTemplate() Template[C] {
	return formattedProperty[C]{property: p}
}

// formattedProperty renders a property's canonical display form.
type formattedProperty[C any] struct {
	property Property[C]
}

func (t formattedProperty[C]) Render(rec C, f Formatter) {
	switch p := t.property; p.kind {
	case KindString:
		f.WriteString(p.str(rec))

	case KindBoolean:
		f.WriteString(strconv.FormatBool(p.boolean(rec)))

	case KindInteger:
		f.WriteString(strconv.FormatInt(p.integer(rec), 10))

	case KindCommitOrChangeID:
		f.WriteString(p.id(rec).Hex)

	case KindShortestIDPrefix:
		// The unique prefix and the remainder are labeled separately so
		// the styling layer can distinguish them.
		prefix := p.prefix(rec)

		f.PushLabel("prefix")
		f.WriteString(prefix.Prefix)
		f.PopLabel()

		if prefix.Rest != "" {
			f.PushLabel("rest")
			f.WriteString(prefix.Rest)
			f.PopLabel()
		}

	case KindSignature:
		f.WriteString(p.signature(rec).String())

	case KindTimestamp:
		f.WriteString(p.timestamp(rec).String())
	}
}

// Labeled pairs a property with the styling labels accumulated while
// resolving it. Labels are ordered innermost-first in source order and
// are never mutated in place: each resolution step produces a new
// pair.
type Labeled[C any] struct {
	Property Property[C]
	Labels   []string
}

// NewLabeled pairs a property with initial labels. Resolvers use this
// to label keyword properties with the keyword name.
func NewLabeled[C any](p Property[C], labels ...string) Labeled[C] {
	return Labeled[C]{Property: p, Labels: labels}
}

// withLabel returns a copy with one label appended. The underlying
// array is never shared with the receiver.
func (l Labeled[C]) withLabel(label string) Labeled[C] {
	labels := make([]string, 0, len(l.Labels)+1)
	labels = append(labels, l.Labels...)
	labels = append(labels, label)

	return Labeled[C]{Property: l.Property, Labels: labels}
}

// intoTemplate materializes the labeled property into a renderable,
// wrapping it in a label annotation when any labels accumulated.
func (l Labeled[C]) intoTemplate() Template[C] {
	template := l.Property.intoTemplate()
	if len(l.Labels) == 0 {
		return template
	}

	return LabelTemplate(template, ConstantLabels[C](l.Labels))
}

// expression is the result of building one AST node: either a labeled
// property (a scalar) or a renderable template (formatted text with no
// scalar value). The distinction drives which operations are legal.
type expression[C any] struct {
	property *Labeled[C]
	template Template[C]
}

func propertyExpression[C any](l Labeled[C]) expression[C] {
	return expression[C]{property: &l}
}

func templateExpression[C any](t Template[C]) expression[C] {
	return expression[C]{template: t}
}

// isTemplate reports whether the expression has no scalar value.
func (e expression[C]) isTemplate() bool { return e.property == nil }

func (e expression[C]) tryIntoBoolean() (func(C) bool, bool) {
	if e.property == nil {
		return nil, false
	}

	return e.property.Property.tryIntoBoolean()
}

func (e expression[C]) tryIntoInteger() (func(C) int64, bool) {
	if e.property == nil {
		return nil, false
	}

	return e.property.Property.tryIntoInteger()
}

// intoPlainText materializes the expression as unstyled text: direct
// extraction for string properties, buffer rendering for everything
// else. Labels are dropped in this direction.
func (e expression[C]) intoPlainText() func(C) string {
	if e.property != nil {
		return e.property.Property.intoPlainText()
	}

	template := e.template

	return func(rec C) string { return RenderPlain(template, rec) }
}

func (e expression[C]) intoTemplate() Template[C] {
	if e.property != nil {
		return e.property.intoTemplate()
	}

	return e.template
}
