// Package lang implements the template language used to format commit
// records. A template is a short expression that extracts fields of a
// record and arranges them into styled text:
//
//	commit_id.short() " " author.name() " " description.first_line()
//
// Compilation is a single static pass: source text is parsed into a
// syntax tree, then built into an immutable evaluation tree. All name
// resolution, method dispatch, and argument checking happens at build
// time; rendering a compiled template against a record cannot fail.
//
// # Grammar
//
// Informal EBNF:
//
//	program    → template EOF
//	template   → term+                        (juxtaposition concatenates)
//	term       → primary ("." call)*
//	primary    → string | integer | identifier | call | "(" template ")"
//	call       → identifier "(" arguments? ")"
//	arguments  → template ("," template)* ","?
//	string     → '"' (raw | escape)* '"'
//	escape     → "\" ('"' | "\\" | "n")
//	integer    → "0" | nonzero digit*
//	identifier → letter (letter | digit | "_")*
//
// Whitespace between terms, around commas, and inside parentheses is
// insignificant. A trailing comma is allowed only after at least one
// argument. Integer literals reject leading zeros ("00" is a syntax
// error, "0" is not).
//
// # Values
//
// Every expression is either a property (a typed computation from a
// record to one of seven scalar kinds) or a renderable template.
// Identifier meaning is supplied by the caller through a [Resolver],
// which is the only seam binding the language to a concrete record
// type. Methods dispatch on the property's kind; the builtin functions
// are label, if, and separate.
//
// # Rendering
//
// Compiled templates write through a [Formatter], which receives label
// push/pop events alongside text. [PlainFormatter] discards labels;
// [ColorFormatter] maps them to lipgloss styles. Evaluation trees are
// immutable and safe to render concurrently against distinct records.
package lang
