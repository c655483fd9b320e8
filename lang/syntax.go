package lang

import (
	"unicode"
	"unicode/utf8"
)

// rule identifies the grammar production a syntax node was matched by.
type rule int

const (
	ruleTemplate rule = iota
	ruleTerm
	ruleStringLiteral
	ruleRawSegment
	ruleEscape
	ruleIntegerLiteral
	ruleIdentifier
	ruleFunction
	ruleArguments
)

// String returns the production name, used in internal invariant
// panics only.
func (r rule) String() string {
	switch r {
	case ruleTemplate:
		return "template"
	case ruleTerm:
		return "term"
	case ruleStringLiteral:
		return "string_literal"
	case ruleRawSegment:
		return "raw_segment"
	case ruleEscape:
		return "escape"
	case ruleIntegerLiteral:
		return "integer_literal"
	case ruleIdentifier:
		return "identifier"
	case ruleFunction:
		return "function"
	case ruleArguments:
		return "arguments"
	default:
		return "unknown"
	}
}

// syntaxNode is a node of the concrete syntax tree. It is ephemeral:
// produced by the parser and consumed entirely while building the AST.
type syntaxNode struct {
	rule     rule
	span     Span
	children []*syntaxNode
}

// text returns the source slice the node covers.
func (n *syntaxNode) text(source string) string {
	return n.span.Text(source)
}

// parser is a recursive-descent parser over the template grammar.
// It tracks only a byte offset; line/column for diagnostics is derived
// from the span when an error is displayed.
type parser struct {
	src string
	pos int
}

// parseProgram parses the entire input as a template followed by EOF.
// Whitespace-only input yields an empty template node.
func parseProgram(source string) (*syntaxNode, *Error) {
	p := &parser{src: source}

	p.skipWhitespace()

	if p.eof() {
		return &syntaxNode{
			rule: ruleTemplate,
			span: makeSpan(p.pos, p.pos),
		}, nil
	}

	tmpl, err := p.parseTemplate()
	if err != nil {
		return nil, err
	}

	p.skipWhitespace()

	if !p.eof() {
		return nil, syntaxError(
			makeSpan(p.pos, p.pos), "expected end of input",
		)
	}

	return tmpl, nil
}

// parseTemplate parses one or more juxtaposed terms. It stops at a
// character that cannot start a term: EOF, ')', or ','.
func (p *parser) parseTemplate() (*syntaxNode, *Error) {
	start := p.pos

	var terms []*syntaxNode

	for {
		p.skipWhitespace()

		if !p.atTermStart() {
			break
		}

		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}

		terms = append(terms, term)
	}

	if len(terms) == 0 {
		return nil, syntaxError(
			makeSpan(p.pos, p.pos), "expected expression",
		)
	}

	end := terms[len(terms)-1].span.End

	return &syntaxNode{
		rule:     ruleTemplate,
		span:     makeSpan(start, end),
		children: terms,
	}, nil
}

// parseTerm parses a primary optionally followed by a method chain.
// The dot binds tightly: no whitespace is admitted around it.
func (p *parser) parseTerm() (*syntaxNode, *Error) {
	primary, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	children := []*syntaxNode{primary}

	for p.peek() == '.' {
		p.advance()

		call, err := p.parseFunction()
		if err != nil {
			return nil, err
		}

		children = append(children, call)
	}

	end := children[len(children)-1].span.End

	return &syntaxNode{
		rule:     ruleTerm,
		span:     makeSpan(primary.span.Start, end),
		children: children,
	}, nil
}

// parsePrimary parses a string literal, integer literal, identifier,
// function call, or parenthesized template. Parenthesized templates
// are transparent: the inner template node is returned directly.
func (p *parser) parsePrimary() (*syntaxNode, *Error) {
	switch ch := p.peek(); {
	case ch == '"':
		return p.parseStringLiteral()

	case ch >= '0' && ch <= '9':
		return p.parseIntegerLiteral()

	case isIdentifierStart(ch):
		ident := p.parseIdentifier()
		if p.peek() == '(' {
			return p.parseCall(ident)
		}

		return ident, nil

	case ch == '(':
		p.advance()

		tmpl, err := p.parseTemplate()
		if err != nil {
			return nil, err
		}

		p.skipWhitespace()

		if !p.expect(')') {
			return nil, syntaxError(
				makeSpan(p.pos, p.pos), "expected )",
			)
		}

		return tmpl, nil

	default:
		return nil, syntaxError(
			makeSpan(p.pos, p.pos), "expected expression",
		)
	}
}

// parseStringLiteral parses a double-quoted string with \" \\ and \n
// escapes. Any other escape sequence is a grammar violation, reported
// here so the AST builder never sees one.
func (p *parser) parseStringLiteral() (*syntaxNode, *Error) {
	start := p.pos
	p.advance() // opening quote

	var segments []*syntaxNode

	segStart := p.pos

	flush := func(end int) {
		if end > segStart {
			segments = append(segments, &syntaxNode{
				rule: ruleRawSegment,
				span: makeSpan(segStart, end),
			})
		}
	}

	for {
		if p.eof() {
			return nil, syntaxError(
				makeSpan(start, p.pos), "unterminated string",
			)
		}

		switch p.peek() {
		case '"':
			flush(p.pos)
			p.advance()

			return &syntaxNode{
				rule:     ruleStringLiteral,
				span:     makeSpan(start, p.pos),
				children: segments,
			}, nil

		case '\\':
			flush(p.pos)

			escStart := p.pos
			p.advance()

			switch p.peek() {
			case '"', '\\', 'n':
				p.advance()
			default:
				return nil, syntaxError(
					makeSpan(escStart, p.pos+1), "invalid escape",
				)
			}

			segments = append(segments, &syntaxNode{
				rule: ruleEscape,
				span: makeSpan(escStart, p.pos),
			})
			segStart = p.pos

		default:
			p.advance()
		}
	}
}

// parseIntegerLiteral parses a decimal integer. A leading zero is only
// admitted for the bare literal "0".
func (p *parser) parseIntegerLiteral() (*syntaxNode, *Error) {
	start := p.pos

	for ch := p.peek(); ch >= '0' && ch <= '9'; ch = p.peek() {
		p.advance()
	}

	if p.pos-start > 1 && p.src[start] == '0' {
		return nil, syntaxError(
			makeSpan(start, p.pos), "leading zero in integer literal",
		)
	}

	return &syntaxNode{
		rule: ruleIntegerLiteral,
		span: makeSpan(start, p.pos),
	}, nil
}

// parseIdentifier parses letter (letter | digit | "_")*. The caller
// has already checked the start character.
func (p *parser) parseIdentifier() *syntaxNode {
	start := p.pos
	p.advance()

	for isIdentifierContinue(p.peek()) {
		p.advance()
	}

	return &syntaxNode{
		rule: ruleIdentifier,
		span: makeSpan(start, p.pos),
	}
}

// parseFunction parses an identifier immediately followed by an
// argument list. Used for the calls in a method chain, where a bare
// identifier is not admissible.
func (p *parser) parseFunction() (*syntaxNode, *Error) {
	if !isIdentifierStart(p.peek()) {
		return nil, syntaxError(
			makeSpan(p.pos, p.pos), "expected method name",
		)
	}

	ident := p.parseIdentifier()

	if p.peek() != '(' {
		return nil, syntaxError(makeSpan(p.pos, p.pos), "expected (")
	}

	return p.parseCall(ident)
}

// parseCall parses the argument list of a function or method call.
// The identifier has been consumed and the cursor sits on '('.
func (p *parser) parseCall(name *syntaxNode) (*syntaxNode, *Error) {
	p.advance() // '('
	p.skipWhitespace()

	argsStart := p.pos
	argsEnd := p.pos

	var args []*syntaxNode

	if p.peek() != ')' {
		for {
			arg, err := p.parseTemplate()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)
			argsEnd = p.pos

			p.skipWhitespace()

			if !p.expect(',') {
				break
			}

			argsEnd = p.pos

			p.skipWhitespace()

			// Trailing comma is allowed after at least one argument.
			if p.peek() == ')' {
				break
			}
		}
	}

	p.skipWhitespace()

	if !p.expect(')') {
		return nil, syntaxError(makeSpan(p.pos, p.pos), "expected )")
	}

	arguments := &syntaxNode{
		rule:     ruleArguments,
		span:     makeSpan(argsStart, argsEnd),
		children: args,
	}

	return &syntaxNode{
		rule:     ruleFunction,
		span:     makeSpan(name.span.Start, p.pos),
		children: []*syntaxNode{name, arguments},
	}, nil
}

// atTermStart reports whether the cursor sits on a character that can
// begin a term.
func (p *parser) atTermStart() bool {
	ch := p.peek()

	return ch == '"' || ch == '(' ||
		(ch >= '0' && ch <= '9') ||
		isIdentifierStart(ch)
}

// Cursor helpers.

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(p.src[p.pos:])

	return r
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	_, size := utf8.DecodeRuneInString(p.src[p.pos:])
	p.pos += size
}

func (p *parser) expect(ch rune) bool {
	if p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) skipWhitespace() {
	for !p.eof() && unicode.IsSpace(p.peek()) {
		p.advance()
	}
}

// Character classification.

// Identifiers start with a letter; underscores may only continue one.
func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r)
}

func isIdentifierContinue(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
