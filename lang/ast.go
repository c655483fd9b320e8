package lang

import (
	"fmt"
	"strconv"
	"strings"
)

// ExprKind indicates the kind of an AST node.
type ExprKind int

const (
	// ExprIdentifier is a bare name resolved by the caller's resolver.
	ExprIdentifier ExprKind = iota

	// ExprInteger is a signed 64-bit integer literal.
	ExprInteger

	// ExprString is a string literal with escapes decoded.
	ExprString

	// ExprList is two or more juxtaposed terms (implicit concatenation).
	ExprList

	// ExprFunctionCall is a builtin function invocation.
	ExprFunctionCall

	// ExprMethodCall is a method invocation on a receiver expression.
	ExprMethodCall
)

// String returns a string representation of the node kind.
func (k ExprKind) String() string {
	switch k {
	case ExprIdentifier:
		return "Identifier"
	case ExprInteger:
		return "Integer"
	case ExprString:
		return "String"
	case ExprList:
		return "List"
	case ExprFunctionCall:
		return "FunctionCall"
	case ExprMethodCall:
		return "MethodCall"
	default:
		return "Unknown"
	}
}

// ExpressionNode is an AST node without type or name checking.
// Exactly one of the payload fields is set based on Kind.
// Nodes are immutable once built.
type ExpressionNode struct {
	Kind ExprKind
	Span Span

	Name    string            // ExprIdentifier
	Integer int64             // ExprInteger
	Text    string            // ExprString
	List    []*ExpressionNode // ExprList
	Call    *FunctionCallNode // ExprFunctionCall
	Method  *MethodCallNode   // ExprMethodCall
}

// FunctionCallNode carries a call's name and arguments. ArgsSpan
// covers the full argument list and is the span arity errors point at.
type FunctionCallNode struct {
	Name     string
	NameSpan Span
	Args     []*ExpressionNode
	ArgsSpan Span
}

// MethodCallNode is a call dispatched on a receiver expression.
type MethodCallNode struct {
	Receiver *ExpressionNode
	Call     *FunctionCallNode
}

// ParseTemplate parses source text into AST nodes. No type or name
// checking is made at this stage.
func ParseTemplate(source string) (*ExpressionNode, error) {
	root, perr := parseProgram(source)
	if perr != nil {
		return nil, perr.WithSource(source)
	}

	node, berr := buildTemplateNode(root, source)
	if berr != nil {
		return nil, berr.WithSource(source)
	}

	return node, nil
}

// buildTemplateNode converts a template syntax node. A template with a
// single child collapses to that child; multiple children become a
// List node.
func buildTemplateNode(n *syntaxNode, source string) (*ExpressionNode, *Error) {
	mustRule(n, ruleTemplate)

	if len(n.children) == 1 {
		return buildTermNode(n.children[0], source)
	}

	nodes := make([]*ExpressionNode, 0, len(n.children))

	for _, child := range n.children {
		term, err := buildTermNode(child, source)
		if err != nil {
			return nil, err
		}

		nodes = append(nodes, term)
	}

	return &ExpressionNode{
		Kind: ExprList,
		Span: n.span,
		List: nodes,
	}, nil
}

// buildTermNode converts a term: a primary folded left-to-right into
// nested MethodCall nodes, one per chained call.
func buildTermNode(n *syntaxNode, source string) (*ExpressionNode, *Error) {
	mustRule(n, ruleTerm)

	node, err := buildPrimaryNode(n.children[0], source)
	if err != nil {
		return nil, err
	}

	for _, chain := range n.children[1:] {
		call, err := buildFunctionCallNode(chain, source)
		if err != nil {
			return nil, err
		}

		node = &ExpressionNode{
			Kind: ExprMethodCall,
			Span: chain.span,
			Method: &MethodCallNode{
				Receiver: node,
				Call:     call,
			},
		}
	}

	return node, nil
}

func buildPrimaryNode(n *syntaxNode, source string) (*ExpressionNode, *Error) {
	switch n.rule {
	case ruleStringLiteral:
		return &ExpressionNode{
			Kind: ExprString,
			Span: n.span,
			Text: decodeStringLiteral(n, source),
		}, nil

	case ruleIntegerLiteral:
		value, err := strconv.ParseInt(n.text(source), 10, 64)
		if err != nil {
			return nil, parseIntError(n.span, err)
		}

		return &ExpressionNode{
			Kind:    ExprInteger,
			Span:    n.span,
			Integer: value,
		}, nil

	case ruleIdentifier:
		return &ExpressionNode{
			Kind: ExprIdentifier,
			Span: n.span,
			Name: n.text(source),
		}, nil

	case ruleFunction:
		call, err := buildFunctionCallNode(n, source)
		if err != nil {
			return nil, err
		}

		return &ExpressionNode{
			Kind: ExprFunctionCall,
			Span: n.span,
			Call: call,
		}, nil

	case ruleTemplate:
		return buildTemplateNode(n, source)

	default:
		panic(fmt.Sprintf("unexpected primary: %v", n.rule))
	}
}

func buildFunctionCallNode(n *syntaxNode, source string) (*FunctionCallNode, *Error) {
	mustRule(n, ruleFunction)

	name := n.children[0]
	arguments := n.children[1]

	mustRule(name, ruleIdentifier)
	mustRule(arguments, ruleArguments)

	args := make([]*ExpressionNode, 0, len(arguments.children))

	for _, child := range arguments.children {
		arg, err := buildTemplateNode(child, source)
		if err != nil {
			return nil, err
		}

		args = append(args, arg)
	}

	return &FunctionCallNode{
		Name:     name.text(source),
		NameSpan: name.span,
		Args:     args,
		ArgsSpan: arguments.span,
	}, nil
}

// decodeStringLiteral concatenates raw segments and decodes escapes.
// The grammar admits only \" \\ and \n; anything else reaching this
// point is an internal invariant violation, not a user error.
func decodeStringLiteral(n *syntaxNode, source string) string {
	mustRule(n, ruleStringLiteral)

	var buf strings.Builder

	for _, part := range n.children {
		switch part.rule {
		case ruleRawSegment:
			buf.WriteString(part.text(source))

		case ruleEscape:
			switch ch := part.text(source)[1]; ch {
			case '"':
				buf.WriteByte('"')
			case '\\':
				buf.WriteByte('\\')
			case 'n':
				buf.WriteByte('\n')
			default:
				panic(fmt.Sprintf("invalid escape: \\%c", ch))
			}

		default:
			panic(fmt.Sprintf("unexpected part of string: %v", part.rule))
		}
	}

	return buf.String()
}

// mustRule asserts the syntax node was matched by the expected grammar
// production.
func mustRule(n *syntaxNode, r rule) {
	if n.rule != r {
		panic(fmt.Sprintf("expected %v node, got %v", r, n.rule))
	}
}
