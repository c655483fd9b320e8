package lang

import (
	"errors"
	"strconv"
	"strings"
	"testing"
)

// exprRepr renders an AST to a compact form that ignores spans, so
// structurally identical parses compare equal regardless of source
// whitespace and grouping.
func exprRepr(node *ExpressionNode) string {
	switch node.Kind {
	case ExprIdentifier:
		return node.Name

	case ExprInteger:
		return strconv.FormatInt(node.Integer, 10)

	case ExprString:
		return strconv.Quote(node.Text)

	case ExprList:
		parts := make([]string, len(node.List))
		for i, child := range node.List {
			parts[i] = exprRepr(child)
		}

		return "[" + strings.Join(parts, " ") + "]"

	case ExprFunctionCall:
		return callRepr(node.Call)

	case ExprMethodCall:
		return exprRepr(node.Method.Receiver) + "." +
			callRepr(node.Method.Call)

	default:
		return "?"
	}
}

func callRepr(call *FunctionCallNode) string {
	args := make([]string, len(call.Args))
	for i, arg := range call.Args {
		args[i] = exprRepr(arg)
	}

	return call.Name + "(" + strings.Join(args, ", ") + ")"
}

func mustParse(t *testing.T, source string) *ExpressionNode {
	t.Helper()

	node, err := ParseTemplate(source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return node
}

func TestParseTemplate_EquivalentForms(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{
			name: "whitespace and parens around terms",
			a:    " commit_id.short(1 )  description",
			b:    "commit_id.short( 1 ) (description)",
		},
		{
			name: "parens around whole template",
			a:    "(\"a\" \"b\")",
			b:    "\"a\" \"b\"",
		},
		{
			name: "whitespace inside argument list",
			a:    "if(divergent,label(\"x\",\"y\"))",
			b:    "if( divergent , label( \"x\" , \"y\" ) )",
		},
		{
			name: "nested parens collapse",
			a:    "((42))",
			b:    "42",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exprRepr(mustParse(t, tt.a))
			want := exprRepr(mustParse(t, tt.b))

			if got != want {
				t.Errorf("parses differ: %s vs %s", got, want)
			}
		})
	}
}

func TestParseTemplate_Juxtaposition(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "single string is not a list",
			source: `"ab"`,
			want:   `"ab"`,
		},
		{
			name:   "adjacent strings form a list",
			source: `"a" "b"`,
			want:   `["a" "b"]`,
		},
		{
			name:   "string then string literal zero",
			source: `"foo" "0"`,
			want:   `["foo" "0"]`,
		},
		{
			name:   "string then integer zero",
			source: `"foo" 0`,
			want:   `["foo" 0]`,
		},
		{
			name:   "no whitespace between terms",
			source: `1abc`,
			want:   `[1 abc]`,
		},
		{
			name:   "empty input is an empty list",
			source: "",
			want:   `[]`,
		},
		{
			name:   "whitespace-only input is an empty list",
			source: "  \n\t ",
			want:   `[]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exprRepr(mustParse(t, tt.source)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseTemplate_MethodChain(t *testing.T) {
	node := mustParse(t, `commit_id.shortest(4).with_brackets()`)

	// The chain folds left: the outermost node is the last call.
	if node.Kind != ExprMethodCall {
		t.Fatalf("expected MethodCall, got %v", node.Kind)
	}

	if name := node.Method.Call.Name; name != "with_brackets" {
		t.Errorf("outer call is %q, want with_brackets", name)
	}

	inner := node.Method.Receiver
	if inner.Kind != ExprMethodCall {
		t.Fatalf("expected nested MethodCall, got %v", inner.Kind)
	}

	if name := inner.Method.Call.Name; name != "shortest" {
		t.Errorf("inner call is %q, want shortest", name)
	}

	if recv := inner.Method.Receiver; recv.Kind != ExprIdentifier {
		t.Errorf("receiver is %v, want Identifier", recv.Kind)
	}
}

func TestParseTemplate_StringEscapes(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{name: "plain", source: `"hello"`, want: "hello"},
		{name: "escaped quote", source: `"say \"hi\""`, want: `say "hi"`},
		{name: "escaped backslash", source: `"a\\b"`, want: `a\b`},
		{name: "newline", source: `"a\nb"`, want: "a\nb"},
		{name: "empty", source: `""`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := mustParse(t, tt.source)
			if node.Kind != ExprString {
				t.Fatalf("expected String, got %v", node.Kind)
			}

			if node.Text != tt.want {
				t.Errorf("got %q, want %q", node.Text, tt.want)
			}
		})
	}
}

func TestParseTemplate_IntegerLiterals(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    int64
		errOK   bool
		wantErr ErrorKind
	}{
		{name: "zero", source: "0", want: 0},
		{name: "parenthesized", source: "(42)", want: 42},
		{
			name:   "max int64",
			source: "9223372036854775807",
			want:   9223372036854775807,
		},
		{
			name:    "overflow",
			source:  "9223372036854775808",
			errOK:   true,
			wantErr: ErrParseInt,
		},
		{name: "leading zero", source: "00", errOK: true, wantErr: ErrSyntax},
		{
			name:    "leading zero prefix",
			source:  "042",
			errOK:   true,
			wantErr: ErrSyntax,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := ParseTemplate(tt.source)

			if tt.errOK {
				assertErrorKind(t, err, tt.wantErr)

				return
			}

			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			if node.Kind != ExprInteger || node.Integer != tt.want {
				t.Errorf("got %s, want %d", exprRepr(node), tt.want)
			}
		})
	}
}

func TestParseTemplate_CommaRules(t *testing.T) {
	tests := []struct {
		source string
		ok     bool
	}{
		{source: `"".first_line()`, ok: true},
		{source: `"".first_line(,)`, ok: false},
		{source: `"".contains("")`, ok: true},
		{source: `"".contains("",)`, ok: true},
		{source: `"".contains("" , )`, ok: true},
		{source: `"".contains(,"")`, ok: false},
		{source: `"".contains("",,)`, ok: false},
		{source: `"".contains("" , , )`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			_, err := ParseTemplate(tt.source)

			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}

			if !tt.ok {
				assertErrorKind(t, err, ErrSyntax)
			}
		})
	}
}

func TestParseTemplate_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{name: "empty parens", source: "()"},
		{name: "unbalanced paren", source: "(description"},
		{name: "unterminated string", source: `"abc`},
		{name: "invalid escape", source: `"a\tb"`},
		{name: "whitespace before dot", source: "commit_id .short()"},
		{name: "whitespace after dot", source: "commit_id. short()"},
		{name: "bare dot method", source: "commit_id.short"},
		{name: "stray closing paren", source: "description)"},
		{name: "lone comma", source: ","},
		{name: "leading underscore identifier", source: "_description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTemplate(tt.source)
			assertErrorKind(t, err, ErrSyntax)
		})
	}
}

func TestParseTemplate_ArgsSpan(t *testing.T) {
	source := `separate("-", "a", "b")`

	node := mustParse(t, source)
	if node.Kind != ExprFunctionCall {
		t.Fatalf("expected FunctionCall, got %v", node.Kind)
	}

	if got := node.Call.ArgsSpan.Text(source); got != `"-", "a", "b"` {
		t.Errorf("args span covers %q", got)
	}

	if got := node.Call.NameSpan.Text(source); got != "separate" {
		t.Errorf("name span covers %q", got)
	}
}

func assertErrorKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected %v error, got nil", kind)
	}

	var langErr *Error
	if !errors.As(err, &langErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}

	if langErr.Kind() != kind {
		t.Fatalf("expected %v error, got %v: %v", kind, langErr.Kind(), err)
	}
}

func FuzzParseTemplate(f *testing.F) {
	seeds := []string{
		"",
		`"a" "b"`,
		`commit_id.shortest(4).with_brackets()`,
		`if(divergent, label("divergent", change_id), description)`,
		`separate(" ", "a", "", "b")`,
		`"\n\\\""`,
		`((1abc))`,
		`"unterminated`,
		`f(,,,)`,
		"00",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, source string) {
		// Must never panic; errors are fine.
		node, err := ParseTemplate(source)
		if err == nil && node == nil {
			t.Error("nil node without error")
		}
	})
}
