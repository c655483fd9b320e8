package lang

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// testCommit is a minimal record type for end-to-end compile tests.
type testCommit struct {
	description string
	commitID    CommitOrChangeID
	author      Signature
	divergent   bool
	shortLen    int64
}

func testResolver(name string, span Span) (Labeled[*testCommit], error) {
	switch name {
	case "description":
		return NewLabeled(StringProperty(func(c *testCommit) string {
			return c.description
		}), "description"), nil

	case "commit_id":
		return NewLabeled(
			CommitOrChangeIDProperty(func(c *testCommit) CommitOrChangeID {
				return c.commitID
			}), "commit_id",
		), nil

	case "author":
		return NewLabeled(SignatureProperty(func(c *testCommit) Signature {
			return c.author
		}), "author"), nil

	case "divergent":
		return NewLabeled(BooleanProperty(func(c *testCommit) bool {
			return c.divergent
		}), "divergent"), nil

	case "short_len":
		return NewLabeled(IntegerProperty(func(c *testCommit) int64 {
			return c.shortLen
		})), nil

	default:
		return Labeled[*testCommit]{}, NoSuchKeywordError(name, span)
	}
}

func compileAndRender(
	t *testing.T,
	source string,
	rec *testCommit,
) string {
	t.Helper()

	tmpl, err := Compile(source, testResolver)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	return RenderPlain(tmpl, rec)
}

func TestCompile_Render(t *testing.T) {
	commit := &testCommit{
		description: "fix the flux capacitor\n\ndetails follow",
		commitID: CommitOrChangeID{
			Hex:       "0123456789abcdef0123456789abcdef",
			UniqueLen: 5,
		},
		author: Signature{
			Name:  "Test User",
			Email: "test.user@example.com",
			Timestamp: Timestamp{Time: time.Date(
				2023, 4, 1, 12, 30, 0, 0, time.UTC,
			)},
		},
		divergent: false,
		shortLen:  -3,
	}

	tests := []struct {
		name   string
		source string
		want   string
	}{
		{
			name:   "keyword renders verbatim",
			source: `description`,
			want:   commit.description,
		},
		{
			name:   "if with non-empty string condition",
			source: `if(description, "has-desc", "empty")`,
			want:   "has-desc",
		},
		{
			name:   "separate drops empty contents",
			source: `separate(" ", "a", "", "b")`,
			want:   "a b",
		},
		{
			name:   "separate with all contents empty",
			source: `separate("|", "", "")`,
			want:   "",
		},
		{
			name:   "separate with no contents",
			source: `separate("|")`,
			want:   "",
		},
		{
			name:   "juxtaposed terms concatenate",
			source: `"<" description.first_line() ">"`,
			want:   "<fix the flux capacitor>",
		},
		{
			name:   "first_line without newline",
			source: `"oneliner".first_line()`,
			want:   "oneliner",
		},
		{
			name:   "contains true",
			source: `if(description.contains("flux"), "y", "n")`,
			want:   "y",
		},
		{
			name:   "contains false",
			source: `if(description.contains("warp"), "y", "n")`,
			want:   "n",
		},
		{
			name:   "if without else renders nothing",
			source: `if(divergent, "!!")`,
			want:   "",
		},
		{
			name:   "boolean renders as true or false",
			source: `divergent`,
			want:   "false",
		},
		{
			name:   "short with default length",
			source: `commit_id.short()`,
			want:   "0123456789ab",
		},
		{
			name:   "short with explicit length",
			source: `commit_id.short(4)`,
			want:   "0123",
		},
		{
			name:   "short with negative length uses default",
			source: `commit_id.short(short_len)`,
			want:   "0123456789ab",
		},
		{
			name:   "short longer than id is clamped",
			source: `commit_id.short(99)`,
			want:   "0123456789abcdef0123456789abcdef",
		},
		{
			name:   "shortest uses unique prefix length",
			source: `commit_id.shortest()`,
			want:   "0123456789abcdef0123456789abcdef",
		},
		{
			name:   "shortest with brackets",
			source: `commit_id.shortest().with_brackets()`,
			want:   "01234[56789abcdef0123456789abcdef]",
		},
		{
			name:   "shortest extends to requested minimum",
			source: `commit_id.shortest(8).with_brackets()`,
			want:   "01234567[89abcdef0123456789abcdef]",
		},
		{
			name:   "signature renders name and email",
			source: `author`,
			want:   "Test User <test.user@example.com>",
		},
		{
			name:   "signature name",
			source: `author.name()`,
			want:   "Test User",
		},
		{
			name:   "signature email",
			source: `author.email()`,
			want:   "test.user@example.com",
		},
		{
			name:   "signature username",
			source: `author.username()`,
			want:   "test.user",
		},
		{
			name:   "signature timestamp",
			source: `author.timestamp()`,
			want:   "2023-04-01 12:30:00 +00:00",
		},
		{
			name:   "integer literal renders decimal",
			source: `42`,
			want:   "42",
		},
		{
			name:   "empty template renders nothing",
			source: ``,
			want:   "",
		},
		{
			name:   "label does not alter plain text",
			source: `label("header", description.first_line())`,
			want:   "fix the flux capacitor",
		},
		{
			name:   "nested builtins",
			source: `separate(" ", commit_id.short(4), if(divergent, "!!"), description.first_line())`,
			want:   "0123 fix the flux capacitor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := compileAndRender(t, tt.source, commit); got != tt.want {
				t.Errorf("rendered %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCompile_IfStringCoercion(t *testing.T) {
	tmpl, err := Compile(
		`if(description, "has-desc", "empty")`, testResolver,
	)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	// The same tree renders both branches depending on the record.
	if got := RenderPlain(tmpl, &testCommit{description: "x"}); got != "has-desc" {
		t.Errorf("non-empty description rendered %q", got)
	}

	if got := RenderPlain(tmpl, &testCommit{}); got != "empty" {
		t.Errorf("empty description rendered %q", got)
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		kind    ErrorKind
		message string
	}{
		{
			name:    "unknown keyword",
			source:  `diveregnt`,
			kind:    ErrNoSuchKeyword,
			message: `Keyword "diveregnt" doesn't exist`,
		},
		{
			name:    "unknown keyword in argument",
			source:  `if(divergent, foo)`,
			kind:    ErrNoSuchKeyword,
			message: `Keyword "foo" doesn't exist`,
		},
		{
			name:    "unknown function",
			source:  `labell("x", "y")`,
			kind:    ErrNoSuchFunction,
			message: `Function "labell" doesn't exist`,
		},
		{
			name:    "unknown string method",
			source:  `description.first_word()`,
			kind:    ErrNoSuchMethod,
			message: `Method "first_word" doesn't exist for type "String"`,
		},
		{
			name:    "boolean has no methods",
			source:  `divergent.not()`,
			kind:    ErrNoSuchMethod,
			message: `Method "not" doesn't exist for type "Boolean"`,
		},
		{
			name:    "integer has no methods",
			source:  `1.to_string()`,
			kind:    ErrNoSuchMethod,
			message: `Method "to_string" doesn't exist for type "Integer"`,
		},
		{
			name:    "unknown id method",
			source:  `commit_id.longest()`,
			kind:    ErrNoSuchMethod,
			message: `Method "longest" doesn't exist for type "CommitOrChangeId"`,
		},
		{
			name:    "unknown prefix method",
			source:  `commit_id.shortest().strip()`,
			kind:    ErrNoSuchMethod,
			message: `Method "strip" doesn't exist for type "ShortestIdPrefix"`,
		},
		{
			name:    "unknown signature method",
			source:  `author.address()`,
			kind:    ErrNoSuchMethod,
			message: `Method "address" doesn't exist for type "Signature"`,
		},
		{
			// An unknown name resolves before its arity is checked.
			name:    "unknown signature method with arguments",
			source:  `author.bogus(1)`,
			kind:    ErrNoSuchMethod,
			message: `Method "bogus" doesn't exist for type "Signature"`,
		},
		{
			name:    "known signature method with arguments",
			source:  `author.email(1)`,
			kind:    ErrInvalidArgumentCountExact,
			message: `Expected 0 arguments`,
		},
		{
			name:    "unknown timestamp method",
			source:  `author.timestamp().iso()`,
			kind:    ErrNoSuchMethod,
			message: `Method "iso" doesn't exist for type "Timestamp"`,
		},
		{
			name:    "method on a template receiver",
			source:  `separate(" ", "a").contains("a")`,
			kind:    ErrNoSuchMethod,
			message: `Method "contains" doesn't exist for type "Template"`,
		},
		{
			name:    "label arity",
			source:  `label("x")`,
			kind:    ErrInvalidArgumentCountExact,
			message: `Expected 2 arguments`,
		},
		{
			name:    "contains arity",
			source:  `description.contains()`,
			kind:    ErrInvalidArgumentCountExact,
			message: `Expected 1 arguments`,
		},
		{
			name:    "first_line arity",
			source:  `description.first_line("x")`,
			kind:    ErrInvalidArgumentCountExact,
			message: `Expected 0 arguments`,
		},
		{
			name:    "if arity low",
			source:  `if(divergent)`,
			kind:    ErrInvalidArgumentCountRange,
			message: `Expected 2 to 3 arguments`,
		},
		{
			name:    "if arity high",
			source:  `if(divergent, "a", "b", "c")`,
			kind:    ErrInvalidArgumentCountRange,
			message: `Expected 2 to 3 arguments`,
		},
		{
			name:    "short arity",
			source:  `commit_id.short(1, 2)`,
			kind:    ErrInvalidArgumentCountRange,
			message: `Expected 0 to 1 arguments`,
		},
		{
			name:    "separate arity",
			source:  `separate()`,
			kind:    ErrInvalidArgumentCountRangeFrom,
			message: `Expected at least 1 arguments`,
		},
		{
			name:    "if condition must be boolean",
			source:  `if(author, "x")`,
			kind:    ErrInvalidArgumentType,
			message: `Expected argument of type "Boolean"`,
		},
		{
			name:    "if condition cannot be a template",
			source:  `if(label("l", "x"), "y")`,
			kind:    ErrInvalidArgumentType,
			message: `Expected argument of type "Boolean"`,
		},
		{
			name:    "short length must be integer",
			source:  `commit_id.short(description)`,
			kind:    ErrInvalidArgumentType,
			message: `Expected argument of type "Integer"`,
		},
		{
			name:    "shortest length must be integer",
			source:  `commit_id.shortest("4")`,
			kind:    ErrInvalidArgumentType,
			message: `Expected argument of type "Integer"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source, testResolver)

			assertErrorKind(t, err, tt.kind)

			var langErr *Error
			if !errors.As(err, &langErr) {
				t.Fatalf("expected *Error, got %T", err)
			}

			if langErr.Message() != tt.message {
				t.Errorf(
					"message %q, want %q",
					langErr.Message(), tt.message,
				)
			}

			// Compiled errors carry the source and render with a caret.
			if !strings.Contains(err.Error(), "line 1, column ") {
				t.Errorf("error lacks position: %q", err.Error())
			}
		})
	}
}

func TestCompile_ErrorSpans(t *testing.T) {
	tests := []struct {
		name   string
		source string
		text   string // source text the error span should cover
	}{
		{
			name:   "keyword span",
			source: `if(divergent, foo)`,
			text:   "foo",
		},
		{
			name:   "function name span",
			source: `unknown_fn()`,
			text:   "unknown_fn",
		},
		{
			name:   "method name span",
			source: `description.unknown()`,
			text:   "unknown",
		},
		{
			name:   "arity error points at argument list",
			source: `label("a", "b", "c")`,
			text:   `"a", "b", "c"`,
		},
		{
			name:   "type error points at the argument",
			source: `commit_id.short("wide")`,
			text:   `"wide"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.source, testResolver)

			var langErr *Error
			if !errors.As(err, &langErr) {
				t.Fatalf("expected *Error, got %T: %v", err, err)
			}

			if got := langErr.Span().Text(tt.source); got != tt.text {
				t.Errorf("span covers %q, want %q", got, tt.text)
			}
		})
	}
}

func TestCompile_TreeIsReusable(t *testing.T) {
	tmpl, err := Compile(`commit_id.short(4) " " description`, testResolver)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}

	commits := []*testCommit{
		{
			description: "first",
			commitID:    CommitOrChangeID{Hex: "aaaabbbbcccc"},
		},
		{
			description: "second",
			commitID:    CommitOrChangeID{Hex: "ddddeeeeffff"},
		},
	}

	want := []string{"aaaa first", "dddd second"}

	// Render the same tree against distinct records, twice over, to
	// show no state leaks between renders.
	for range 2 {
		for i, commit := range commits {
			if got := RenderPlain(tmpl, commit); got != want[i] {
				t.Errorf("rendered %q, want %q", got, want[i])
			}
		}
	}
}

func TestCompile_ResolverErrorPassthrough(t *testing.T) {
	sentinel := errors.New("resolver exploded")

	failing := func(string, Span) (Labeled[*testCommit], error) {
		return Labeled[*testCommit]{}, sentinel
	}

	_, err := Compile(`description`, failing)
	if !errors.Is(err, sentinel) {
		t.Errorf("expected sentinel error, got %v", err)
	}
}
