package lang

import (
	"testing"
	"time"
)

var benchSources = []struct {
	name   string
	source string
}{
	{
		name:   "keyword",
		source: `description`,
	},
	{
		name:   "method_chain",
		source: `commit_id.shortest().with_brackets()`,
	},
	{
		name:   "conditional",
		source: `if(divergent, label("divergent", "!!"), commit_id.short())`,
	},
	{
		name: "log_line",
		source: `separate(" ",
			commit_id.short(),
			author.username(),
			author.timestamp().ago(),
			description.first_line())`,
	},
}

func benchCommit() *testCommit {
	return &testCommit{
		description: "fix the flux capacitor\n\ndetails follow",
		commitID: CommitOrChangeID{
			Hex:       "0123456789abcdef0123456789abcdef",
			UniqueLen: 5,
		},
		author: Signature{
			Name:      "Test User",
			Email:     "test.user@example.com",
			Timestamp: Timestamp{Time: time.Now().Add(-3 * time.Hour)},
		},
	}
}

func BenchmarkCompile(b *testing.B) {
	for _, tt := range benchSources {
		b.Run(tt.name, func(b *testing.B) {
			for b.Loop() {
				_, err := Compile(tt.source, testResolver)
				if err != nil {
					b.Fatalf("compile error: %v", err)
				}
			}
		})
	}
}

func BenchmarkRender(b *testing.B) {
	rec := benchCommit()

	for _, tt := range benchSources {
		b.Run(tt.name, func(b *testing.B) {
			tmpl, err := Compile(tt.source, testResolver)
			if err != nil {
				b.Fatalf("compile error: %v", err)
			}

			b.ResetTimer()

			for b.Loop() {
				_ = RenderPlain(tmpl, rec)
			}
		})
	}
}
