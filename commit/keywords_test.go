package commit

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ardnew/revtmpl/lang"
)

func testRepo() *Repo {
	return NewRepo([]*Commit{
		{
			CommitID:    "aaaa1111",
			ChangeID:    "zzzz9999",
			Description: "add feature",
			Author: Signature{
				Name:  "Alice",
				Email: "alice@example.com",
				Time: time.Date(
					2023, 4, 1, 12, 30, 0, 0, time.UTC,
				),
			},
			Committer: Signature{
				Name:  "Bob",
				Email: "bob@example.com",
			},
			Branches:           []string{"main", "feature"},
			Tags:               []string{"v1.0"},
			GitRefs:            []string{"refs/heads/main"},
			WorkingCopies:      []string{"default"},
			CurrentWorkingCopy: true,
			Conflict:           true,
			Empty:              false,
		},
		{
			CommitID: "aabb2222",
			ChangeID: "zzzz9999",
			Empty:    true,
		},
	}, "aaaa1111")
}

func renderKeyword(t *testing.T, repo *Repo, source string, c *Commit) string {
	t.Helper()

	tmpl, err := lang.Compile(source, Keywords(repo))
	require.NoError(t, err)

	return lang.RenderPlain(tmpl, c)
}

func TestKeywords(t *testing.T) {
	repo := testRepo()
	first := repo.Commits[0]
	second := repo.Commits[1]

	tests := []struct {
		source string
		commit *Commit
		want   string
	}{
		{source: `description`, commit: first, want: "add feature\n"},
		{source: `description`, commit: second, want: ""},
		{source: `commit_id`, commit: first, want: "aaaa1111"},
		{source: `commit_id.short(4)`, commit: first, want: "aaaa"},
		{
			source: `commit_id.shortest().with_brackets()`,
			commit: first,
			want:   "aaa[a1111]",
		},
		{source: `change_id.shortest()`, commit: first, want: "zzzz9999"},
		{
			source: `author`,
			commit: first,
			want:   "Alice <alice@example.com>",
		},
		{source: `author.username()`, commit: first, want: "alice"},
		{
			source: `author.timestamp()`,
			commit: first,
			want:   "2023-04-01 12:30:00 +00:00",
		},
		{source: `committer.name()`, commit: first, want: "Bob"},
		{source: `branches`, commit: first, want: "main feature"},
		{source: `tags`, commit: first, want: "v1.0"},
		{source: `git_refs`, commit: first, want: "refs/heads/main"},
		{source: `working_copies`, commit: first, want: "default"},
		{source: `git_head`, commit: first, want: "HEAD@git"},
		{source: `git_head`, commit: second, want: ""},
		{
			source: `if(current_working_copy, "@", "")`,
			commit: first,
			want:   "@",
		},
		{source: `if(divergent, "!!")`, commit: first, want: "!!"},
		{source: `if(divergent, "!!")`, commit: second, want: "!!"},
		{source: `if(conflict, "conflict")`, commit: first, want: "conflict"},
		{source: `if(empty, "(empty)")`, commit: second, want: "(empty)"},
		{source: `if(empty, "(empty)")`, commit: first, want: ""},
		{
			source: `separate(" ", commit_id.short(4), branches, description.first_line())`,
			commit: first,
			want:   "aaaa main feature add feature",
		},
	}

	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			got := renderKeyword(t, repo, tt.source, tt.commit)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeywords_ShortestAgainstIndex(t *testing.T) {
	repo := testRepo()

	// "aaaa1111" and "aabb2222" share the prefix "aa", so three
	// characters disambiguate.
	assert.Equal(
		t, "aaa", repo.resolveID("aaaa1111").Shortest(0).Prefix,
	)
}

func TestKeywords_Unknown(t *testing.T) {
	_, err := lang.Compile(`comit_id`, Keywords(testRepo()))
	require.Error(t, err)

	var langErr *lang.Error
	require.True(t, errors.As(err, &langErr))
	assert.Equal(t, `Keyword "comit_id" doesn't exist`, langErr.Message())
}

func TestKeywordNames_CoveredByResolver(t *testing.T) {
	resolver := Keywords(testRepo())

	for _, name := range KeywordNames() {
		_, err := resolver(name, lang.Span{})
		assert.NoError(t, err, "keyword %s", name)
	}
}

func TestSuggest(t *testing.T) {
	assert.Equal(t, "commit_id", Suggest("comit_id"))
	assert.Equal(t, "description", Suggest("descripton"))
	assert.Equal(t, "", Suggest("qqqq"))
}
