package commit

import (
	"log/slog"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ardnew/revtmpl/lang"
)

// keywordNames lists every identifier the resolver binds, in display
// order.
var keywordNames = []string{
	"description",
	"change_id",
	"commit_id",
	"author",
	"committer",
	"working_copies",
	"current_working_copy",
	"branches",
	"tags",
	"git_refs",
	"git_head",
	"divergent",
	"conflict",
	"empty",
}

// KeywordNames returns the identifiers the commit resolver binds.
func KeywordNames() []string {
	names := make([]string, len(keywordNames))
	copy(names, keywordNames)

	return names
}

// Suggest returns the keyword closest to name, or "" when nothing
// matches even loosely.
func Suggest(name string) string {
	matches := fuzzy.Find(name, keywordNames)
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}

// Keywords returns the resolver binding template identifiers to
// commit fields. Each keyword's property is labeled with the keyword
// name so styling can target it.
func Keywords(repo *Repo) lang.Resolver[*Commit] {
	str := func(f func(*Commit) string) lang.Property[*Commit] {
		return lang.StringProperty(f)
	}
	boolean := func(f func(*Commit) bool) lang.Property[*Commit] {
		return lang.BooleanProperty(f)
	}

	return func(name string, span lang.Span) (lang.Labeled[*Commit], error) {
		var property lang.Property[*Commit]

		switch name {
		case "description":
			property = str(func(c *Commit) string {
				return completeNewline(c.Description)
			})

		case "change_id":
			property = lang.CommitOrChangeIDProperty(
				func(c *Commit) lang.CommitOrChangeID {
					return repo.resolveID(c.ChangeID)
				},
			)

		case "commit_id":
			property = lang.CommitOrChangeIDProperty(
				func(c *Commit) lang.CommitOrChangeID {
					return repo.resolveID(c.CommitID)
				},
			)

		case "author":
			property = lang.SignatureProperty(func(c *Commit) lang.Signature {
				return c.Author.toLang()
			})

		case "committer":
			property = lang.SignatureProperty(func(c *Commit) lang.Signature {
				return c.Committer.toLang()
			})

		case "working_copies":
			property = str(func(c *Commit) string {
				return strings.Join(c.WorkingCopies, " ")
			})

		case "current_working_copy":
			property = boolean(func(c *Commit) bool {
				return c.CurrentWorkingCopy
			})

		case "branches":
			property = str(func(c *Commit) string {
				return strings.Join(c.Branches, " ")
			})

		case "tags":
			property = str(func(c *Commit) string {
				return strings.Join(c.Tags, " ")
			})

		case "git_refs":
			property = str(func(c *Commit) string {
				return strings.Join(c.GitRefs, " ")
			})

		case "git_head":
			property = str(func(c *Commit) string {
				if c.CommitID == repo.GitHead {
					return "HEAD@git"
				}

				return ""
			})

		case "divergent":
			property = boolean(func(c *Commit) bool {
				return repo.Divergent(c.ChangeID)
			})

		case "conflict":
			property = boolean(func(c *Commit) bool {
				return c.Conflict
			})

		case "empty":
			property = boolean(func(c *Commit) bool {
				return c.Empty
			})

		default:
			err := lang.NoSuchKeywordError(name, span)
			if hint := Suggest(name); hint != "" {
				err = err.With(slog.String("did_you_mean", hint))
			}

			return lang.Labeled[*Commit]{}, err
		}

		return lang.NewLabeled(property, name), nil
	}
}
