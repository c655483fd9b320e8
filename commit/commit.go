package commit

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/revtmpl/lang"
)

// Signature identifies who authored or committed a change.
type Signature struct {
	Name  string    `yaml:"name"`
	Email string    `yaml:"email"`
	Time  time.Time `yaml:"time"`
}

// toLang converts to the template value kind.
func (s Signature) toLang() lang.Signature {
	return lang.Signature{
		Name:      s.Name,
		Email:     s.Email,
		Timestamp: lang.Timestamp{Time: s.Time},
	}
}

// Commit is one record of the commit log.
type Commit struct {
	CommitID           string    `yaml:"commit_id"`
	ChangeID           string    `yaml:"change_id"`
	Description        string    `yaml:"description"`
	Author             Signature `yaml:"author"`
	Committer          Signature `yaml:"committer"`
	Branches           []string  `yaml:"branches"`
	Tags               []string  `yaml:"tags"`
	GitRefs            []string  `yaml:"git_refs"`
	WorkingCopies      []string  `yaml:"working_copies"`
	CurrentWorkingCopy bool      `yaml:"current_working_copy"`
	Conflict           bool      `yaml:"conflict"`
	Empty              bool      `yaml:"empty"`
}

// Repo is an in-memory view of a commit log. It carries the sorted
// identifier index that backs unique-prefix resolution and the change
// identifier census that backs the divergent flag.
type Repo struct {
	Commits []*Commit
	GitHead string

	ids          []string
	changeCounts map[string]int
}

// logFile is the YAML document shape of a commit log.
type logFile struct {
	GitHead string    `yaml:"git_head"`
	Commits []*Commit `yaml:"commits"`
}

// LoadRepo reads a YAML commit log from path.
func LoadRepo(path string) (*Repo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open commit log: %w", err)
	}
	defer f.Close()

	repo, err := ReadRepo(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return repo, nil
}

// ReadRepo decodes a YAML commit log from r.
func ReadRepo(r io.Reader) (*Repo, error) {
	var file logFile

	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		if err == io.EOF {
			return NewRepo(nil, ""), nil
		}

		return nil, fmt.Errorf("decode commit log: %w", err)
	}

	return NewRepo(file.Commits, file.GitHead), nil
}

// NewRepo builds a repository view over the given commits, indexing
// their identifiers for prefix resolution.
func NewRepo(commits []*Commit, gitHead string) *Repo {
	repo := &Repo{
		Commits:      commits,
		GitHead:      gitHead,
		changeCounts: make(map[string]int),
	}

	for _, commit := range commits {
		repo.ids = append(repo.ids, commit.CommitID, commit.ChangeID)
		repo.changeCounts[commit.ChangeID]++
	}

	sort.Strings(repo.ids)

	return repo
}

// Divergent reports whether more than one visible commit carries the
// given change identifier.
func (r *Repo) Divergent(changeID string) bool {
	return r.changeCounts[changeID] > 1
}

// resolveID pairs a hex identifier with the length of its shortest
// prefix that is unambiguous among all indexed identifiers.
func (r *Repo) resolveID(hex string) lang.CommitOrChangeID {
	return lang.CommitOrChangeID{
		Hex:       hex,
		UniqueLen: r.uniqueLen(hex),
	}
}

// uniqueLen computes the disambiguating prefix length of hex against
// the sorted index: one more than the longest common prefix shared
// with its lexicographic neighbors.
func (r *Repo) uniqueLen(hex string) int {
	pos := sort.SearchStrings(r.ids, hex)

	common := 0

	if pos > 0 {
		common = max(common, commonPrefixLen(hex, r.ids[pos-1]))
	}

	// Skip over occurrences of hex itself; the index holds every id
	// in the log, the queried one included.
	hi := pos
	for hi < len(r.ids) && r.ids[hi] == hex {
		hi++
	}

	if hi < len(r.ids) {
		common = max(common, commonPrefixLen(hex, r.ids[hi]))
	}

	length := common + 1
	if length > len(hex) {
		length = len(hex)
	}

	return length
}

func commonPrefixLen(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}

	return n
}

// completeNewline guarantees the text ends with exactly one trailing
// newline, unless it is empty.
func completeNewline(text string) string {
	if text == "" || strings.HasSuffix(text, "\n") {
		return text
	}

	return text + "\n"
}
