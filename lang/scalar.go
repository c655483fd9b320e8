package lang

import (
	"fmt"
	"strings"
	"time"
)

// CommitOrChangeID is a hex-encoded commit or change identifier.
// UniqueLen is the length of the shortest prefix that is unambiguous
// within the repository the identifier was resolved from; zero means
// no disambiguation index was available.
type CommitOrChangeID struct {
	Hex       string
	UniqueLen int
}

// String returns the full hex form.
func (id CommitOrChangeID) String() string { return id.Hex }

// Short returns a display prefix of the given length, clamped to the
// identifier's full length.
func (id CommitOrChangeID) Short(length int) string {
	if length > len(id.Hex) {
		length = len(id.Hex)
	}

	return id.Hex[:length]
}

// Shortest returns the minimal unambiguous prefix, extended to at
// least min characters. The remainder is carried alongside so callers
// can render it distinctly.
func (id CommitOrChangeID) Shortest(min int) ShortestIDPrefix {
	length := id.UniqueLen
	if length < min {
		length = min
	}

	if length > len(id.Hex) {
		length = len(id.Hex)
	}

	return ShortestIDPrefix{
		Prefix: id.Hex[:length],
		Rest:   id.Hex[length:],
	}
}

// ShortestIDPrefix is the minimal unambiguous prefix of an identifier
// together with the non-unique remainder.
type ShortestIDPrefix struct {
	Prefix string
	Rest   string
}

// String returns the prefix followed by the remainder.
func (p ShortestIDPrefix) String() string { return p.Prefix + p.Rest }

// WithBrackets returns the prefix with the remainder bracketed, or the
// bare prefix if the remainder is empty.
func (p ShortestIDPrefix) WithBrackets() string {
	if p.Rest == "" {
		return p.Prefix
	}

	return p.Prefix + "[" + p.Rest + "]"
}

// Signature identifies the author or committer of a commit.
type Signature struct {
	Name      string
	Email     string
	Timestamp Timestamp
}

// String returns the conventional "Name <email>" form.
func (s Signature) String() string {
	return s.Name + " <" + s.Email + ">"
}

// Username returns the part of the email before '@', or the whole
// email if it contains no '@'.
func (s Signature) Username() string {
	username, _, _ := strings.Cut(s.Email, "@")

	return username
}

// timestampLayout is the canonical display form of a timestamp.
const timestampLayout = "2006-01-02 15:04:05 -07:00"

// Timestamp is a commit timestamp.
type Timestamp struct {
	time.Time
}

// String returns the canonical display form.
func (t Timestamp) String() string {
	return t.Format(timestampLayout)
}

// timeUnits orders the display units for relative rendering, largest
// first. Months are 30 days and years 365, matching conventional
// "time ago" output rather than calendar arithmetic.
var timeUnits = []struct {
	d    time.Duration
	name string
}{
	{365 * 24 * time.Hour, "year"},
	{30 * 24 * time.Hour, "month"},
	{7 * 24 * time.Hour, "week"},
	{24 * time.Hour, "day"},
	{time.Hour, "hour"},
	{time.Minute, "minute"},
	{time.Second, "second"},
}

// Ago returns a human-readable rendering of the timestamp relative to
// the current time, e.g. "2 weeks ago" or "in 3 minutes".
func (t Timestamp) Ago() string {
	return t.RelativeTo(time.Now())
}

// RelativeTo returns the relative rendering against an explicit
// reference time. Ago delegates here; tests pin the reference.
func (t Timestamp) RelativeTo(now time.Time) string {
	elapsed := now.Sub(t.Time)

	future := elapsed < 0
	if future {
		elapsed = -elapsed
	}

	for _, unit := range timeUnits {
		if elapsed < unit.d {
			continue
		}

		count := int64(elapsed / unit.d)

		name := unit.name
		if count != 1 {
			name += "s"
		}

		if future {
			return fmt.Sprintf("in %d %s", count, name)
		}

		return fmt.Sprintf("%d %s ago", count, name)
	}

	return "just now"
}
