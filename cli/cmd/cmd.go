package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/revtmpl/commit"
	"github.com/ardnew/revtmpl/pkg"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// templateArg is the template input shared by check and render. The
// template text comes from the flag when given, otherwise from stdin.
type templateArg struct {
	Template string `help:"Template text (reads stdin when omitted)" placeholder:"TEMPLATE" short:"T"`
}

// source returns the template text to compile. A single trailing
// newline from stdin input is not part of the template.
func (t templateArg) source() (string, error) {
	if t.Template != "" {
		return t.Template, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", pkg.ErrReadInput.Wrap(err)
	}

	return strings.TrimSuffix(string(data), "\n"), nil
}

// loadRepo reads a commit log from path. An empty path yields an empty
// repository, and "-" reads from stdin.
func loadRepo(path string) (*commit.Repo, error) {
	switch path {
	case "":
		return commit.NewRepo(nil, ""), nil
	case stdinSource:
		repo, err := commit.ReadRepo(os.Stdin)
		if err != nil {
			return nil, pkg.ErrLoadLog.Wrap(err)
		}

		return repo, nil
	}

	repo, err := commit.LoadRepo(path)
	if err != nil {
		return nil, pkg.ErrLoadLog.Wrap(err)
	}

	return repo, nil
}

// styleSpec is one entry of a YAML style map, keyed by label name.
type styleSpec struct {
	Foreground string `yaml:"fg"`
	Background string `yaml:"bg"`
	Bold       bool   `yaml:"bold"`
	Italic     bool   `yaml:"italic"`
	Underline  bool   `yaml:"underline"`
}

// style converts the entry to a lipgloss style. Only properties the
// entry sets are present on the result, so nested labels inherit the
// rest from enclosing labels.
func (s styleSpec) style() lipgloss.Style {
	style := lipgloss.NewStyle()

	if s.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Foreground))
	}

	if s.Background != "" {
		style = style.Background(lipgloss.Color(s.Background))
	}

	if s.Bold {
		style = style.Bold(true)
	}

	if s.Italic {
		style = style.Italic(true)
	}

	if s.Underline {
		style = style.Underline(true)
	}

	return style
}

// readStyles decodes a YAML style map from r.
func readStyles(r io.Reader) (map[string]lipgloss.Style, error) {
	var specs map[string]styleSpec

	if err := yaml.NewDecoder(r).Decode(&specs); err != nil {
		if err == io.EOF {
			return map[string]lipgloss.Style{}, nil
		}

		return nil, fmt.Errorf("decode style map: %w", err)
	}

	styles := make(map[string]lipgloss.Style, len(specs))
	for label, spec := range specs {
		styles[label] = spec.style()
	}

	return styles, nil
}

// loadStyles reads a YAML style map from path. An empty path yields no
// styles.
func loadStyles(path string) (map[string]lipgloss.Style, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, pkg.ErrLoadStyles.Wrap(err)
	}
	defer f.Close()

	styles, err := readStyles(f)
	if err != nil {
		return nil, pkg.ErrLoadStyles.Wrap(err)
	}

	return styles, nil
}
