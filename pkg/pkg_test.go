package pkg

import (
	"errors"
	"strings"
	"testing"
)

func TestName(t *testing.T) {
	if Name != "revtmpl" {
		t.Errorf("Name = %q", Name)
	}
}

func TestVersion(t *testing.T) {
	if strings.TrimSpace(Version) == "" {
		t.Error("Version is empty")
	}
}

func TestAuthor(t *testing.T) {
	for i, author := range Author {
		if author.Name == "" && author.Email == "" {
			t.Errorf("Author[%d] must define at least Name or Email", i)
		}
	}
}

func TestError_Chain(t *testing.T) {
	inner := errors.New("inner")
	err := ErrCompile.Wrap(inner).Wrapf("at %s", "render")

	if !errors.Is(err, inner) {
		t.Error("wrapped error not found by errors.Is")
	}

	want := "template error: inner: at render"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestMakeError_FlattensChains(t *testing.T) {
	inner := errors.New("inner")
	outer := MakeError(ErrReadInput.Wrap(inner))

	if !errors.Is(outer, inner) {
		t.Error("flattened chain lost inner error")
	}
}

func TestMakeError_DropsNil(t *testing.T) {
	if err := MakeError(nil, nil); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
}

func TestPrefix_NonEmpty(t *testing.T) {
	if Prefix() == "" {
		t.Error("Prefix() is empty")
	}
}

func TestConfigDir_UnderPrefix(t *testing.T) {
	if !strings.HasSuffix(ConfigDir(), Prefix()) {
		t.Errorf("ConfigDir %q does not end with prefix %q", ConfigDir(), Prefix())
	}
}
