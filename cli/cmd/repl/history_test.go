package repl

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
)

func TestHistory_WriteLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, entry := range []string{
		"description",
		"commit_id.short()",
		"  ", // blank entries are dropped
		":keywords",
	} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("Write(%q) error: %v", entry, err)
		}
	}

	want := []string{"description", "commit_id.short()", ":keywords"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	// A fresh instance reads the same entries back from disk.
	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistory_Dedupe(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path)

	for _, entry := range []string{"a", "b", "b", "a"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("Write(%q) error: %v", entry, err)
		}
	}

	// Consecutive duplicates collapse; repeating an older entry moves
	// it to the end.
	want := []string{"b", "a"}
	if got := h.Entries(); !slices.Equal(got, want) {
		t.Errorf("Entries() = %v, want %v", got, want)
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if got := reloaded.Entries(); !slices.Equal(got, want) {
		t.Errorf("reloaded Entries() = %v, want %v", got, want)
	}
}

func TestHistory_LoadMissing(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), "absent"))

	if err := h.Load(); err != nil {
		t.Errorf("Load of missing file = %v, want nil", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_GetLine(t *testing.T) {
	h := NewHistory(filepath.Join(t.TempDir(), baseHistory))

	_, _ = h.Write("only")

	line, err := h.GetLine(0)
	if err != nil || line != "only" {
		t.Errorf("GetLine(0) = (%q, %v), want (only, nil)", line, err)
	}

	if _, err := h.GetLine(1); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("GetLine(1) error = %v, want ErrOutOfBounds", err)
	}
}
