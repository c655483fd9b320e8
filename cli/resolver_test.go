package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	value, err := r.Resolve(nil, nil, &kong.Flag{
		Value: &kong.Value{Name: name},
	})
	if err != nil {
		t.Fatalf("Resolve(%q) error: %v", name, err)
	}

	return value
}

func TestResolveYAML(t *testing.T) {
	const doc = `
log_level: debug
log-format: json
log_pretty: true
width: 80
ratio: 1.5
`

	r, err := resolveYAML(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("resolveYAML error: %v", err)
	}

	tests := []struct {
		flag string
		want any
	}{
		{"log-level", "debug"}, // underscore variant
		{"log-format", "json"}, // exact name
		{"log-pretty", true},
		{"width", "80"}, // numbers resolve as strings
		{"ratio", "1.5"},
		{"log-caller", nil}, // absent: defer to kong defaults
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			got := resolveFlag(t, r, tt.flag)
			if got != tt.want {
				t.Errorf("Resolve(%q) = %#v, want %#v", tt.flag, got, tt.want)
			}
		})
	}
}

func TestResolveYAML_Empty(t *testing.T) {
	r, err := resolveYAML(strings.NewReader(""))
	if err != nil {
		t.Fatalf("resolveYAML error: %v", err)
	}

	if got := resolveFlag(t, r, "log-level"); got != nil {
		t.Errorf("Resolve on empty config = %#v, want nil", got)
	}
}

func TestResolveYAML_Invalid(t *testing.T) {
	_, err := resolveYAML(strings.NewReader("{not yaml"))
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
