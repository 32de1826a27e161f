package platform

import (
	"sort"
	"strings"
	"testing"
)

func TestAvailableSorted(t *testing.T) {
	names := Available()
	if !sort.StringsAreSorted(names) {
		t.Fatalf("Available() = %v, want sorted", names)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := Open("wayland-nope", "winkit")
	if err == nil {
		t.Fatalf("expected error for unknown backend")
	}
	if !strings.Contains(err.Error(), "wayland-nope") {
		t.Fatalf("error %q should name the backend", err)
	}
}

func TestOpenAuto(t *testing.T) {
	if len(Available()) == 0 {
		t.Skip("no backends compiled in")
	}
	for _, name := range []string{"", "auto", " AUTO "} {
		b, err := Open(name, "winkit")
		if err != nil {
			t.Fatalf("Open(%q): %v", name, err)
		}
		if b == nil {
			t.Fatalf("Open(%q) returned nil backend", name)
		}
		if got := b.LastError(); got != "" {
			t.Fatalf("fresh backend LastError = %q", got)
		}
	}
}
