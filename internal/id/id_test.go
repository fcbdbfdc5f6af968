package id

import (
	"strings"
	"testing"
)

func TestNewPrefix(t *testing.T) {
	got := New(PrefixEndpoint)
	if !strings.HasPrefix(got, "ep_") {
		t.Errorf("New(PrefixEndpoint) = %q, want ep_ prefix", got)
	}
	if len(got) != len("ep_")+16 {
		t.Errorf("New(PrefixEndpoint) length = %d, want %d", len(got), len("ep_")+16)
	}
}

func TestShortUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		s := Short()
		if len(s) != 16 {
			t.Fatalf("Short() length = %d, want 16", len(s))
		}
		if seen[s] {
			t.Fatalf("Short() produced duplicate %q", s)
		}
		seen[s] = true
	}
}

func TestUUIDFormat(t *testing.T) {
	u := UUID()
	if len(u) != 36 {
		t.Errorf("UUID() length = %d, want 36", len(u))
	}
	if strings.Count(u, "-") != 4 {
		t.Errorf("UUID() = %q, want 4 dashes", u)
	}
}
