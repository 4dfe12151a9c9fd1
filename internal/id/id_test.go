package id

import (
	"strings"
	"testing"
)

func TestRun(t *testing.T) {
	got := Run()

	if !strings.HasPrefix(got, RunPrefix) {
		t.Fatalf("Run() = %q, want prefix %q", got, RunPrefix)
	}
	suffix := strings.TrimPrefix(got, RunPrefix)
	if len(suffix) != 6 {
		t.Errorf("suffix length = %d, want 6", len(suffix))
	}
	for _, c := range suffix {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			t.Errorf("non-hex character %c in %q", c, got)
		}
	}
}

func TestRun_Distinct(t *testing.T) {
	// 24 random bits; a handful of draws should not collide.
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[Run()] = true
	}
	if len(seen) < 45 {
		t.Errorf("only %d distinct ids in 50 draws", len(seen))
	}
}
