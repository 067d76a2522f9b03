package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestCollect_TrimsAndDefaults(t *testing.T) {
	origVersion, origGitCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = origVersion, origGitCommit })

	Version = "  "
	GitCommit = " abc123def456\n"

	info := Collect()
	if info.Version != "dev" {
		t.Errorf("Version = %q, want dev", info.Version)
	}
	if info.GitCommit != "abc123def456" {
		t.Errorf("GitCommit = %q, want abc123def456", info.GitCommit)
	}
}

func TestColored(t *testing.T) {
	orig := color.NoColor
	t.Cleanup(func() { color.NoColor = orig })
	color.NoColor = true

	tests := []struct {
		in, want string
	}{
		{"0.1.0-dev", "0.1.0-dev"},
		{"1.2.3", "1.2.3"},
		{"1.2.3-rc.1+build.123", "1.2.3-rc.1+build.123"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		if got := Colored(tt.in); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}

	color.NoColor = false
	if got := Colored("1.2.3"); got == "1.2.3" {
		t.Errorf("Colored did not add colour codes")
	}
}

func BenchmarkCollect(b *testing.B) {
	for b.Loop() {
		_ = Collect()
	}
}
