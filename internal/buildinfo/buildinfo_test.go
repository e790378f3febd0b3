package buildinfo

import "testing"

func stamp(t *testing.T, version, commit string) {
	t.Helper()
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })
	Version, Commit = version, commit
}

func TestShort(t *testing.T) {
	tests := []struct {
		version, commit, want string
	}{
		{"dev", "unknown", "dev"},
		{"dev", "abc123", "abc123"},
		{"v1.2.0", "abc123", "v1.2.0"},
		{"", "", "dev"},
	}
	for _, tt := range tests {
		stamp(t, tt.version, tt.commit)
		if got := Short(); got != tt.want {
			t.Fatalf("Short() with %q/%q = %q, want %q", tt.version, tt.commit, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	stamp(t, "v1.2.0", "abc123")
	if got, want := String(), "geniecalc v1.2.0 (commit abc123, built unknown)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
