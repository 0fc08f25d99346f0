package buildinfo

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	got := String()
	if !strings.HasPrefix(got, "geojson-clipping ") {
		t.Fatalf("unexpected version string %q", got)
	}
	if !strings.Contains(got, "commit="+Commit) {
		t.Fatalf("expected commit in %q", got)
	}
}

func TestIsDev(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	cases := []struct {
		version string
		want    bool
	}{
		{"dev", true},
		{"", true},
		{"v1.2.0", false},
	}
	for _, c := range cases {
		Version = c.version
		if got := IsDev(); got != c.want {
			t.Errorf("IsDev() with Version=%q = %v, want %v", c.version, got, c.want)
		}
	}
}
