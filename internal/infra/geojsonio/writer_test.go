package geojsonio

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mccahan/geojson-clipping/internal/domain"
)

func unitSquare() orb.MultiPolygon {
	return orb.MultiPolygon{{{{0, 0}, {1, 0}, {1, 1}, {0, 1}, {0, 0}}}}
}

func TestWrite_Stdout(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Write(context.Background(), "", unitSquare()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.Bytes()
	if !bytes.HasSuffix(out, []byte("\n")) {
		t.Fatal("expected newline-terminated output")
	}
	f, err := geojson.UnmarshalFeature(out)
	if err != nil {
		t.Fatalf("output is not a GeoJSON feature: %v\n%s", err, out)
	}
	got, ok := f.Geometry.(orb.MultiPolygon)
	if !ok {
		t.Fatalf("expected MultiPolygon geometry, got %T", f.Geometry)
	}
	if !got.Equal(unitSquare()) {
		t.Fatalf("geometry changed in round trip: %v", got)
	}
}

func TestWrite_File(t *testing.T) {
	var stdout bytes.Buffer
	p := filepath.Join(t.TempDir(), "out.geojson")

	if err := NewWriter(&stdout).Write(context.Background(), p, unitSquare()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected nothing on stdout, got %q", stdout.String())
	}

	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if _, err := geojson.UnmarshalFeature(b); err != nil {
		t.Fatalf("file is not a GeoJSON feature: %v", err)
	}
	if _, err := os.Stat(p + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temp file should be renamed away")
	}
}

func TestWrite_FileInMissingDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "missing", "out.geojson")
	err := NewWriter(&bytes.Buffer{}).Write(context.Background(), p, unitSquare())
	if !domain.IsKind(err, domain.KindIO) {
		t.Fatalf("expected io error, got %v", err)
	}
}

func TestWrite_KeepsExistingMode(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.geojson")
	if err := os.WriteFile(p, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := NewWriter(nil).Write(context.Background(), p, unitSquare()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(p)
	if err != nil {
		t.Fatal(err)
	}
	if runtime.GOOS != "windows" && info.Mode().Perm() != 0o600 {
		t.Fatalf("expected mode 0600 to survive, got %v", info.Mode().Perm())
	}
	b, _ := os.ReadFile(p)
	if _, err := geojson.UnmarshalFeature(b); err != nil {
		t.Fatalf("file was not replaced: %q", b)
	}
}

func TestWrite_DeviceTarget(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no /dev/null")
	}
	if err := NewWriter(nil).Write(context.Background(), os.DevNull, unitSquare()); err != nil {
		t.Fatalf("writing to %s: %v", os.DevNull, err)
	}
	if _, err := os.Stat(os.DevNull + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("no temp file may be created next to a device")
	}
}

func TestWrite_ReadOnlyDirWithExistingFile(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	dir := t.TempDir()
	p := filepath.Join(dir, "out.geojson")
	if err := os.WriteFile(p, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	if err := NewWriter(nil).Write(context.Background(), p, unitSquare()); err != nil {
		t.Fatalf("expected in-place write, got %v", err)
	}
	b, _ := os.ReadFile(p)
	if _, err := geojson.UnmarshalFeature(b); err != nil {
		t.Fatalf("file was not rewritten: %q", b)
	}
}

func TestEncode_PrecisionAndIndent(t *testing.T) {
	in := orb.MultiPolygon{{{{0.123456789, 0}, {1, 0}, {1, 1}, {0.123456789, 0}}}}
	w := NewWriter(nil, WithPrecision(3), WithIndent("  "))

	b, err := w.Encode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, "0.123") || strings.Contains(s, "0.1234") {
		t.Fatalf("expected 3-decimal rounding, got %s", s)
	}
	if !strings.Contains(s, "\n  ") {
		t.Fatalf("expected indented output, got %s", s)
	}
	if in[0][0][0][0] != 0.123456789 {
		t.Fatal("Encode must not mutate its input")
	}
}

func TestEncode_EmptyResult(t *testing.T) {
	b, err := NewWriter(nil).Encode(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(b), `"coordinates":[]`) {
		t.Fatalf("expected empty coordinates, got %s", b)
	}
}

func TestWithPrecision_Clamps(t *testing.T) {
	if NewWriter(nil, WithPrecision(-2)).precision != 0 {
		t.Error("negative precision should clamp to 0")
	}
	if NewWriter(nil, WithPrecision(40)).precision != maxPrecision {
		t.Error("precision should clamp to maxPrecision")
	}
}
