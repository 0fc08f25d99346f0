package geojsonio

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"math"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mccahan/geojson-clipping/internal/domain"
	"github.com/mccahan/geojson-clipping/internal/ports"
)

const maxPrecision = 15

// Writer emits the result as a GeoJSON Feature with a MultiPolygon geometry.
type Writer struct {
	stdout    io.Writer
	precision int
	indent    string
}

type WriterOption func(*Writer)

// WithPrecision rounds output coordinates to n decimals; 0 keeps full precision.
func WithPrecision(n int) WriterOption {
	return func(w *Writer) {
		if n < 0 {
			n = 0
		}
		if n > maxPrecision {
			n = maxPrecision
		}
		w.precision = n
	}
}

// WithIndent pretty-prints output JSON.
func WithIndent(indent string) WriterOption {
	return func(w *Writer) { w.indent = indent }
}

func NewWriter(stdout io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{stdout: stdout}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var _ ports.ResultWriter = (*Writer)(nil)

func (w *Writer) Write(ctx context.Context, path string, result orb.MultiPolygon) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b, err := w.Encode(result)
	if err != nil {
		return &domain.OpError{
			Op:   "geojsonio.encode",
			Kind: domain.KindIO,
			Path: path,
			Err:  err,
		}
	}

	if path == "" {
		if _, err := w.stdout.Write(b); err != nil {
			return &domain.OpError{
				Op:   "geojsonio.write_stdout",
				Kind: domain.KindIO,
				Err:  err,
			}
		}
		return nil
	}
	return writeFile(path, b)
}

// Encode renders result as a newline-terminated GeoJSON Feature.
func (w *Writer) Encode(result orb.MultiPolygon) ([]byte, error) {
	g := result.Clone()
	if g == nil {
		g = orb.MultiPolygon{}
	}
	if w.precision > 0 {
		g = orb.Round(g, int(math.Pow10(w.precision))).(orb.MultiPolygon)
	}

	b, err := json.Marshal(geojson.NewFeature(g))
	if err != nil {
		return nil, err
	}

	if w.indent != "" {
		var buf bytes.Buffer
		if err := json.Indent(&buf, b, "", w.indent); err != nil {
			return nil, err
		}
		b = buf.Bytes()
	}
	return append(b, '\n'), nil
}

// writeFile writes to a temp file next to path, then renames it into place. An existing
// file keeps its mode. Devices, pipes and targets in a directory that refuses the temp
// file are written in place.
func writeFile(path string, b []byte) error {
	perm := os.FileMode(0o644)
	info, statErr := os.Stat(path)
	if statErr == nil {
		if !info.Mode().IsRegular() {
			return writeInPlace(path, b, perm)
		}
		perm = info.Mode().Perm()
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, perm); err != nil {
		if statErr == nil && errors.Is(err, fs.ErrPermission) {
			return writeInPlace(path, b, perm)
		}
		return &domain.OpError{
			Op:   "geojsonio.write",
			Kind: domain.KindIO,
			Path: tmp,
			Err:  unwrapPathError(err),
		}
	}
	if statErr == nil {
		if err := os.Chmod(tmp, perm); err != nil {
			_ = os.Remove(tmp)
			return &domain.OpError{
				Op:   "geojsonio.write",
				Kind: domain.KindIO,
				Path: tmp,
				Err:  unwrapPathError(err),
			}
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return &domain.OpError{
			Op:   "geojsonio.rename",
			Kind: domain.KindIO,
			Path: path,
			Err:  unwrapPathError(err),
		}
	}
	return nil
}

func writeInPlace(path string, b []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err == nil {
		_, err = f.Write(b)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return &domain.OpError{
			Op:   "geojsonio.write",
			Kind: domain.KindIO,
			Path: path,
			Err:  unwrapPathError(err),
		}
	}
	return nil
}
