// Package geojsonio reads polygon inputs from GeoJSON sources and writes results back out.
package geojsonio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/mccahan/geojson-clipping/internal/domain"
	"github.com/mccahan/geojson-clipping/internal/ports"
)

type Reader struct {
	stdin    io.Reader
	readFile func(string) ([]byte, error)
}

type ReaderOption func(*Reader)

// WithReadFile is useful for tests.
func WithReadFile(fn func(string) ([]byte, error)) ReaderOption {
	return func(r *Reader) {
		if fn != nil {
			r.readFile = fn
		}
	}
}

func NewReader(stdin io.Reader, opts ...ReaderOption) *Reader {
	r := &Reader{
		stdin:    stdin,
		readFile: os.ReadFile,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ ports.GeometryReader = (*Reader)(nil)

func (r *Reader) Read(ctx context.Context, src domain.InputSource, warn domain.WarnFunc) (orb.MultiPolygon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if warn == nil {
		warn = domain.NopWarn
	}

	data, err := r.load(src)
	if err != nil {
		return nil, err
	}
	return Decode(data, src, warn)
}

func (r *Reader) load(src domain.InputSource) ([]byte, error) {
	switch src.Kind {
	case domain.SourceStdin:
		if r.stdin == nil {
			return nil, &domain.OpError{
				Op:   "geojsonio.read_stdin",
				Kind: domain.KindIO,
				Err:  errors.New("standard input is not available"),
			}
		}
		b, err := io.ReadAll(r.stdin)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "geojsonio.read_stdin",
				Kind: domain.KindIO,
				Err:  err,
			}
		}
		return b, nil

	case domain.SourceLiteral:
		return []byte(src.Value), nil

	default:
		b, err := r.readFile(src.Value)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "geojsonio.read_file",
				Kind: domain.KindIO,
				Path: src.Value,
				Err:  unwrapPathError(err),
			}
		}
		return b, nil
	}
}

// unwrapPathError drops the "open <path>:" prefix; OpError already carries the path.
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}

// Decode extracts every Polygon and MultiPolygon from a FeatureCollection, Feature or
// Geometry document. Other geometry types are skipped with a warning.
func Decode(data []byte, src domain.InputSource, warn domain.WarnFunc) (orb.MultiPolygon, error) {
	if warn == nil {
		warn = domain.NopWarn
	}

	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, invalidGeoJSON(src, err)
	}

	var out orb.MultiPolygon
	switch head.Type {
	case "":
		return nil, invalidGeoJSON(src, errors.New(`missing "type" member`))

	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, invalidGeoJSON(src, err)
		}
		for i, f := range fc.Features {
			out = collect(out, f.Geometry, fmt.Sprintf("%s feature %d", src, i), warn)
		}

	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, invalidGeoJSON(src, err)
		}
		out = collect(out, f.Geometry, src.String(), warn)

	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, invalidGeoJSON(src, err)
		}
		out = collect(out, g.Geometry(), src.String(), warn)
	}

	if len(out) == 0 {
		return nil, &domain.OpError{
			Op:   "geojsonio.decode",
			Kind: domain.KindOperation,
			Path: src.String(),
			Err:  domain.ErrNoPolygons,
		}
	}
	return out, nil
}

func collect(out orb.MultiPolygon, g orb.Geometry, where string, warn domain.WarnFunc) orb.MultiPolygon {
	switch g := g.(type) {
	case nil:
		warn("skipping empty geometry in %s", where)
	case orb.Polygon:
		out = append(out, g)
	case orb.MultiPolygon:
		out = append(out, g...)
	case orb.Collection:
		for _, child := range g {
			out = collect(out, child, where, warn)
		}
	default:
		warn("skipping %s in %s: only Polygon and MultiPolygon are supported", g.GeoJSONType(), where)
	}
	return out
}

func invalidGeoJSON(src domain.InputSource, err error) error {
	return &domain.OpError{
		Op:   "geojsonio.decode",
		Kind: domain.KindInvalidGeoJSON,
		Path: src.String(),
		Err:  err,
	}
}
