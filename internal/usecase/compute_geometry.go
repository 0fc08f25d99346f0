package usecase

import (
	"context"
	"fmt"

	"github.com/paulmach/orb"

	"github.com/mccahan/geojson-clipping/internal/domain"
	"github.com/mccahan/geojson-clipping/internal/ports"
)

// ComputeGeometry is the geometry engine: it loads every source of an input set and
// combines them with the requested operation.
type ComputeGeometry struct {
	reader  ports.GeometryReader
	clipper ports.Clipper
}

var _ ports.GeometryEngine = (*ComputeGeometry)(nil)

func NewComputeGeometry(r ports.GeometryReader, c ports.Clipper) *ComputeGeometry {
	return &ComputeGeometry{
		reader:  r,
		clipper: c,
	}
}

func (uc *ComputeGeometry) Compute(ctx context.Context, op domain.Operation, inputs domain.ResolvedInputSet, warn domain.WarnFunc) (orb.MultiPolygon, error) {
	if warn == nil {
		warn = domain.NopWarn
	}

	first, rest, ok := inputs.Operands(op)
	if !ok {
		return nil, &domain.OpError{
			Op:   "engine.compute",
			Kind: domain.KindPrecondition,
			Err:  fmt.Errorf("%s: %s", op, domain.MsgNoInput),
		}
	}

	firstGeom, err := uc.load(ctx, first, warn)
	if err != nil {
		return nil, err
	}

	restGeoms := make([]orb.MultiPolygon, 0, len(rest))
	for _, src := range rest {
		g, err := uc.load(ctx, src, warn)
		if err != nil {
			return nil, err
		}
		restGeoms = append(restGeoms, g)
	}

	if len(restGeoms) == 0 {
		warn("%s received a single input (%s); the result is that input normalized", op, first)
	}

	out, err := uc.clipper.Clip(op, firstGeom, restGeoms...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func (uc *ComputeGeometry) load(ctx context.Context, src domain.InputSource, warn domain.WarnFunc) (orb.MultiPolygon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return uc.reader.Read(ctx, src, warn)
}
