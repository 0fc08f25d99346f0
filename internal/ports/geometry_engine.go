package ports

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/mccahan/geojson-clipping/internal/domain"
)

// GeometryEngine computes a set operation over a resolved input set.
type GeometryEngine interface {
	Compute(ctx context.Context, op domain.Operation, inputs domain.ResolvedInputSet, warn domain.WarnFunc) (orb.MultiPolygon, error)
}
