package ports

import (
	"context"

	"github.com/paulmach/orb"

	"github.com/mccahan/geojson-clipping/internal/domain"
)

// GeometryReader loads the polygons of one input source.
type GeometryReader interface {
	Read(ctx context.Context, src domain.InputSource, warn domain.WarnFunc) (orb.MultiPolygon, error)
}
