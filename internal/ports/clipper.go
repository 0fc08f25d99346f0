package ports

import (
	"github.com/paulmach/orb"

	"github.com/mccahan/geojson-clipping/internal/domain"
)

// Clipper applies a boolean operation. first is the minuend for difference.
type Clipper interface {
	Clip(op domain.Operation, first orb.MultiPolygon, rest ...orb.MultiPolygon) (orb.MultiPolygon, error)
}
