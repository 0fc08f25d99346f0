package ports

import (
	"context"

	"github.com/paulmach/orb"
)

// ResultWriter serializes a result to path, or to standard output when path is empty.
type ResultWriter interface {
	Write(ctx context.Context, path string, result orb.MultiPolygon) error
}
