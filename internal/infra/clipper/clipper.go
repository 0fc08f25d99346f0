// Package clipper computes boolean operations (union, intersection, difference, xor)
// over polygon sets.
//
// Every input edge is split where it meets another edge, each split edge is classified by
// probing both of its sides against every operand, and the edges whose two sides disagree
// under the operation are chained back into rings. Output follows RFC 7946 winding: shells
// counter-clockwise, holes clockwise.
package clipper

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/mccahan/geojson-clipping/internal/domain"
	"github.com/mccahan/geojson-clipping/internal/ports"
)

const defaultSnapScale = 1e10

type Clipper struct {
	snapScale float64
}

type Option func(*Clipper)

// WithSnapScale sets the grid vertices are snapped to (1/scale units). Non-positive values are ignored.
func WithSnapScale(s float64) Option {
	return func(c *Clipper) {
		if s > 0 {
			c.snapScale = s
		}
	}
}

func New(opts ...Option) *Clipper {
	c := &Clipper{snapScale: defaultSnapScale}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ports.Clipper = (*Clipper)(nil)

func (c *Clipper) Clip(op domain.Operation, first orb.MultiPolygon, rest ...orb.MultiPolygon) (orb.MultiPolygon, error) {
	if _, ok := op.Spec(); !ok {
		return nil, &domain.OpError{
			Op:   "clipper.clip",
			Kind: domain.KindOperation,
			Err:  fmt.Errorf("unsupported operation %q", op),
		}
	}

	inputs := append([]orb.MultiPolygon{first}, rest...)
	operands := make([]orb.MultiPolygon, 0, len(inputs))
	for i, mp := range inputs {
		normalized, err := c.normalize(mp)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "clipper.validate",
				Kind: domain.KindOperation,
				Err:  fmt.Errorf("operand %d: %w", i+1, err),
			}
		}
		operands = append(operands, normalized)
	}

	segs := collectSegments(operands)
	pieces := c.split(segs)
	edges := classify(op, operands, pieces)
	rings := assembleRings(edges)
	return buildPolygons(rings), nil
}

func (c *Clipper) snap(p orb.Point) orb.Point {
	return orb.Point{c.snapCoord(p[0]), c.snapCoord(p[1])}
}

// snapCoord also turns -0 into 0.
func (c *Clipper) snapCoord(v float64) float64 {
	return math.Round(v*c.snapScale)/c.snapScale + 0
}

// normalize snaps vertices, drops repeated points and closes every ring.
func (c *Clipper) normalize(mp orb.MultiPolygon) (orb.MultiPolygon, error) {
	out := make(orb.MultiPolygon, 0, len(mp))
	for pi, poly := range mp {
		if len(poly) == 0 {
			return nil, fmt.Errorf("polygon %d has no rings: %w", pi, domain.ErrInvalidGeometry)
		}
		np := make(orb.Polygon, 0, len(poly))
		for ri, ring := range poly {
			r := make(orb.Ring, 0, len(ring)+1)
			for _, p := range ring {
				if math.IsNaN(p[0]) || math.IsNaN(p[1]) || math.IsInf(p[0], 0) || math.IsInf(p[1], 0) {
					return nil, fmt.Errorf("polygon %d ring %d has a non-finite coordinate: %w", pi, ri, domain.ErrInvalidGeometry)
				}
				s := c.snap(p)
				if len(r) > 0 && r[len(r)-1] == s {
					continue
				}
				r = append(r, s)
			}
			if len(r) > 1 && r[0] == r[len(r)-1] {
				r = r[:len(r)-1]
			}
			if len(r) < 3 {
				return nil, fmt.Errorf("polygon %d ring %d has fewer than 3 distinct points: %w", pi, ri, domain.ErrInvalidGeometry)
			}
			np = append(np, append(r, r[0]))
		}
		out = append(out, np)
	}
	return out, nil
}

type segment struct {
	a, b   orb.Point
	box    orb.Bound
	splits []orb.Point
}

func collectSegments(operands []orb.MultiPolygon) []*segment {
	var segs []*segment
	for _, mp := range operands {
		for _, poly := range mp {
			for _, ring := range poly {
				for i := 0; i < len(ring)-1; i++ {
					a, b := ring[i], ring[i+1]
					if a == b {
						continue
					}
					segs = append(segs, &segment{a: a, b: b, box: segmentBound(a, b)})
				}
			}
		}
	}
	return segs
}

// Relative tolerances for intersection parameters and parallelism.
const (
	paramEps    = 1e-12
	parallelEps = 1e-12
)

// intersect records the points where s and t meet on both segments.
func intersect(s, t *segment) {
	r := sub(s.b, s.a)
	q := sub(t.b, t.a)
	qp := sub(t.a, s.a)
	denom := cross(r, q)

	if math.Abs(denom) > parallelEps*norm(r)*norm(q) {
		u := cross(qp, q) / denom
		v := cross(qp, r) / denom
		if u < -paramEps || u > 1+paramEps || v < -paramEps || v > 1+paramEps {
			return
		}
		u = math.Max(0, math.Min(1, u))
		p := add(s.a, scale(r, u))
		s.splits = append(s.splits, p)
		t.splits = append(t.splits, p)
		return
	}

	// Parallel: only collinear overlaps matter.
	if math.Abs(cross(qp, r)) > parallelEps*norm(r)*norm(qp) {
		return
	}
	rr, qq := dot(r, r), dot(q, q)
	for _, p := range []orb.Point{t.a, t.b} {
		if u := dot(sub(p, s.a), r) / rr; u > paramEps && u < 1-paramEps {
			s.splits = append(s.splits, p)
		}
	}
	for _, p := range []orb.Point{s.a, s.b} {
		if v := dot(sub(p, t.a), q) / qq; v > paramEps && v < 1-paramEps {
			t.splits = append(t.splits, p)
		}
	}
}

type piece struct {
	a, b orb.Point
	box  orb.Bound
}

// split cuts every segment at its intersections and drops duplicate pieces.
func (c *Clipper) split(segs []*segment) []piece {
	boxes := make([]orb.Bound, len(segs))
	for i, s := range segs {
		boxes[i] = s.box
	}
	g := newGrid(boxes)
	for i, s := range segs {
		g.query(s.box, func(j int) {
			if j > i && s.box.Intersects(segs[j].box) {
				intersect(s, segs[j])
			}
		})
	}

	seen := make(map[[2]orb.Point]bool)
	var pieces []piece
	for _, s := range segs {
		d := sub(s.b, s.a)
		pts := make([]orb.Point, 0, len(s.splits)+2)
		pts = append(pts, s.a)
		pts = append(pts, s.splits...)
		pts = append(pts, s.b)
		sort.SliceStable(pts, func(i, j int) bool {
			return dot(sub(pts[i], s.a), d) < dot(sub(pts[j], s.a), d)
		})

		prev := c.snap(pts[0])
		for _, p := range pts[1:] {
			cur := c.snap(p)
			if cur == prev {
				continue
			}
			key := [2]orb.Point{prev, cur}
			if less(cur, prev) {
				key = [2]orb.Point{cur, prev}
			}
			if !seen[key] {
				seen[key] = true
				pieces = append(pieces, piece{a: prev, b: cur, box: segmentBound(prev, cur)})
			}
			prev = cur
		}
	}
	return pieces
}

func less(a, b orb.Point) bool {
	if a[0] != b[0] {
		return a[0] < b[0]
	}
	return a[1] < b[1]
}

type edge struct {
	a, b orb.Point
	used bool
}

// classify keeps the pieces that bound the result, oriented with the result on their left.
func classify(op domain.Operation, operands []orb.MultiPolygon, pieces []piece) []*edge {
	var edges []*edge
	inLeft := make([]bool, len(operands))
	inRight := make([]bool, len(operands))

	indexes := make([]*operandIndex, len(operands))
	for k, mp := range operands {
		indexes[k] = newOperandIndex(mp)
	}
	boxes := make([]orb.Bound, len(pieces))
	for i, p := range pieces {
		boxes[i] = p.box
	}
	g := newGrid(boxes)

	for i, p := range pieces {
		d := sub(p.b, p.a)
		l := norm(d)
		m := midpoint(p.a, p.b)

		// The sample offset stays below half the distance to any other piece, so both
		// samples sit in the faces adjacent to this piece.
		delta := l / 4
		reach := orb.Bound{
			Min: orb.Point{m[0] - 2*delta, m[1] - 2*delta},
			Max: orb.Point{m[0] + 2*delta, m[1] + 2*delta},
		}
		g.query(reach, func(j int) {
			o := pieces[j]
			if j == i || distToBound(m, o.box) >= 2*delta {
				return
			}
			if dd := distToSegment(m, o.a, o.b); dd/2 < delta {
				delta = dd / 2
			}
		})
		if delta <= 0 {
			continue
		}

		n := orb.Point{-d[1] / l, d[0] / l}
		left := add(m, scale(n, delta))
		right := sub(m, scale(n, delta))
		for k, ix := range indexes {
			inLeft[k] = ix.contains(left)
			inRight[k] = ix.contains(right)
		}

		resLeft, resRight := op.Evaluate(inLeft), op.Evaluate(inRight)
		switch {
		case resLeft == resRight:
		case resLeft:
			edges = append(edges, &edge{a: p.a, b: p.b})
		default:
			edges = append(edges, &edge{a: p.b, b: p.a})
		}
	}
	return edges
}

// assembleRings chains directed edges into closed rings, always taking the sharpest left
// turn so rings that touch at a vertex stay separate.
func assembleRings(edges []*edge) []orb.Ring {
	out := make(map[orb.Point][]*edge, len(edges))
	for _, e := range edges {
		out[e.a] = append(out[e.a], e)
	}

	var rings []orb.Ring
	for _, e0 := range edges {
		if e0.used {
			continue
		}

		start := e0.a
		ring := orb.Ring{start}
		cur := e0
		for cur != nil {
			cur.used = true
			ring = append(ring, cur.b)
			if cur.b == start {
				break
			}
			cur = nextEdge(out[cur.b], cur)
		}
		if cur == nil || len(ring) < 4 {
			continue
		}

		ring = simplifyRing(ring)
		if len(ring) >= 4 {
			rings = append(rings, ring)
		}
	}
	return rings
}

func nextEdge(candidates []*edge, in *edge) *edge {
	back := sub(in.a, in.b)
	var best *edge
	bestAngle := math.Inf(1)
	for _, e := range candidates {
		if e.used {
			continue
		}
		if a := cwAngle(back, sub(e.b, e.a)); a < bestAngle {
			best, bestAngle = e, a
		}
	}
	return best
}

// simplifyRing drops vertices that lie on a straight run. The ring is closed.
func simplifyRing(r orb.Ring) orb.Ring {
	pts := make([]orb.Point, 0, len(r))
	for _, p := range r[:len(r)-1] {
		for len(pts) >= 2 && straight(pts[len(pts)-2], pts[len(pts)-1], p) {
			pts = pts[:len(pts)-1]
		}
		pts = append(pts, p)
	}

	// The seam between the last and first vertices.
	for len(pts) >= 3 {
		n := len(pts)
		if straight(pts[n-2], pts[n-1], pts[0]) {
			pts = pts[:n-1]
		} else if straight(pts[n-1], pts[0], pts[1]) {
			pts = pts[1:]
		} else {
			break
		}
	}

	out := make(orb.Ring, 0, len(pts)+1)
	out = append(out, pts...)
	return append(out, pts[0])
}

// straight reports whether b continues the line from a to c in the same direction.
func straight(a, b, c orb.Point) bool {
	v1, v2 := sub(b, a), sub(c, b)
	return math.Abs(cross(v1, v2)) <= parallelEps*norm(v1)*norm(v2) && dot(v1, v2) > 0
}

// buildPolygons nests each hole in the smallest shell that contains it.
func buildPolygons(rings []orb.Ring) orb.MultiPolygon {
	var shells, holes []orb.Ring
	var shellAreas []float64
	for _, r := range rings {
		a := signedArea(r)
		switch {
		case a > 0:
			shells = append(shells, r)
			shellAreas = append(shellAreas, a)
		case a < 0:
			holes = append(holes, r)
		}
	}

	mp := make(orb.MultiPolygon, len(shells))
	bounds := make([]orb.Bound, len(shells))
	for i, s := range shells {
		mp[i] = orb.Polygon{s}
		bounds[i] = s.Bound()
	}

	for _, h := range holes {
		pt := holeSample(h)
		best := -1
		for i, s := range shells {
			if !bounds[i].Contains(pt) || !planar.RingContains(s, pt) {
				continue
			}
			if best < 0 || shellAreas[i] < shellAreas[best] {
				best = i
			}
		}
		if best >= 0 {
			mp[best] = append(mp[best], h)
		}
	}
	return mp
}

// holeSample returns a point just inside the result next to the hole's first edge.
func holeSample(h orb.Ring) orb.Point {
	d := sub(h[1], h[0])
	l := norm(d)
	n := orb.Point{-d[1] / l, d[0] / l}
	return add(midpoint(h[0], h[1]), scale(n, l*1e-6))
}
