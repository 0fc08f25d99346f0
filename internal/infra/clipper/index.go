package clipper

import (
	"math"

	"github.com/paulmach/orb"
)

const maxGridDim = 1024

// grid buckets bounding boxes into uniform cells for neighbourhood queries.
type grid struct {
	min    orb.Point
	cw, ch float64
	nx, ny int
	cells  [][]int

	mark  []int
	stamp int
}

// newGrid sizes the cells so that, on average, each holds about one box.
func newGrid(boxes []orb.Bound) *grid {
	g := &grid{nx: 1, ny: 1, mark: make([]int, len(boxes))}
	if len(boxes) == 0 {
		g.cw, g.ch = 1, 1
		g.cells = make([][]int, 1)
		return g
	}

	ext := boxes[0]
	for _, b := range boxes[1:] {
		ext = ext.Union(b)
	}
	g.min = ext.Min
	w, h := ext.Max[0]-ext.Min[0], ext.Max[1]-ext.Min[1]

	cell := math.Sqrt(w * h / float64(len(boxes)))
	if !(cell > 0) {
		cell = math.Max(w, h) / float64(len(boxes))
	}
	if cell > 0 {
		g.nx = clampDim(w / cell)
		g.ny = clampDim(h / cell)
	}
	g.cw, g.ch = w/float64(g.nx), h/float64(g.ny)
	if g.cw <= 0 {
		g.cw = 1
	}
	if g.ch <= 0 {
		g.ch = 1
	}

	g.cells = make([][]int, g.nx*g.ny)
	for id, b := range boxes {
		x0, y0, x1, y1 := g.span(b)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				c := y*g.nx + x
				g.cells[c] = append(g.cells[c], id)
			}
		}
	}
	return g
}

func clampDim(v float64) int {
	n := int(math.Ceil(v))
	if n < 1 {
		return 1
	}
	if n > maxGridDim {
		return maxGridDim
	}
	return n
}

func (g *grid) span(b orb.Bound) (x0, y0, x1, y1 int) {
	return g.col(b.Min[0]), g.row(b.Min[1]), g.col(b.Max[0]), g.row(b.Max[1])
}

func (g *grid) col(x float64) int { return clampIndex((x-g.min[0])/g.cw, g.nx) }
func (g *grid) row(y float64) int { return clampIndex((y-g.min[1])/g.ch, g.ny) }

func clampIndex(v float64, n int) int {
	if !(v > 0) {
		return 0
	}
	if v >= float64(n) {
		return n - 1
	}
	return int(v)
}

// query calls fn once for every box stored in a cell that b touches.
func (g *grid) query(b orb.Bound, fn func(id int)) {
	g.stamp++
	x0, y0, x1, y1 := g.span(b)
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			for _, id := range g.cells[y*g.nx+x] {
				if g.mark[id] == g.stamp {
					continue
				}
				g.mark[id] = g.stamp
				fn(id)
			}
		}
	}
}

type bandEdge struct {
	a, b       orb.Point
	poly, ring int
}

// operandIndex answers point-in-MultiPolygon queries by casting a ray along +x and only
// looking at the edges stored in the point's horizontal band.
type operandIndex struct {
	minY, band float64
	rows       [][]bandEdge
	rings      []int // ring count per polygon
}

func newOperandIndex(mp orb.MultiPolygon) *operandIndex {
	ix := &operandIndex{rings: make([]int, len(mp))}

	var edges []bandEdge
	minY, maxY := math.Inf(1), math.Inf(-1)
	for pi, poly := range mp {
		ix.rings[pi] = len(poly)
		for ri, ring := range poly {
			for i := 0; i+1 < len(ring); i++ {
				a, b := ring[i], ring[i+1]
				if a[1] == b[1] {
					continue // horizontal edges never cross a horizontal ray
				}
				edges = append(edges, bandEdge{a: a, b: b, poly: pi, ring: ri})
				minY = math.Min(minY, math.Min(a[1], b[1]))
				maxY = math.Max(maxY, math.Max(a[1], b[1]))
			}
		}
	}
	if len(edges) == 0 {
		return ix
	}

	n := clampDim(math.Sqrt(float64(len(edges))))
	ix.minY = minY
	ix.band = (maxY - minY) / float64(n)
	if ix.band <= 0 {
		ix.band, n = 1, 1
	}
	ix.rows = make([][]bandEdge, n)
	for _, e := range edges {
		r0 := clampIndex((math.Min(e.a[1], e.b[1])-minY)/ix.band, n)
		r1 := clampIndex((math.Max(e.a[1], e.b[1])-minY)/ix.band, n)
		for r := r0; r <= r1; r++ {
			ix.rows[r] = append(ix.rows[r], e)
		}
	}
	return ix
}

// contains reports whether p lies inside some polygon: inside its shell and outside all
// of its holes. Points on a boundary are not resolved consistently.
func (ix *operandIndex) contains(p orb.Point) bool {
	if len(ix.rows) == 0 {
		return false
	}
	v := (p[1] - ix.minY) / ix.band
	if v < 0 || v > float64(len(ix.rows)) {
		return false
	}

	odd := make(map[[2]int]bool)
	for _, e := range ix.rows[clampIndex(v, len(ix.rows))] {
		if (e.a[1] > p[1]) == (e.b[1] > p[1]) {
			continue
		}
		x := e.a[0] + (p[1]-e.a[1])*(e.b[0]-e.a[0])/(e.b[1]-e.a[1])
		if p[0] < x {
			k := [2]int{e.poly, e.ring}
			odd[k] = !odd[k]
		}
	}

	for k, in := range odd {
		if !in || k[1] != 0 {
			continue
		}
		inHole := false
		for r := 1; r < ix.rings[k[0]]; r++ {
			if odd[[2]int{k[0], r}] {
				inHole = true
				break
			}
		}
		if !inHole {
			return true
		}
	}
	return false
}
