package clipper

import (
	"math"

	"github.com/paulmach/orb"
)

func sub(a, b orb.Point) orb.Point { return orb.Point{a[0] - b[0], a[1] - b[1]} }
func add(a, b orb.Point) orb.Point { return orb.Point{a[0] + b[0], a[1] + b[1]} }
func scale(a orb.Point, f float64) orb.Point { return orb.Point{a[0] * f, a[1] * f} }
func dot(a, b orb.Point) float64 { return a[0]*b[0] + a[1]*b[1] }
func cross(a, b orb.Point) float64 { return a[0]*b[1] - a[1]*b[0] }
func norm(a orb.Point) float64 { return math.Hypot(a[0], a[1]) }

func midpoint(a, b orb.Point) orb.Point {
	return orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

// distToSegment is the euclidean distance from p to the segment a-b.
func distToSegment(p, a, b orb.Point) float64 {
	d := sub(b, a)
	l2 := dot(d, d)
	if l2 == 0 {
		return norm(sub(p, a))
	}
	t := dot(sub(p, a), d) / l2
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return norm(sub(p, add(a, scale(d, t))))
}

// distToBound is zero inside b.
func distToBound(p orb.Point, b orb.Bound) float64 {
	dx := math.Max(0, math.Max(b.Min[0]-p[0], p[0]-b.Max[0]))
	dy := math.Max(0, math.Max(b.Min[1]-p[1], p[1]-b.Max[1]))
	return math.Hypot(dx, dy)
}

// cwAngle is the clockwise angle in (0, 2π] that rotates from onto to.
func cwAngle(from, to orb.Point) float64 {
	ccw := math.Atan2(cross(from, to), dot(from, to))
	cw := -ccw
	if cw <= 0 {
		cw += 2 * math.Pi
	}
	return cw
}

// signedArea is positive for counter-clockwise rings.
func signedArea(r orb.Ring) float64 {
	var s float64
	for i := 0; i < len(r)-1; i++ {
		s += cross(r[i], r[i+1])
	}
	return s / 2
}

func segmentBound(a, b orb.Point) orb.Bound {
	return orb.Bound{
		Min: orb.Point{math.Min(a[0], b[0]), math.Min(a[1], b[1])},
		Max: orb.Point{math.Max(a[0], b[0]), math.Max(a[1], b[1])},
	}
}
