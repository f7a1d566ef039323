package framecad

import "math"

// Contains reports whether p lies inside the region bounded by the model's
// segments, using the even-odd rule with a horizontal ray to the right.
// Arcs are intersected exactly rather than flattened.
func (m *Model) Contains(p Point) bool {
	return containsPoint(m.Segments(), p)
}

func containsPoint(segs []RoutedSegment, p Point) bool {
	n := 0
	for _, rs := range segs {
		switch s := rs.Segment.(type) {
		case Line:
			n += lineCrossing(s.Origin, s.End, p)
		case Arc:
			n += arcCrossings(s, p)
		}
	}
	return n%2 == 1
}

// lineCrossing counts the ray crossing of segment p0-p1. A vertex exactly on
// the ray counts as below it, so shared vertices are counted once.
func lineCrossing(p0, p1, pt Point) int {
	if (p0.Y > pt.Y) == (p1.Y > pt.Y) {
		return 0
	}
	x := p0.X + (pt.Y-p0.Y)*(p1.X-p0.X)/(p1.Y-p0.Y)
	if x > pt.X {
		return 1
	}
	return 0
}

// arcCrossings counts the ray crossings of an arc under the same vertex
// convention as lineCrossing.
func arcCrossings(a Arc, pt Point) int {
	dy := pt.Y - a.Center.Y
	if math.Abs(dy) >= a.Radius {
		return 0
	}
	dx := math.Sqrt(a.Radius*a.Radius - dy*dy)
	sweep := a.Sweep()
	n := 0
	for _, x := range [...]float64{a.Center.X - dx, a.Center.X + dx} {
		if x <= pt.X {
			continue
		}
		deg := angleOf(a.Center, Pt(x, pt.Y))
		offset := normalizeAngle(deg - a.StartAngle)
		const eps = 1e-9
		switch {
		case offset < eps || offset > 360-eps:
			if a.PointAt(a.StartAngle+1e-6).Y > pt.Y {
				n++
			}
		case math.Abs(offset-sweep) < eps:
			if a.PointAt(a.EndAngle-1e-6).Y > pt.Y {
				n++
			}
		case offset < sweep:
			n++
		}
	}
	return n
}
