package framecad

import (
	"math"
	"slices"
)

// Intersections returns the points shared by a and b: proper crossings,
// endpoints of one segment lying on the other within tol, and the ends of
// collinear or co-circular overlaps. Points closer than tol are merged.
func Intersections(a, b Segment, tol float64) []Point {
	var pts []Point
	add := func(p Point) {
		for _, q := range pts {
			if q.Near(p, tol) {
				return
			}
		}
		pts = append(pts, p)
	}

	b0, b1 := b.Endpoints()
	for _, e := range [...]Point{b0, b1} {
		if DistanceTo(a, e) < tol {
			add(e)
		}
	}
	a0, a1 := a.Endpoints()
	for _, e := range [...]Point{a0, a1} {
		if DistanceTo(b, e) < tol {
			add(e)
		}
	}

	switch sa := a.(type) {
	case Line:
		switch sb := b.(type) {
		case Line:
			if p, ok := lineLine(sa, sb); ok {
				add(p)
			}
		case Arc:
			for _, p := range lineArc(sa, sb) {
				add(p)
			}
		}
	case Arc:
		switch sb := b.(type) {
		case Line:
			for _, p := range lineArc(sb, sa) {
				add(p)
			}
		case Arc:
			for _, p := range arcArc(sa, sb) {
				add(p)
			}
		}
	}
	return pts
}

func lineLine(a, b Line) (Point, bool) {
	r := a.Direction()
	s := b.Direction()
	d := r.Cross(s)
	if math.Abs(d) < 1e-12 {
		return Point{}, false
	}
	qp := b.Origin.Sub(a.Origin)
	t := qp.Cross(s) / d
	u := qp.Cross(r) / d
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return Point{}, false
	}
	return a.Origin.Add(r.Mul(t)), true
}

func lineArc(l Line, a Arc) []Point {
	dir := l.Direction()
	f := l.Origin.Sub(a.Center)
	roots := solveQuadratic(dir.Dot(dir), 2*f.Dot(dir), f.Dot(f)-a.Radius*a.Radius)
	var out []Point
	for _, t := range roots {
		if t < 0 || t > 1 {
			continue
		}
		p := l.Origin.Add(dir.Mul(t))
		if a.ContainsAngle(angleOf(a.Center, p), 1e-9) {
			out = append(out, p)
		}
	}
	return out
}

func arcArc(a, b Arc) []Point {
	d := a.Center.Distance(b.Center)
	if d == 0 || d > a.Radius+b.Radius || d < math.Abs(a.Radius-b.Radius) {
		return nil
	}
	along := (a.Radius*a.Radius - b.Radius*b.Radius + d*d) / (2 * d)
	h := math.Sqrt(math.Max(a.Radius*a.Radius-along*along, 0))
	axis := b.Center.Sub(a.Center).Mul(1 / d)
	base := a.Center.Add(axis.Mul(along))
	var out []Point
	for _, p := range [...]Point{base.Add(axis.Perp().Mul(h)), base.Sub(axis.Perp().Mul(h))} {
		if a.ContainsAngle(angleOf(a.Center, p), 1e-9) && b.ContainsAngle(angleOf(b.Center, p), 1e-9) {
			out = append(out, p)
		}
		if h == 0 {
			break
		}
	}
	return out
}

// DistanceTo returns the distance from p to the closest point of s.
func DistanceTo(s Segment, p Point) float64 {
	return ClosestPoint(s, p).Distance(p)
}

// ClosestPoint returns the point of s nearest to p.
func ClosestPoint(s Segment, p Point) Point {
	switch v := s.(type) {
	case Line:
		dir := v.Direction()
		l2 := dir.Dot(dir)
		if l2 == 0 {
			return v.Origin
		}
		t := math.Min(math.Max(p.Sub(v.Origin).Dot(dir)/l2, 0), 1)
		return v.Origin.Add(dir.Mul(t))
	case Arc:
		if p != v.Center && v.ContainsAngle(angleOf(v.Center, p), 0) {
			return v.Center.Add(p.Sub(v.Center).Normalize().Mul(v.Radius))
		}
		p0, p1 := v.Endpoints()
		if p0.Distance(p) <= p1.Distance(p) {
			return p0
		}
		return p1
	}
	return p
}

// SplitAt cuts s at the given points, which are assumed to lie on s.
// Points within tol of an end or of each other are ignored. The pieces keep
// the direction of s.
func SplitAt(s Segment, pts []Point, tol float64) []Segment {
	switch v := s.(type) {
	case Line:
		length := v.Length()
		if length == 0 {
			return []Segment{v}
		}
		dir := v.Direction().Mul(1 / length)
		cuts := cutPositions(pts, length, tol, func(p Point) float64 {
			return p.Sub(v.Origin).Dot(dir)
		})
		out := make([]Segment, 0, len(cuts)+1)
		from := v.Origin
		for _, c := range cuts {
			to := v.Origin.Add(dir.Mul(c))
			out = append(out, Line{Origin: from, End: to})
			from = to
		}
		return append(out, Line{Origin: from, End: v.End})
	case Arc:
		sweep := v.Sweep()
		perDegree := v.Radius * math.Pi / 180
		cuts := cutPositions(pts, sweep*perDegree, tol, func(p Point) float64 {
			return normalizeAngle(angleOf(v.Center, p)-v.StartAngle) * perDegree
		})
		out := make([]Segment, 0, len(cuts)+1)
		from := v.StartAngle
		for _, c := range cuts {
			to := normalizeAngle(v.StartAngle + c/perDegree)
			out = append(out, Arc{Center: v.Center, Radius: v.Radius, StartAngle: from, EndAngle: to})
			from = to
		}
		return append(out, Arc{Center: v.Center, Radius: v.Radius, StartAngle: from, EndAngle: v.EndAngle})
	}
	return []Segment{s}
}

// cutPositions maps points to distances along a segment of the given
// length and returns the sorted interior cuts at least tol apart.
func cutPositions(pts []Point, length, tol float64, position func(Point) float64) []float64 {
	var cuts []float64
	for _, p := range pts {
		d := position(p)
		if d > tol && d < length-tol {
			cuts = append(cuts, d)
		}
	}
	slices.Sort(cuts)
	out := cuts[:0]
	for _, c := range cuts {
		if len(out) == 0 || c-out[len(out)-1] > tol {
			out = append(out, c)
		}
	}
	return out
}
