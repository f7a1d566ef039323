package framecad

import "math"

// Segment is a single geometric primitive of a Model.
// It is a closed set: Line and Arc are the only implementations.
type Segment interface {
	// Endpoints returns the start and end point in traversal order.
	Endpoints() (Point, Point)
	// Length returns the path length of the segment.
	Length() float64
	// Bounds returns the tight axis-aligned bounding box.
	Bounds() Rect
	// Transform returns the segment mapped through m. Arcs under a
	// non-conformal matrix are refitted and may degrade to a Line.
	Transform(m Matrix) Segment

	isSegment()
}

// Line is a straight segment from Origin to End.
type Line struct {
	Origin Point
	End    Point
}

func (Line) isSegment() {}

// Endpoints returns Origin and End.
func (l Line) Endpoints() (Point, Point) {
	return l.Origin, l.End
}

// Length returns the length of the line segment.
func (l Line) Length() float64 {
	return l.Origin.Distance(l.End)
}

// Bounds returns the axis-aligned bounding box of the line.
func (l Line) Bounds() Rect {
	return NewRect(l.Origin, l.End)
}

// Midpoint returns the midpoint of the line segment.
func (l Line) Midpoint() Point {
	return l.Origin.Lerp(l.End, 0.5)
}

// Direction returns the vector from Origin to End.
func (l Line) Direction() Point {
	return l.End.Sub(l.Origin)
}

// Reversed returns a copy of the line with endpoints swapped.
func (l Line) Reversed() Line {
	return Line{Origin: l.End, End: l.Origin}
}

// Transform applies m to both endpoints.
func (l Line) Transform(m Matrix) Segment {
	return Line{Origin: m.TransformPoint(l.Origin), End: m.TransformPoint(l.End)}
}

// Arc is a circular arc swept counter-clockwise from StartAngle to
// EndAngle. Angles are in degrees. The sweep lies in (0, 360); a full
// circle is expressed as several arcs (see Circle).
type Arc struct {
	Center     Point
	Radius     float64
	StartAngle float64
	EndAngle   float64
}

func (Arc) isSegment() {}

// Sweep returns the swept angle in degrees.
func (a Arc) Sweep() float64 {
	s := normalizeAngle(a.EndAngle - a.StartAngle)
	if s == 0 {
		return 360
	}
	return s
}

// PointAt returns the point of the underlying circle at angle deg.
func (a Arc) PointAt(deg float64) Point {
	rad := toRadians(deg)
	return Point{
		X: a.Center.X + a.Radius*math.Cos(rad),
		Y: a.Center.Y + a.Radius*math.Sin(rad),
	}
}

// Endpoints returns the points at StartAngle and EndAngle.
func (a Arc) Endpoints() (Point, Point) {
	return a.PointAt(a.StartAngle), a.PointAt(a.EndAngle)
}

// Midpoint returns the point halfway along the sweep.
func (a Arc) Midpoint() Point {
	return a.PointAt(a.StartAngle + a.Sweep()/2)
}

// Length returns the arc length.
func (a Arc) Length() float64 {
	return a.Radius * toRadians(a.Sweep())
}

// ContainsAngle reports whether deg lies inside the sweep, widened by
// slack degrees on both ends.
func (a Arc) ContainsAngle(deg, slack float64) bool {
	offset := normalizeAngle(deg - a.StartAngle)
	sweep := a.Sweep()
	if offset <= sweep+slack {
		return true
	}
	return offset >= 360-slack
}

// Bounds returns the tight bounding box including the circle's extrema
// that fall inside the sweep.
func (a Arc) Bounds() Rect {
	p0, p1 := a.Endpoints()
	r := NewRect(p0, p1)
	for _, deg := range [...]float64{0, 90, 180, 270} {
		if a.ContainsAngle(deg, 0) {
			r = r.expand(a.PointAt(deg))
		}
	}
	return r
}

// Transform maps the arc through m. Conformal matrices keep the arc exact
// and flip its direction when mirroring; other matrices refit the arc
// through its transformed start, middle and end points.
func (a Arc) Transform(m Matrix) Segment {
	if !m.isConformal() {
		p0, p1 := a.Endpoints()
		return ArcThrough(m.TransformPoint(p0), m.TransformPoint(a.Midpoint()), m.TransformPoint(p1))
	}
	sx, sy := math.Copysign(1, m.A), math.Copysign(1, m.E)
	mapAngle := func(deg float64) float64 {
		rad := toRadians(deg)
		return normalizeAngle(math.Atan2(sy*math.Sin(rad), sx*math.Cos(rad)) * 180 / math.Pi)
	}
	out := Arc{
		Center:     m.TransformPoint(a.Center),
		Radius:     a.Radius * math.Abs(m.A),
		StartAngle: mapAngle(a.StartAngle),
		EndAngle:   mapAngle(a.EndAngle),
	}
	if m.Determinant() < 0 {
		out.StartAngle, out.EndAngle = out.EndAngle, out.StartAngle
	}
	return out
}

// ArcThrough returns the arc passing through a, m and b in that order.
// Collinear points yield a Line from a to b.
func ArcThrough(a, m, b Point) Segment {
	d := 2 * (a.X*(m.Y-b.Y) + m.X*(b.Y-a.Y) + b.X*(a.Y-m.Y))
	if math.Abs(d) < 1e-12 {
		return Line{Origin: a, End: b}
	}
	a2 := a.X*a.X + a.Y*a.Y
	m2 := m.X*m.X + m.Y*m.Y
	b2 := b.X*b.X + b.Y*b.Y
	c := Point{
		X: (a2*(m.Y-b.Y) + m2*(b.Y-a.Y) + b2*(a.Y-m.Y)) / d,
		Y: (a2*(b.X-m.X) + m2*(a.X-b.X) + b2*(m.X-a.X)) / d,
	}
	arc := Arc{Center: c, Radius: c.Distance(a)}
	if m.Sub(a).Cross(b.Sub(m)) > 0 {
		arc.StartAngle, arc.EndAngle = angleOf(c, a), angleOf(c, b)
	} else {
		arc.StartAngle, arc.EndAngle = angleOf(c, b), angleOf(c, a)
	}
	return arc
}

// ArcFromEndpoints builds the counter-clockwise arc of the given radius
// from one point to another. largeArc selects the sweep above 180 degrees.
// A radius shorter than half the chord is stretched to fit.
func ArcFromEndpoints(from, to Point, radius float64, largeArc bool) Arc {
	chord := from.Distance(to)
	if radius < chord/2 {
		radius = chord / 2
	}
	h := math.Sqrt(math.Max(radius*radius-chord*chord/4, 0))
	n := to.Sub(from).Perp().Normalize()
	if largeArc {
		n = n.Mul(-1)
	}
	c := from.Lerp(to, 0.5).Add(n.Mul(h))
	return Arc{
		Center:     c,
		Radius:     radius,
		StartAngle: angleOf(c, from),
		EndAngle:   angleOf(c, to),
	}
}

// Circle returns a full circle as three 120 degree arcs.
func Circle(center Point, radius float64) []Arc {
	return []Arc{
		{Center: center, Radius: radius, StartAngle: 0, EndAngle: 120},
		{Center: center, Radius: radius, StartAngle: 120, EndAngle: 240},
		{Center: center, Radius: radius, StartAngle: 240, EndAngle: 0},
	}
}

// SameSegment reports whether a and b describe the same geometry within
// tol, ignoring line direction.
func SameSegment(a, b Segment, tol float64) bool {
	switch sa := a.(type) {
	case Line:
		sb, ok := b.(Line)
		if !ok {
			return false
		}
		return (sa.Origin.Near(sb.Origin, tol) && sa.End.Near(sb.End, tol)) ||
			(sa.Origin.Near(sb.End, tol) && sa.End.Near(sb.Origin, tol))
	case Arc:
		sb, ok := b.(Arc)
		if !ok {
			return false
		}
		a0, a1 := sa.Endpoints()
		b0, b1 := sb.Endpoints()
		return sa.Center.Near(sb.Center, tol) &&
			math.Abs(sa.Radius-sb.Radius) < tol &&
			a0.Near(b0, tol) && a1.Near(b1, tol)
	}
	return false
}

// midpointOf returns the point halfway along s.
func midpointOf(s Segment) Point {
	switch v := s.(type) {
	case Line:
		return v.Midpoint()
	case Arc:
		return v.Midpoint()
	}
	return Point{}
}
