package framecad

// Bezier curves only exist transiently while importing drawings: the
// kernel's Segment set is lines and arcs, so curves are flattened.
// Based on kurbo patterns, adapted for Go idioms.

// QuadBez represents a quadratic Bezier curve with control points P0, P1, P2.
// P0 is the start point, P1 is the control point, P2 is the end point.
type QuadBez struct {
	P0, P1, P2 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	return Point{
		X: mt*mt*q.P0.X + 2*mt*t*q.P1.X + t*t*q.P2.X,
		Y: mt*mt*q.P0.Y + 2*mt*t*q.P1.Y + t*t*q.P2.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau's algorithm.
func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	p01 := q.P0.Lerp(q.P1, 0.5)
	p12 := q.P1.Lerp(q.P2, 0.5)
	mid := p01.Lerp(p12, 0.5)
	return QuadBez{P0: q.P0, P1: p01, P2: mid}, QuadBez{P0: mid, P1: p12, P2: q.P2}
}

// Raise returns the equivalent cubic curve.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		P0: q.P0,
		P1: q.P0.Lerp(q.P1, 2.0/3.0),
		P2: q.P2.Lerp(q.P1, 2.0/3.0),
		P3: q.P2,
	}
}

// CubicBez represents a cubic Bezier curve.
// P0 is the start point, P1 and P2 are control points, P3 is the end point.
type CubicBez struct {
	P0, P1, P2, P3 Point
}

// Eval evaluates the curve at parameter t (0 to 1).
func (c CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	mt2 := mt * mt
	t2 := t * t
	return Point{
		X: mt2*mt*c.P0.X + 3*mt2*t*c.P1.X + 3*mt*t2*c.P2.X + t2*t*c.P3.X,
		Y: mt2*mt*c.P0.Y + 3*mt2*t*c.P1.Y + 3*mt*t2*c.P2.Y + t2*t*c.P3.Y,
	}
}

// Subdivide splits the curve at t=0.5 using de Casteljau's algorithm.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	p01 := c.P0.Lerp(c.P1, 0.5)
	p12 := c.P1.Lerp(c.P2, 0.5)
	p23 := c.P2.Lerp(c.P3, 0.5)
	p012 := p01.Lerp(p12, 0.5)
	p123 := p12.Lerp(p23, 0.5)
	mid := p012.Lerp(p123, 0.5)
	return CubicBez{P0: c.P0, P1: p01, P2: p012, P3: mid},
		CubicBez{P0: mid, P1: p123, P2: p23, P3: c.P3}
}

// Flatten appends the end points of a polyline approximating the curve,
// excluding P0, to out. tolerance bounds the distance to the curve.
func (c CubicBez) Flatten(tolerance float64, out []Point) []Point {
	if tolerance <= 0 {
		tolerance = 0.01
	}
	return c.flatten(tolerance*tolerance*16, out, 0)
}

func (c CubicBez) flatten(limit float64, out []Point, depth int) []Point {
	if depth >= 16 || cubicFlatness(c) <= limit {
		return append(out, c.P3)
	}
	c1, c2 := c.Subdivide()
	out = c1.flatten(limit, out, depth+1)
	return c2.flatten(limit, out, depth+1)
}

// cubicFlatness returns the squared maximum deviation of the control
// points from the chord, scaled by 16.
func cubicFlatness(c CubicBez) float64 {
	ux := 3.0*c.P1.X - 2.0*c.P0.X - c.P3.X
	uy := 3.0*c.P1.Y - 2.0*c.P0.Y - c.P3.Y
	vx := 3.0*c.P2.X - c.P0.X - 2.0*c.P3.X
	vy := 3.0*c.P2.Y - c.P0.Y - 2.0*c.P3.Y
	return max(ux*ux+uy*uy, vx*vx+vy*vy)
}
