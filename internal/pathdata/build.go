package pathdata

import (
	"math"

	"github.com/Bersaelor/framecad"
)

// maxArcSweep bounds the sweep of emitted arcs, so a circle drawn as two
// half arcs still forms a chain of more than two links.
const maxArcSweep = 120.0

// Segments parses d and converts it to lines and arcs. Bezier curves and
// elliptical arcs are flattened to within tol; circular arcs stay exact.
// Coordinates are returned as written (SVG y-down).
func Segments(d string, tol float64) ([]framecad.Segment, error) {
	p, err := Parse(d)
	if err != nil {
		return nil, err
	}
	return p.Segments(tol), nil
}

// Segments converts the parsed path to lines and arcs.
func (p *Path) Segments(tol float64) []framecad.Segment {
	b := &builder{tol: tol}
	for _, c := range p.Commands {
		b.run(c)
	}
	return b.segs
}

type builder struct {
	tol        float64
	cur, start framecad.Point
	// Second control point of the previous C/S or control point of the
	// previous Q/T, for reflection by S and T.
	ctrl   framecad.Point
	prevOp byte
	segs   []framecad.Segment
}

func (b *builder) run(c *Command) {
	op := c.Op[0] | 0x20
	n := arity(op)
	if n == 0 {
		b.lineTo(b.start)
		b.cur = b.start
		b.prevOp = op
		return
	}
	for i := 0; i+n <= len(c.Args); i += n {
		b.step(op, c.Relative(), c.Args[i:i+n], i == 0)
	}
}

func (b *builder) abs(rel bool, x, y float64) framecad.Point {
	if rel {
		return b.cur.Add(framecad.Pt(x, y))
	}
	return framecad.Pt(x, y)
}

func (b *builder) step(op byte, rel bool, a []float64, first bool) {
	switch op {
	case 'm':
		p := b.abs(rel, a[0], a[1])
		if first {
			b.cur, b.start = p, p
		} else {
			// Extra pairs after a moveto are implicit linetos.
			b.lineTo(p)
			op = 'l'
		}
	case 'l':
		b.lineTo(b.abs(rel, a[0], a[1]))
	case 'h':
		x := a[0]
		if rel {
			x += b.cur.X
		}
		b.lineTo(framecad.Pt(x, b.cur.Y))
	case 'v':
		y := a[0]
		if rel {
			y += b.cur.Y
		}
		b.lineTo(framecad.Pt(b.cur.X, y))
	case 'c':
		b.cubicTo(b.abs(rel, a[0], a[1]), b.abs(rel, a[2], a[3]), b.abs(rel, a[4], a[5]))
	case 's':
		c1 := b.cur
		if b.prevOp == 'c' || b.prevOp == 's' {
			c1 = b.cur.Mul(2).Sub(b.ctrl)
		}
		b.cubicTo(c1, b.abs(rel, a[0], a[1]), b.abs(rel, a[2], a[3]))
	case 'q':
		b.quadTo(b.abs(rel, a[0], a[1]), b.abs(rel, a[2], a[3]))
	case 't':
		c := b.cur
		if b.prevOp == 'q' || b.prevOp == 't' {
			c = b.cur.Mul(2).Sub(b.ctrl)
		}
		b.quadTo(c, b.abs(rel, a[0], a[1]))
	case 'a':
		b.arcTo(a[0], a[1], a[2], a[3] != 0, a[4] != 0, b.abs(rel, a[5], a[6]))
	}
	b.prevOp = op
}

func (b *builder) lineTo(p framecad.Point) {
	if p != b.cur {
		b.segs = append(b.segs, framecad.Line{Origin: b.cur, End: p})
	}
	b.cur = p
}

func (b *builder) cubicTo(c1, c2, p framecad.Point) {
	curve := framecad.CubicBez{P0: b.cur, P1: c1, P2: c2, P3: p}
	for _, q := range curve.Flatten(b.tol, nil) {
		b.lineTo(q)
	}
	b.cur, b.ctrl = p, c2
}

func (b *builder) quadTo(c, p framecad.Point) {
	curve := framecad.QuadBez{P0: b.cur, P1: c, P2: p}.Raise()
	for _, q := range curve.Flatten(b.tol, nil) {
		b.lineTo(q)
	}
	b.cur, b.ctrl = p, c
}

// arcTo converts an endpoint-parameterized elliptical arc to center form.
func (b *builder) arcTo(rx, ry, rotation float64, large, sweep bool, p framecad.Point) {
	from := b.cur
	if from == p {
		return
	}
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		b.lineTo(p)
		return
	}

	phi := rotation * math.Pi / 180
	sin, cos := math.Sincos(phi)
	dx, dy := (from.X-p.X)/2, (from.Y-p.Y)/2
	x1 := cos*dx + sin*dy
	y1 := -sin*dx + cos*dy

	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	coef := math.Sqrt(math.Max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx
	center := framecad.Pt(
		cos*cx1-sin*cy1+(from.X+p.X)/2,
		sin*cx1+cos*cy1+(from.Y+p.Y)/2,
	)

	u := framecad.Pt((x1-cx1)/rx, (y1-cy1)/ry)
	v := framecad.Pt((-x1-cx1)/rx, (-y1-cy1)/ry)
	theta := math.Atan2(u.Y, u.X)
	delta := math.Atan2(u.Cross(v), u.Dot(v))
	switch {
	case !sweep && delta > 0:
		delta -= 2 * math.Pi
	case sweep && delta < 0:
		delta += 2 * math.Pi
	}

	if math.Abs(rx-ry) <= 1e-9*math.Max(rx, ry) {
		b.circularArc(center, rx, from, delta*180/math.Pi)
		b.cur = p
		return
	}

	// Elliptical: sample with a step whose sagitta stays within tol.
	r := math.Max(rx, ry)
	step := math.Pi / 8
	if b.tol > 0 && b.tol < r {
		step = math.Min(step, 2*math.Acos(1-b.tol/r))
	}
	n := int(math.Ceil(math.Abs(delta) / step))
	for i := 1; i < n; i++ {
		t := theta + delta*float64(i)/float64(n)
		ex, ey := rx*math.Cos(t), ry*math.Sin(t)
		b.lineTo(framecad.Pt(center.X+cos*ex-sin*ey, center.Y+sin*ex+cos*ey))
	}
	b.lineTo(p)
}

// circularArc emits the arc starting at from and sweeping sweepDeg
// (negative is clockwise in the path's coordinate system) as arcs of at
// most maxArcSweep degrees.
func (b *builder) circularArc(center framecad.Point, radius float64, from framecad.Point, sweepDeg float64) {
	start := math.Atan2(from.Y-center.Y, from.X-center.X) * 180 / math.Pi
	lo, hi := start, start+sweepDeg
	if sweepDeg < 0 {
		lo, hi = hi, lo
	}
	n := int(math.Ceil((hi - lo) / maxArcSweep))
	piece := (hi - lo) / float64(n)
	for i := range n {
		b.segs = append(b.segs, framecad.Arc{
			Center:     center,
			Radius:     radius,
			StartAngle: normalize(lo + piece*float64(i)),
			EndAngle:   normalize(lo + piece*float64(i+1)),
		})
	}
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
