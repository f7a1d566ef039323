package frame

import (
	"log/slog"
	"math"

	"github.com/Bersaelor/framecad"
)

// DefaultSlopeTolerance is the largest |cross|/dot ratio (the tangent of
// the enclosed angle) at which two lines leaving a shared endpoint are
// taken to run in the same direction.
const DefaultSlopeTolerance = 0.5

// ConnectionRef points at one edge of a connection.
type ConnectionRef struct {
	Route   framecad.Route
	Segment framecad.Segment
	// AtOrigin is set when the shared endpoint of a colinear connection is
	// the line's Origin.
	AtOrigin bool
}

// Connection is a boundary edge shared by two parts. A refers to the first
// model passed to FindConnections, B to the second.
type Connection struct {
	A, B ConnectionRef
	// SameDirection is set when both lines run from Origin to End the same
	// way.
	SameDirection bool
	// Colinear marks connections created by splitting the longer of two
	// lines that leave a shared endpoint in the same direction.
	Colinear bool
}

// FindConnections returns the edges shared by a and b. Both models are
// originated. Lines that start together and run the same way but differ in
// length are made to match by splitting the longer one: its far piece is
// stored next to it under "<key>_add", which mutates a or b.
// Arcs never connect; their adjacency is only logged.
func FindConnections(a, b *framecad.Model, tol float64) []Connection {
	conns, _ := findConnections(a, b, tol, DefaultSlopeTolerance, framecad.Logger())
	return conns
}

// findConnections also returns the number of touching segment pairs that
// involve an arc.
func findConnections(a, b *framecad.Model, tol, slopeTol float64, log *slog.Logger) ([]Connection, int) {
	if a == nil || b == nil {
		return nil, 0
	}
	a.Originate()
	b.Originate()
	segsA, segsB := a.Segments(), b.Segments()

	var (
		out  []Connection
		arcs int
	)
	for _, ra := range segsA {
		for _, rb := range segsB {
			sa, _ := a.Segment(ra.Route)
			sb, _ := b.Segment(rb.Route)
			la, okA := sa.(framecad.Line)
			lb, okB := sb.(framecad.Line)
			if !okA || !okB {
				if touching(sa, sb, tol) {
					arcs++
					log.Debug("frame: arc adjacency not handled", "a", ra.Route, "b", rb.Route)
				}
				continue
			}
			if la.Length() < tol || lb.Length() < tol {
				continue
			}
			if c, ok := commonConnection(ra.Route, la, rb.Route, lb, tol); ok {
				out = append(out, c)
				continue
			}
			if c, ok := colinearConnection(a, ra.Route, la, b, rb.Route, lb, tol, slopeTol); ok {
				log.Debug("frame: split colinear edge", "a", ra.Route, "b", rb.Route)
				out = append(out, c)
			}
		}
	}
	return out, arcs
}

func commonConnection(ra framecad.Route, la framecad.Line, rb framecad.Route, lb framecad.Line, tol float64) (Connection, bool) {
	same := la.Origin.Distance(lb.Origin) + la.End.Distance(lb.End)
	opposite := la.Origin.Distance(lb.End) + la.End.Distance(lb.Origin)
	if math.Min(same, opposite) >= tol {
		return Connection{}, false
	}
	return Connection{
		A:             ConnectionRef{Route: ra, Segment: la},
		B:             ConnectionRef{Route: rb, Segment: lb},
		SameDirection: same <= opposite,
	}, true
}

// lineEnd is one endpoint of a line seen from that endpoint.
type lineEnd struct {
	at, far  framecad.Point
	atOrigin bool
}

func ends(l framecad.Line) [2]lineEnd {
	return [2]lineEnd{
		{at: l.Origin, far: l.End, atOrigin: true},
		{at: l.End, far: l.Origin},
	}
}

func colinearConnection(
	a *framecad.Model, ra framecad.Route, la framecad.Line,
	b *framecad.Model, rb framecad.Route, lb framecad.Line,
	tol, slopeTol float64,
) (Connection, bool) {
	var (
		ea, eb lineEnd
		shared int
	)
	for _, x := range ends(la) {
		for _, y := range ends(lb) {
			if x.at.Near(y.at, tol) {
				ea, eb = x, y
				shared++
			}
		}
	}
	if shared != 1 {
		return Connection{}, false
	}
	da, db := ea.far.Sub(ea.at), eb.far.Sub(eb.at)
	if !sameDirection(da, db, slopeTol) || math.Abs(da.Length()-db.Length()) <= tol {
		return Connection{}, false
	}

	c := Connection{Colinear: true}
	if da.Length() > db.Length() {
		near, ok := splitLine(a, ra, la, ea, eb.far, tol)
		if !ok {
			return Connection{}, false
		}
		la = near
	} else {
		near, ok := splitLine(b, rb, lb, eb, ea.far, tol)
		if !ok {
			return Connection{}, false
		}
		lb = near
	}
	c.A = ConnectionRef{Route: ra, Segment: la, AtOrigin: ea.atOrigin}
	c.B = ConnectionRef{Route: rb, Segment: lb, AtOrigin: eb.atOrigin}
	c.SameDirection = la.Direction().Dot(lb.Direction()) > 0
	return c, true
}

func sameDirection(u, v framecad.Point, slopeTol float64) bool {
	dot := u.Dot(v)
	if dot <= 0 {
		return false
	}
	return math.Abs(u.Cross(v))/dot < slopeTol
}

// splitLine cuts l, stored at route in m, where target projects onto it.
// The piece touching the shared end e keeps the route; the far piece is
// stored under "<key>_add". It returns the near piece.
func splitLine(m *framecad.Model, route framecad.Route, l framecad.Line, e lineEnd, target framecad.Point, tol float64) (framecad.Line, bool) {
	u := e.far.Sub(e.at).Normalize()
	t := target.Sub(e.at).Dot(u)
	if t <= tol || t >= l.Length()-tol {
		return l, false
	}
	p := e.at.Add(u.Mul(t))
	var near, far framecad.Line
	if e.atOrigin {
		near, far = framecad.Line{Origin: l.Origin, End: p}, framecad.Line{Origin: p, End: l.End}
	} else {
		near, far = framecad.Line{Origin: p, End: l.End}, framecad.Line{Origin: l.Origin, End: p}
	}
	m.SetSegment(route, near)
	m.SetSegment(route.Sibling(route.Key()+"_add"), far)
	return near, true
}

func touching(a, b framecad.Segment, tol float64) bool {
	a0, a1 := a.Endpoints()
	b0, b1 := b.Endpoints()
	for _, p := range [...]framecad.Point{a0, a1} {
		for _, q := range [...]framecad.Point{b0, b1} {
			if p.Near(q, tol) {
				return true
			}
		}
	}
	return false
}
