package frame

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/Bersaelor/framecad"
)

// ErrReconnect is returned when a connection cannot be restored because
// the moving edge does not sit between exactly two neighbours.
var ErrReconnect = errors.New("frame: reconnect failed")

// Reconnect stitches moving back onto fixed along conns, which must have
// been found with fixed as the first model.
//
// The connection with the highest fixed edge is the anchor: moving is
// translated so the anchor's shared endpoints coincide. Then each
// connection's moving edge is set onto its fixed edge and the two chain
// neighbours of that edge are stretched to stay attached. Neighbours are
// looked up in the current geometry for every connection. Connections
// between non-line segments are skipped.
//
// It returns the rigid translation applied to moving so dependent parts
// can follow. On error the edges processed so far stay modified.
func Reconnect(fixed, moving *framecad.Model, conns []Connection, tol float64) (framecad.Point, error) {
	var shift framecad.Point
	if fixed == nil || moving == nil {
		return shift, nil
	}
	fixed.Originate()
	moving.Originate()

	var order []Connection
	for _, c := range conns {
		_, okA := c.A.Segment.(framecad.Line)
		_, okB := c.B.Segment.(framecad.Line)
		if okA && okB {
			order = append(order, c)
		}
	}
	if len(order) == 0 {
		return shift, nil
	}
	slices.SortStableFunc(order, func(a, b Connection) int {
		return cmp.Compare(topOf(fixed, b), topOf(fixed, a))
	})

	anchor := order[0]
	f, okF := lineAt(fixed, anchor.A.Route)
	m, okM := lineAt(moving, anchor.B.Route)
	if !okF || !okM {
		return shift, fmt.Errorf("%w: anchor edge %s/%s not found", ErrReconnect, anchor.A.Route, anchor.B.Route)
	}
	from, to := sharedPoints(anchor, f, m)
	shift = to.Sub(from)
	if shift != (framecad.Point{}) {
		moving.Translate(shift.X, shift.Y).Originate()
	}

	for _, c := range order {
		if err := snapEdge(fixed, moving, c, tol); err != nil {
			return shift, err
		}
	}
	framecad.Logger().Debug("frame: reconnected", "connections", len(order), "shift", shift)
	return shift, nil
}

func topOf(m *framecad.Model, c Connection) float64 {
	s, ok := m.Segment(c.A.Route)
	if !ok {
		s = c.A.Segment
	}
	p0, p1 := s.Endpoints()
	return max(p0.Y, p1.Y)
}

func lineAt(m *framecad.Model, route framecad.Route) (framecad.Line, bool) {
	s, ok := m.Segment(route)
	if !ok {
		return framecad.Line{}, false
	}
	l, ok := s.(framecad.Line)
	return l, ok
}

// sharedPoints returns a point of the moving edge and the point of the
// fixed edge it must land on.
func sharedPoints(c Connection, f, m framecad.Line) (framecad.Point, framecad.Point) {
	if c.Colinear {
		fp, mp := f.End, m.End
		if c.A.AtOrigin {
			fp = f.Origin
		}
		if c.B.AtOrigin {
			mp = m.Origin
		}
		return mp, fp
	}
	return m.Origin, alignedTo(f, c.SameDirection).Origin
}

func alignedTo(f framecad.Line, same bool) framecad.Line {
	if same {
		return f
	}
	return f.Reversed()
}

// snapEdge sets the moving edge of c onto its fixed edge and drags the
// edge's two neighbours along.
func snapEdge(fixed, moving *framecad.Model, c Connection, tol float64) error {
	f, okF := lineAt(fixed, c.A.Route)
	m, okM := lineAt(moving, c.B.Route)
	if !okF || !okM {
		return fmt.Errorf("%w: edge %s/%s not found", ErrReconnect, c.A.Route, c.B.Route)
	}
	goal := alignedTo(f, c.SameDirection)

	links := neighbours(moving, c.B.Route, tol)
	if len(links) != 2 {
		return fmt.Errorf("%w: edge %s has %d neighbours", ErrReconnect, c.B.Route, len(links))
	}
	moving.SetSegment(c.B.Route, goal)
	for _, l := range links {
		s := moveEndpoint(l.Segment, m.Origin, goal.Origin, tol)
		s = moveEndpoint(s, m.End, goal.End, tol)
		moving.SetSegment(l.Route, s)
	}
	return nil
}

// neighbours returns the links before and after route in its chain.
func neighbours(m *framecad.Model, route framecad.Route, tol float64) []framecad.ChainLink {
	for _, chain := range framecad.FindChains(m, tol) {
		i := chain.Index(route)
		if i < 0 {
			continue
		}
		n := len(chain.Links)
		if chain.Endless {
			if n < 3 {
				return nil
			}
			return []framecad.ChainLink{chain.Links[(i+n-1)%n], chain.Links[(i+1)%n]}
		}
		var out []framecad.ChainLink
		if i > 0 {
			out = append(out, chain.Links[i-1])
		}
		if i < n-1 {
			out = append(out, chain.Links[i+1])
		}
		return out
	}
	return nil
}

// moveEndpoint moves the endpoint of s lying within tol of old to goal.
// Arcs are rebuilt through the kept endpoint and goal with their radius
// and large-arc choice unchanged.
func moveEndpoint(s framecad.Segment, old, goal framecad.Point, tol float64) framecad.Segment {
	if old == goal {
		return s
	}
	switch v := s.(type) {
	case framecad.Line:
		if v.Origin.Near(old, tol) {
			v.Origin = goal
		}
		if v.End.Near(old, tol) {
			v.End = goal
		}
		return v
	case framecad.Arc:
		p0, p1 := v.Endpoints()
		large := v.Sweep() > 180
		switch {
		case p0.Near(old, tol):
			return framecad.ArcFromEndpoints(goal, p1, v.Radius, large)
		case p1.Near(old, tol):
			return framecad.ArcFromEndpoints(p0, goal, v.Radius, large)
		}
		return v
	}
	return s
}
