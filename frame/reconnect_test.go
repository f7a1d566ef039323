package frame

import (
	"errors"
	"testing"

	"github.com/Bersaelor/framecad"
)

func TestReconnect_StretchesNeighbours(t *testing.T) {
	fixed := rect(0, 0, 10, 10)
	moving := rect(10, 0, 5, 10)
	conns := FindConnections(fixed, moving, 0.01)
	if len(conns) != 1 {
		t.Fatalf("setup: %d connections, want 1", len(conns))
	}

	moving.DistortAbout(framecad.Pt(10, 0), 1, 1.2).Translate(0.3, 0.5).Originate()

	shift, err := Reconnect(fixed, moving, conns, 0.01)
	if err != nil {
		t.Fatalf("Reconnect() error = %v", err)
	}
	if shift.Distance(framecad.Pt(-0.3, -2.5)) > 1e-9 {
		t.Errorf("shift = %v, want (-0.3, -2.5)", shift)
	}

	want := map[string]framecad.Line{
		"3": {Origin: framecad.Pt(10, 10), End: framecad.Pt(10, 0)},
		"0": {Origin: framecad.Pt(10, 0), End: framecad.Pt(15, -2)},
		"2": {Origin: framecad.Pt(15, 10), End: framecad.Pt(10, 10)},
		"1": {Origin: framecad.Pt(15, -2), End: framecad.Pt(15, 10)},
	}
	for key, w := range want {
		got, ok := moving.Paths[key].(framecad.Line)
		if !ok {
			t.Fatalf("moving[%s] = %T, want Line", key, moving.Paths[key])
		}
		if got.Origin.Distance(w.Origin) > 1e-9 || got.End.Distance(w.End) > 1e-9 {
			t.Errorf("moving[%s] = %v-%v, want %v-%v", key, got.Origin, got.End, w.Origin, w.End)
		}
	}

	chains := framecad.FindChains(moving, 0.01)
	if len(chains) != 1 || !chains[0].Endless {
		t.Errorf("moving should stay one closed chain, got %d chains", len(chains))
	}
}

func TestReconnect_Colinear(t *testing.T) {
	// The moving square's left edge runs along the lower part of the fixed
	// square's right edge.
	fixed := rect(0, 0, 10, 10)
	moving := rect(10, 0, 4, 4)
	conns := FindConnections(fixed, moving, 0.01)
	var colinear int
	for _, c := range conns {
		if c.Colinear {
			colinear++
		}
	}
	if colinear != 1 {
		t.Fatalf("setup: %d colinear connections, want 1 in %+v", colinear, conns)
	}

	moving.Translate(1, 1).Originate()
	shift, err := Reconnect(fixed, moving, conns, 0.01)
	if err != nil {
		t.Fatalf("Reconnect() error = %v", err)
	}
	if shift.Distance(framecad.Pt(-1, -1)) > 1e-9 {
		t.Errorf("shift = %v, want (-1, -1)", shift)
	}
	b, _ := moving.Bounds()
	assertRectNear(t, "moving", b, box(10, 0, 14, 4), 1e-9)
}

func TestReconnect_ArcNeighbour(t *testing.T) {
	fixed := rect(0, 0, 10, 10)
	moving := framecad.NewModel().
		AddPath("edge", framecad.Line{Origin: framecad.Pt(10, 10), End: framecad.Pt(10, 0)}).
		AddPath("round", framecad.Arc{Center: framecad.Pt(15, 0), Radius: 5, StartAngle: 90, EndAngle: 180}).
		AddPath("right", framecad.Line{Origin: framecad.Pt(15, 5), End: framecad.Pt(15, 10)}).
		AddPath("top", framecad.Line{Origin: framecad.Pt(15, 10), End: framecad.Pt(10, 10)})
	conns := FindConnections(fixed, moving, 0.01)
	if len(conns) != 1 {
		t.Fatalf("setup: %d connections, want 1", len(conns))
	}

	moving.DistortAbout(framecad.Pt(10, 10), 1, 0.9)
	if _, err := Reconnect(fixed, moving, conns, 0.01); err != nil {
		t.Fatalf("Reconnect() error = %v", err)
	}
	round, ok := moving.Paths["round"].(framecad.Arc)
	if !ok {
		t.Fatalf("round = %T, want Arc", moving.Paths["round"])
	}
	p0, p1 := round.Endpoints()
	if p0.Distance(framecad.Pt(15, 5.5)) > 1e-9 || p1.Distance(framecad.Pt(10, 0)) > 1e-9 {
		t.Errorf("round endpoints = %v, %v; want (15,5.5), (10,0)", p0, p1)
	}
	if chains := framecad.FindChains(moving, 0.01); len(chains) != 1 || !chains[0].Endless {
		t.Errorf("moving should stay one closed chain, got %d chains", len(chains))
	}
}

func TestReconnect_TooFewNeighbours(t *testing.T) {
	fixed := rect(0, 0, 10, 10)
	moving := framecad.NewModel().
		AddPath("0", framecad.Line{Origin: framecad.Pt(10, 10), End: framecad.Pt(10, 0)})
	conns := FindConnections(fixed, moving, 0.01)
	if len(conns) != 1 {
		t.Fatalf("setup: %d connections, want 1", len(conns))
	}
	_, err := Reconnect(fixed, moving, conns, 0.01)
	if !errors.Is(err, ErrReconnect) {
		t.Errorf("Reconnect() error = %v, want ErrReconnect", err)
	}
}

func TestReconnect_SkipsArcConnections(t *testing.T) {
	arc := framecad.Arc{Center: framecad.Pt(0, 0), Radius: 1, StartAngle: 0, EndAngle: 90}
	conns := []Connection{{
		A: ConnectionRef{Route: framecad.Route{"a"}, Segment: arc},
		B: ConnectionRef{Route: framecad.Route{"a"}, Segment: arc},
	}}
	fixed := framecad.NewModel().AddPath("a", arc)
	moving := framecad.NewModel().AddPath("a", arc)
	shift, err := Reconnect(fixed, moving, conns, 0.01)
	if err != nil || shift != (framecad.Point{}) {
		t.Errorf("Reconnect() = %v, %v; want zero shift and no error", shift, err)
	}
}

func TestMoveEndpoint(t *testing.T) {
	arc := framecad.Arc{Center: framecad.Pt(0, 0), Radius: 5, StartAngle: 0, EndAngle: 90}
	got, ok := moveEndpoint(arc, framecad.Pt(5, 0), framecad.Pt(4, 3), 0.01).(framecad.Arc)
	if !ok {
		t.Fatal("moveEndpoint() on an arc should return an Arc")
	}
	p0, p1 := got.Endpoints()
	if p0.Distance(framecad.Pt(4, 3)) > 1e-9 || p1.Distance(framecad.Pt(0, 5)) > 1e-9 {
		t.Errorf("endpoints = %v, %v; want (4,3), (0,5)", p0, p1)
	}
	assertNear(t, "radius", got.Radius, 5, 1e-12)
	if got.Center.Distance(framecad.Pt(0, 0)) > 1e-9 {
		t.Errorf("center = %v, want origin", got.Center)
	}

	line := framecad.Line{Origin: framecad.Pt(0, 0), End: framecad.Pt(1, 0)}
	if s := moveEndpoint(line, framecad.Pt(5, 5), framecad.Pt(6, 6), 0.01); s != line {
		t.Errorf("moveEndpoint() with a far point changed the line: %v", s)
	}
}
