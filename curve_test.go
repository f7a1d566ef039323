package framecad

import "testing"

func TestQuadBezEval(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(5, 10), P2: Pt(10, 0)}
	tests := []struct {
		name   string
		t      float64
		expect Point
	}{
		{"t=0", 0, Pt(0, 0)},
		{"t=1", 1, Pt(10, 0)},
		{"t=0.5", 0.5, Pt(5, 5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPointNear(t, "Eval", q.Eval(tt.t), tt.expect, 1e-12)
		})
	}
}

func TestQuadBezSubdivide(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(5, 10), P2: Pt(10, 0)}
	q1, q2 := q.Subdivide()
	assertPointNear(t, "junction", q1.P2, q2.P0, 1e-12)
	for i := 0; i <= 10; i++ {
		tt := float64(i) / 10
		var sub Point
		if tt <= 0.5 {
			sub = q1.Eval(tt * 2)
		} else {
			sub = q2.Eval((tt - 0.5) * 2)
		}
		assertPointNear(t, "subdivided", sub, q.Eval(tt), 1e-9)
	}
}

func TestQuadBezRaise(t *testing.T) {
	q := QuadBez{P0: Pt(0, 0), P1: Pt(5, 10), P2: Pt(10, 0)}
	c := q.Raise()
	for i := 0; i <= 10; i++ {
		tt := float64(i) / 10
		assertPointNear(t, "raised", c.Eval(tt), q.Eval(tt), 1e-9)
	}
}

func TestCubicBezSubdivide(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 10), P2: Pt(10, 10), P3: Pt(10, 0)}
	c1, c2 := c.Subdivide()
	assertPointNear(t, "junction", c1.P3, c2.P0, 1e-12)
	assertPointNear(t, "midpoint", c1.P3, c.Eval(0.5), 1e-12)
}

func TestCubicBezFlatten(t *testing.T) {
	c := CubicBez{P0: Pt(0, 0), P1: Pt(0, 10), P2: Pt(10, 10), P3: Pt(10, 0)}
	pts := c.Flatten(0.01, nil)
	if len(pts) < 8 {
		t.Fatalf("Flatten() produced %d points, want a fine polyline", len(pts))
	}
	assertPointNear(t, "last point", pts[len(pts)-1], c.P3, 1e-12)
	if pts[0] == c.P0 {
		t.Error("Flatten() should not repeat the start point")
	}

	straight := CubicBez{P0: Pt(0, 0), P1: Pt(1, 0), P2: Pt(2, 0), P3: Pt(3, 0)}
	if got := straight.Flatten(0.01, nil); len(got) != 1 {
		t.Errorf("straight cubic flattened to %d points, want 1", len(got))
	}
}
