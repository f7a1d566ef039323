package framecad

import (
	"math"
	"strconv"
	"testing"
)

// rectModel returns a counter-clockwise rectangle keyed "0".."3".
func rectModel(x, y, w, h float64) *Model {
	pts := []Point{Pt(x, y), Pt(x+w, y), Pt(x+w, y+h), Pt(x, y+h)}
	m := NewModel()
	for i := range pts {
		m.AddPath(strconv.Itoa(i), Line{Origin: pts[i], End: pts[(i+1)%len(pts)]})
	}
	return m
}

func circleModel(c Point, r float64) *Model {
	m := NewModel()
	for i, a := range Circle(c, r) {
		m.AddPath(strconv.Itoa(i), a)
	}
	return m
}

func assertNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tolerance %v)", name, got, want, tol)
	}
}

func assertPointNear(t *testing.T, name string, got, want Point, tol float64) {
	t.Helper()
	if got.Distance(want) > tol {
		t.Errorf("%s = %v, want %v (tolerance %v)", name, got, want, tol)
	}
}

func totalLength(m *Model) float64 {
	var n float64
	for _, rs := range m.Segments() {
		n += rs.Segment.Length()
	}
	return n
}
