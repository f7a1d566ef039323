package frame

import (
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/Bersaelor/framecad"
)

// referenceSize is the size the testdata drawings are drafted at.
var referenceSize = SizeParameters{BridgeSize: 18, GlasWidth: 50, GlasHeight: 40}

// rect returns a counter-clockwise rectangle keyed "0".."3", starting with
// the bottom edge.
func rect(x, y, w, h float64) *framecad.Model {
	pts := []framecad.Point{
		framecad.Pt(x, y), framecad.Pt(x+w, y), framecad.Pt(x+w, y+h), framecad.Pt(x, y+h),
	}
	m := framecad.NewModel()
	for i := range pts {
		m.AddPath(strconv.Itoa(i), framecad.Line{Origin: pts[i], End: pts[(i+1)%len(pts)]})
	}
	return m
}

func loadParts(t *testing.T, name string, opts ...Option) PartSet {
	t.Helper()
	f, err := os.Open(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	parts, warnings, err := ExtractSVG(f, DefaultColorMap(), opts...)
	if err != nil {
		t.Fatalf("ExtractSVG(%s): %v", name, err)
	}
	if len(warnings) > 0 {
		t.Fatalf("ExtractSVG(%s) warnings = %v", name, warnings)
	}
	return parts
}

func mustBounds(t *testing.T, name string, m *framecad.Model) framecad.Rect {
	t.Helper()
	b, ok := m.Bounds()
	if !ok {
		t.Fatalf("%s has no geometry", name)
	}
	return b
}

func assertRectNear(t *testing.T, name string, got, want framecad.Rect, tol float64) {
	t.Helper()
	if got.Min.Distance(want.Min) > tol || got.Max.Distance(want.Max) > tol {
		t.Errorf("%s = %v, want %v (tolerance %v)", name, got, want, tol)
	}
}

func assertNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (tolerance %v)", name, got, want, tol)
	}
}

func box(x0, y0, x1, y1 float64) framecad.Rect {
	return framecad.Rect{Min: framecad.Pt(x0, y0), Max: framecad.Pt(x1, y1)}
}
