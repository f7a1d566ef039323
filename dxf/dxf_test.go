package dxf

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/Bersaelor/framecad"
)

func TestWriteClosedSquare(t *testing.T) {
	pts := []framecad.Point{framecad.Pt(0, 0), framecad.Pt(10, 0), framecad.Pt(10, 5), framecad.Pt(0, 5)}
	sq := framecad.NewModel()
	for i, key := range []string{"a", "b", "c", "d"} {
		sq.AddPath(key, framecad.Line{Origin: pts[i], End: pts[(i+1)%4]})
	}

	var buf bytes.Buffer
	if err := Write(&buf, framecad.NewModel().AddModel("frame", sq), framecad.DefaultTolerance); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"0\nSECTION\n2\nENTITIES\n",
		"0\nLWPOLYLINE\n8\nframe\n90\n4\n70\n1\n",
		"10\n10\n20\n5\n",
		"0\nENDSEC\n0\nEOF\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\n42\n") {
		t.Error("straight polyline should have no bulges")
	}
}

func TestWriteArcBulge(t *testing.T) {
	d := framecad.NewModel().
		AddPath("a", framecad.Arc{Center: framecad.Pt(0, 0), Radius: 1, StartAngle: 270, EndAngle: 90}).
		AddPath("b", framecad.Line{Origin: framecad.Pt(0, 1), End: framecad.Pt(0, -1)})

	var buf bytes.Buffer
	if err := Write(&buf, d, framecad.DefaultTolerance); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "8\n0\n90\n2\n70\n1\n") {
		t.Errorf("expected a closed two-vertex polyline on layer 0:\n%s", out)
	}
	bulges := values(out, "42")
	if len(bulges) != 1 || math.Abs(bulges[0]-1) > 1e-12 {
		t.Errorf("bulges = %v, want one half-circle bulge of 1", bulges)
	}
}

// values returns the numbers stored under group code in a DXF text.
func values(out, code string) []float64 {
	lines := strings.Split(out, "\n")
	var vs []float64
	for i := 0; i+1 < len(lines); i += 2 {
		if lines[i] == code {
			v, err := strconv.ParseFloat(lines[i+1], 64)
			if err == nil {
				vs = append(vs, v)
			}
		}
	}
	return vs
}

func TestWriteOpenChain(t *testing.T) {
	open := framecad.NewModel().
		AddPath("a", framecad.Line{Origin: framecad.Pt(0, 0), End: framecad.Pt(1, 0)}).
		AddPath("b", framecad.Line{Origin: framecad.Pt(1, 0), End: framecad.Pt(1, 1)})

	var buf bytes.Buffer
	if err := Write(&buf, open, framecad.DefaultTolerance); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "90\n3\n70\n0\n") {
		t.Errorf("expected an open three-vertex polyline:\n%s", buf.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	m := framecad.NewModel().AddPath("a", framecad.Line{Origin: framecad.Pt(0, 0), End: framecad.Pt(1, 0)})
	if err := Write(failingWriter{}, m, framecad.DefaultTolerance); err == nil {
		t.Error("Write() to a failing writer should return an error")
	}
}
