package framecad

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestModelJSONRoundTrip(t *testing.T) {
	m := NewModel().
		AddPath("edge", Line{Origin: Pt(0, 0), End: Pt(3, 4)}).
		AddModel("hole", circleModel(Pt(1, 1), 0.5))
	m.Origin = Pt(2, 0)

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var got Model
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.Origin != m.Origin || got.PathCount() != m.PathCount() {
		t.Fatalf("round trip = %+v", got)
	}
	for _, rs := range m.Segments() {
		s, ok := got.Segment(rs.Route)
		if !ok {
			t.Fatalf("missing %v", rs.Route)
		}
		orig, _ := m.Segment(rs.Route)
		if !SameSegment(s, orig, 1e-12) {
			t.Errorf("%v = %v, want %v", rs.Route, s, orig)
		}
	}
}

func TestModelJSONRejectsUnknownType(t *testing.T) {
	var m Model
	err := json.Unmarshal([]byte(`{"paths":{"x":{"type":"bezier","origin":[0,0]}}}`), &m)
	if err == nil || !strings.Contains(err.Error(), "bezier") {
		t.Errorf("Unmarshal() error = %v, want unknown type", err)
	}
}
