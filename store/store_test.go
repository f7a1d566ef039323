package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Bersaelor/framecad"
	"github.com/Bersaelor/framecad/diag"
	"github.com/Bersaelor/framecad/frame"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "parts.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleParts() frame.PartSet {
	bridge := framecad.NewModel().
		AddPath("0", framecad.Line{Origin: framecad.Pt(0, -3), End: framecad.Pt(9, -3)}).
		AddPath("1", framecad.Arc{Center: framecad.Pt(9, 0), Radius: 3, StartAngle: 270, EndAngle: 90})
	holes := framecad.NewModel().AddModel("hole-0", framecad.NewModel().
		AddPath("0", framecad.Arc{Center: framecad.Pt(30, 0), Radius: 1, StartAngle: 0, EndAngle: 120}))
	return frame.PartSet{frame.Bridge: bridge, frame.ShapeHoles: holes}
}

func TestSaveLoad(t *testing.T) {
	s := openTemp(t)
	e := &Entry{
		Name:      "model-a",
		Reference: frame.SizeParameters{BridgeSize: 18, GlasWidth: 50, GlasHeight: 40},
		Parts:     sampleParts(),
		Warnings:  []diag.Warning{{Term: diag.TermUnassignedCircle, Severity: diag.Info, Data: map[string]string{"part": "pad"}}},
	}
	if err := s.Save(e); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if e.ID == "" || e.Created.IsZero() {
		t.Fatalf("Save() did not fill id and time: %+v", e)
	}

	got, err := s.Load(e.ID)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(e, got); diff != "" {
		t.Errorf("Load() mismatch (-saved +loaded):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	s := openTemp(t)
	if _, err := s.Load("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load() error = %v, want ErrNotFound", err)
	}
	if err := s.Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestListAndDelete(t *testing.T) {
	s := openTemp(t)
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"b", "a", "c"} {
		e := &Entry{ID: id, Created: base.Add(time.Duration(i) * time.Hour), Parts: sampleParts()}
		if err := s.Save(e); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Delete("a"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	list, err := s.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []Summary{
		{ID: "b", Created: base, Parts: []string{frame.Bridge, frame.ShapeHoles}},
		{ID: "c", Created: base.Add(2 * time.Hour), Parts: []string{frame.Bridge, frame.ShapeHoles}},
	}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.db")
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Save(&Entry{ID: "keep", Parts: sampleParts()}); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if _, err := s.Load("keep"); err != nil {
		t.Errorf("Load() after reopen error = %v", err)
	}
}
