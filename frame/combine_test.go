package frame

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Bersaelor/framecad"
	"github.com/Bersaelor/framecad/diag"
)

func TestCombine_MissingParts(t *testing.T) {
	for _, missing := range []string{Bridge, Shape, Pad} {
		t.Run(missing, func(t *testing.T) {
			parts := loadParts(t, "half_frame.svg")
			delete(parts, missing)

			res := Combine(parts, referenceSize, referenceSize)
			if !res.Model.IsEmpty() || len(res.Model.Models) != 0 {
				t.Errorf("model = %+v, want empty", res.Model)
			}
			want := []diag.Warning{{Term: "frameupload.dxfwarning.partsMissing", Severity: diag.Error}}
			if diff := cmp.Diff(want, res.Warnings); diff != "" {
				t.Errorf("warnings mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCombine_IdentityFullSide(t *testing.T) {
	parts := loadParts(t, "half_frame.svg")
	input, _ := parts.Bounds()

	res := Combine(parts, referenceSize, referenceSize, WithStep(StepFullSide))
	if res.Step != StepFullSide {
		t.Errorf("Step = %q, want %q", res.Step, StepFullSide)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", res.Warnings)
	}
	assertRectNear(t, "full side", mustBounds(t, "full side", res.Model), input, 0.01)

	side := res.Model.Models["frame"]
	chains := framecad.FindChains(side, framecad.DefaultTolerance)
	if len(chains) != 1 || !chains[0].Endless {
		t.Errorf("full side has %d chains, want one closed outline", len(chains))
	}
}

func TestCombine_Final(t *testing.T) {
	parts := loadParts(t, "half_frame.svg")
	input, _ := parts.Bounds()
	snapshot := parts.Clone()

	res := Combine(parts, referenceSize, referenceSize)
	if res.Step != StepFinal {
		t.Errorf("Step = %q, want %q", res.Step, StepFinal)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", res.Warnings)
	}
	frame := res.Model.Models["frame"]
	if frame.IsEmpty() {
		t.Fatal("final model has no frame")
	}
	b := mustBounds(t, "frame", frame)
	assertNear(t, "min x + max x", b.Min.X+b.Max.X, 0, 0.01)
	assertNear(t, "max x", b.Max.X, input.Max.X, 0.01)
	assertNear(t, "min y", b.Min.Y, input.Min.Y, 0.01)
	assertNear(t, "max y", b.Max.Y, input.Max.Y, 0.01)

	chains := framecad.FindChains(frame, framecad.DefaultTolerance)
	if len(chains) != 1 || !chains[0].Endless {
		t.Errorf("frame has %d chains, want one closed outline", len(chains))
	}
	if !frame.Contains(framecad.Pt(0, 0)) {
		t.Error("the bridge at the seam should be inside the frame")
	}

	for _, name := range snapshot.Names() {
		if diff := cmp.Diff(snapshot[name], parts[name]); diff != "" {
			t.Errorf("Combine modified input part %s (-before +after):\n%s", name, diff)
		}
	}
}

func TestCombine_Steps(t *testing.T) {
	parts := loadParts(t, "layered_frame.svg")
	tests := []struct {
		step     Step
		children []string
	}{
		{StepScaledParts, []string{Bridge, Hinge, Pad, Shape, ShapeHoles}},
		{StepChainedParts, []string{Bridge, Hinge, Pad, Shape}},
		{StepBridgeShape, []string{"frame", Hinge, Pad}},
		{StepBridgeShapeHinge, []string{"frame", Hinge, Pad}},
		{StepFullSide, []string{"frame", Hinge}},
		{StepFinal, []string{"frame", Hinge, "hinge_mirrored"}},
	}
	for _, tt := range tests {
		t.Run(string(tt.step), func(t *testing.T) {
			res := Combine(parts, referenceSize, referenceSize, WithStep(tt.step))
			if res.Step != tt.step {
				t.Errorf("Step = %q, want %q", res.Step, tt.step)
			}
			got := PartSet(res.Model.Models).Names()
			if diff := cmp.Diff(tt.children, got); diff != "" {
				t.Errorf("children mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCombine_HolesAndHinge(t *testing.T) {
	parts := loadParts(t, "layered_frame.svg")
	res := Combine(parts, referenceSize, referenceSize)
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v, want none", res.Warnings)
	}

	frame := res.Model.Models["frame"]
	chains := framecad.FindChains(frame, framecad.DefaultTolerance)
	if len(chains) != 3 {
		t.Errorf("frame has %d chains, want outline and two holes", len(chains))
	}
	if frame.Contains(framecad.Pt(34, -7)) || frame.Contains(framecad.Pt(-34, -7)) {
		t.Error("hole centres should be outside the frame")
	}

	hinge := mustBounds(t, "hinge", res.Model.Models[Hinge])
	mirrored := mustBounds(t, "hinge_mirrored", res.Model.Models["hinge_mirrored"])
	assertNear(t, "mirrored min x", mirrored.Min.X, -hinge.Max.X, 1e-9)
	assertNear(t, "mirrored max x", mirrored.Max.X, -hinge.Min.X, 1e-9)
}

func TestCombine_MergeHinge(t *testing.T) {
	parts := loadParts(t, "layered_frame.svg")
	res := Combine(parts, referenceSize, referenceSize, WithMergeHinge(true))
	for _, w := range res.Warnings {
		if w.Severity == diag.Error {
			t.Errorf("unexpected error warning %+v", w)
		}
	}
	if _, ok := res.Model.Models[Hinge]; ok {
		t.Error("merged hinge should not be returned separately")
	}
	b := mustBounds(t, "frame", res.Model.Models["frame"])
	assertNear(t, "max x", b.Max.X, 63, 0.01)
	assertNear(t, "min x", b.Min.X, -63, 0.01)
}

func TestCombine_ConnectionMissing(t *testing.T) {
	parts := loadParts(t, "half_frame.svg")
	parts[Pad].Translate(-3, 0).Originate()

	res := Combine(parts, referenceSize, referenceSize)
	want := []diag.Warning{{
		Term:     diag.TermConnectionMissing,
		Severity: diag.Error,
		Data:     map[string]string{"part1": Shape, "part2": Pad},
	}}
	if diff := cmp.Diff(want, res.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
	if res.Model.Models["frame"].IsEmpty() {
		t.Error("pipeline should carry on without the pad joint")
	}
}

func TestCombine_ReconnectFailed(t *testing.T) {
	parts := loadParts(t, "open_pad.svg")
	target := SizeParameters{BridgeSize: 22, GlasWidth: 54, GlasHeight: 44}

	res := Combine(parts, target, referenceSize)
	want := []diag.Warning{{
		Term:     diag.TermReconnectFailed,
		Severity: diag.Error,
		Data:     map[string]string{"part1": Shape, "part2": Pad},
	}}
	if diff := cmp.Diff(want, res.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
	if res.Model.Models["frame"].IsEmpty() {
		t.Error("pipeline should carry on after a failed reconnect")
	}
}

func TestCombine_ArcOnlyJoint(t *testing.T) {
	parts := loadParts(t, "half_frame.svg")
	// A round pad whose two half circles meet the shape only at the
	// corners of its inner edge.
	center := framecad.Pt(9, -13)
	parts[Pad] = framecad.NewModel().
		AddPath("left", framecad.Arc{Center: center, Radius: 4, StartAngle: 90, EndAngle: 270}).
		AddPath("right", framecad.Arc{Center: center, Radius: 4, StartAngle: 270, EndAngle: 90})

	res := Combine(parts, referenceSize, referenceSize)
	data := map[string]string{"part1": Shape, "part2": Pad}
	want := []diag.Warning{
		{Term: diag.TermConnectionMissing, Severity: diag.Error, Data: data},
		{Term: diag.TermArcConnection, Severity: diag.Info, Data: data},
	}
	if len(res.Warnings) < len(want) {
		t.Fatalf("warnings = %v, want at least %v", res.Warnings, want)
	}
	if diff := cmp.Diff(want, res.Warnings[:len(want)]); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestCombine_NoSeam(t *testing.T) {
	parts := loadParts(t, "half_frame.svg").Translate(2, 0)
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	res := Combine(parts, referenceSize, referenceSize, WithLogger(log))
	if len(res.Warnings) != 0 {
		t.Errorf("warnings = %v, want none for a side clear of the seam", res.Warnings)
	}
	if !strings.Contains(buf.String(), "no seam between halves") {
		t.Errorf("missing seam should be logged, got: %s", buf.String())
	}
	if res.Model.Models["frame"].IsEmpty() {
		t.Error("both halves should still be returned")
	}
}

func TestCombine_Logs(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	Combine(loadParts(t, "half_frame.svg"), referenceSize, referenceSize, WithLogger(log))
	if !strings.Contains(buf.String(), "frame: combined") {
		t.Errorf("expected completion to be logged, got: %s", buf.String())
	}
}
