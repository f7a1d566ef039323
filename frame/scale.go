package frame

import (
	"math"

	"github.com/Bersaelor/framecad"
)

// Inflation enlarges the shape slightly beyond its target size so its
// boundary never lies exactly on a neighbouring part's boundary during the
// boolean union.
const Inflation = 1.0001

// MinPadOffset is the smallest x the pad's left edge may be moved to.
// The floor is min(MinPadOffset, drafted left edge): scaling never pushes a
// pad drafted left of MinPadOffset further left, and never pulls it right.
const MinPadOffset = 1.0

// Factors are the scale factors from reference to target size.
type Factors struct {
	Bridge     float64
	Horizontal float64
	Vertical   float64
}

// ComputeFactors derives the factors for a half bridge of the given
// drafted width. Zero reference dimensions leave their factor at 1.
func ComputeFactors(bridgeWidth float64, ref, target SizeParameters) Factors {
	ratio := func(t, r float64) float64 {
		if r == 0 {
			return 1
		}
		return t / r
	}
	f := Factors{
		Bridge:     1,
		Horizontal: ratio(target.GlasWidth, ref.GlasWidth),
		Vertical:   ratio(target.GlasHeight, ref.GlasHeight),
	}
	if bridgeWidth > 0 {
		f.Bridge = 1 - (ref.BridgeSize-target.BridgeSize)/(2*bridgeWidth)
	}
	return f
}

// Joints holds the connections between adjacent reference parts. In each
// connection A is the first named part.
type Joints struct {
	BridgeShape []Connection
	ShapePad    []Connection
	ShapeHinge  []Connection
}

// Displacements records the rigid translation applied to each part that
// is moved rather than distorted.
type Displacements map[string]framecad.Point

// ScaleParts returns a scaled copy of parts for the target size.
//
// The bridge is distorted about (its left edge, y=0). The shape is
// distorted about (its left edge, y=0) by the glass factors times
// Inflation and then shifted by the change in bridge width, which keeps it
// attached to the bridge. The pad and a merged hinge follow the shape by
// the displacement of their joint with it; an unmerged hinge follows the
// shape's right edge. Holes move with the displacement of their centres;
// the lens is distorted with the shape.
func ScaleParts(parts PartSet, joints Joints, ref, target SizeParameters, opts ...Option) (PartSet, Displacements) {
	o := newOptions(opts)
	out := parts.Clone().Originate()
	disp := Displacements{}

	bb, hasBridge := out[Bridge].Bounds()
	f := ComputeFactors(bb.Width(), ref, target)
	if hasBridge {
		out[Bridge].Transform(framecad.ScaleAbout(framecad.Pt(bb.Min.X, 0), f.Bridge, f.Vertical))
	}

	shapeT := framecad.Identity()
	sb, hasShape := out[Shape].Bounds()
	if hasShape {
		shift := bb.Width() * (f.Bridge - 1)
		shapeT = framecad.Translate(shift, 0).Multiply(
			framecad.ScaleAbout(framecad.Pt(sb.Min.X, 0), f.Horizontal*Inflation, f.Vertical*Inflation))
		out[Shape].Transform(shapeT)
		moveHoles(out[ShapeHoles], shapeT)
		if lens := out[Lens]; lens != nil {
			lens.Transform(shapeT)
		}
	}

	if pad := out[Pad]; pad != nil {
		pb, _ := pad.Bounds()
		anchor := jointAnchor(joints.ShapePad, pb, sb)
		d := shapeT.TransformPoint(anchor).Sub(anchor)
		if floor := math.Min(MinPadOffset, pb.Min.X); pb.Min.X+d.X < floor {
			d.X = floor - pb.Min.X
		}
		pad.Translate(d.X, d.Y).Originate()
		disp[Pad] = d
	}

	if hinge := out[Hinge]; hinge != nil {
		hb, _ := hinge.Bounds()
		var d framecad.Point
		if o.mergeHinge {
			anchor := jointAnchor(joints.ShapeHinge, hb, sb)
			d = shapeT.TransformPoint(anchor).Sub(anchor)
		} else {
			c := hb.Center()
			right := shapeT.TransformPoint(framecad.Pt(sb.Max.X, c.Y))
			d = framecad.Pt(right.X-sb.Max.X, right.Y-c.Y)
		}
		hinge.Translate(d.X, d.Y).Originate()
		moveHoles(out[HingeHoles], framecad.Translate(d.X, d.Y))
		disp[Hinge] = d
	}

	o.log().Debug("frame: parts scaled",
		"bridge", f.Bridge, "horizontal", f.Horizontal, "vertical", f.Vertical)
	return out, disp
}

// jointAnchor returns the point a part is pinned to when it follows the
// shape: the mean midpoint of its connected edges, else the centre of its
// overlap with the shape's bounds, else its centre clamped into them.
func jointAnchor(conns []Connection, part, shape framecad.Rect) framecad.Point {
	if len(conns) > 0 {
		var sum framecad.Point
		for _, c := range conns {
			p0, p1 := c.B.Segment.Endpoints()
			sum = sum.Add(p0.Lerp(p1, 0.5))
		}
		return sum.Mul(1 / float64(len(conns)))
	}
	if overlap, ok := part.Intersect(shape); ok {
		return overlap.Center()
	}
	return shape.Clamp(part.Center())
}

// moveHoles translates every hole by the displacement mat gives its
// centre, so holes track their part without being distorted.
func moveHoles(holes *framecad.Model, mat framecad.Matrix) {
	if holes == nil {
		return
	}
	move := func(m *framecad.Model) {
		b, ok := m.Bounds()
		if !ok {
			return
		}
		d := mat.TransformPoint(b.Center()).Sub(b.Center())
		m.Translate(d.X, d.Y).Originate()
	}
	if len(holes.Paths) > 0 {
		move(holes)
		return
	}
	for _, child := range holes.Models {
		move(child)
	}
}
