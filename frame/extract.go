package frame

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/Bersaelor/framecad"
	"github.com/Bersaelor/framecad/diag"
	"github.com/Bersaelor/framecad/drawing"
	"github.com/Bersaelor/framecad/internal/pathdata"
)

// ExtractSVG decodes an SVG drawing and extracts its parts. A drawing
// without groups yields an empty PartSet and a noGeometry warning; other
// decoding failures are returned as errors.
func ExtractSVG(r io.Reader, colorMap map[string]string, opts ...Option) (PartSet, []diag.Warning, error) {
	doc, err := drawing.Decode(r)
	if errors.Is(err, drawing.ErrNoGroups) {
		parts, warnings := MakeModelParts(colorMap, &drawing.Document{}, opts...)
		return parts, warnings, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("frame: extract: %w", err)
	}
	parts, warnings := MakeModelParts(colorMap, doc, opts...)
	return parts, warnings, nil
}

// MakeModelParts builds one Model per part of colorMap from the paths and
// circles of doc whose stroke matches the part's colour.
//
// Geometry is flipped from the drawing's y-down axis, simplified and
// cleaned of chain artifacts. Circles become holes of the shape and hinge
// (one child model per circle under "<part>_holes"); circles of other
// parts are dropped. Finally the PartSet is oriented so the shape lies to
// the right of the bridge, the bridge's left edge is at x=0 and its
// vertical centre at y=0.
func MakeModelParts(colorMap map[string]string, doc *drawing.Document, opts ...Option) (PartSet, []diag.Warning) {
	o := newOptions(opts)
	var c diag.Collector
	parts := PartSet{}

	if doc == nil || len(doc.Groups) == 0 {
		o.log().Warn("frame: drawing has no groups")
		c.Add(diag.Error, diag.TermNoGeometry, nil)
		return parts, c.Warnings()
	}

	paths, circles := doc.Paths(), doc.Circles()
	for _, name := range slices.Sorted(maps.Keys(colorMap)) {
		want, err := drawing.ParseColor(colorMap[name])
		if err != nil {
			o.log().Warn("frame: bad part colour", "part", name, "color", colorMap[name], "err", err)
			c.Add(diag.Warn, diag.TermInvalidColor, map[string]string{"part": name, "color": colorMap[name]})
			continue
		}

		raw := framecad.NewModel()
		for _, p := range paths {
			if !strokeIs(p.Stroke, want) {
				continue
			}
			segs, err := pathdata.Segments(p.D, o.tol)
			if err != nil {
				o.log().Warn("frame: skipping malformed path", "part", name, "id", p.ID, "err", err)
				c.Add(diag.Warn, diag.TermMalformedPath, map[string]string{"part": name, "id": p.ID})
				continue
			}
			for _, s := range segs {
				raw.AddPath(strconv.Itoa(len(raw.Paths)), s)
			}
		}

		holes := framecad.NewModel()
		for _, circle := range circles {
			if !strokeIs(circle.Stroke, want) {
				continue
			}
			if name != Shape && name != Hinge {
				o.log().Info("frame: dropping circle outside shape and hinge", "part", name, "id", circle.ID)
				c.Add(diag.Info, diag.TermUnassignedCircle, map[string]string{"part": name})
				continue
			}
			hole := framecad.NewModel()
			for i, a := range framecad.Circle(framecad.Pt(circle.CX, circle.CY), circle.R) {
				hole.AddPath(strconv.Itoa(i), a)
			}
			holes.AddModel(fmt.Sprintf("hole-%d", len(holes.Models)), hole)
		}

		if part := buildPart(name, raw, o.tol); part != nil {
			parts[name] = part
		}
		if !holes.IsEmpty() {
			parts[holesOf(name)] = holes.Mirror(false, true)
		}
		o.log().Debug("frame: part extracted", "part", name,
			"segments", parts[name].PathCount(), "holes", len(holes.Models))
	}

	normalizeOrientation(parts, o)
	return parts, c.Warnings()
}

func strokeIs(stroke string, want color.RGBA) bool {
	got, err := drawing.ParseColor(stroke)
	return err == nil && got == want
}

// buildPart flips raw into y-up coordinates, simplifies it and resolves its
// chains. One chain gives a flat model; several give children named
// "<name>-<i>". A part without surviving chains is nil.
func buildPart(name string, raw *framecad.Model, tol float64) *framecad.Model {
	if raw.IsEmpty() {
		return nil
	}
	raw.Mirror(false, true)
	framecad.Simplify(raw, tol)
	chains := framecad.CleanupViaChains(raw, tol)
	switch len(chains.Models) {
	case 0:
		return nil
	case 1:
		return chains.Models["chain_0"]
	}
	out := framecad.NewModel()
	for i := range len(chains.Models) {
		out.AddModel(fmt.Sprintf("%s-%d", name, i), chains.Models[fmt.Sprintf("chain_%d", i)])
	}
	return out
}

// normalizeOrientation mirrors the PartSet horizontally when the shape
// lies left of the bridge, then moves it so the bridge's left edge is at
// x=0 and its vertical centre at y=0.
func normalizeOrientation(parts PartSet, o *options) {
	bb, ok := parts[Bridge].Bounds()
	if !ok {
		return
	}
	if sb, ok := parts[Shape].Bounds(); ok && sb.Center().X < bb.Center().X {
		o.log().Debug("frame: mirroring parts, shape is left of bridge")
		for _, m := range parts {
			m.Mirror(true, false)
		}
		bb, _ = parts[Bridge].Bounds()
	}
	parts.Translate(-bb.Min.X, -bb.Center().Y).Originate()
}
