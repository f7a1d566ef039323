package frame

import (
	"github.com/Bersaelor/framecad"
	"github.com/Bersaelor/framecad/diag"
)

// SeamOverlap is how far the mirrored side is pushed across the seam so
// the two halves overlap instead of touching.
const SeamOverlap = 1e-4

// Result is the outcome of Combine.
type Result struct {
	Model    *framecad.Model `json:"model"`
	Warnings []diag.Warning  `json:"warnings,omitempty"`
	// Step is the last step that ran.
	Step Step `json:"step"`
}

// Combine scales the parts of a reference half frame to target and joins
// them into the outline of the whole frame. parts is not modified.
//
// The result model holds the outline under "frame". An unmerged hinge and
// the lens are returned beside it as "hinge", "hinge_mirrored", "lens" and
// "lens_mirrored". With WithStep the pipeline stops early and the model
// holds the intermediate parts instead.
//
// Missing bridge, shape or pad yields an empty model and a single
// partsMissing warning. Missing or unreconnectable joints are reported and
// the pipeline carries on.
func Combine(parts PartSet, target, ref SizeParameters, opts ...Option) *Result {
	o := newOptions(opts)
	c := &diag.Collector{}
	log := o.log()

	if missing := parts.Missing(Bridge, Shape, Pad); len(missing) > 0 {
		log.Warn("frame: required parts missing", "missing", missing)
		c.Add(diag.Error, diag.TermPartsMissing, nil)
		return &Result{Model: framecad.NewModel(), Warnings: c.Warnings()}
	}
	merge := o.mergeHinge && !parts[Hinge].IsEmpty()

	work := parts.Clone().Originate()
	joints := Joints{
		BridgeShape: o.connect(c, work, Bridge, Shape),
		ShapePad:    o.connect(c, work, Shape, Pad),
	}
	if merge {
		joints.ShapeHinge = o.connect(c, work, Shape, Hinge)
	}

	scaled, _ := ScaleParts(work, joints, ref, target, opts...)
	if shift, ok := o.reconnect(c, scaled, Bridge, Shape, joints.BridgeShape); ok {
		for _, name := range []string{ShapeHoles, Lens} {
			if m := scaled[name]; m != nil {
				m.Translate(shift.X, shift.Y).Originate()
			}
		}
	}
	o.reconnect(c, scaled, Shape, Pad, joints.ShapePad)
	if merge {
		if shift, ok := o.reconnect(c, scaled, Shape, Hinge, joints.ShapeHinge); ok && scaled[HingeHoles] != nil {
			scaled[HingeHoles].Translate(shift.X, shift.Y).Originate()
		}
	}
	if o.step == StepScaledParts {
		return o.result(c, scaled.Model(), StepScaledParts)
	}

	for _, name := range []string{Shape, Hinge} {
		holes := scaled[holesOf(name)]
		if scaled[name] == nil || holes.IsEmpty() {
			continue
		}
		scaled[name] = framecad.Subtract(scaled[name], holes, o.tol)
		delete(scaled, holesOf(name))
	}
	for _, name := range []string{Bridge, Shape, Pad, Hinge} {
		if scaled[name] != nil {
			scaled[name] = framecad.CleanupViaChains(scaled[name], o.tol)
		}
	}
	if o.step == StepChainedParts {
		return o.result(c, scaled.Model(), StepChainedParts)
	}

	rest := PartSet{}
	for name, m := range scaled {
		if name != Bridge && name != Shape {
			rest[name] = m
		}
	}
	side := framecad.Union(scaled[Bridge], scaled[Shape], o.tol)
	if o.step == StepBridgeShape {
		return o.result(c, withFrame(rest, side), StepBridgeShape)
	}
	if merge {
		side = framecad.Union(side, rest[Hinge], o.tol)
		delete(rest, Hinge)
	}
	if o.step == StepBridgeShapeHinge {
		return o.result(c, withFrame(rest, side), StepBridgeShapeHinge)
	}
	side = framecad.Union(side, rest[Pad], o.tol)
	delete(rest, Pad)
	side = framecad.CleanupViaChains(side, o.tol)
	if o.step == StepFullSide {
		return o.result(c, withFrame(rest, side), StepFullSide)
	}

	full := o.mirrorSide(side)
	out := framecad.NewModel().AddModel("frame", full)
	for _, name := range []string{Hinge, Lens} {
		if m := rest[name]; !m.IsEmpty() {
			out.AddModel(name, m)
			out.AddModel(name+"_mirrored", m.Clone().Mirror(true, false))
		}
	}
	return o.result(c, out, StepFinal)
}

// mirrorSide joins side with its mirror image across x=0. The halves are
// reconnected only along seam edges they share; a side without seam edges
// is logged and united as is.
func (o *options) mirrorSide(side *framecad.Model) *framecad.Model {
	mirror := side.Clone().Mirror(true, false)
	conns, _ := findConnections(side, mirror, o.tol, o.slopeTol, o.log())
	if len(conns) == 0 {
		o.log().Warn("frame: no seam between halves")
	} else if _, err := Reconnect(side, mirror, conns, o.tol); err != nil {
		o.log().Warn("frame: seam reconnect failed", "err", err)
	}
	mirror.Translate(SeamOverlap, 0).Originate()
	full := framecad.Union(side, mirror, o.tol)
	framecad.Simplify(full, o.tol)
	return framecad.CleanupViaChains(full, o.tol)
}

// connect finds the joints between two reference parts and reports a
// missing connection.
func (o *options) connect(c *diag.Collector, parts PartSet, a, b string) []Connection {
	conns, arcs := findConnections(parts[a], parts[b], o.tol, o.slopeTol, o.log())
	if len(conns) > 0 {
		o.log().Debug("frame: parts connected", "part1", a, "part2", b, "connections", len(conns))
		return conns
	}
	data := map[string]string{"part1": a, "part2": b}
	o.log().Warn("frame: parts not connected", "part1", a, "part2", b)
	c.Add(diag.Error, diag.TermConnectionMissing, data)
	if arcs > 0 {
		c.Add(diag.Info, diag.TermArcConnection, data)
	}
	return nil
}

// reconnect stitches part b back onto part a. It reports whether a
// reconnect was attempted; on failure b keeps the anchor shift already
// applied.
func (o *options) reconnect(c *diag.Collector, parts PartSet, a, b string, conns []Connection) (framecad.Point, bool) {
	if len(conns) == 0 || parts[a] == nil || parts[b] == nil {
		return framecad.Point{}, false
	}
	shift, err := Reconnect(parts[a], parts[b], conns, o.tol)
	if err != nil {
		o.log().Warn("frame: reconnect failed", "part1", a, "part2", b, "err", err)
		c.Add(diag.Error, diag.TermReconnectFailed, map[string]string{"part1": a, "part2": b})
	}
	return shift, true
}

func (o *options) result(c *diag.Collector, m *framecad.Model, step Step) *Result {
	o.log().Info("frame: combined", "step", step, "warnings", c.Len())
	return &Result{Model: m, Warnings: c.Warnings(), Step: step}
}

func withFrame(rest PartSet, frame *framecad.Model) *framecad.Model {
	return rest.Model().AddModel("frame", frame)
}
