package framecad

// Model transforms. All of them mutate the receiver in place and return it;
// callers that must keep the input intact clone first.

// Translate moves the model by (dx, dy) through its origin.
func (m *Model) Translate(dx, dy float64) *Model {
	m.Origin = m.Origin.Add(Pt(dx, dy))
	return m
}

// Transform originates the model and maps every segment through mat.
func (m *Model) Transform(mat Matrix) *Model {
	m.Originate()
	m.transform(mat)
	return m
}

func (m *Model) transform(mat Matrix) {
	for k, s := range m.Paths {
		m.Paths[k] = s.Transform(mat)
	}
	for _, child := range m.Models {
		child.transform(mat)
	}
}

// Mirror reflects the model about the y axis (x=true) and/or the x axis
// (y=true).
func (m *Model) Mirror(x, y bool) *Model {
	sx, sy := 1.0, 1.0
	if x {
		sx = -1
	}
	if y {
		sy = -1
	}
	return m.Distort(sx, sy)
}

// Distort scales the model anisotropically about the coordinate origin.
func (m *Model) Distort(sx, sy float64) *Model {
	return m.Transform(Scale(sx, sy))
}

// DistortAbout scales the model anisotropically about anchor.
func (m *Model) DistortAbout(anchor Point, sx, sy float64) *Model {
	return m.Transform(ScaleAbout(anchor, sx, sy))
}

// Bounds returns the bounding box of the whole tree in absolute
// coordinates. The second result is false for an empty model.
func (m *Model) Bounds() (Rect, bool) {
	var (
		r     Rect
		found bool
	)
	if m == nil {
		return r, false
	}
	for _, rs := range m.Segments() {
		b := rs.Segment.Bounds()
		if !found {
			r, found = b, true
			continue
		}
		r = r.Union(b)
	}
	return r, found
}
