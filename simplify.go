package framecad

import "math"

// Simplify removes degenerate geometry from every model of the tree:
// segments shorter than tol, duplicates, collinear lines that overlap (they
// are merged into one line) and arcs covered by a co-circular arc.
// Collinear lines that merely touch end to end are kept apart; their shared
// vertex may be where another part connects. The model is originated first.
func Simplify(m *Model, tol float64) *Model {
	m.Originate()
	m.simplify(tol)
	return m
}

func (m *Model) simplify(tol float64) {
	removed := 0
	for k, s := range m.Paths {
		if s.Length() < tol {
			delete(m.Paths, k)
			removed++
		}
	}
	removed += m.dropDuplicates(tol)
	removed += m.mergeOverlappingLines(tol)
	removed += m.dropCoveredArcs(tol)
	if removed > 0 {
		Logger().Debug("framecad: simplified model", "removed", removed)
	}
	for _, child := range m.Models {
		child.simplify(tol)
	}
}

func (m *Model) dropDuplicates(tol float64) int {
	keys := sortedKeys(m.Paths)
	removed := 0
	for i, ki := range keys {
		si, ok := m.Paths[ki]
		if !ok {
			continue
		}
		for _, kj := range keys[i+1:] {
			sj, ok := m.Paths[kj]
			if ok && SameSegment(si, sj, tol) {
				delete(m.Paths, kj)
				removed++
			}
		}
	}
	return removed
}

func (m *Model) mergeOverlappingLines(tol float64) int {
	removed := 0
	for merged := true; merged; {
		merged = false
		keys := sortedKeys(m.Paths)
	scan:
		for i, ki := range keys {
			li, ok := m.Paths[ki].(Line)
			if !ok {
				continue
			}
			for _, kj := range keys[i+1:] {
				lj, ok := m.Paths[kj].(Line)
				if !ok {
					continue
				}
				if out, ok := mergeCollinear(li, lj, tol); ok {
					m.Paths[ki] = out
					delete(m.Paths, kj)
					removed++
					merged = true
					break scan
				}
			}
		}
	}
	return removed
}

// mergeCollinear joins b into a when both lie on one line and their
// intervals overlap by more than tol.
func mergeCollinear(a, b Line, tol float64) (Line, bool) {
	length := a.Length()
	if length < tol || b.Length() < tol {
		return a, false
	}
	dir := a.Direction().Mul(1 / length)
	n := dir.Perp()
	if math.Abs(b.Origin.Sub(a.Origin).Dot(n)) >= tol || math.Abs(b.End.Sub(a.Origin).Dot(n)) >= tol {
		return a, false
	}
	t0 := b.Origin.Sub(a.Origin).Dot(dir)
	t1 := b.End.Sub(a.Origin).Dot(dir)
	lo, hi := math.Min(t0, t1), math.Max(t0, t1)
	if math.Min(hi, length)-math.Max(lo, 0) <= tol {
		return a, false
	}
	lo, hi = math.Min(lo, 0), math.Max(hi, length)
	return Line{Origin: a.Origin.Add(dir.Mul(lo)), End: a.Origin.Add(dir.Mul(hi))}, true
}

func (m *Model) dropCoveredArcs(tol float64) int {
	keys := sortedKeys(m.Paths)
	removed := 0
	for _, ki := range keys {
		ai, ok := m.Paths[ki].(Arc)
		if !ok {
			continue
		}
		for _, kj := range keys {
			if ki == kj {
				continue
			}
			aj, ok := m.Paths[kj].(Arc)
			if !ok || !ai.Center.Near(aj.Center, tol) || math.Abs(ai.Radius-aj.Radius) >= tol {
				continue
			}
			slack := tol / ai.Radius * 180 / math.Pi
			offset := normalizeAngle(ai.StartAngle - aj.StartAngle)
			if offset > 360-slack {
				offset = 0
			}
			if offset+ai.Sweep() <= aj.Sweep()+slack {
				delete(m.Paths, ki)
				removed++
				break
			}
		}
	}
	return removed
}
