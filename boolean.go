package framecad

import (
	"strconv"
	"strings"
)

// Boolean combination of closed regions.
//
// Both boundaries are cut at their mutual intersections. A piece belongs to
// the result boundary when the points just left and right of its middle
// differ in result membership; membership of a point is derived from
// even-odd containment in the input models. Pieces shorter than tol are
// dropped (chaining with tol bridges the gaps), as are pieces of b that
// duplicate a kept piece of a.

type booleanOp int

const (
	opUnion booleanOp = iota
	opSubtract
)

func (op booleanOp) String() string {
	if op == opSubtract {
		return "subtract"
	}
	return "union"
}

func (op booleanOp) inside(inA, inB bool) bool {
	if op == opSubtract {
		return inA && !inB
	}
	return inA || inB
}

// Union returns the boundary of the union of a and b. The result has two
// children, "a" and "b", holding the kept pieces of each input.
// The inputs are not modified.
func Union(a, b *Model, tol float64) *Model {
	return combine(a, b, opUnion, tol)
}

// Subtract returns the boundary of a minus b, laid out like Union.
// The inputs are not modified.
func Subtract(a, b *Model, tol float64) *Model {
	return combine(a, b, opSubtract, tol)
}

func combine(a, b *Model, op booleanOp, tol float64) *Model {
	sa := a.Clone().Originate().Segments()
	sb := b.Clone().Originate().Segments()

	cutsA := make([][]Point, len(sa))
	cutsB := make([][]Point, len(sb))
	for i, x := range sa {
		bx := x.Segment.Bounds()
		for j, y := range sb {
			if !boundsTouch(bx, y.Segment.Bounds(), tol) {
				continue
			}
			pts := Intersections(x.Segment, y.Segment, tol)
			cutsA[i] = append(cutsA[i], pts...)
			cutsB[j] = append(cutsB[j], pts...)
		}
	}

	delta := tol / 4
	onBoundary := func(s Segment) bool {
		mid, n := sampleNormal(s)
		left, right := mid.Add(n.Mul(delta)), mid.Sub(n.Mul(delta))
		inLeft := op.inside(containsPoint(sa, left), containsPoint(sb, left))
		inRight := op.inside(containsPoint(sa, right), containsPoint(sb, right))
		return inLeft != inRight
	}

	outA, outB := NewModel(), NewModel()
	var kept []Segment
	for i, rs := range sa {
		for k, piece := range SplitAt(rs.Segment, cutsA[i], tol) {
			if piece.Length() < tol || !onBoundary(piece) {
				continue
			}
			outA.AddPath(pieceKey(rs.Route, k), piece)
			kept = append(kept, piece)
		}
	}
	for j, rs := range sb {
	pieces:
		for k, piece := range SplitAt(rs.Segment, cutsB[j], tol) {
			if piece.Length() < tol || !onBoundary(piece) {
				continue
			}
			for _, other := range kept {
				if SameSegment(piece, other, tol) {
					continue pieces
				}
			}
			outB.AddPath(pieceKey(rs.Route, k), piece)
		}
	}

	Logger().Debug("framecad: boolean combined",
		"op", op, "inA", len(sa), "inB", len(sb), "outA", len(outA.Paths), "outB", len(outB.Paths))
	return NewModel().AddModel("a", outA).AddModel("b", outB)
}

// sampleNormal returns the middle of s and the unit normal there.
func sampleNormal(s Segment) (Point, Point) {
	switch v := s.(type) {
	case Line:
		return v.Midpoint(), v.Direction().Perp().Normalize()
	case Arc:
		mid := v.Midpoint()
		return mid, mid.Sub(v.Center).Normalize()
	}
	return Point{}, Point{}
}

func boundsTouch(a, b Rect, tol float64) bool {
	return a.Min.X-tol <= b.Max.X && b.Min.X-tol <= a.Max.X &&
		a.Min.Y-tol <= b.Max.Y && b.Min.Y-tol <= a.Max.Y
}

func pieceKey(route Route, k int) string {
	return strings.Join(route, "_") + "_" + strconv.Itoa(k)
}
