package framecad

import "math"

// Rect represents an axis-aligned rectangle.
// Min holds the minimum coordinates, Max the maximum coordinates.
type Rect struct {
	Min, Max Point
}

// NewRect creates a rectangle from two points.
// The points are normalized so Min <= Max.
func NewRect(p1, p2 Point) Rect {
	return Rect{
		Min: Point{X: math.Min(p1.X, p2.X), Y: math.Min(p1.Y, p2.Y)},
		Max: Point{X: math.Max(p1.X, p2.X), Y: math.Max(p1.Y, p2.Y)},
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return r.Min.Lerp(r.Max, 0.5)
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, other.Min.X), Y: math.Min(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, other.Max.X), Y: math.Max(r.Max.Y, other.Max.Y)},
	}
}

// Intersect returns the overlap of r and other. The second result is false
// when the rectangles are disjoint; touching edges count as overlap.
func (r Rect) Intersect(other Rect) (Rect, bool) {
	out := Rect{
		Min: Point{X: math.Max(r.Min.X, other.Min.X), Y: math.Max(r.Min.Y, other.Min.Y)},
		Max: Point{X: math.Min(r.Max.X, other.Max.X), Y: math.Min(r.Max.Y, other.Max.Y)},
	}
	if out.Min.X > out.Max.X || out.Min.Y > out.Max.Y {
		return Rect{}, false
	}
	return out, true
}

// Contains returns true if the point is inside the rectangle.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Clamp returns the point of r closest to p.
func (r Rect) Clamp(p Point) Point {
	return Point{
		X: math.Min(math.Max(p.X, r.Min.X), r.Max.X),
		Y: math.Min(math.Max(p.Y, r.Min.Y), r.Max.Y),
	}
}

// expand grows r to include p.
func (r Rect) expand(p Point) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, p.X), Y: math.Min(r.Min.Y, p.Y)},
		Max: Point{X: math.Max(r.Max.X, p.X), Y: math.Max(r.Max.Y, p.Y)},
	}
}
