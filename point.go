package framecad

import "math"

// Point represents a 2D point or vector in drawing units.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
func (p Point) Normalize() Point {
	length := p.Length()
	if length == 0 {
		return Point{}
	}
	return Point{X: p.X / length, Y: p.Y / length}
}

// Perp returns the vector rotated 90 degrees counter-clockwise.
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// Lerp performs linear interpolation between two points.
// t=0 returns p, t=1 returns q, intermediate values interpolate.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Near reports whether q lies within tol of p.
func (p Point) Near(q Point, tol float64) bool {
	return p.Distance(q) < tol
}

// angleOf returns the polar angle of p around c in degrees, in [0, 360).
func angleOf(c, p Point) float64 {
	return normalizeAngle(math.Atan2(p.Y-c.Y, p.X-c.X) * 180 / math.Pi)
}

// normalizeAngle maps an angle in degrees into [0, 360).
func normalizeAngle(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
