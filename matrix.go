package framecad

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| a  b  c |
//	| d  e  f |
//
// This represents the transformation:
//
//	x' = a*x + b*y + c
//	y' = d*x + e*y + f
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
	}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
	}
}

// Scale creates a scaling matrix.
func Scale(x, y float64) Matrix {
	return Matrix{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
	}
}

// ScaleAbout creates a matrix scaling by (sx, sy) around the anchor point.
func ScaleAbout(anchor Point, sx, sy float64) Matrix {
	return Translate(anchor.X, anchor.Y).
		Multiply(Scale(sx, sy)).
		Multiply(Translate(-anchor.X, -anchor.Y))
}

// Multiply multiplies two matrices (m * other).
// The result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// TransformPoint applies the transformation to a point.
func (m Matrix) TransformPoint(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// Determinant returns the determinant of the linear part.
// A negative determinant means the transform mirrors.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 &&
		m.D == 0 && m.E == 1 && m.F == 0
}

// IsTranslation returns true if the matrix is only a translation.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.D == 0 && m.E == 1
}

// isConformal reports whether the matrix is an axis-aligned uniform scale,
// optionally mirrored, plus translation. Circles stay circles under it.
func (m Matrix) isConformal() bool {
	return m.B == 0 && m.D == 0 && math.Abs(math.Abs(m.A)-math.Abs(m.E)) < 1e-12
}
