package canvas

import "math"

// Matrix is a 2D affine transform in row-major order:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translate creates a translation matrix.
func Translate(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Rotate creates a counterclockwise rotation matrix (angle in radians, y up).
func Rotate(angle float64) Matrix {
	cos, sin := math.Cos(angle), math.Sin(angle)
	return Matrix{A: cos, B: -sin, D: sin, E: cos}
}

// RotateAbout composes translate(pivot) * rotate(deg) * translate(-pivot).
func RotateAbout(degrees float64, pivot Point) Matrix {
	return Translate(pivot.X, pivot.Y).
		Multiply(Rotate(degrees * math.Pi / 180)).
		Multiply(Translate(-pivot.X, -pivot.Y))
}

// Multiply returns m * other; other is applied to points first.
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

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// RotationDegrees returns the rotation component of a rigid transform.
func (m Matrix) RotationDegrees() float64 {
	return math.Atan2(m.D, m.A) * 180 / math.Pi
}
