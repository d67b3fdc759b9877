package geom

import "math"

// Matrix represents a 2D affine transformation matrix.
// It uses a 2x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// This represents the transformation:
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
//
// The layout matches gg.Matrix so backends convert field by field.
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

// Affine builds a matrix from components in (xx, yx, xy, yy, x0, y0)
// order, the order used by the transform opcode:
//
//	x' = xx*x + xy*y + x0
//	y' = yx*x + yy*y + y0
func Affine(xx, yx, xy, yy, x0, y0 float64) Matrix {
	return Matrix{
		A: xx, B: xy, C: x0,
		D: yx, E: yy, F: y0,
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
func Scale(sx, sy float64) Matrix {
	return Matrix{
		A: sx, B: 0, C: 0,
		D: 0, E: sy, F: 0,
	}
}

// Rotate creates a rotation matrix (angle in radians). With y pointing
// down a positive angle turns clockwise on screen.
func Rotate(angle float64) Matrix {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
	}
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

// TransformVector applies the transformation to a vector (no translation).
func (m Matrix) TransformVector(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y,
		Y: m.D*p.X + m.E*p.Y,
	}
}

// Invert returns the inverse matrix. The second result is false, and the
// matrix is the identity, when m is singular.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.Determinant()
	if math.Abs(det) < 1e-12 {
		return Identity(), false
	}

	invDet := 1.0 / det
	return Matrix{
		A: m.E * invDet,
		B: -m.B * invDet,
		C: (m.B*m.F - m.C*m.E) * invDet,
		D: -m.D * invDet,
		E: m.A * invDet,
		F: (m.C*m.D - m.A*m.F) * invDet,
	}, true
}

// IsIdentity returns true if the matrix is the identity matrix.
func (m Matrix) IsIdentity() bool {
	const eps = 1e-10
	return math.Abs(m.A-1) < eps && math.Abs(m.B) < eps && math.Abs(m.C) < eps &&
		math.Abs(m.D) < eps && math.Abs(m.E-1) < eps && math.Abs(m.F) < eps
}

// Determinant returns the determinant of the 2x2 part of the matrix.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// IsFinite reports whether all six components are finite.
func (m Matrix) IsFinite() bool {
	return IsFinite(m.A, m.B, m.C, m.D, m.E, m.F)
}
