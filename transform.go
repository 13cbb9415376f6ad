package s2

import (
	"errors"
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// DefaultMatrixEpsilon is the tolerance used by IsIdentity and Equals when
// callers have no better value.
const DefaultMatrixEpsilon = 1e-4

// singularEpsilon is the determinant magnitude below which a matrix is
// treated as non-invertible.
const singularEpsilon = 1e-12

// ErrDegenerateTransform is returned by InvertChecked when the matrix has a
// (near) zero determinant.
var ErrDegenerateTransform = errors.New("s2: degenerate transform")

// Matrix is a 2D affine transformation.
//
//	| A  C  E |
//	| B  D  F |
//	| 0  0  1 |
//
// A point maps as x' = A·x + C·y + E, y' = B·x + D·y + F. Products read right
// to left: (M·N)·p applies N first.
type Matrix struct {
	A, B, C, D, E, F float64
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return Matrix{A: 1, D: 1}
}

// TranslateMatrix returns a translation by (tx, ty).
func TranslateMatrix(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// ScaleMatrix returns a scale about the origin.
func ScaleMatrix(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// ScaleFromMatrix returns a scale about center.
func ScaleFromMatrix(sx, sy float64, center Vec2) Matrix {
	return Matrix{
		A: sx,
		D: sy,
		E: center.X - sx*center.X,
		F: center.Y - sy*center.Y,
	}
}

// RotateMatrix returns a rotation about the origin. A positive angle turns
// the positive X axis towards the positive Y axis.
func RotateMatrix(angle float64, unit AngleUnit) Matrix {
	sin, cos := math.Sincos(unit.radians(angle))
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// RotateFromMatrix returns a rotation about center.
func RotateFromMatrix(angle float64, center Vec2, unit AngleUnit) Matrix {
	sin, cos := math.Sincos(unit.radians(angle))
	return Matrix{
		A: cos,
		B: sin,
		C: -sin,
		D: cos,
		E: center.X - cos*center.X + sin*center.Y,
		F: center.Y - sin*center.X - cos*center.Y,
	}
}

// MultiplyMatrices returns a·b.
func MultiplyMatrices(a, b Matrix) Matrix {
	return Matrix{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Mul returns m·o.
func (m Matrix) Mul(o Matrix) Matrix {
	return MultiplyMatrices(m, o)
}

// ComposeAfter sets m = m·o, so o is applied before the previous m.
func (m *Matrix) ComposeAfter(o Matrix) {
	*m = MultiplyMatrices(*m, o)
}

// ComposeBefore sets m = o·m, so o is applied after the previous m.
func (m *Matrix) ComposeBefore(o Matrix) {
	*m = MultiplyMatrices(o, *m)
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.D - m.B*m.C
}

// InvertChecked returns the inverse of m, or ErrDegenerateTransform when m is
// singular.
func (m Matrix) InvertChecked() (Matrix, error) {
	det := m.Determinant()
	if det > -singularEpsilon && det < singularEpsilon {
		return IdentityMatrix(), fmt.Errorf("invert %v (det %g): %w", m, det, ErrDegenerateTransform)
	}
	inv := 1 / det
	a := m.D * inv
	b := -m.B * inv
	c := -m.C * inv
	d := m.A * inv
	return Matrix{
		A: a, B: b, C: c, D: d,
		E: -(a*m.E + c*m.F),
		F: -(b*m.E + d*m.F),
	}, nil
}

// Invert returns the inverse of m. A singular matrix yields the identity and
// a logged warning, so a collapsed transform renders as a no-op instead of
// propagating NaNs.
func (m Matrix) Invert() Matrix {
	inv, err := m.InvertChecked()
	if err != nil {
		Logger().Warn("falling back to identity", "error", err)
	}
	return inv
}

// Lerp interpolates the six coefficients independently. This is not a
// decomposed interpolation: large rotations do not stay rigid midway.
func (m Matrix) Lerp(o Matrix, t float64) Matrix {
	return Matrix{
		A: lerp(m.A, o.A, t),
		B: lerp(m.B, o.B, t),
		C: lerp(m.C, o.C, t),
		D: lerp(m.D, o.D, t),
		E: lerp(m.E, o.E, t),
		F: lerp(m.F, o.F, t),
	}
}

// IsIdentity reports whether m is the identity within eps.
func (m Matrix) IsIdentity(eps float64) bool {
	return m.Equals(IdentityMatrix(), eps)
}

// Equals reports whether every coefficient of m is within eps of o.
func (m Matrix) Equals(o Matrix, eps float64) bool {
	return math.Abs(m.A-o.A) < eps &&
		math.Abs(m.B-o.B) < eps &&
		math.Abs(m.C-o.C) < eps &&
		math.Abs(m.D-o.D) < eps &&
		math.Abs(m.E-o.E) < eps &&
		math.Abs(m.F-o.F) < eps
}

// Apply transforms a point.
func (m Matrix) Apply(p Vec2) Vec2 {
	return Vec2{m.A*p.X + m.C*p.Y + m.E, m.B*p.X + m.D*p.Y + m.F}
}

// ApplyVector transforms a direction, ignoring the translation.
func (m Matrix) ApplyVector(v Vec2) Vec2 {
	return Vec2{m.A*v.X + m.C*v.Y, m.B*v.X + m.D*v.Y}
}

// Translation returns the translation part (E, F).
func (m Matrix) Translation() Vec2 {
	return Vec2{m.E, m.F}
}

// Coefficients returns (A, B, C, D, E, F).
func (m Matrix) Coefficients() [6]float64 {
	return [6]float64{m.A, m.B, m.C, m.D, m.E, m.F}
}

// MatrixFromAffine converts a curve.Affine, which uses the same coefficient
// order, to a Matrix.
func MatrixFromAffine(a curve.Affine) Matrix {
	n := a.Coefficients()
	return Matrix{A: n[0], B: n[1], C: n[2], D: n[3], E: n[4], F: n[5]}
}

func (m Matrix) String() string {
	return fmt.Sprintf("[%g %g %g %g %g %g]", m.A, m.B, m.C, m.D, m.E, m.F)
}
