package s2

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"
)

func TestMatrixApply(t *testing.T) {
	tests := []struct {
		name string
		m    Matrix
		in   Vec2
		want Vec2
	}{
		{"identity", IdentityMatrix(), V(3, 4), V(3, 4)},
		{"translate", TranslateMatrix(10, -5), V(1, 1), V(11, -4)},
		{"scale", ScaleMatrix(2, 3), V(1, 1), V(2, 3)},
		{"rotate 90deg", RotateMatrix(90, Degrees), V(1, 0), V(0, 1)},
		{"rotate pi", RotateMatrix(math.Pi, Radians), V(1, 0), V(-1, 0)},
		{"scale about center", ScaleFromMatrix(2, 2, V(1, 1)), V(1, 1), V(1, 1)},
		{"rotate about center", RotateFromMatrix(90, V(1, 1), Degrees), V(2, 1), V(1, 2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, "Apply", tt.m.Apply(tt.in), tt.want, 1e-12)
		})
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// (T·S)·p scales first.
	m := TranslateMatrix(10, 0).Mul(ScaleMatrix(2, 2))
	assertVec(t, "T·S", m.Apply(V(1, 0)), V(12, 0), epsilon)
	m = ScaleMatrix(2, 2).Mul(TranslateMatrix(10, 0))
	assertVec(t, "S·T", m.Apply(V(1, 0)), V(22, 0), epsilon)
}

func TestMatrixAssociative(t *testing.T) {
	a := RotateMatrix(0.3, Radians)
	b := TranslateMatrix(4, -1)
	c := ScaleFromMatrix(1.5, 0.5, V(2, 2))
	assertMatrix(t, "(ab)c vs a(bc)", a.Mul(b).Mul(c), a.Mul(b.Mul(c)))
}

func TestMatrixInverse(t *testing.T) {
	m := TranslateMatrix(3, 4).Mul(RotateMatrix(0.7, Radians)).Mul(ScaleMatrix(2, 0.5))
	inv, err := m.InvertChecked()
	if err != nil {
		t.Fatalf("InvertChecked: %v", err)
	}
	assertMatrix(t, "m·inv", m.Mul(inv), IdentityMatrix())
	assertMatrix(t, "inv·m", inv.Mul(m), IdentityMatrix())
}

func TestMatrixSingular(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	m := ScaleMatrix(0, 1)
	if _, err := m.InvertChecked(); !errors.Is(err, ErrDegenerateTransform) {
		t.Errorf("InvertChecked error = %v, want ErrDegenerateTransform", err)
	}
	assertMatrix(t, "Invert fallback", m.Invert(), IdentityMatrix())
	if !strings.Contains(buf.String(), "falling back to identity") {
		t.Errorf("no warning logged, got %q", buf.String())
	}
}

func TestMatrixCompose(t *testing.T) {
	m := TranslateMatrix(1, 0)
	m.ComposeAfter(ScaleMatrix(2, 2))
	assertMatrix(t, "after", m, TranslateMatrix(1, 0).Mul(ScaleMatrix(2, 2)))

	m = TranslateMatrix(1, 0)
	m.ComposeBefore(ScaleMatrix(2, 2))
	assertMatrix(t, "before", m, ScaleMatrix(2, 2).Mul(TranslateMatrix(1, 0)))
}

func TestMatrixLerp(t *testing.T) {
	a := IdentityMatrix()
	b := Matrix{A: 3, B: 2, C: -2, D: 5, E: 10, F: -4}
	assertMatrix(t, "t=0", a.Lerp(b, 0), a)
	assertMatrix(t, "t=1", a.Lerp(b, 1), b)
	assertMatrix(t, "t=0.5", a.Lerp(b, 0.5), Matrix{A: 2, B: 1, C: -1, D: 3, E: 5, F: -2})
}

func TestMatrixEquals(t *testing.T) {
	m := IdentityMatrix()
	m.E = 5e-5
	if !m.IsIdentity(DefaultMatrixEpsilon) {
		t.Error("IsIdentity within epsilon = false")
	}
	if m.IsIdentity(1e-6) {
		t.Error("IsIdentity beyond epsilon = true")
	}
	if !TranslateMatrix(1, 2).Equals(TranslateMatrix(1, 2), epsilon) {
		t.Error("Equals = false for equal matrices")
	}
}

func TestMatrixDeterminantAndTranslation(t *testing.T) {
	m := Matrix{A: 2, B: 1, C: 3, D: 4, E: 7, F: 8}
	assertNear(t, "Determinant", m.Determinant(), 5, epsilon)
	assertVec(t, "Translation", m.Translation(), V(7, 8), epsilon)
	assertVec(t, "ApplyVector", m.ApplyVector(V(1, 0)), V(2, 1), epsilon)
}

func BenchmarkMultiplyMatrices(b *testing.B) {
	m := RotateMatrix(0.1, Radians)
	acc := IdentityMatrix()
	for b.Loop() {
		acc = MultiplyMatrices(acc, m)
	}
	_ = acc
}
