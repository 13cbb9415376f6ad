package s2

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}

func assertNear(t *testing.T, name string, got, want, eps float64) {
	t.Helper()
	if !approxEqual(got, want, eps) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2, eps float64) {
	t.Helper()
	if !got.Near(want, eps) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Matrix) {
	t.Helper()
	g, w := got.Coefficients(), want.Coefficients()
	for i := range g {
		if math.Abs(g[i]-w[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, g[i], w[i], got, want)
		}
	}
}

func assertPanics(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// newTestCamera returns the 960x540 camera showing ±(8, 4.5) world units,
// 60 pixels per unit on both axes.
func newTestCamera() *Camera {
	return NewCamera(Vec2{}, V(8, 4.5), V(960, 540))
}

func TestVec2Basics(t *testing.T) {
	a, b := V(3, 4), V(1, -2)
	assertVec(t, "Add", a.Add(b), V(4, 2), epsilon)
	assertVec(t, "Sub", a.Sub(b), V(2, 6), epsilon)
	assertVec(t, "Scale", a.Scale(2), V(6, 8), epsilon)
	assertNear(t, "Length", a.Length(), 5, epsilon)
	assertNear(t, "Dot", a.Dot(b), -5, epsilon)
	assertNear(t, "Cross", a.Cross(b), -10, epsilon)
	assertVec(t, "Perp", V(1, 0).Perp(), V(0, 1), epsilon)
	assertVec(t, "Normalize", a.Normalize(), V(0.6, 0.8), epsilon)
	assertVec(t, "Normalize zero", Vec2{}.Normalize(), Vec2{}, epsilon)
	assertVec(t, "Lerp", a.Lerp(b, 0.5), V(2, 1), epsilon)
}

func TestRectUnionAndContains(t *testing.T) {
	r := RectFromPoints(V(2, 3), V(0, 1))
	if r != (Rect{X: 0, Y: 1, Width: 2, Height: 2}) {
		t.Fatalf("RectFromPoints = %+v", r)
	}
	if !r.Contains(2, 3) || r.Contains(2.1, 3) {
		t.Error("Contains edge handling")
	}
	u := r.Union(Rect{X: -1, Y: 0, Width: 1, Height: 1})
	if u != (Rect{X: -1, Y: 0, Width: 3, Height: 3}) {
		t.Errorf("Union = %+v", u)
	}
	if got := r.Inset(1); got != (Rect{X: -1, Y: 0, Width: 4, Height: 4}) {
		t.Errorf("Inset = %+v", got)
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{World.String(), "world"},
		{View.String(), "view"},
		{Explicit.String(), "explicit"},
		{Inherited.String(), "inherited"},
		{LineSegment.String(), "line"},
		{CubicSegment.String(), "cubic"},
		{CubicToCommand.String(), "C"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
