package s2

import (
	"math"
	"testing"
)

// testCubic is an S-shaped cubic used across curve tests.
var testCubic = Cubic(V(-7, -4), V(0, -4), V(-10, -1), V(-3, 0))

func TestSegmentEndpointsExact(t *testing.T) {
	if got := testCubic.PointAt(0); got != V(-7, -4) {
		t.Errorf("PointAt(0) = %v", got)
	}
	if got := testCubic.PointAt(1); got != V(-3, 0) {
		t.Errorf("PointAt(1) = %v", got)
	}
	l := Line(V(1, 2), V(3, 5))
	if l.PointAt(0) != V(1, 2) || l.PointAt(1) != V(3, 5) {
		t.Error("line endpoints")
	}
}

func TestSegmentLength(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
		want float64
		eps  float64
	}{
		{"line 3-4-5", Line(V(0, 0), V(3, 4)), 5, 1e-12},
		{"straight cubic", Cubic(V(0, 0), V(1, 0), V(2, 0), V(3, 0)), 3, 1e-9},
		{"quarter circle", Cubic(V(1, 0), V(1, kappa), V(kappa, 1), V(0, 1)), math.Pi / 2, 1e-3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertNear(t, "Length", tt.seg.Length(DefaultArcLengthAccuracy), tt.want, tt.eps)
		})
	}
}

func TestSegmentSplit(t *testing.T) {
	l, r := testCubic.Split(0.5)
	mid := testCubic.PointAt(0.5)
	assertVec(t, "left end", l.End(), mid, 1e-12)
	assertVec(t, "right start", r.Start(), mid, 1e-12)
	assertVec(t, "left quarter", l.PointAt(0.5), testCubic.PointAt(0.25), 1e-12)
	assertVec(t, "right quarter", r.PointAt(0.5), testCubic.PointAt(0.75), 1e-12)
	if l.Start() != testCubic.Start() || r.End() != testCubic.End() {
		t.Error("split moved the outer endpoints")
	}
}

func TestSegmentSubsegment(t *testing.T) {
	sub := testCubic.Subsegment(0.25, 0.75)
	assertVec(t, "start", sub.Start(), testCubic.PointAt(0.25), 1e-12)
	assertVec(t, "end", sub.End(), testCubic.PointAt(0.75), 1e-12)
	assertVec(t, "mid", sub.PointAt(0.5), testCubic.PointAt(0.5), 1e-12)

	line := Line(V(0, 0), V(4, 0)).Subsegment(0.25, 0.5)
	if line.P0 != V(1, 0) || line.P1 != V(2, 0) {
		t.Errorf("line Subsegment = %+v", line)
	}
}

func TestSegmentTangent(t *testing.T) {
	assertVec(t, "line", Line(V(0, 0), V(0, 5)).TangentAt(0.3), V(0, 1), epsilon)
	// Control point on the start: tangent falls back to the next control.
	s := Cubic(V(0, 0), V(0, 0), V(1, 0), V(2, 0))
	assertVec(t, "degenerate start", s.TangentAt(0), V(1, 0), epsilon)
	assertVec(t, "normal", Line(V(0, 0), V(1, 0)).TangentAt(0).Perp(), V(0, 1), epsilon)
}

func TestSegmentBoundingBox(t *testing.T) {
	s := Cubic(V(0, 0), V(0, 1), V(1, 1), V(1, 0))
	b := s.BoundingBox()
	assertNear(t, "X", b.X, 0, epsilon)
	assertNear(t, "Y", b.Y, 0, epsilon)
	assertNear(t, "Width", b.Width, 1, epsilon)
	assertNear(t, "Height", b.Height, 0.75, epsilon)

	cb := s.ControlBox()
	assertNear(t, "control Height", cb.Height, 1, epsilon)
}

func TestSegmentFlatness(t *testing.T) {
	if f := Line(V(0, 0), V(5, 5)).Flatness(); f != 0 {
		t.Errorf("line Flatness = %v", f)
	}
	s := Cubic(V(0, 0), V(1, 2), V(2, -1), V(3, 0))
	assertNear(t, "Flatness", s.Flatness(), 2, epsilon)
}

func TestSegmentTransformAndReverse(t *testing.T) {
	s := testCubic.Transform(TranslateMatrix(1, 1))
	assertVec(t, "moved", s.PointAt(0.3), testCubic.PointAt(0.3).Add(V(1, 1)), 1e-12)

	r := testCubic.Reverse()
	assertVec(t, "reverse", r.PointAt(0.2), testCubic.PointAt(0.8), 1e-12)
}

func TestSegmentNearest(t *testing.T) {
	l := Line(V(0, 0), V(10, 0))
	u, d := l.Nearest(V(5, 3))
	assertNear(t, "line t", u, 0.5, epsilon)
	assertNear(t, "line dist", d, 3, epsilon)
	u, d = l.Nearest(V(-4, 3))
	assertNear(t, "clamped t", u, 0, epsilon)
	assertNear(t, "clamped dist", d, 5, epsilon)

	s := Cubic(V(0, 0), V(1, 0), V(2, 0), V(3, 0))
	u, d = s.Nearest(V(1.5, 1))
	assertNear(t, "cubic t", u, 0.5, 1e-5)
	assertNear(t, "cubic dist", d, 1, 1e-5)
}

func TestSegmentExampleCubic(t *testing.T) {
	assertNear(t, "Length", testCubic.Length(DefaultArcLengthAccuracy), 8.471312344, 1e-6)

	sub := testCubic.Subsegment(0.25, 0.75)
	assertVec(t, "Subsegment P1", sub.P1, V(-4.09375, -2.921875), 1e-9)

	b := testCubic.BoundingBox()
	if !V(b.X, b.Y).Near(V(-7, -4), 1e-9) || !b.Max().Near(V(-3, 0), 1e-9) {
		t.Errorf("BoundingBox = %+v, want (-7, -4)-(-3, 0)", b)
	}

	u, d := testCubic.Nearest(V(-4, -2))
	assertNear(t, "Nearest t", u, 0.447890, 1e-5)
	assertNear(t, "Nearest dist", d, testCubic.PointAt(u).Sub(V(-4, -2)).Length(), 1e-9)
}

func TestSegmentSubsegmentKeepsJoints(t *testing.T) {
	left := testCubic.Subsegment(0, 0.3)
	right := testCubic.Subsegment(0.3, 1)
	if left.P0 != testCubic.P0 || right.P3 != testCubic.P3 {
		t.Error("outer endpoints moved")
	}
	assertVec(t, "joint", left.End(), right.Start(), 1e-12)
}
