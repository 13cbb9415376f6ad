package s2

import (
	"fmt"
	"math"

	"honnef.co/go/curve"
)

// SegmentKind tags a Segment.
type SegmentKind uint8

const (
	LineSegment SegmentKind = iota
	CubicSegment
)

func (k SegmentKind) String() string {
	switch k {
	case LineSegment:
		return "line"
	case CubicSegment:
		return "cubic"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// Segment is one piece of a PolyCurve: a line from P0 to P1, or a cubic
// Bézier with control points P0..P3. P2 and P3 are unused by lines.
type Segment struct {
	Kind           SegmentKind
	P0, P1, P2, P3 Vec2
}

// Line returns a line segment.
func Line(a, b Vec2) Segment {
	return Segment{Kind: LineSegment, P0: a, P1: b}
}

// Cubic returns a cubic Bézier segment.
func Cubic(p0, p1, p2, p3 Vec2) Segment {
	return Segment{Kind: CubicSegment, P0: p0, P1: p1, P2: p2, P3: p3}
}

// Start returns the first point.
func (s Segment) Start() Vec2 { return s.P0 }

// End returns the last point.
func (s Segment) End() Vec2 {
	if s.Kind == LineSegment {
		return s.P1
	}
	return s.P3
}

// PointAt evaluates the segment at local t in [0, 1]. The endpoints are
// returned exactly.
func (s Segment) PointAt(t float64) Vec2 {
	if t <= 0 {
		return s.P0
	}
	if t >= 1 {
		return s.End()
	}
	if s.Kind == LineSegment {
		return s.P0.Lerp(s.P1, t)
	}
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Vec2{
		a*s.P0.X + b*s.P1.X + c*s.P2.X + d*s.P3.X,
		a*s.P0.Y + b*s.P1.Y + c*s.P2.Y + d*s.P3.Y,
	}
}

// Derivative returns dP/dt at local t.
func (s Segment) Derivative(t float64) Vec2 {
	if s.Kind == LineSegment {
		return s.P1.Sub(s.P0)
	}
	t = clamp(t, 0, 1)
	mt := 1 - t
	d0 := s.P1.Sub(s.P0).Scale(3 * mt * mt)
	d1 := s.P2.Sub(s.P1).Scale(6 * mt * t)
	d2 := s.P3.Sub(s.P2).Scale(3 * t * t)
	return d0.Add(d1).Add(d2)
}

// TangentAt returns the unit tangent at local t. Where the derivative
// vanishes (a control point on an endpoint) the direction towards the next
// distinct control point is used.
func (s Segment) TangentAt(t float64) Vec2 {
	d := s.Derivative(t)
	if d.Length() > 1e-12 {
		return d.Normalize()
	}
	if s.Kind == CubicSegment {
		if t < 0.5 {
			for _, p := range [...]Vec2{s.P2, s.P3} {
				if v := p.Sub(s.P0); v.Length() > 1e-12 {
					return v.Normalize()
				}
			}
		} else {
			for _, p := range [...]Vec2{s.P1, s.P0} {
				if v := s.P3.Sub(p); v.Length() > 1e-12 {
					return v.Normalize()
				}
			}
		}
	}
	return Vec2{}
}

// Split divides the segment at local t with de Casteljau's construction.
func (s Segment) Split(t float64) (Segment, Segment) {
	if s.Kind == LineSegment {
		m := s.PointAt(t)
		return Line(s.P0, m), Line(m, s.P1)
	}
	p01 := s.P0.Lerp(s.P1, t)
	p12 := s.P1.Lerp(s.P2, t)
	p23 := s.P2.Lerp(s.P3, t)
	p012 := p01.Lerp(p12, t)
	p123 := p12.Lerp(p23, t)
	m := p012.Lerp(p123, t)
	switch {
	case t <= 0:
		m = s.P0
	case t >= 1:
		m = s.P3
	}
	return Cubic(s.P0, p01, p012, m), Cubic(m, p123, p23, s.P3)
}

// Subsegment returns the part of s between local t0 and t1, t0 < t1. Ends at
// 0 or 1 keep the original endpoints bit for bit so joints stay connected.
func (s Segment) Subsegment(t0, t1 float64) Segment {
	t0, t1 = clamp(t0, 0, 1), clamp(t1, 0, 1)
	out := segmentFrom(s.seg().Subsegment(t0, t1))
	if t0 == 0 {
		out.P0 = s.P0
	}
	if t1 == 1 {
		out.setEnd(s.End())
	}
	return out
}

// Length estimates the arc length to within accuracy.
func (s Segment) Length(accuracy float64) float64 {
	return s.seg().Arclen(accuracy)
}

// ControlBox returns the bounding box of the control points, which contains
// the whole segment.
func (s Segment) ControlBox() Rect {
	r := RectFromPoints(s.P0, s.P1)
	if s.Kind == CubicSegment {
		r = r.Union(RectFromPoints(s.P2, s.P3))
	}
	return r
}

// BoundingBox returns the tight axis-aligned bounds of the segment.
func (s Segment) BoundingBox() Rect {
	b := s.seg().BoundingBox()
	return RectFromPoints(Vec2{b.X0, b.Y0}, Vec2{b.X1, b.Y1})
}

// Flatness returns the largest distance from an inner control point to the
// chord. It is 0 for lines.
func (s Segment) Flatness() float64 {
	if s.Kind == LineSegment {
		return 0
	}
	return max(pointLineDistance(s.P1, s.P0, s.P3), pointLineDistance(s.P2, s.P0, s.P3))
}

func pointLineDistance(p, a, b Vec2) float64 {
	ab := b.Sub(a)
	l := ab.Length()
	if l < 1e-12 {
		return p.Sub(a).Length()
	}
	return math.Abs(ab.Cross(p.Sub(a))) / l
}

// Map returns the segment with f applied to every control point.
func (s Segment) Map(f func(Vec2) Vec2) Segment {
	s.P0, s.P1 = f(s.P0), f(s.P1)
	if s.Kind == CubicSegment {
		s.P2, s.P3 = f(s.P2), f(s.P3)
	}
	return s
}

// Transform applies m to the segment. Affine maps preserve Bézier control
// polygons, so transforming control points is exact.
func (s Segment) Transform(m Matrix) Segment {
	return s.Map(m.Apply)
}

// Reverse returns the segment traversed from end to start.
func (s Segment) Reverse() Segment {
	return segmentFrom(s.seg().Reverse())
}

// seg converts s to the curve package's segment type.
func (s Segment) seg() curve.PathSegment {
	if s.Kind == LineSegment {
		return curve.PathSegment{Kind: curve.LineKind, P0: s.P0.pt(), P1: s.P1.pt()}
	}
	return curve.PathSegment{Kind: curve.CubicKind, P0: s.P0.pt(), P1: s.P1.pt(), P2: s.P2.pt(), P3: s.P3.pt()}
}

// segmentFrom converts a curve segment back. Quadratics are raised to cubics.
func segmentFrom(ps curve.PathSegment) Segment {
	switch ps.Kind {
	case curve.LineKind:
		return Line(fromPt(ps.P0), fromPt(ps.P1))
	case curve.QuadKind:
		p0, q, p := fromPt(ps.P0), fromPt(ps.P1), fromPt(ps.P2)
		return Cubic(p0, p0.Lerp(q, 2.0/3), p.Lerp(q, 2.0/3), p)
	default:
		return Cubic(fromPt(ps.P0), fromPt(ps.P1), fromPt(ps.P2), fromPt(ps.P3))
	}
}

func (s *Segment) setEnd(p Vec2) {
	if s.Kind == LineSegment {
		s.P1 = p
	} else {
		s.P3 = p
	}
}
