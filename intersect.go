package s2

import "math"

// Defaults used by NewIntersector.
const (
	DefaultIntersectTolerance = 1e-2
	DefaultIntersectMaxDepth  = 20
)

// Intersection is one crossing of two curves. TA and TB are local
// parameters in [0, 1] of segments SegmentA and SegmentB; the global
// parameters are SegmentA+TA and SegmentB+TB.
type Intersection struct {
	TA, TB             float64
	SegmentA, SegmentB int
	Point              Vec2
}

// GlobalA returns the global parameter on the first curve.
func (x Intersection) GlobalA() float64 { return float64(x.SegmentA) + x.TA }

// GlobalB returns the global parameter on the second curve.
func (x Intersection) GlobalB() float64 { return float64(x.SegmentB) + x.TB }

// Intersector finds curve crossings by adaptive subdivision. Its settings
// are reused across calls and it keeps no state about the curves.
//
// Each pair of pieces is pruned when their control boxes are disjoint. Pieces
// whose inner control points lie within the tolerance of their chord count as
// flat; once both are flat, or the depth cap is hit, the chords are
// intersected. Otherwise the non-flat pieces are halved and the pairs
// visited in a fixed order, so results are deterministic. Hits closer than the
// tolerance to an earlier hit are dropped.
//
// Accuracy is bounded by the tolerance. Near-tangent crossings may be missed
// and overlapping collinear pieces report no hit.
type Intersector struct {
	tolerance float64
	maxDepth  int
}

// NewIntersector returns an intersector with the default tolerance and depth.
func NewIntersector() *Intersector {
	return &Intersector{
		tolerance: DefaultIntersectTolerance,
		maxDepth:  DefaultIntersectMaxDepth,
	}
}

// SetTolerance sets the flatness tolerance and returns x.
func (x *Intersector) SetTolerance(eps float64) *Intersector {
	if eps <= 0 {
		panic("s2: intersection tolerance must be positive")
	}
	x.tolerance = eps
	return x
}

// SetMaxDepth sets the subdivision depth cap and returns x.
func (x *Intersector) SetMaxDepth(d int) *Intersector {
	if d < 0 {
		panic("s2: intersection depth must not be negative")
	}
	x.maxDepth = d
	return x
}

// Tolerance returns the flatness tolerance.
func (x *Intersector) Tolerance() float64 { return x.tolerance }

// MaxDepth returns the subdivision depth cap.
func (x *Intersector) MaxDepth() int { return x.maxDepth }

// Intersect returns the crossings of a and b in segment order of a, then b.
// Both curves must be in the same space.
func (x *Intersector) Intersect(a, b *PolyCurve) []Intersection {
	if a.space != b.space {
		panic("s2: intersecting curves in different spaces")
	}
	var out []Intersection
	for i, sa := range a.segments {
		boxA := sa.ControlBox().Inset(x.tolerance)
		for j, sb := range b.segments {
			if !boxA.Intersects(sb.ControlBox()) {
				continue
			}
			for _, hit := range x.IntersectSegments(sa, sb) {
				hit.SegmentA, hit.SegmentB = i, j
				out = x.appendUnique(out, hit)
			}
		}
	}
	Logger().Debug("intersect", "segmentsA", len(a.segments), "segmentsB", len(b.segments), "hits", len(out))
	return out
}

// IntersectSegments returns the crossings of two segments. SegmentA and
// SegmentB are 0.
func (x *Intersector) IntersectSegments(a, b Segment) []Intersection {
	var out []Intersection
	x.subdivide(a, b, piece{a, 0, 1}, piece{b, 0, 1}, 0, &out)
	return out
}

// piece is a sub-curve covering [t0, t1] of its original segment.
type piece struct {
	seg    Segment
	t0, t1 float64
}

func (p piece) halve() (piece, piece) {
	l, r := p.seg.Split(0.5)
	m := (p.t0 + p.t1) / 2
	return piece{l, p.t0, m}, piece{r, m, p.t1}
}

func (x *Intersector) subdivide(origA, origB Segment, a, b piece, depth int, out *[]Intersection) {
	if !a.seg.ControlBox().Inset(x.tolerance / 2).Intersects(b.seg.ControlBox()) {
		return
	}
	flatA := a.seg.Flatness() <= x.tolerance
	flatB := b.seg.Flatness() <= x.tolerance
	if (flatA && flatB) || depth >= x.maxDepth {
		ua, ub, ok := chordIntersection(a.seg.P0, a.seg.End(), b.seg.P0, b.seg.End())
		if !ok {
			return
		}
		ta := clamp(a.t0+ua*(a.t1-a.t0), 0, 1)
		tb := clamp(b.t0+ub*(b.t1-b.t0), 0, 1)
		hit := Intersection{TA: ta, TB: tb, Point: origA.PointAt(ta)}
		*out = x.appendUnique(*out, hit)
		return
	}

	switch {
	case flatA:
		b1, b2 := b.halve()
		x.subdivide(origA, origB, a, b1, depth+1, out)
		x.subdivide(origA, origB, a, b2, depth+1, out)
	case flatB:
		a1, a2 := a.halve()
		x.subdivide(origA, origB, a1, b, depth+1, out)
		x.subdivide(origA, origB, a2, b, depth+1, out)
	default:
		a1, a2 := a.halve()
		b1, b2 := b.halve()
		x.subdivide(origA, origB, a1, b1, depth+1, out)
		x.subdivide(origA, origB, a1, b2, depth+1, out)
		x.subdivide(origA, origB, a2, b1, depth+1, out)
		x.subdivide(origA, origB, a2, b2, depth+1, out)
	}
}

// chordSlack admits hits that land just past a chord end because of
// rounding, so crossings on a split point are not lost between halves.
const chordSlack = 1e-9

// chordIntersection intersects segments p0p1 and q0q1 and returns the
// parameters along each. Parallel chords report no hit.
func chordIntersection(p0, p1, q0, q1 Vec2) (float64, float64, bool) {
	r := p1.Sub(p0)
	s := q1.Sub(q0)
	den := r.Cross(s)
	if math.Abs(den) < 1e-12*max(1, r.Length()*s.Length()) {
		return 0, 0, false
	}
	qp := q0.Sub(p0)
	u := qp.Cross(s) / den
	v := qp.Cross(r) / den
	if u < -chordSlack || u > 1+chordSlack || v < -chordSlack || v > 1+chordSlack {
		return 0, 0, false
	}
	return clamp(u, 0, 1), clamp(v, 0, 1), true
}

func (x *Intersector) appendUnique(out []Intersection, hit Intersection) []Intersection {
	for _, h := range out {
		if h.Point.Sub(hit.Point).Length() <= x.tolerance {
			return out
		}
	}
	return append(out, hit)
}
