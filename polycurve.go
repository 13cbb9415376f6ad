package s2

import (
	"fmt"
	"iter"
	"math"

	"honnef.co/go/curve"
)

// DefaultArcLengthAccuracy is the arc length accuracy used by new curves.
const DefaultArcLengthAccuracy = 1e-6

// PolyCurve is an ordered chain of line and cubic segments expressed in one
// space. A segment that does not start where the previous one ended, or that
// follows a closed segment, starts a new subpath.
//
// Cumulative lengths are cached and dropped whenever a segment is appended.
// Callers that regenerate geometry each update call Clear and re-append.
type PolyCurve struct {
	segments   []Segment
	closeAfter []bool
	space      Space

	start  Vec2 // start of the current subpath
	end    Vec2 // current point
	hasEnd bool

	accuracy float64
	samples  int
	lengths  []float64 // cumulative, len(segments)+1; nil when stale
	table    *ArcLengthTable
}

// NewPolyCurve returns an empty curve in space.
func NewPolyCurve(space Space) *PolyCurve {
	return &PolyCurve{space: space, accuracy: DefaultArcLengthAccuracy, samples: DefaultArcLengthSamples}
}

// Space returns the space control points are expressed in.
func (c *PolyCurve) Space() Space { return c.space }

// SetSpace relabels the curve without converting its points.
func (c *PolyCurve) SetSpace(space Space) { c.space = space }

// SetAccuracy sets the arc length accuracy used by UpdateLength.
func (c *PolyCurve) SetAccuracy(acc float64) {
	if acc <= 0 {
		panic("s2: arc length accuracy must be positive")
	}
	c.accuracy = acc
	c.invalidate()
}

// SetArcLengthSamples sets the resolution of the table behind ParamAtLength,
// PointAtLength and PartialByLength.
func (c *PolyCurve) SetArcLengthSamples(n int) {
	if n < 1 {
		panic("s2: arc length samples must be at least 1")
	}
	c.samples = n
	c.table = nil
}

// ArcLengthSamples returns the table resolution.
func (c *PolyCurve) ArcLengthSamples() int { return c.samples }

// Len returns the number of segments. Global parameters range over [0, Len].
func (c *PolyCurve) Len() int { return len(c.segments) }

// IsEmpty reports whether the curve has no segments.
func (c *PolyCurve) IsEmpty() bool { return len(c.segments) == 0 }

// Segment returns segment i.
func (c *PolyCurve) Segment(i int) Segment { return c.segments[i] }

// Segments returns the segment list. The returned slice MUST NOT be mutated
// by the caller.
func (c *PolyCurve) Segments() []Segment { return c.segments }

// ClosedAfter reports whether the subpath is closed after segment i.
func (c *PolyCurve) ClosedAfter(i int) bool { return c.closeAfter[i] }

// CurrentPoint returns the end of the last segment or the last MoveTo.
func (c *PolyCurve) CurrentPoint() Vec2 { return c.end }

// Clone returns an independent copy.
func (c *PolyCurve) Clone() *PolyCurve {
	out := &PolyCurve{
		segments:   append([]Segment(nil), c.segments...),
		closeAfter: append([]bool(nil), c.closeAfter...),
		space:      c.space,
		start:      c.start,
		end:        c.end,
		hasEnd:     c.hasEnd,
		accuracy:   c.accuracy,
		samples:    c.samples,
	}
	return out
}

func (c *PolyCurve) invalidate() {
	c.lengths = nil
	c.table = nil
}

// --- Authoring ---

// Clear removes every segment and keeps the space and accuracy.
func (c *PolyCurve) Clear() {
	c.segments = c.segments[:0]
	c.closeAfter = c.closeAfter[:0]
	c.start, c.end, c.hasEnd = Vec2{}, Vec2{}, false
	c.invalidate()
}

// MoveTo starts a new subpath at p.
func (c *PolyCurve) MoveTo(p Vec2) {
	c.start, c.end, c.hasEnd = p, p, true
}

// LineTo appends a line from the current point to p.
func (c *PolyCurve) LineTo(p Vec2) {
	c.AddLine(c.end, p)
}

// CubicTo appends a cubic from the current point with controls c1, c2.
func (c *PolyCurve) CubicTo(c1, c2, p Vec2) {
	c.AddCubic(c.end, c1, c2, p)
}

// SmoothCubicTo appends a cubic whose first control point mirrors the second
// control point of the previous cubic around the current point. Without a
// previous cubic the first control point is the current point.
func (c *PolyCurve) SmoothCubicTo(c2, p Vec2) {
	c1 := c.end
	if n := len(c.segments); n > 0 && !c.closeAfter[n-1] {
		if prev := c.segments[n-1]; prev.Kind == CubicSegment && prev.P3 == c.end {
			c1 = c.end.Scale(2).Sub(prev.P2)
		}
	}
	c.AddCubic(c.end, c1, c2, p)
}

// AddLine appends a line from a to b.
func (c *PolyCurve) AddLine(a, b Vec2) {
	c.Append(Line(a, b))
}

// AddCubic appends a cubic Bézier.
func (c *PolyCurve) AddCubic(p0, p1, p2, p3 Vec2) {
	c.Append(Cubic(p0, p1, p2, p3))
}

// Append adds s and moves the current point to its end.
func (c *PolyCurve) Append(s Segment) {
	if !c.hasEnd || s.P0 != c.end || c.lastClosed() {
		c.start = s.P0
	}
	c.segments = append(c.segments, s)
	c.closeAfter = append(c.closeAfter, false)
	c.end, c.hasEnd = s.End(), true
	c.invalidate()
}

// Close closes the current subpath. The current point returns to the
// subpath start. No-op on an empty curve.
func (c *PolyCurve) Close() {
	n := len(c.segments)
	if n == 0 {
		return
	}
	c.closeAfter[n-1] = true
	c.end = c.start
}

func (c *PolyCurve) lastClosed() bool {
	n := len(c.closeAfter)
	return n > 0 && c.closeAfter[n-1]
}

// startsSubpath reports whether segment i begins a new subpath.
func (c *PolyCurve) startsSubpath(i int) bool {
	return i == 0 || c.closeAfter[i-1] || c.segments[i].P0 != c.segments[i-1].End()
}

// subpathStart returns the index of the first segment of i's subpath.
func (c *PolyCurve) subpathStart(i int) int {
	for !c.startsSubpath(i) {
		i--
	}
	return i
}

// --- Sampling ---

// locate splits a global parameter into a segment index and a local
// parameter. Values outside [0, Len] clamp to the ends.
func (c *PolyCurve) locate(t float64) (int, float64) {
	n := len(c.segments)
	if t <= 0 || math.IsNaN(t) {
		return 0, 0
	}
	if t >= float64(n) {
		return n - 1, 1
	}
	i := int(math.Floor(t))
	return i, t - float64(i)
}

// PointAt evaluates the curve at global t in [0, Len]: the integer part
// selects the segment, the fractional part is the local parameter.
func (c *PolyCurve) PointAt(t float64) Vec2 {
	if len(c.segments) == 0 {
		return c.end
	}
	i, u := c.locate(t)
	return c.segments[i].PointAt(u)
}

// TangentAt returns the unit tangent at global t.
func (c *PolyCurve) TangentAt(t float64) Vec2 {
	if len(c.segments) == 0 {
		return Vec2{}
	}
	i, u := c.locate(t)
	return c.segments[i].TangentAt(u)
}

// NormalAt returns the unit tangent rotated a quarter turn counter-clockwise.
func (c *PolyCurve) NormalAt(t float64) Vec2 {
	return c.TangentAt(t).Perp()
}

// --- Lengths ---

// UpdateLength recomputes the per-segment arc lengths and their prefix sums.
func (c *PolyCurve) UpdateLength() {
	lengths := make([]float64, len(c.segments)+1)
	for i, s := range c.segments {
		lengths[i+1] = lengths[i] + s.Length(c.accuracy)
	}
	c.lengths = lengths
}

func (c *PolyCurve) cumulative() []float64 {
	if c.lengths == nil {
		c.UpdateLength()
	}
	return c.lengths
}

// Length returns the total arc length.
func (c *PolyCurve) Length() float64 {
	l := c.cumulative()
	return l[len(l)-1]
}

// SegmentLength returns the arc length of segment i.
func (c *PolyCurve) SegmentLength(i int) float64 {
	l := c.cumulative()
	return l[i+1] - l[i]
}

// LengthAt returns the arc length from the start to global t.
func (c *PolyCurve) LengthAt(t float64) float64 {
	if len(c.segments) == 0 {
		return 0
	}
	l := c.cumulative()
	i, u := c.locate(t)
	if u == 0 {
		return l[i]
	}
	if u == 1 {
		return l[i+1]
	}
	return l[i] + c.segments[i].Subsegment(0, u).Length(c.accuracy)
}

// --- Output ---

// PathCommandKind tags a PathCommand.
type PathCommandKind uint8

const (
	MoveToCommand PathCommandKind = iota
	LineToCommand
	CubicToCommand
	CloseCommand
)

func (k PathCommandKind) String() string {
	switch k {
	case MoveToCommand:
		return "M"
	case LineToCommand:
		return "L"
	case CubicToCommand:
		return "C"
	case CloseCommand:
		return "Z"
	default:
		return fmt.Sprintf("PathCommandKind(%d)", uint8(k))
	}
}

// PathCommand is one drawing instruction. MoveTo and LineTo use Points[0],
// CubicTo uses all three (two controls then the end point), Close none.
type PathCommand struct {
	Kind   PathCommandKind
	Points [3]Vec2
}

// PathCommands returns the curve as move/line/cubic/close instructions in
// the curve's space.
func (c *PolyCurve) PathCommands() []PathCommand {
	var out []PathCommand
	for i, s := range c.segments {
		if c.startsSubpath(i) {
			out = append(out, PathCommand{Kind: MoveToCommand, Points: [3]Vec2{s.P0}})
		}
		switch s.Kind {
		case LineSegment:
			out = append(out, PathCommand{Kind: LineToCommand, Points: [3]Vec2{s.P1}})
		case CubicSegment:
			out = append(out, PathCommand{Kind: CubicToCommand, Points: [3]Vec2{s.P1, s.P2, s.P3}})
		}
		if c.closeAfter[i] {
			out = append(out, PathCommand{Kind: CloseCommand})
		}
	}
	return out
}

// PathElements yields the curve as curve.PathElement values for code built
// on the curve package.
func (c *PolyCurve) PathElements() iter.Seq[curve.PathElement] {
	return func(yield func(curve.PathElement) bool) {
		for _, cmd := range c.PathCommands() {
			var el curve.PathElement
			switch cmd.Kind {
			case MoveToCommand:
				el = curve.PathElement{Kind: curve.MoveToKind, P0: cmd.Points[0].pt()}
			case LineToCommand:
				el = curve.PathElement{Kind: curve.LineToKind, P0: cmd.Points[0].pt()}
			case CubicToCommand:
				el = curve.PathElement{
					Kind: curve.CubicToKind,
					P0:   cmd.Points[0].pt(),
					P1:   cmd.Points[1].pt(),
					P2:   cmd.Points[2].pt(),
				}
			case CloseCommand:
				el = curve.PathElement{Kind: curve.ClosePathKind}
			}
			if !yield(el) {
				return
			}
		}
	}
}

// AppendPathElements appends elements produced by the curve package. Quadratic
// elements are raised to cubics.
func (c *PolyCurve) AppendPathElements(path iter.Seq[curve.PathElement]) {
	for el := range path {
		switch el.Kind {
		case curve.MoveToKind:
			c.MoveTo(fromPt(el.P0))
		case curve.LineToKind:
			c.LineTo(fromPt(el.P0))
		case curve.QuadToKind:
			p0, q, p := c.end, fromPt(el.P0), fromPt(el.P1)
			c.CubicTo(p0.Lerp(q, 2.0/3), p.Lerp(q, 2.0/3), p)
		case curve.CubicToKind:
			c.CubicTo(fromPt(el.P0), fromPt(el.P1), fromPt(el.P2))
		case curve.ClosePathKind:
			c.Close()
		}
	}
}

// Map returns a copy with f applied to every control point.
func (c *PolyCurve) Map(f func(Vec2) Vec2) *PolyCurve {
	out := c.Clone()
	for i := range out.segments {
		out.segments[i] = out.segments[i].Map(f)
	}
	out.start, out.end = f(out.start), f(out.end)
	return out
}

// Transform returns a copy with m applied to every control point.
func (c *PolyCurve) Transform(m Matrix) *PolyCurve {
	return c.Map(m.Apply)
}

// InSpace returns a copy expressed in space. The camera transform is affine,
// so converting control points is exact.
func (c *PolyCurve) InSpace(space Space, cam *Camera) *PolyCurve {
	if space == c.space {
		return c.Clone()
	}
	from := c.space
	out := c.Map(func(p Vec2) Vec2 { return ConvertPoint(p, from, space, cam) })
	out.space = space
	return out
}

// BoundingBox returns the tight bounds of all segments, or the zero Rect for
// an empty curve.
func (c *PolyCurve) BoundingBox() Rect {
	if len(c.segments) == 0 {
		return Rect{}
	}
	r := c.segments[0].BoundingBox()
	for _, s := range c.segments[1:] {
		r = r.Union(s.BoundingBox())
	}
	return r
}
