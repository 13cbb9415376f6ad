package s2

import "math"

// nearestAccuracy bounds the error of the quadratic approximation used to
// find nearest points on cubics.
const nearestAccuracy = 1e-6

// Nearest returns the local parameter of the point on s closest to p and the
// distance to it.
func (s Segment) Nearest(p Vec2) (t, dist float64) {
	d2, t := s.seg().Nearest(p.pt(), nearestAccuracy)
	return t, math.Sqrt(d2)
}

// Nearest returns the global parameter of the point on c closest to p and the
// distance to it. An empty curve reports an infinite distance.
func (c *PolyCurve) Nearest(p Vec2) (t, dist float64) {
	dist = math.Inf(1)
	for i, s := range c.segments {
		if u, d := s.Nearest(p); d < dist {
			t, dist = float64(i)+u, d
		}
	}
	return t, dist
}

// Contains reports whether p lies inside the closed subpaths of c with the
// non-zero winding rule. Open subpaths are ignored.
func (c *PolyCurve) Contains(p Vec2) bool {
	winding := 0
	for i, s := range c.segments {
		if !c.closedSubpath(i) {
			continue
		}
		winding += s.seg().Winding(p.pt())
		if c.closeAfter[i] {
			// The implicit closing line.
			start := c.segments[c.subpathStart(i)].Start()
			winding += Line(s.End(), start).seg().Winding(p.pt())
		}
	}
	return winding != 0
}

func (c *PolyCurve) closedSubpath(i int) bool {
	for j := i; j < len(c.segments); j++ {
		if c.closeAfter[j] {
			return true
		}
		if j+1 < len(c.segments) && c.startsSubpath(j+1) {
			return false
		}
	}
	return false
}

// Pick returns the topmost figure whose view-space curve passes within
// tolerance pixels of the view point p, or whose filled interior contains it.
// Figures are tested in reverse drawing order. Returns nil when nothing is
// hit.
func (s *Scene) Pick(p Vec2, tolerance float64) Figure {
	figs := s.Figures()
	for i := len(figs) - 1; i >= 0; i-- {
		f := figs[i]
		c := f.Curve()
		if c.IsEmpty() {
			continue
		}
		if !c.BoundingBox().Inset(tolerance).Contains(p.X, p.Y) {
			continue
		}
		if _, d := c.Nearest(p); d <= tolerance {
			return f
		}
		if s.graph.Fill(f.Node()).A > 0 && c.Contains(p) {
			return f
		}
	}
	return nil
}
