package s2

import "math"

// PartialFrom returns a new curve covering global parameters [t, Len].
func (c *PolyCurve) PartialFrom(t float64) *PolyCurve {
	return c.PartialRange(t, math.Inf(1))
}

// PartialTo returns a new curve covering global parameters [0, t].
func (c *PolyCurve) PartialTo(t float64) *PolyCurve {
	return c.PartialRange(math.Inf(-1), t)
}

// PartialRange returns a new curve covering global parameters [t0, t1].
// Values below 0 or above Len leave that side unbounded. Segments cut by a
// boundary are split with de Casteljau's construction. t0 >= t1 yields an
// empty curve.
//
// A closed subpath keeps its closing edge only when the range covers the
// whole subpath.
func (c *PolyCurve) PartialRange(t0, t1 float64) *PolyCurve {
	out := NewPolyCurve(c.space)
	out.accuracy = c.accuracy
	out.samples = c.samples

	n := float64(len(c.segments))
	t0 = max(t0, 0)
	t1 = min(t1, n)
	if n == 0 || !(t0 < t1) {
		return out
	}

	i0, u0 := c.locate(t0)
	i1, u1 := c.locate(t1)
	// An end exactly on a joint belongs to the segment before it.
	if u1 == 0 && i1 > 0 {
		i1, u1 = i1-1, 1
	}
	// A start exactly at the end of a segment belongs to the one after it.
	if u0 == 1 && i0+1 < len(c.segments) {
		i0, u0 = i0+1, 0
	}

	for i := i0; i <= i1; i++ {
		a, b := 0.0, 1.0
		if i == i0 {
			a = u0
		}
		if i == i1 {
			b = u1
		}
		s := c.segments[i]
		if a > 0 || b < 1 {
			s = s.Subsegment(a, b)
		}
		out.Append(s)
		if c.closeAfter[i] && b == 1 {
			start := c.subpathStart(i)
			if start > i0 || (start == i0 && u0 == 0) {
				out.Close()
			}
		}
	}
	return out
}

// PartialByLength returns a new curve covering normalized arc lengths
// [u0, u1].
func (c *PolyCurve) PartialByLength(u0, u1 float64) *PolyCurve {
	if !(u0 < u1) {
		return c.PartialRange(1, 0)
	}
	t0, t1 := math.Inf(-1), math.Inf(1)
	if u0 > 0 {
		t0 = c.ParamAtLength(u0)
	}
	if u1 < 1 {
		t1 = c.ParamAtLength(u1)
	}
	return c.PartialRange(t0, t1)
}
