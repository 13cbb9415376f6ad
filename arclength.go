package s2

import (
	"math"
	"sort"
)

// DefaultArcLengthSamples is the table resolution of new curves.
const DefaultArcLengthSamples = 64

// ArcLengthTable maps normalized arc length u in [0, 1] to a global curve
// parameter. It samples each segment, measures the pieces between samples and
// inverts the cumulative sums piecewise linearly.
type ArcLengthTable struct {
	u      []float64 // normalized cumulative length, non-decreasing
	t      []float64 // global parameter at each sample
	length float64
}

// ArcLengthTable builds a table with at least n samples spread over the
// segments, at least one interval per segment.
func (c *PolyCurve) ArcLengthTable(n int) *ArcLengthTable {
	segs := len(c.segments)
	if segs == 0 {
		return &ArcLengthTable{u: []float64{0}, t: []float64{0}}
	}
	per := max(1, (n+segs-1)/segs)

	ts := make([]float64, 0, segs*per+1)
	ls := make([]float64, 0, segs*per+1)
	ts = append(ts, 0)
	ls = append(ls, 0)
	acc := 0.0
	for i, s := range c.segments {
		for j := range per {
			a := float64(j) / float64(per)
			b := float64(j+1) / float64(per)
			acc += s.Subsegment(a, b).Length(c.accuracy / float64(per))
			ts = append(ts, float64(i)+b)
			ls = append(ls, acc)
		}
	}

	tab := &ArcLengthTable{t: ts, u: ls, length: acc}
	if acc > 0 {
		for i := range tab.u {
			tab.u[i] /= acc
		}
		tab.u[len(tab.u)-1] = 1
	} else {
		// Zero-length curve: spread u uniformly so the mapping stays defined.
		for i := range tab.u {
			tab.u[i] = float64(i) / float64(len(tab.u)-1)
		}
	}
	return tab
}

// Len returns the number of samples.
func (a *ArcLengthTable) Len() int { return len(a.t) }

// Length returns the total length measured while building the table.
func (a *ArcLengthTable) Length() float64 { return a.length }

// Param returns the global parameter at normalized length u. u is clamped to
// [0, 1].
func (a *ArcLengthTable) Param(u float64) float64 {
	if len(a.t) == 1 || u <= 0 || math.IsNaN(u) {
		return a.t[0]
	}
	if u >= 1 {
		return a.t[len(a.t)-1]
	}
	// First sample with u[i] >= target.
	i := sort.SearchFloat64s(a.u, u)
	if a.u[i] == u {
		return a.t[i]
	}
	u0, u1 := a.u[i-1], a.u[i]
	t0, t1 := a.t[i-1], a.t[i]
	if u1 == u0 {
		return t0
	}
	return t0 + (t1-t0)*(u-u0)/(u1-u0)
}

// Fraction returns the normalized length at global parameter t, the inverse
// of Param.
func (a *ArcLengthTable) Fraction(t float64) float64 {
	if len(a.t) == 1 || t <= a.t[0] {
		return 0
	}
	if t >= a.t[len(a.t)-1] {
		return 1
	}
	i := sort.SearchFloat64s(a.t, t)
	if a.t[i] == t {
		return a.u[i]
	}
	t0, t1 := a.t[i-1], a.t[i]
	return a.u[i-1] + (a.u[i]-a.u[i-1])*(t-t0)/(t1-t0)
}

func (c *PolyCurve) defaultTable() *ArcLengthTable {
	if c.table == nil {
		c.table = c.ArcLengthTable(c.samples)
	}
	return c.table
}

// ParamAtLength returns the global parameter at normalized arc length u.
func (c *PolyCurve) ParamAtLength(u float64) float64 {
	return c.defaultTable().Param(u)
}

// PointAtLength returns the point at normalized arc length u.
func (c *PolyCurve) PointAtLength(u float64) Vec2 {
	return c.PointAt(c.ParamAtLength(u))
}

// UniformParams returns n global parameters spaced evenly by arc length,
// first and last on the curve ends.
func (c *PolyCurve) UniformParams(n int) []float64 {
	if n <= 0 {
		return nil
	}
	tab := c.ArcLengthTable(max(n, c.samples))
	out := make([]float64, n)
	if n == 1 {
		return out
	}
	for i := range out {
		out[i] = tab.Param(float64(i) / float64(n-1))
	}
	return out
}

// UniformPoints returns n points spaced evenly by arc length.
func (c *PolyCurve) UniformPoints(n int) []Vec2 {
	params := c.UniformParams(n)
	out := make([]Vec2, len(params))
	for i, t := range params {
		out[i] = c.PointAt(t)
	}
	return out
}
