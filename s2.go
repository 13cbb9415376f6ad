package s2

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
	"honnef.co/go/curve"
)

// Vec2 is a 2D vector used for points, offsets, extents and directions
// throughout the API. Whether it is a world or a view quantity is carried by
// the value or curve that holds it, never by the vector itself.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Mul returns the component-wise product of v and o.
func (v Vec2) Mul(o Vec2) Vec2 { return Vec2{v.X * o.X, v.Y * o.Y} }

// Dot returns the dot product of v and o.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the z component of the 3D cross product of v and o.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Length returns the Euclidean norm of v.
func (v Vec2) Length() float64 { return math.Hypot(v.X, v.Y) }

// Normalize returns v scaled to unit length. The zero vector is returned
// unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Length()
	if l < 1e-12 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Perp returns v rotated a quarter turn counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

// Lerp interpolates between v (t = 0) and o (t = 1).
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return Vec2{lerp(v.X, o.X, t), lerp(v.Y, o.Y, t)}
}

// Near reports whether v and o differ by less than eps on both axes.
func (v Vec2) Near(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) < eps && math.Abs(v.Y-o.Y) < eps
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%g, %g)", v.X, v.Y)
}

func (v Vec2) pt() curve.Point { return curve.Point{X: v.X, Y: v.Y} }

func fromPt(p curve.Point) Vec2 { return Vec2{p.X, p.Y} }

// Rect is an axis-aligned rectangle given by its minimum corner and size. In
// world space the minimum corner is the bottom-left, in view space the
// top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// RectFromPoints returns the smallest rectangle containing a and b.
func RectFromPoints(a, b Vec2) Rect {
	x0, x1 := min(a.X, b.X), max(a.X, b.X)
	y0, y1 := min(a.Y, b.Y), max(a.Y, b.Y)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Union returns the smallest rect containing both rects.
func (r Rect) Union(other Rect) Rect {
	x0 := min(r.X, other.X)
	y0 := min(r.Y, other.Y)
	x1 := max(r.X+r.Width, other.X+other.Width)
	y1 := max(r.Y+r.Height, other.Y+other.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Inset grows the rectangle by d on every side (shrinks it for negative d).
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X - d, Y: r.Y - d, Width: r.Width + 2*d, Height: r.Height + 2*d}
}

// Center returns the center point of the rect.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// Max returns the corner opposite to (X, Y).
func (r Rect) Max() Vec2 {
	return Vec2{r.X + r.Width, r.Y + r.Height}
}

// Space tags every spatial quantity with the frame it is expressed in.
type Space uint8

const (
	World Space = iota // logical, camera-independent frame (Y up)
	View               // camera-projected pixel frame (Y down)
)

func (s Space) String() string {
	switch s {
	case World:
		return "world"
	case View:
		return "view"
	default:
		return fmt.Sprintf("Space(%d)", uint8(s))
	}
}

// State tells whether a style value is set directly on its node or falls back
// to the nearest ancestor that sets it.
type State uint8

const (
	Explicit State = iota
	Inherited
)

func (s State) String() string {
	switch s {
	case Explicit:
		return "explicit"
	case Inherited:
		return "inherited"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// AngleUnit selects how rotation angles are interpreted.
type AngleUnit uint8

const (
	Radians AngleUnit = iota
	Degrees
)

func (u AngleUnit) radians(angle float64) float64 {
	if u == Degrees {
		return angle * math.Pi / 180
	}
	return angle
}

func lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

func clamp[T constraints.Ordered](x, lo, hi T) T {
	return max(lo, min(x, hi))
}
