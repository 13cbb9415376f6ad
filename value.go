package s2

// valueCore holds what every typed value shares: the payload, the space it is
// expressed in (ignored by non-spatial kinds), the style state, the dirty
// flag and the owning node.
type valueCore[T comparable] struct {
	value T
	space Space
	state State
	dirty bool
	graph *Graph
	owner NodeID
}

// set stores v in space. Writing the current value is a no-op and reports
// false.
func (c *valueCore[T]) set(v T, space Space) bool {
	if c.value == v && c.space == space {
		return false
	}
	c.value, c.space = v, space
	c.SetDirty()
	return true
}

func (c *valueCore[T]) copyFrom(o *valueCore[T]) bool {
	if c.value == o.value && c.space == o.space && c.state == o.state {
		return false
	}
	c.value, c.space, c.state = o.value, o.space, o.state
	c.SetDirty()
	return true
}

// Attach makes node owner of the value. Later changes mark owner dirty.
func (c *valueCore[T]) Attach(g *Graph, owner NodeID) {
	c.graph, c.owner = g, owner
}

// Owner returns the owning node, or NoNode for a detached value.
func (c *valueCore[T]) Owner() NodeID {
	if c.graph == nil {
		return NoNode
	}
	return c.owner
}

// State returns whether the value is set here or inherited.
func (c *valueCore[T]) State() State { return c.state }

// SetState changes the style state. It reports whether anything changed.
func (c *valueCore[T]) SetState(s State) bool {
	if c.state == s {
		return false
	}
	c.state = s
	c.SetDirty()
	return true
}

// IsDirty reports whether the value changed since ClearDirty.
func (c *valueCore[T]) IsDirty() bool { return c.dirty }

// ClearDirty is called by the consumer once it has read the value.
func (c *valueCore[T]) ClearDirty() { c.dirty = false }

// SetDirty marks the value dirty and forwards to its owner, which continues
// up its own owner chain.
func (c *valueCore[T]) SetDirty() {
	c.dirty = true
	if c.graph != nil && c.graph.Valid(c.owner) {
		c.graph.SetDirty(c.owner)
	}
}

// FloatValue is a plain scalar such as an opacity or a bend factor.
type FloatValue struct {
	valueCore[float64]
}

// NewFloatValue returns an explicit, detached scalar.
func NewFloatValue(v float64) FloatValue {
	var f FloatValue
	f.value = v
	return f
}

// Get returns the scalar.
func (v *FloatValue) Get() float64 { return v.value }

// Set stores x and reports whether it changed.
func (v *FloatValue) Set(x float64) bool { return v.set(x, World) }

// Copy copies value and state from o.
func (v *FloatValue) Copy(o *FloatValue) bool { return v.copyFrom(&o.valueCore) }

// Lerp stores the interpolation of a and b.
func (v *FloatValue) Lerp(a, b *FloatValue, t float64) bool {
	return v.Set(lerp(a.value, b.value, t))
}

// LengthValue is a scalar distance in a space. Conversion uses the camera's
// X scale.
type LengthValue struct {
	valueCore[float64]
}

// NewLengthValue returns an explicit, detached length.
func NewLengthValue(l float64, space Space) LengthValue {
	var v LengthValue
	v.value, v.space = l, space
	return v
}

// Get returns the length in its own space.
func (v *LengthValue) Get() float64 { return v.value }

// Space returns the space the length is expressed in.
func (v *LengthValue) Space() Space { return v.space }

// Set stores l in space.
func (v *LengthValue) Set(l float64, space Space) bool { return v.set(l, space) }

// In returns the length converted to space.
func (v *LengthValue) In(space Space, cam *Camera) float64 {
	return ConvertLength(v.value, v.space, space, cam)
}

// Convert re-expresses the value in space without changing what it measures.
func (v *LengthValue) Convert(space Space, cam *Camera) bool {
	return v.set(v.In(space, cam), space)
}

// Copy copies value, space and state from o.
func (v *LengthValue) Copy(o *LengthValue) bool { return v.copyFrom(&o.valueCore) }

// Lerp interpolates between a and b in a's space. b is converted through cam
// when the spaces differ.
func (v *LengthValue) Lerp(a, b *LengthValue, t float64, cam *Camera) bool {
	lb := ConvertLength(b.value, b.space, a.space, cam)
	return v.set(lerp(a.value, lb, t), a.space)
}

// PositionValue is a point in a space.
type PositionValue struct {
	valueCore[Vec2]
}

// NewPositionValue returns an explicit, detached position.
func NewPositionValue(p Vec2, space Space) PositionValue {
	var v PositionValue
	v.value, v.space = p, space
	return v
}

// Get returns the point in its own space.
func (v *PositionValue) Get() Vec2 { return v.value }

// Space returns the space the point is expressed in.
func (v *PositionValue) Space() Space { return v.space }

// Set stores p in space.
func (v *PositionValue) Set(p Vec2, space Space) bool { return v.set(p, space) }

// In returns the point converted to space.
func (v *PositionValue) In(space Space, cam *Camera) Vec2 {
	return ConvertPoint(v.value, v.space, space, cam)
}

// Convert re-expresses the point in space.
func (v *PositionValue) Convert(space Space, cam *Camera) bool {
	return v.set(v.In(space, cam), space)
}

// Copy copies value, space and state from o.
func (v *PositionValue) Copy(o *PositionValue) bool { return v.copyFrom(&o.valueCore) }

// Lerp interpolates between a and b in a's space.
func (v *PositionValue) Lerp(a, b *PositionValue, t float64, cam *Camera) bool {
	pb := ConvertPoint(b.value, b.space, a.space, cam)
	return v.set(a.value.Lerp(pb, t), a.space)
}

// ExtentsValue is a pair of half-sizes in a space. Unlike a position it has
// no origin, so conversion only scales each axis.
type ExtentsValue struct {
	valueCore[Vec2]
}

// NewExtentsValue returns an explicit, detached extents value.
func NewExtentsValue(e Vec2, space Space) ExtentsValue {
	var v ExtentsValue
	v.value, v.space = e, space
	return v
}

// Get returns the half-sizes in their own space.
func (v *ExtentsValue) Get() Vec2 { return v.value }

// Space returns the space the extents are expressed in.
func (v *ExtentsValue) Space() Space { return v.space }

// Set stores e in space.
func (v *ExtentsValue) Set(e Vec2, space Space) bool { return v.set(e, space) }

// In returns the extents converted to space.
func (v *ExtentsValue) In(space Space, cam *Camera) Vec2 {
	return ConvertExtents(v.value, v.space, space, cam)
}

// Convert re-expresses the extents in space.
func (v *ExtentsValue) Convert(space Space, cam *Camera) bool {
	return v.set(v.In(space, cam), space)
}

// Copy copies value, space and state from o.
func (v *ExtentsValue) Copy(o *ExtentsValue) bool { return v.copyFrom(&o.valueCore) }

// Lerp interpolates between a and b in a's space.
func (v *ExtentsValue) Lerp(a, b *ExtentsValue, t float64, cam *Camera) bool {
	eb := ConvertExtents(b.value, b.space, a.space, cam)
	return v.set(a.value.Lerp(eb, t), a.space)
}

// ColorValue is a style color.
type ColorValue struct {
	valueCore[Color]
}

// NewColorValue returns an explicit, detached color.
func NewColorValue(c Color) ColorValue {
	var v ColorValue
	v.value = c
	return v
}

// Get returns the color stored on this value, ignoring inheritance.
func (v *ColorValue) Get() Color { return v.value }

// Set stores c.
func (v *ColorValue) Set(c Color) bool { return v.set(c, World) }

// SetString parses s with ParseColor and stores the result as explicit.
func (v *ColorValue) SetString(s string) error {
	c, err := ParseColor(s)
	if err != nil {
		return err
	}
	v.Set(c)
	v.SetState(Explicit)
	return nil
}

// Copy copies value and state from o.
func (v *ColorValue) Copy(o *ColorValue) bool { return v.copyFrom(&o.valueCore) }

// Lerp stores the component-wise interpolation of a and b.
func (v *ColorValue) Lerp(a, b *ColorValue, t float64) bool {
	return v.Set(a.value.Lerp(b.value, t))
}

// TransformValue is an affine transform attached to a node.
type TransformValue struct {
	valueCore[Matrix]
}

// NewTransformValue returns an explicit, detached transform.
func NewTransformValue(m Matrix) TransformValue {
	var v TransformValue
	v.value = m
	return v
}

// Get returns the matrix.
func (v *TransformValue) Get() Matrix { return v.value }

// Set stores m.
func (v *TransformValue) Set(m Matrix) bool { return v.set(m, World) }

// Copy copies value and state from o.
func (v *TransformValue) Copy(o *TransformValue) bool { return v.copyFrom(&o.valueCore) }

// Lerp stores the coefficient-wise interpolation of a and b.
func (v *TransformValue) Lerp(a, b *TransformValue, t float64) bool {
	return v.Set(a.value.Lerp(b.value, t))
}
