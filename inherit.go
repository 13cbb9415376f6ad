package s2

// Style holds the cascading style values of a node. Every value starts out
// Inherited; setting one through the Set helpers makes it Explicit.
type Style struct {
	Fill        ColorValue
	Stroke      ColorValue
	StrokeWidth LengthValue
	Opacity     FloatValue
}

// Defaults used when no node on the owner chain sets a value explicitly.
var (
	DefaultFill        = Color{}
	DefaultStroke      = ColorBlack
	DefaultStrokeWidth = NewLengthValue(2, View)
	DefaultOpacity     = 1.0
)

func newStyle(g *Graph, id NodeID) *Style {
	s := &Style{}
	s.Fill.Attach(g, id)
	s.Stroke.Attach(g, id)
	s.StrokeWidth.Attach(g, id)
	s.Opacity.Attach(g, id)
	s.Fill.state = Inherited
	s.Stroke.state = Inherited
	s.StrokeWidth.state = Inherited
	s.Opacity.state = Inherited
	return s
}

// SetFill sets an explicit fill color.
func (s *Style) SetFill(c Color) {
	s.Fill.Set(c)
	s.Fill.SetState(Explicit)
}

// SetStroke sets an explicit stroke color.
func (s *Style) SetStroke(c Color) {
	s.Stroke.Set(c)
	s.Stroke.SetState(Explicit)
}

// SetStrokeWidth sets an explicit stroke width.
func (s *Style) SetStrokeWidth(l float64, space Space) {
	s.StrokeWidth.Set(l, space)
	s.StrokeWidth.SetState(Explicit)
}

// SetOpacity sets an explicit opacity.
func (s *Style) SetOpacity(x float64) {
	s.Opacity.Set(x)
	s.Opacity.SetState(Explicit)
}

// stateful is satisfied by every typed value.
type stateful interface {
	State() State
}

// resolveStyle walks from id up the owner chain and returns the first value
// picked by field that is Explicit.
func resolveStyle[V stateful](g *Graph, id NodeID, field func(*Style) V) (V, bool) {
	for p := id; p != NoNode; p = g.nodes[p].owner {
		v := field(g.mustNode(p).style)
		if v.State() == Explicit {
			return v, true
		}
	}
	var zero V
	return zero, false
}

// ResolveColor returns the nearest explicit color selected by field, or
// fallback when the whole chain inherits.
func ResolveColor(g *Graph, id NodeID, field func(*Style) *ColorValue, fallback Color) Color {
	if v, ok := resolveStyle(g, id, field); ok {
		return v.Get()
	}
	return fallback
}

// ResolveFloat returns the nearest explicit scalar selected by field.
func ResolveFloat(g *Graph, id NodeID, field func(*Style) *FloatValue, fallback float64) float64 {
	if v, ok := resolveStyle(g, id, field); ok {
		return v.Get()
	}
	return fallback
}

// ResolveLength returns the nearest explicit length selected by field,
// converted to space.
func ResolveLength(g *Graph, id NodeID, field func(*Style) *LengthValue, fallback LengthValue, space Space, cam *Camera) float64 {
	if v, ok := resolveStyle(g, id, field); ok {
		return v.In(space, cam)
	}
	return fallback.In(space, cam)
}

// Fill returns the resolved fill color of id.
func (g *Graph) Fill(id NodeID) Color {
	return ResolveColor(g, id, func(s *Style) *ColorValue { return &s.Fill }, DefaultFill)
}

// Stroke returns the resolved stroke color of id.
func (g *Graph) Stroke(id NodeID) Color {
	return ResolveColor(g, id, func(s *Style) *ColorValue { return &s.Stroke }, DefaultStroke)
}

// StrokeWidth returns the resolved stroke width of id in space.
func (g *Graph) StrokeWidth(id NodeID, space Space, cam *Camera) float64 {
	return ResolveLength(g, id, func(s *Style) *LengthValue { return &s.StrokeWidth }, DefaultStrokeWidth, space, cam)
}

// Opacity returns the product of explicit opacities along the owner chain.
// Unlike the other style values opacity composes instead of overriding.
func (g *Graph) Opacity(id NodeID) float64 {
	alpha := DefaultOpacity
	for p := id; p != NoNode; p = g.nodes[p].owner {
		if o := &g.mustNode(p).style.Opacity; o.State() == Explicit {
			alpha *= o.Get()
		}
	}
	return alpha
}
