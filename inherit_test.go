package s2

import "testing"

func TestStyleDefaults(t *testing.T) {
	g := NewGraph()
	id := g.Add("n")
	if got := g.Fill(id); got != DefaultFill {
		t.Errorf("Fill = %v", got)
	}
	if got := g.Stroke(id); got != ColorBlack {
		t.Errorf("Stroke = %v", got)
	}
	assertNear(t, "StrokeWidth", g.StrokeWidth(id, View, nil), 2, epsilon)
	assertNear(t, "Opacity", g.Opacity(id), 1, epsilon)
	if s := g.Style(id); s.Fill.State() != Inherited || s.StrokeWidth.State() != Inherited {
		t.Error("new style values are not inherited")
	}
}

func TestStyleCascade(t *testing.T) {
	g := NewGraph()
	root := g.Add("root")
	group := g.Add("group")
	leaf := g.Add("leaf")
	g.SetParent(group, root)
	g.SetParent(leaf, group)

	red := RGB(1, 0, 0)
	blue := RGB(0, 0, 1)
	g.Style(root).SetStroke(red)
	if got := g.Stroke(leaf); got != red {
		t.Errorf("inherited Stroke = %v, want %v", got, red)
	}

	g.Style(leaf).SetStroke(blue)
	if got := g.Stroke(leaf); got != blue {
		t.Errorf("explicit Stroke = %v, want %v", got, blue)
	}
	if got := g.Stroke(group); got != red {
		t.Errorf("group Stroke = %v, want %v", got, red)
	}

	// Going back to inherited restores the ancestor's value.
	g.Style(leaf).Stroke.SetState(Inherited)
	if got := g.Stroke(leaf); got != red {
		t.Errorf("Stroke after SetState(Inherited) = %v", got)
	}
}

func TestStyleStrokeWidthSpaces(t *testing.T) {
	cam := newTestCamera()
	g := NewGraph()
	root := g.Add("root")
	leaf := g.Add("leaf")
	g.SetParent(leaf, root)
	g.Style(root).SetStrokeWidth(0.1, World)
	assertNear(t, "view", g.StrokeWidth(leaf, View, cam), 6, 1e-9)
	assertNear(t, "world", g.StrokeWidth(leaf, World, cam), 0.1, 1e-12)
}

func TestStyleOpacityMultiplies(t *testing.T) {
	g := NewGraph()
	root := g.Add("root")
	mid := g.Add("mid")
	leaf := g.Add("leaf")
	g.SetParent(mid, root)
	g.SetParent(leaf, mid)
	g.Style(root).SetOpacity(0.5)
	g.Style(leaf).SetOpacity(0.5)
	assertNear(t, "Opacity", g.Opacity(leaf), 0.25, epsilon)
	assertNear(t, "mid", g.Opacity(mid), 0.5, epsilon)
}

func TestStyleChangeMarksDirty(t *testing.T) {
	g := NewGraph()
	root := g.Add("root")
	leaf := g.Add("leaf")
	g.SetParent(leaf, root)
	g.Update(root, Frame(1))
	g.Style(leaf).SetFill(ColorWhite)
	if !g.IsDirty(leaf) || !g.IsDirty(root) {
		t.Error("style change did not mark the chain dirty")
	}
}

func TestResolveHelpers(t *testing.T) {
	g := NewGraph()
	id := g.Add("n")
	fill := func(s *Style) *ColorValue { return &s.Fill }
	if got := ResolveColor(g, id, fill, ColorWhite); got != ColorWhite {
		t.Errorf("fallback = %v", got)
	}
	opacity := func(s *Style) *FloatValue { return &s.Opacity }
	g.Style(id).SetOpacity(0.3)
	assertNear(t, "ResolveFloat", ResolveFloat(g, id, opacity, 1), 0.3, epsilon)
}
