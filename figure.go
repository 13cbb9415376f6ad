package s2

import "math"

// Figure is a scene node that regenerates a view-space curve from its typed
// values whenever they, the camera, its world transform or one of its
// dependencies change.
type Figure interface {
	// Node returns the figure's node in the scene graph.
	Node() NodeID
	// Curve returns the view-space geometry resolved by the last update.
	Curve() *PolyCurve

	base() *figureBase
	build(world Matrix) *PolyCurve
}

// figureBase is embedded by every figure.
type figureBase struct {
	scene *Scene
	id    NodeID
	view  *PolyCurve

	built      bool
	camVersion uint64
	depRevs    map[NodeID]uint64
}

func (f *figureBase) base() *figureBase { return f }

// Node returns the figure's node.
func (f *figureBase) Node() NodeID { return f.id }

// Curve returns the view-space curve. It is empty before the first update.
func (f *figureBase) Curve() *PolyCurve { return f.view }

// PathCommands returns the view-space drawing instructions.
func (f *figureBase) PathCommands() []PathCommand { return f.view.PathCommands() }

// stale reports whether the figure must rebuild. Changes to the owner show up
// as a changed world matrix and are checked by the caller.
func (f *figureBase) stale() bool {
	s := f.scene
	if !f.built || s.graph.IsDirty(f.id) || f.camVersion != s.camera.Version() {
		return true
	}
	owner := s.graph.Owner(f.id)
	for _, d := range s.graph.nodes[f.id].dependencies {
		if d != owner && s.states[d].revision != f.depRevs[d] {
			return true
		}
	}
	return false
}

func (f *figureBase) commit() {
	s := f.scene
	f.built = true
	f.camVersion = s.camera.Version()
	clear(f.depRevs)
	for _, d := range s.graph.nodes[f.id].dependencies {
		f.depRevs[d] = s.states[d].revision
	}
}

// toView maps geometry authored in its own space to view space. World
// geometry goes through the node's world transform first.
func (f *figureBase) toView(c *PolyCurve, world Matrix) *PolyCurve {
	if c.Space() == World && !world.IsIdentity(f.scene.cfg.MatrixEpsilon) {
		c = c.Transform(world)
	}
	return c.InSpace(View, f.scene.camera)
}

// viewPoint resolves a position owned by node id to view space.
func (s *Scene) viewPoint(id NodeID, p *PositionValue) Vec2 {
	if p.Space() == World {
		return s.camera.WorldToView(s.states[id].world.Apply(p.Get()))
	}
	return p.Get()
}

// --- Circle ---

// kappa places cubic control points for a quarter ellipse.
const kappa = 0.5522847498307936

// Circle is a circle of Radius around Center. A world circle under a camera
// with unequal axis scales becomes an ellipse in view space.
type Circle struct {
	figureBase
	Center PositionValue
	Radius LengthValue
}

func (c *Circle) build(world Matrix) *PolyCurve {
	cam := c.scene.camera
	space := c.Center.Space()
	r := c.Radius.Get()
	radii := ConvertExtents(Vec2{r, r}, c.Radius.Space(), space, cam)

	p := NewPolyCurve(space)
	appendEllipse(p, c.Center.Get(), radii)
	return c.toView(p, world)
}

func appendEllipse(p *PolyCurve, ctr, r Vec2) {
	kx, ky := r.X*kappa, r.Y*kappa
	e := V(ctr.X+r.X, ctr.Y)
	n := V(ctr.X, ctr.Y+r.Y)
	w := V(ctr.X-r.X, ctr.Y)
	s := V(ctr.X, ctr.Y-r.Y)
	p.MoveTo(e)
	p.CubicTo(V(e.X, e.Y+ky), V(n.X+kx, n.Y), n)
	p.CubicTo(V(n.X-kx, n.Y), V(w.X, w.Y+ky), w)
	p.CubicTo(V(w.X, w.Y-ky), V(s.X-kx, s.Y), s)
	p.CubicTo(V(s.X+kx, s.Y), V(e.X, e.Y-ky), e)
	p.Close()
}

// --- Edge ---

// Edge connects two circles. It reads both circles' resolved geometry, so it
// depends on them and rebuilds whenever either changes. The edge is trimmed
// where it leaves From and enters To.
//
// Bend curves the edge: 0 is straight, otherwise the control points are
// pushed sideways by Bend times the distance between the centers.
type Edge struct {
	figureBase
	From, To *Circle
	Bend     FloatValue
}

func (e *Edge) build(Matrix) *PolyCurve {
	s := e.scene
	a := s.viewPoint(e.From.id, &e.From.Center)
	b := s.viewPoint(e.To.id, &e.To.Center)

	full := NewPolyCurve(View)
	if bend := e.Bend.Get(); bend == 0 {
		full.AddLine(a, b)
	} else {
		off := b.Sub(a).Perp().Scale(bend)
		full.AddCubic(a, a.Lerp(b, 1.0/3).Add(off), a.Lerp(b, 2.0/3).Add(off), b)
	}

	t0, t1 := 0.0, 1.0
	for _, hit := range s.intersector.Intersect(full, e.From.view) {
		t0 = max(t0, hit.GlobalA())
	}
	for _, hit := range s.intersector.Intersect(full, e.To.view) {
		if g := hit.GlobalA(); g > t0 {
			t1 = min(t1, g)
		}
	}
	return full.PartialRange(t0, t1)
}

// --- Grid ---

// maxGridLines caps the lines per axis when spacing is tiny relative to the
// extents.
const maxGridLines = 512

// Grid draws evenly spaced horizontal and vertical lines through Center,
// covering ±Extents.
type Grid struct {
	figureBase
	Center  PositionValue
	Extents ExtentsValue
	Spacing LengthValue
}

func (g *Grid) build(world Matrix) *PolyCurve {
	cam := g.scene.camera
	space := g.Center.Space()
	ctr := g.Center.Get()
	ext := g.Extents.In(space, cam)
	sp := g.Spacing.Get()
	step := ConvertExtents(Vec2{sp, sp}, g.Spacing.Space(), space, cam)

	p := NewPolyCurve(space)
	if step.X > 0 {
		n := min(int(math.Floor(ext.X/step.X)), maxGridLines)
		for i := -n; i <= n; i++ {
			x := ctr.X + float64(i)*step.X
			p.AddLine(V(x, ctr.Y-ext.Y), V(x, ctr.Y+ext.Y))
		}
	}
	if step.Y > 0 {
		n := min(int(math.Floor(ext.Y/step.Y)), maxGridLines)
		for i := -n; i <= n; i++ {
			y := ctr.Y + float64(i)*step.Y
			p.AddLine(V(ctr.X-ext.X, y), V(ctr.X+ext.X, y))
		}
	}
	return g.toView(p, world)
}

// --- Path ---

// Path draws a user-authored curve. From and To select the drawn part in
// normalized arc length, which is what a "draw on" animation tweens.
type Path struct {
	figureBase
	From, To FloatValue
	source   *PolyCurve
}

// Source returns the authored curve. Call Edit to change it.
func (p *Path) Source() *PolyCurve { return p.source }

// SetCurve replaces the authored curve with a copy of c.
func (p *Path) SetCurve(c *PolyCurve) {
	p.source = p.scene.configure(c.Clone())
	p.scene.graph.SetDirty(p.id)
}

// Edit calls fn with the authored curve and marks the path dirty.
func (p *Path) Edit(fn func(c *PolyCurve)) {
	fn(p.source)
	p.scene.graph.SetDirty(p.id)
}

func (p *Path) build(world Matrix) *PolyCurve {
	part := p.source
	if from, to := p.From.Get(), p.To.Get(); from > 0 || to < 1 {
		part = p.source.PartialByLength(from, to)
	}
	return p.toView(part, world)
}
