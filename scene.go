package s2

import (
	"fmt"
	"slices"

	"github.com/ArnaudBannier/s2-sub001/internal/typeid"
)

// nodeState is what the scene keeps per node next to the graph slot.
type nodeState struct {
	transform *TransformValue
	world     Matrix
	hasWorld  bool
	revision  uint64 // bumped when the world matrix or the geometry changes
	figure    Figure
}

// Scene is the top-level object that owns the dependency graph, the camera
// and the figures. It is the only place with a default camera: everything
// below it takes the camera explicitly.
type Scene struct {
	cfg    Config
	camera *Camera
	graph  *Graph
	root   NodeID
	key    string

	frame       uint64
	states      map[NodeID]*nodeState
	keys        map[string]NodeID
	tweens      []*Tween
	intersector *Intersector
}

// NewScene creates a scene with the default configuration.
func NewScene() *Scene {
	return NewSceneWithConfig(DefaultConfig())
}

// NewSceneWithConfig creates a scene with a root group and a camera centered
// on the world origin. Panics if cfg is invalid.
func NewSceneWithConfig(cfg Config) *Scene {
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	s := &Scene{
		cfg: cfg,
		camera: NewCamera(
			Vec2{},
			V(cfg.HalfExtentX, cfg.HalfExtentY),
			V(cfg.ViewportWidth, cfg.ViewportHeight),
		),
		graph:  NewGraph(),
		states: make(map[NodeID]*nodeState),
		keys:   make(map[string]NodeID),
		key:    typeid.NewSceneID(),
		intersector: NewIntersector().
			SetTolerance(cfg.IntersectTolerance).
			SetMaxDepth(cfg.IntersectMaxDepth),
	}
	s.graph.SetDebug(cfg.Debug)
	s.root = s.addNode("root", typeid.PrefixGroup, NoNode)
	return s
}

// Config returns the scene configuration.
func (s *Scene) Config() Config { return s.cfg }

// Key returns the scene's unique key.
func (s *Scene) Key() string { return s.key }

// Camera returns the scene camera.
func (s *Scene) Camera() *Camera { return s.camera }

// Graph returns the dependency graph.
func (s *Scene) Graph() *Graph { return s.graph }

// Root returns the root group.
func (s *Scene) Root() NodeID { return s.root }

// Intersector returns the intersector configured from the scene config.
func (s *Scene) Intersector() *Intersector { return s.intersector }

// Frame returns the number of Update calls so far.
func (s *Scene) Frame() uint64 { return s.frame }

func (s *Scene) addNode(name, prefix string, parent NodeID) NodeID {
	id := s.graph.Add(name)
	key := typeid.New(prefix)
	s.graph.SetKey(id, key)
	s.keys[key] = id

	st := &nodeState{transform: &TransformValue{}}
	st.transform.value = IdentityMatrix()
	st.transform.Attach(s.graph, id)
	s.states[id] = st

	s.graph.SetRecompute(id, s.recompute)
	if parent != NoNode {
		s.graph.SetParent(id, parent)
	}
	return id
}

// NewGroup adds an empty node under parent. Groups carry a transform and
// style for their children.
func (s *Scene) NewGroup(name string, parent NodeID) NodeID {
	return s.addNode(name, typeid.PrefixGroup, parent)
}

// NodeByKey returns the node with the given key. Malformed keys and keys
// of other kinds report ErrUnknownNode too.
func (s *Scene) NodeByKey(key string) (NodeID, error) {
	if err := typeid.Validate(key, typeid.NodePrefixes...); err != nil {
		return NoNode, fmt.Errorf("%w: %w", ErrUnknownNode, err)
	}
	id, ok := s.keys[key]
	if !ok {
		return NoNode, fmt.Errorf("key %q: %w", key, ErrUnknownNode)
	}
	return id, nil
}

// Transform returns the local transform of id. It applies to world-space
// geometry of id and its descendants.
func (s *Scene) Transform(id NodeID) *TransformValue {
	return s.mustState(id).transform
}

// WorldMatrix returns the product of the transforms from the root down to id
// as of the last update.
func (s *Scene) WorldMatrix(id NodeID) Matrix {
	return s.mustState(id).world
}

// Style returns the style values of id.
func (s *Scene) Style(id NodeID) *Style { return s.graph.Style(id) }

// Figure returns the figure on id, or nil for a group.
func (s *Scene) Figure(id NodeID) Figure { return s.mustState(id).figure }

func (s *Scene) mustState(id NodeID) *nodeState {
	st, ok := s.states[id]
	if !ok {
		panic(fmt.Sprintf("s2: invalid node id %d", id))
	}
	return st
}

// Remove removes id and its descendants. Removing the root panics.
func (s *Scene) Remove(id NodeID) {
	if id == s.root {
		panic("s2: cannot remove the scene root")
	}
	var drop func(NodeID)
	drop = func(n NodeID) {
		for _, c := range s.graph.Children(n) {
			drop(c)
		}
		delete(s.keys, s.graph.Key(n))
		delete(s.states, n)
	}
	drop(id)
	s.graph.Remove(id)

	// Edges cannot outlive their endpoints.
	for eid, st := range s.states {
		if e, ok := st.figure.(*Edge); ok && s.states[eid] != nil {
			if s.states[e.From.id] == nil || s.states[e.To.id] == nil {
				s.Remove(eid)
			}
		}
	}
}

// --- Figures ---

// configure applies the configured arc length settings to c.
func (s *Scene) configure(c *PolyCurve) *PolyCurve {
	c.SetAccuracy(s.cfg.ArcLengthAccuracy)
	c.SetArcLengthSamples(s.cfg.ArcLengthSamples)
	return c
}

func (s *Scene) register(f Figure, id NodeID) {
	b := f.base()
	b.scene = s
	b.id = id
	b.view = NewPolyCurve(View)
	b.depRevs = make(map[NodeID]uint64)
	s.states[id].figure = f
}

// NewCircle adds a circle under parent.
func (s *Scene) NewCircle(name string, parent NodeID, center Vec2, radius float64, space Space) *Circle {
	id := s.addNode(name, typeid.PrefixCircle, parent)
	c := &Circle{
		Center: NewPositionValue(center, space),
		Radius: NewLengthValue(radius, space),
	}
	c.Center.Attach(s.graph, id)
	c.Radius.Attach(s.graph, id)
	s.register(c, id)
	return c
}

// NewEdge adds an edge between two circles under parent. The edge depends on
// both circles.
func (s *Scene) NewEdge(name string, parent NodeID, from, to *Circle) *Edge {
	id := s.addNode(name, typeid.PrefixEdge, parent)
	e := &Edge{From: from, To: to}
	e.Bend.Attach(s.graph, id)
	s.register(e, id)
	s.graph.AddDependency(id, from.id)
	s.graph.AddDependency(id, to.id)
	return e
}

// NewGrid adds a grid under parent.
func (s *Scene) NewGrid(name string, parent NodeID, center, extents Vec2, spacing float64, space Space) *Grid {
	id := s.addNode(name, typeid.PrefixGrid, parent)
	g := &Grid{
		Center:  NewPositionValue(center, space),
		Extents: NewExtentsValue(extents, space),
		Spacing: NewLengthValue(spacing, space),
	}
	g.Center.Attach(s.graph, id)
	g.Extents.Attach(s.graph, id)
	g.Spacing.Attach(s.graph, id)
	s.register(g, id)
	return g
}

// NewPath adds a path drawing a copy of c under parent, fully drawn.
func (s *Scene) NewPath(name string, parent NodeID, c *PolyCurve) *Path {
	id := s.addNode(name, typeid.PrefixPath, parent)
	p := &Path{
		From:   NewFloatValue(0),
		To:     NewFloatValue(1),
		source: s.configure(c.Clone()),
	}
	p.From.Attach(s.graph, id)
	p.To.Attach(s.graph, id)
	s.register(p, id)
	return p
}

// Figures returns the figures in depth-first tree order, which is the
// drawing order.
func (s *Scene) Figures() []Figure {
	var out []Figure
	var walk func(NodeID)
	walk = func(id NodeID) {
		if f := s.states[id].figure; f != nil {
			out = append(out, f)
		}
		for _, c := range s.graph.Children(id) {
			walk(c)
		}
	}
	walk(s.root)
	return out
}

// Intersect returns the view-space crossings of two figures.
func (s *Scene) Intersect(a, b Figure) []Intersection {
	return s.intersector.Intersect(a.Curve(), b.Curve())
}

// --- Update ---

// AddTween registers tw to be advanced by Update until it is done.
func (s *Scene) AddTween(tw *Tween) {
	s.tweens = append(s.tweens, tw)
}

// Update advances the camera and the tweens by dt seconds, then runs one
// update pass over the whole scene with the next frame token.
func (s *Scene) Update(dt float32) Token {
	s.camera.Advance(dt)
	for _, tw := range s.tweens {
		tw.Update(dt)
	}
	s.tweens = slices.DeleteFunc(s.tweens, func(tw *Tween) bool { return tw.Done })

	s.frame++
	tok := s.graph.Update(s.root, Frame(s.frame))
	Logger().Debug("update", "frame", s.frame, "nodes", s.graph.Len())
	return tok
}

// UpdateNode runs an update pass reaching id with tok. Use it after editing
// values outside of Update, with Fresh for a one-off pass.
func (s *Scene) UpdateNode(id NodeID, tok Token) Token {
	return s.graph.Update(id, tok)
}

// recompute is installed on every scene node. Dependencies are already up to
// date when it runs.
func (s *Scene) recompute(id NodeID, _ Token) {
	st := s.states[id]
	world := st.transform.Get()
	if owner := s.graph.Owner(id); owner != NoNode {
		world = s.states[owner].world.Mul(world)
	}
	worldChanged := !st.hasWorld || !world.Equals(st.world, s.cfg.MatrixEpsilon)
	st.world, st.hasWorld = world, true
	st.transform.ClearDirty()

	if st.figure == nil {
		if worldChanged {
			st.revision++
		}
		return
	}
	b := st.figure.base()
	if !worldChanged && !b.stale() {
		return
	}
	b.view = s.configure(st.figure.build(world))
	b.commit()
	clearValues(st.figure)
	st.revision++
}

func clearValues(f Figure) {
	switch f := f.(type) {
	case *Circle:
		f.Center.ClearDirty()
		f.Radius.ClearDirty()
	case *Edge:
		f.Bend.ClearDirty()
	case *Grid:
		f.Center.ClearDirty()
		f.Extents.ClearDirty()
		f.Spacing.ClearDirty()
	case *Path:
		f.From.ClearDirty()
		f.To.ClearDirty()
	}
}
