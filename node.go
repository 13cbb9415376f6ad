package s2

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownNode is returned by lookups that name a node which does not
// exist or was removed.
var ErrUnknownNode = errors.New("s2: unknown node")

// NodeID addresses a node in a Graph. IDs are assigned in creation order and
// never reused, so they double as a stable tie-break for ordering.
type NodeID int32

// NoNode is the owner of root nodes.
const NoNode NodeID = -1

// RecomputeFunc re-derives a node's local state during an update pass.
type RecomputeFunc func(id NodeID, tok Token)

// ListenerFunc is notified after node source recomputed for pass tok.
type ListenerFunc func(source NodeID, tok Token)

type listenerEntry struct {
	handle uint64
	fn     ListenerFunc
}

// node is one arena slot. A single flat struct is used for every kind of
// scene element; behavior is attached through recompute and callbacks.
type node struct {
	// Identity
	id    NodeID
	name  string
	key   string
	alive bool

	// Hierarchy. children keeps insertion order; dependencies and listeners
	// are sorted index sets.
	owner        NodeID
	children     []NodeID
	dependencies []NodeID
	listeners    []NodeID
	callbacks    []listenerEntry

	// Update protocol
	lastToken  Token
	dirty      bool
	recompute  RecomputeFunc
	recomputes int

	style *Style
}

// Graph is an arena of dependency nodes.
//
// For a child c of parent p, c's dependencies contain p and p's listeners
// contain c. SetParent, AddDependency, RemoveDependency and Remove keep the
// two sets symmetric.
//
// A Graph is not safe for concurrent use: the token check-then-set in Update
// assumes a single writer.
type Graph struct {
	nodes      []node
	live       int
	passes     uint64
	nextHandle uint64
	debug      bool
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{}
}

// SetDebug enables invariant checks after every structural mutation.
func (g *Graph) SetDebug(enabled bool) {
	g.debug = enabled
}

// Add creates a root node and returns its ID. New nodes start dirty.
func (g *Graph) Add(name string) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, node{
		id:    id,
		name:  name,
		alive: true,
		owner: NoNode,
		dirty: true,
	})
	g.nodes[id].style = newStyle(g, id)
	g.live++
	return id
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return g.live
}

// Valid reports whether id names a live node.
func (g *Graph) Valid(id NodeID) bool {
	return id >= 0 && int(id) < len(g.nodes) && g.nodes[id].alive
}

// Check returns ErrUnknownNode when id does not name a live node.
func (g *Graph) Check(id NodeID) error {
	if !g.Valid(id) {
		return fmt.Errorf("node %d: %w", id, ErrUnknownNode)
	}
	return nil
}

func (g *Graph) mustNode(id NodeID) *node {
	if !g.Valid(id) {
		panic(fmt.Sprintf("s2: invalid node id %d", id))
	}
	return &g.nodes[id]
}

// Name returns the node's debug name.
func (g *Graph) Name(id NodeID) string { return g.mustNode(id).name }

// Key returns the node's key, or "" if none was assigned.
func (g *Graph) Key(id NodeID) string { return g.mustNode(id).key }

// SetKey assigns the node's key.
func (g *Graph) SetKey(id NodeID, key string) { g.mustNode(id).key = key }

// Owner returns the node's parent, or NoNode for a root.
func (g *Graph) Owner(id NodeID) NodeID { return g.mustNode(id).owner }

// Children returns the children in insertion order. The returned slice MUST
// NOT be mutated by the caller.
func (g *Graph) Children(id NodeID) []NodeID { return g.mustNode(id).children }

// Dependencies returns a copy of the nodes id reads from, sorted.
func (g *Graph) Dependencies(id NodeID) []NodeID {
	return slices.Clone(g.mustNode(id).dependencies)
}

// Listeners returns a copy of the nodes that read from id, sorted.
func (g *Graph) Listeners(id NodeID) []NodeID {
	return slices.Clone(g.mustNode(id).listeners)
}

// Style returns the node's style values.
func (g *Graph) Style(id NodeID) *Style { return g.mustNode(id).style }

// IsDirty reports whether the node changed since it last recomputed.
func (g *Graph) IsDirty(id NodeID) bool { return g.mustNode(id).dirty }

// Recomputes returns how many times the node has recomputed.
func (g *Graph) Recomputes(id NodeID) int { return g.mustNode(id).recomputes }

// LastToken returns the token of the last pass that reached the node.
func (g *Graph) LastToken(id NodeID) Token { return g.mustNode(id).lastToken }

// SetRecompute installs the function run when the node recomputes.
func (g *Graph) SetRecompute(id NodeID, fn RecomputeFunc) {
	g.mustNode(id).recompute = fn
}

// Listen registers fn to run after id recomputes. The returned function
// removes the registration.
func (g *Graph) Listen(id NodeID, fn ListenerFunc) (cancel func()) {
	n := g.mustNode(id)
	g.nextHandle++
	h := g.nextHandle
	n.callbacks = append(n.callbacks, listenerEntry{handle: h, fn: fn})
	return func() {
		if !g.Valid(id) {
			return
		}
		n := &g.nodes[id]
		n.callbacks = slices.DeleteFunc(n.callbacks, func(e listenerEntry) bool {
			return e.handle == h
		})
	}
}

// --- Structure ---

// SetParent makes parent the owner of child. A parent of NoNode detaches
// child into a root. The old owner edge is removed first. Panics if parent is
// child or one of its descendants.
func (g *Graph) SetParent(child, parent NodeID) {
	c := g.mustNode(child)
	if parent != NoNode {
		g.mustNode(parent)
		if g.isAncestor(child, parent) {
			panic("s2: setting parent would create a cycle")
		}
	}
	if c.owner == parent {
		return
	}
	if old := c.owner; old != NoNode {
		g.unlink(child, old)
		o := &g.nodes[old]
		o.children = slices.DeleteFunc(o.children, func(id NodeID) bool { return id == child })
		g.nodes[child].owner = NoNode
	}
	if parent != NoNode {
		g.link(child, parent)
		p := &g.nodes[parent]
		p.children = append(p.children, child)
		g.nodes[child].owner = parent
	}
	g.SetDirty(child)
	if g.debug {
		debugCheckSymmetry(g, child)
		debugCheckOwnerDepth(g, child)
		debugCheckListenerCount(g, parent)
	}
}

// AddDependency records that id reads from dep without making dep its owner.
// Panics on a self dependency.
func (g *Graph) AddDependency(id, dep NodeID) {
	g.mustNode(id)
	g.mustNode(dep)
	if id == dep {
		panic("s2: node cannot depend on itself")
	}
	g.link(id, dep)
	g.SetDirty(id)
	if g.debug {
		debugCheckSymmetry(g, id)
		debugCheckListenerCount(g, dep)
	}
}

// RemoveDependency removes the edge from id to dep on both sides. Removing
// the owner edge also detaches id from its owner.
func (g *Graph) RemoveDependency(id, dep NodeID) {
	n := g.mustNode(id)
	g.mustNode(dep)
	if n.owner == dep {
		g.SetParent(id, NoNode)
		return
	}
	g.unlink(id, dep)
	if g.debug {
		debugCheckSymmetry(g, id)
	}
}

// Remove detaches the node from every set it belongs to and removes it and
// its descendants from the graph.
func (g *Graph) Remove(id NodeID) {
	g.mustNode(id)
	g.SetParent(id, NoNode)
	g.remove(id)
}

func (g *Graph) remove(id NodeID) {
	n := &g.nodes[id]
	for _, c := range slices.Clone(n.children) {
		g.nodes[c].owner = NoNode
		g.unlink(c, id)
		g.remove(c)
	}
	n = &g.nodes[id]
	for _, dep := range slices.Clone(n.dependencies) {
		g.unlink(id, dep)
	}
	for _, l := range slices.Clone(n.listeners) {
		g.unlink(l, id)
	}
	*n = node{id: id, owner: NoNode}
	g.live--
}

// link adds dep to id's dependencies and id to dep's listeners.
func (g *Graph) link(id, dep NodeID) {
	g.nodes[id].dependencies = insertSorted(g.nodes[id].dependencies, dep)
	g.nodes[dep].listeners = insertSorted(g.nodes[dep].listeners, id)
}

func (g *Graph) unlink(id, dep NodeID) {
	g.nodes[id].dependencies = removeSorted(g.nodes[id].dependencies, dep)
	g.nodes[dep].listeners = removeSorted(g.nodes[dep].listeners, id)
}

// isAncestor reports whether candidate is node or one of its owners.
func (g *Graph) isAncestor(candidate, id NodeID) bool {
	for p := id; p != NoNode; p = g.nodes[p].owner {
		if p == candidate {
			return true
		}
	}
	return false
}

// --- Update protocol ---

// SetDirty marks the node dirty and continues up the owner chain. A root
// stops propagation.
func (g *Graph) SetDirty(id NodeID) {
	g.mustNode(id)
	for p := id; p != NoNode; p = g.nodes[p].owner {
		g.nodes[p].dirty = true
	}
}

// Update runs an update pass reaching id and returns the token it used.
//
// A Fresh token is replaced by a new pass token first. A node whose last
// token equals tok is skipped. Otherwise the node records tok, updates its
// dependencies, recomputes, clears its dirty flag, then updates its listeners
// and fires its listener callbacks, all with the same token.
func (g *Graph) Update(id NodeID, tok Token) Token {
	g.mustNode(id)
	if tok.IsFresh() {
		g.passes++
		tok = Token{kind: tokenManual, id: g.passes}
	}
	g.update(id, tok)
	return tok
}

func (g *Graph) update(id NodeID, tok Token) {
	n := &g.nodes[id]
	if !n.alive || n.lastToken == tok {
		return
	}
	n.lastToken = tok

	for i := 0; i < len(g.nodes[id].dependencies); i++ {
		g.update(g.nodes[id].dependencies[i], tok)
	}

	// Recompute hooks may grow the arena, so n is re-read afterwards.
	if fn := g.nodes[id].recompute; fn != nil {
		fn(id, tok)
	}
	n = &g.nodes[id]
	n.dirty = false
	n.recomputes++

	for i := 0; i < len(g.nodes[id].listeners); i++ {
		g.update(g.nodes[id].listeners[i], tok)
	}
	for _, cb := range slices.Clone(g.nodes[id].callbacks) {
		cb.fn(id, tok)
	}
}

// --- Index sets ---

func insertSorted(s []NodeID, id NodeID) []NodeID {
	i, found := slices.BinarySearch(s, id)
	if found {
		return s
	}
	return slices.Insert(s, i, id)
}

func removeSorted(s []NodeID, id NodeID) []NodeID {
	i, found := slices.BinarySearch(s, id)
	if !found {
		return s
	}
	return slices.Delete(s, i, i+1)
}

func containsSorted(s []NodeID, id NodeID) bool {
	_, found := slices.BinarySearch(s, id)
	return found
}
