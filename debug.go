package s2

import (
	"fmt"
)

// debugCheckSymmetry panics when the dependency and listener sets touching
// id disagree. Only called when the graph is in debug mode.
func debugCheckSymmetry(g *Graph, id NodeID) {
	if err := g.checkNode(id); err != nil {
		panic("s2 debug: " + err.Error())
	}
}

// debugCheckOwnerDepth warns if the owner chain is deeper than the threshold.
const debugMaxOwnerDepth = 32

func debugCheckOwnerDepth(g *Graph, id NodeID) {
	depth := 0
	for p := id; p != NoNode; p = g.nodes[p].owner {
		depth++
	}
	if depth > debugMaxOwnerDepth {
		Logger().Warn("owner chain too deep",
			"node", g.nodes[id].name, "depth", depth, "threshold", debugMaxOwnerDepth)
	}
}

// debugCheckListenerCount warns if a node has more than 1000 listeners.
const debugMaxListenerCount = 1000

func debugCheckListenerCount(g *Graph, id NodeID) {
	if id == NoNode {
		return
	}
	if n := len(g.nodes[id].listeners); n > debugMaxListenerCount {
		Logger().Warn("too many listeners",
			"node", g.nodes[id].name, "listeners", n, "threshold", debugMaxListenerCount)
	}
}

func (g *Graph) checkNode(id NodeID) error {
	n := &g.nodes[id]
	for _, dep := range n.dependencies {
		if !g.Valid(dep) {
			return fmt.Errorf("node %q depends on removed node %d", n.name, dep)
		}
		if !containsSorted(g.nodes[dep].listeners, id) {
			return fmt.Errorf("node %q depends on %q which does not list it", n.name, g.nodes[dep].name)
		}
	}
	for _, l := range n.listeners {
		if !g.Valid(l) {
			return fmt.Errorf("node %q lists removed node %d", n.name, l)
		}
		if !containsSorted(g.nodes[l].dependencies, id) {
			return fmt.Errorf("node %q lists %q which does not depend on it", n.name, g.nodes[l].name)
		}
	}
	if n.owner != NoNode {
		if !g.Valid(n.owner) {
			return fmt.Errorf("node %q owned by removed node %d", n.name, n.owner)
		}
		if !containsSorted(n.dependencies, n.owner) {
			return fmt.Errorf("node %q does not depend on its owner", n.name)
		}
		if !containsSorted(g.nodes[n.owner].listeners, id) {
			return fmt.Errorf("owner of node %q does not list it", n.name)
		}
	}
	return nil
}

// CheckInvariants verifies that every dependency has a matching listener and
// every owner edge is registered on both sides.
func (g *Graph) CheckInvariants() error {
	for i := range g.nodes {
		if !g.nodes[i].alive {
			continue
		}
		if err := g.checkNode(NodeID(i)); err != nil {
			return err
		}
	}
	return nil
}
