package s2

import (
	"errors"
	"slices"
	"testing"
)

// newTestTree builds root -> {a, b} with a recompute counter on every node.
func newTestTree() (g *Graph, root, a, b NodeID, order *[]NodeID) {
	g = NewGraph()
	root = g.Add("root")
	a = g.Add("a")
	b = g.Add("b")
	g.SetParent(a, root)
	g.SetParent(b, root)
	order = new([]NodeID)
	for _, id := range []NodeID{root, a, b} {
		g.SetRecompute(id, func(id NodeID, _ Token) { *order = append(*order, id) })
	}
	return g, root, a, b, order
}

func TestSetParentIsSymmetric(t *testing.T) {
	g, root, a, b, _ := newTestTree()
	if g.Owner(a) != root {
		t.Errorf("Owner(a) = %d, want %d", g.Owner(a), root)
	}
	if !slices.Equal(g.Children(root), []NodeID{a, b}) {
		t.Errorf("Children = %v", g.Children(root))
	}
	if !slices.Equal(g.Listeners(root), []NodeID{a, b}) {
		t.Errorf("Listeners(root) = %v", g.Listeners(root))
	}
	if !slices.Equal(g.Dependencies(a), []NodeID{root}) {
		t.Errorf("Dependencies(a) = %v", g.Dependencies(a))
	}
	if err := g.CheckInvariants(); err != nil {
		t.Error(err)
	}
}

func TestReparent(t *testing.T) {
	g, root, a, b, _ := newTestTree()
	g.SetParent(b, a)
	if g.Owner(b) != a {
		t.Errorf("Owner(b) = %d, want %d", g.Owner(b), a)
	}
	if slices.Contains(g.Listeners(root), b) {
		t.Error("old owner still lists b")
	}
	if !slices.Equal(g.Children(root), []NodeID{a}) {
		t.Errorf("Children(root) = %v", g.Children(root))
	}
	if err := g.CheckInvariants(); err != nil {
		t.Error(err)
	}
}

func TestSetParentCyclePanics(t *testing.T) {
	g, root, a, _, _ := newTestTree()
	assertPanics(t, "parent to child", func() { g.SetParent(root, a) })
	assertPanics(t, "parent to self", func() { g.SetParent(a, a) })
	assertPanics(t, "self dependency", func() { g.AddDependency(a, a) })
}

func TestUpdateSameTokenRecomputesOnce(t *testing.T) {
	g, root, a, _, _ := newTestTree()
	g.Update(root, Frame(7))
	g.Update(root, Frame(7))
	if n := g.Recomputes(a); n != 1 {
		t.Errorf("Recomputes(a) = %d after the same frame twice, want 1", n)
	}
	g.Update(root, Frame(8))
	if n := g.Recomputes(a); n != 2 {
		t.Errorf("Recomputes(a) = %d after a new frame, want 2", n)
	}
	if g.LastToken(a) != Frame(8) {
		t.Errorf("LastToken = %v", g.LastToken(a))
	}
}

func TestUpdateOrder(t *testing.T) {
	g, root, a, b, order := newTestTree()
	// a reads from c, which is not in the tree.
	c := g.Add("c")
	g.SetRecompute(c, func(id NodeID, _ Token) { *order = append(*order, id) })
	g.AddDependency(a, c)

	g.Update(root, Frame(1))
	want := []NodeID{root, c, a, b}
	if !slices.Equal(*order, want) {
		t.Errorf("order = %v, want %v", *order, want)
	}
}

func TestUpdateDependencyDiamond(t *testing.T) {
	g, root, a, b, _ := newTestTree()
	d := g.Add("d")
	g.SetParent(d, a)
	g.AddDependency(d, b)

	g.Update(root, Frame(1))
	if n := g.Recomputes(d); n != 1 {
		t.Errorf("Recomputes(d) = %d, want 1", n)
	}
	if n := g.Recomputes(b); n != 1 {
		t.Errorf("Recomputes(b) = %d, want 1", n)
	}
}

func TestUpdateFresh(t *testing.T) {
	g, root, a, _, _ := newTestTree()
	t1 := g.Update(root, Fresh())
	t2 := g.Update(root, Fresh())
	if t1.IsFresh() || t2.IsFresh() {
		t.Fatal("Update returned an unresolved token")
	}
	if t1 == t2 {
		t.Errorf("two fresh passes share token %v", t1)
	}
	if n := g.Recomputes(a); n != 2 {
		t.Errorf("Recomputes(a) = %d, want 2", n)
	}
}

func TestDirtyPropagatesToOwners(t *testing.T) {
	g, root, a, b, _ := newTestTree()
	leaf := g.Add("leaf")
	g.SetParent(leaf, a)
	g.Update(root, Frame(1))
	for _, id := range []NodeID{root, a, b, leaf} {
		if g.IsDirty(id) {
			t.Fatalf("node %s dirty after update", g.Name(id))
		}
	}

	v := NewFloatValue(0)
	v.Attach(g, leaf)
	if !v.Set(1) {
		t.Fatal("Set reported no change")
	}
	for _, id := range []NodeID{leaf, a, root} {
		if !g.IsDirty(id) {
			t.Errorf("node %s not dirty", g.Name(id))
		}
	}
	if g.IsDirty(b) {
		t.Error("sibling marked dirty")
	}
}

func TestListen(t *testing.T) {
	g, root, a, _, _ := newTestTree()
	var got []Token
	cancel := g.Listen(a, func(source NodeID, tok Token) {
		if source != a {
			t.Errorf("source = %d, want %d", source, a)
		}
		got = append(got, tok)
	})
	g.Update(root, Frame(1))
	g.Update(root, Frame(1))
	cancel()
	g.Update(root, Frame(2))
	if !slices.Equal(got, []Token{Frame(1)}) {
		t.Errorf("callbacks = %v", got)
	}
}

func TestRemoveDependency(t *testing.T) {
	g, root, a, b, _ := newTestTree()
	g.AddDependency(a, b)
	g.RemoveDependency(a, b)
	if slices.Contains(g.Listeners(b), a) || slices.Contains(g.Dependencies(a), b) {
		t.Error("edge a->b still present")
	}

	// Removing the owner edge detaches.
	g.RemoveDependency(a, root)
	if g.Owner(a) != NoNode {
		t.Errorf("Owner(a) = %d, want NoNode", g.Owner(a))
	}
	if slices.Contains(g.Children(root), a) {
		t.Error("root still has child a")
	}
	if err := g.CheckInvariants(); err != nil {
		t.Error(err)
	}
}

func TestRemoveSubtree(t *testing.T) {
	g, root, a, b, _ := newTestTree()
	leaf := g.Add("leaf")
	g.SetParent(leaf, a)
	g.AddDependency(b, leaf)

	g.Remove(a)
	if g.Valid(a) || g.Valid(leaf) {
		t.Error("removed nodes still valid")
	}
	if g.Len() != 2 {
		t.Errorf("Len = %d, want 2", g.Len())
	}
	if slices.Contains(g.Dependencies(b), leaf) {
		t.Error("b still depends on the removed leaf")
	}
	if err := g.Check(a); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Check = %v, want ErrUnknownNode", err)
	}
	assertPanics(t, "accessor on removed node", func() { g.Name(a) })
	if err := g.CheckInvariants(); err != nil {
		t.Error(err)
	}

	// IDs are not reused.
	if id := g.Add("new"); id == a || id == leaf {
		t.Errorf("Add reused id %d", id)
	}
	g.Update(root, Frame(1))
}

func TestTokenString(t *testing.T) {
	if s := Frame(3).String(); s != "frame(3)" {
		t.Errorf("Frame(3) = %q", s)
	}
	if s := Fresh().String(); s != "fresh" {
		t.Errorf("Fresh = %q", s)
	}
	if !Fresh().IsFresh() || Frame(0).IsFresh() {
		t.Error("IsFresh")
	}
}

func BenchmarkGraphUpdate(b *testing.B) {
	g := NewGraph()
	root := g.Add("root")
	for i := range 1000 {
		id := g.Add("n")
		g.SetParent(id, root)
		if i > 0 {
			g.AddDependency(id, id-1)
		}
	}
	var frame uint64
	for b.Loop() {
		frame++
		g.Update(root, Frame(frame))
	}
}
