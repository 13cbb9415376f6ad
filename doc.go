// Package s2 is a retained 2D geometry and update engine for parametric
// figures: circles, edges, grids and authored paths.
//
// It maps between a logical world frame (Y up) used by application code and
// a view frame (pixels, Y down) used for output, and re-derives view-space
// geometry lazily as the scene changes.
//
// # Quick start
//
//	scene := s2.NewScene()
//	a := scene.NewCircle("a", scene.Root(), s2.V(-3, 0), 1, s2.World)
//	b := scene.NewCircle("b", scene.Root(), s2.V(3, 1), 1, s2.World)
//	scene.NewEdge("ab", scene.Root(), a, b)
//	scene.Update(1.0 / 60)
//
//	for _, f := range scene.Figures() {
//		draw(f.Curve().PathCommands()) // view space
//	}
//
// The vectorpath sub-package turns path commands into [ebiten] vector paths
// and ribbon meshes.
//
// # Spaces and the camera
//
// Every spatial value carries a [Space]. A [Camera] converts between them;
// conversion functions take the camera explicitly. Only [Scene] keeps a
// default camera. Mutating the camera does not touch values resolved
// earlier: run an update pass afterwards.
//
// # Update protocol
//
// Scene nodes live in a [Graph] arena addressed by [NodeID]. Typed values
// ([PositionValue], [LengthValue], ...) mark their owner dirty when they
// change, and the owner marks its own owner, up to the root. Writing an equal
// value is a no-op. [Graph.Update] recomputes each reachable node at most
// once per [Token]: dependencies first, then the node, then its listeners.
//
// # Curves
//
// [PolyCurve] chains line and cubic [Segment]s. Global parameters run over
// [0, Len]; the integer part picks the segment. Curves support arc-length
// parameterization ([PolyCurve.ArcLengthTable]), partial ranges
// ([PolyCurve.PartialRange]) and intersection ([Intersector]).
//
// Logging goes through [log/slog] and is silent until [SetLogger] is called.
//
// [ebiten]: https://ebitengine.org
package s2
