// Package circuit models logic circuits as directed graphs of typed
// components positioned on an integer grid in 3D space.
//
// # Overview
//
// A [Graph] owns an ordered collection of [Component] values. Each component
// has a [Kind] (gate, I/O, display, sound, wiring node and so on), a binary
// [State], a position, kind-specific [Augments], and two ordered adjacency
// lists: Inputs and Outputs.
//
// Components reference each other through [Handle] values issued by the
// graph's arena rather than through pointers. A handle is generation
// checked: once every occurrence of a component has been removed, any
// handle still pointing at it fails to resolve instead of silently aliasing
// whatever component later reuses the slot.
//
// # Building Graphs
//
//	g := circuit.New()
//	a := g.NewComponent(circuit.KindButton, r3.Vec{})
//	b := g.NewComponent(circuit.KindLED, r3.Vec{X: 1})
//	_ = g.MakeConnection(a, b)
//
// [Graph.MakeConnection] keeps both endpoints in sync. Code that edits
// Inputs or Outputs directly may leave adjacency one-sided; [Graph.Bridge]
// repairs that and [Graph.Check] reports what is left.
//
// # Ordering and Duplicates
//
// Collection order is what the save format serializes, so it is preserved
// by every operation. Adding the same component twice creates a duplicate
// entry that [Graph.Deduplicate] later removes. Identity is by reference:
// two separately constructed components with equal fields are distinct.
//
// # Queries
//
// [Graph.Sources], [Graph.Sinks], [Graph.Isolated] and [Graph.ByKind] return
// lazy sequences that read the graph as they are ranged over.
// [Graph.Reachable], [Graph.TopologicalOrder] and [Graph.LongestPath] walk
// the graph iteratively, so deep circuits cannot exhaust the stack.
//
// # Concurrency
//
// A Graph is not safe for concurrent use. Callers that share one across
// goroutines must serialize access.
package circuit
