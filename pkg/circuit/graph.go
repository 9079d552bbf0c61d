package circuit

import (
	"iter"
	"slices"

	"github.com/RoaringBitmap/roaring"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/cmlayout/pkg/errors"
)

type slot struct {
	c    *Component
	gen  uint32
	refs int // occurrences in Graph.order
}

// Graph owns a collection of components. The collection is ordered, and the
// order is what the save format serializes. A component may appear more than
// once until [Graph.Deduplicate] runs.
//
// Components live in an arena indexed by [Handle]. Adjacency lists store
// handles, so the cyclic input/output structure never owns anything.
//
// The zero value is not usable - use New to create a Graph.
// Graph is not safe for concurrent use.
type Graph struct {
	slots []slot
	free  []uint32
	byPtr map[*Component]Handle
	order []Handle
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{byPtr: make(map[*Component]Handle)}
}

// Add appends c to the collection and returns its handle. Adding a component
// that is already owned appends its existing handle again, creating a
// duplicate entry.
func (g *Graph) Add(c *Component) Handle {
	if h, ok := g.byPtr[c]; ok {
		g.slots[h.slot].refs++
		g.order = append(g.order, h)
		return h
	}

	var h Handle
	if n := len(g.free); n > 0 {
		idx := g.free[n-1]
		g.free = g.free[:n-1]
		h = Handle{slot: idx, gen: g.slots[idx].gen}
	} else {
		g.slots = append(g.slots, slot{gen: 1})
		h = Handle{slot: uint32(len(g.slots) - 1), gen: 1}
	}
	g.slots[h.slot].c = c
	g.slots[h.slot].refs = 1
	g.byPtr[c] = h
	g.order = append(g.order, h)
	return h
}

// NewComponent creates a component with [NewComponent] and adds it.
func (g *Graph) NewComponent(kind Kind, pos r3.Vec) Handle {
	return g.Add(NewComponent(kind, pos))
}

// Remove deletes the first occurrence of h from the collection and reports
// whether one was found. Neighbor lists are not scrubbed: callers must run
// [Graph.Disconnect] first or accept dangling references, which [Graph.Check]
// reports. Once no occurrence remains, h and every copy of it stop resolving.
func (g *Graph) Remove(h Handle) bool {
	if !g.Contains(h) {
		return false
	}
	i := slices.Index(g.order, h)
	g.order = slices.Delete(g.order, i, i+1)

	s := &g.slots[h.slot]
	s.refs--
	if s.refs == 0 {
		delete(g.byPtr, s.c)
		s.c = nil
		s.gen++
		g.free = append(g.free, h.slot)
	}
	return true
}

// Disconnect removes h from the adjacency lists of every component in the
// collection and clears h's own lists. It returns the number of references
// removed, not counting h's own lists.
func (g *Graph) Disconnect(h Handle) int {
	c, ok := g.Component(h)
	if !ok {
		return 0
	}
	removed := 0
	for _, other := range g.order {
		oc := g.slots[other.slot].c
		before := len(oc.Inputs) + len(oc.Outputs)
		oc.Inputs = slices.DeleteFunc(oc.Inputs, func(n Handle) bool { return n == h })
		oc.Outputs = slices.DeleteFunc(oc.Outputs, func(n Handle) bool { return n == h })
		removed += before - len(oc.Inputs) - len(oc.Outputs)
	}
	c.Inputs = c.Inputs[:0]
	c.Outputs = c.Outputs[:0]
	return removed
}

// Component resolves h. It returns false for the zero handle, for handles of
// removed components, and for handles from another graph's arena that do
// not match a live slot.
func (g *Graph) Component(h Handle) (*Component, bool) {
	if h.IsZero() || int(h.slot) >= len(g.slots) {
		return nil, false
	}
	s := g.slots[h.slot]
	if s.gen != h.gen || s.c == nil {
		return nil, false
	}
	return s.c, true
}

// Contains reports whether h refers to a component owned by g.
func (g *Graph) Contains(h Handle) bool {
	_, ok := g.Component(h)
	return ok
}

// HandleOf returns the handle of c if g owns it.
func (g *Graph) HandleOf(c *Component) (Handle, bool) {
	h, ok := g.byPtr[c]
	return h, ok
}

// Len returns the number of entries in the collection, duplicates included.
func (g *Graph) Len() int { return len(g.order) }

// Handles returns a copy of the collection in order.
func (g *Graph) Handles() []Handle { return slices.Clone(g.order) }

// All yields every entry of the collection in order.
func (g *Graph) All() iter.Seq2[Handle, *Component] {
	return func(yield func(Handle, *Component) bool) {
		for _, h := range g.order {
			if !yield(h, g.slots[h.slot].c) {
				return
			}
		}
	}
}

// IndexOf returns the position of the first occurrence of h, or -1.
func (g *Graph) IndexOf(h Handle) int {
	if !g.Contains(h) {
		return -1
	}
	return slices.Index(g.order, h)
}

// IndexMap maps every owned handle to the position of its first occurrence.
func (g *Graph) IndexMap() map[Handle]int {
	m := make(map[Handle]int, len(g.order))
	for i, h := range g.order {
		if _, ok := m[h]; !ok {
			m[h] = i
		}
	}
	return m
}

// Clear removes every component.
func (g *Graph) Clear() {
	g.slots = nil
	g.free = nil
	g.order = nil
	g.byPtr = make(map[*Component]Handle)
}

// Clone returns a deep copy of g. Handles are preserved, so a handle of g
// resolves to the corresponding copy in the clone.
func (g *Graph) Clone() *Graph {
	cp := &Graph{
		slots: make([]slot, len(g.slots)),
		free:  slices.Clone(g.free),
		byPtr: make(map[*Component]Handle, len(g.byPtr)),
		order: slices.Clone(g.order),
	}
	for i, s := range g.slots {
		cp.slots[i] = slot{gen: s.gen, refs: s.refs}
		if s.c != nil {
			c := s.c.Clone()
			cp.slots[i].c = c
			cp.byPtr[c] = Handle{slot: uint32(i), gen: s.gen}
		}
	}
	return cp
}

// Deduplicate removes repeated entries of the same component, keeping the
// first occurrence. Identity is by reference, not by value: two distinct
// components with equal fields are both kept. It returns the number of
// entries removed.
func (g *Graph) Deduplicate() int {
	seen := roaring.New()
	kept := g.order[:0]
	for _, h := range g.order {
		if seen.CheckedAdd(h.slot) {
			kept = append(kept, h)
			g.slots[h.slot].refs = 1
		}
	}
	removed := len(g.order) - len(kept)
	clear(g.order[len(kept):])
	g.order = kept
	return removed
}

// Bridge makes adjacency symmetric: for every component C and every N in
// C.Inputs, C is appended to N.Outputs if absent, and for every N in
// C.Outputs, C is appended to N.Inputs if absent. Dangling neighbors are
// skipped. It returns the number of references appended; a second call
// returns 0.
func (g *Graph) Bridge() int {
	changes := 0
	for _, h := range g.order {
		c := g.slots[h.slot].c
		for _, in := range c.Inputs {
			n, ok := g.Component(in)
			if !ok || slices.Contains(n.Outputs, h) {
				continue
			}
			n.Outputs = append(n.Outputs, h)
			changes++
		}
		for _, out := range c.Outputs {
			n, ok := g.Component(out)
			if !ok || slices.Contains(n.Inputs, h) {
				continue
			}
			n.Inputs = append(n.Inputs, h)
			changes++
		}
	}
	return changes
}

// MakeConnection wires src to dst: dst is appended to src.Outputs and src to
// dst.Inputs. It fails with NOT_IN_GRAPH if either endpoint is not owned.
func (g *Graph) MakeConnection(src, dst Handle) error {
	s, ok := g.Component(src)
	if !ok {
		return errors.New(errors.ErrCodeNotInGraph, "source %s not in graph", src)
	}
	d, ok := g.Component(dst)
	if !ok {
		return errors.New(errors.ErrCodeNotInGraph, "target %s not in graph", dst)
	}
	s.Outputs = append(s.Outputs, dst)
	d.Inputs = append(d.Inputs, src)
	return nil
}
