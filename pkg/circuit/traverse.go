package circuit

import (
	"github.com/RoaringBitmap/roaring"

	"github.com/matzehuels/cmlayout/pkg/errors"
)

// Direction selects which adjacency list a traversal follows.
type Direction uint8

const (
	// Downstream follows Outputs.
	Downstream Direction = iota
	// Upstream follows Inputs.
	Upstream
)

func (d Direction) String() string {
	if d == Upstream {
		return "upstream"
	}
	return "downstream"
}

func (d Direction) next(c *Component) []Handle {
	if d == Upstream {
		return c.Inputs
	}
	return c.Outputs
}

// Visit is one component reached by [Graph.Reachable] and the depth, in
// wires, at which it was first reached.
type Visit struct {
	Handle Handle
	Depth  int
}

// Reachable walks the graph depth-first from root and returns every
// component reachable in direction dir, root included at depth 0. Each
// component appears once. Dangling references are skipped.
func (g *Graph) Reachable(root Handle, dir Direction) ([]Visit, error) {
	if !g.Contains(root) {
		return nil, errors.New(errors.ErrCodeNotInGraph, "root %s not in graph", root)
	}

	visited := roaring.New()
	stack := []Visit{{Handle: root}}
	var result []Visit
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visited.CheckedAdd(v.Handle.slot) {
			continue
		}
		result = append(result, v)

		c := g.slots[v.Handle.slot].c
		for _, n := range dir.next(c) {
			if !g.Contains(n) || visited.Contains(n.slot) {
				continue
			}
			stack = append(stack, Visit{Handle: n, Depth: v.Depth + 1})
		}
	}
	return result, nil
}

// TopologicalOrder returns the components reachable from root in direction
// dir, ordered so that every component precedes the components it leads to.
// It fails with CYCLE_DETECTED if the reachable region contains a cycle.
func (g *Graph) TopologicalOrder(root Handle, dir Direction) ([]Handle, error) {
	if !g.Contains(root) {
		return nil, errors.New(errors.ErrCodeNotInGraph, "root %s not in graph", root)
	}

	const (
		white = iota
		gray
		black
	)
	type frame struct {
		h    Handle
		next int
	}

	color := make(map[uint32]int)
	var post []Handle
	stack := []frame{{h: root}}
	color[root.slot] = gray

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		neighbors := dir.next(g.slots[top.h.slot].c)
		if top.next == len(neighbors) {
			color[top.h.slot] = black
			post = append(post, top.h)
			stack = stack[:len(stack)-1]
			continue
		}
		n := neighbors[top.next]
		top.next++
		if !g.Contains(n) {
			continue
		}
		switch color[n.slot] {
		case white:
			color[n.slot] = gray
			stack = append(stack, frame{h: n})
		case gray:
			return nil, errors.New(errors.ErrCodeCycleDetected, "cycle through %s going %s from %s", n, dir, root)
		}
	}

	for i, j := 0, len(post)-1; i < j; i, j = i+1, j-1 {
		post[i], post[j] = post[j], post[i]
	}
	return post, nil
}

// LongestPath returns the number of wires on the longest path leaving root
// in direction dir. It fails with CYCLE_DETECTED when no longest path exists.
func (g *Graph) LongestPath(root Handle, dir Direction) (int, error) {
	order, err := g.TopologicalOrder(root, dir)
	if err != nil {
		return 0, err
	}
	depth := map[Handle]int{root: 0}
	longest := 0
	for _, h := range order {
		d := depth[h]
		longest = max(longest, d)
		for _, n := range dir.next(g.slots[h.slot].c) {
			if g.Contains(n) && depth[n] < d+1 {
				depth[n] = d + 1
			}
		}
	}
	return longest, nil
}
