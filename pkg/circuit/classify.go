package circuit

import "iter"

// Sources yields components with no inputs and at least one output, in
// collection order. The sequence reads the graph lazily and may be ranged
// over any number of times.
func (g *Graph) Sources() iter.Seq[Handle] {
	return g.filter(func(c *Component) bool { return len(c.Inputs) == 0 && len(c.Outputs) > 0 })
}

// Sinks yields components with no outputs and at least one input.
func (g *Graph) Sinks() iter.Seq[Handle] {
	return g.filter(func(c *Component) bool { return len(c.Outputs) == 0 && len(c.Inputs) > 0 })
}

// Isolated yields components with neither inputs nor outputs.
func (g *Graph) Isolated() iter.Seq[Handle] {
	return g.filter(func(c *Component) bool { return len(c.Inputs) == 0 && len(c.Outputs) == 0 })
}

// ByKind yields components of the given kind.
func (g *Graph) ByKind(kind Kind) iter.Seq[Handle] {
	return g.filter(func(c *Component) bool { return c.Kind == kind })
}

func (g *Graph) filter(keep func(*Component) bool) iter.Seq[Handle] {
	return func(yield func(Handle) bool) {
		for h, c := range g.All() {
			if keep(c) && !yield(h) {
				return
			}
		}
	}
}

// IsBoundary reports whether c is a source or a sink.
func IsBoundary(c *Component) bool {
	return (len(c.Inputs) == 0) != (len(c.Outputs) == 0)
}
