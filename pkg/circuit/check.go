package circuit

import (
	"github.com/matzehuels/cmlayout/pkg/errors"
)

// Diagnostics summarizes the adjacency consistency of a graph.
type Diagnostics struct {
	InputWires  int // total length of every Inputs list
	OutputWires int // total length of every Outputs list
	Dangling    int // references to components the graph no longer owns

	// Err is an INCONSISTENT_ADJACENCY error when InputWires and
	// OutputWires differ, nil otherwise. It is a report, not a failure.
	Err error
}

// Consistent reports whether no inconsistency or dangling reference was found.
func (d Diagnostics) Consistent() bool { return d.Err == nil && d.Dangling == 0 }

// Check counts wires and dangling references without modifying the graph.
// After [Graph.Bridge] on a well-formed graph the input and output counts
// match; a mismatch points at dangling references or a hand-built graph
// that was never bridged.
func (g *Graph) Check() Diagnostics {
	var d Diagnostics
	for _, c := range g.All() {
		d.InputWires += len(c.Inputs)
		d.OutputWires += len(c.Outputs)
		for _, n := range c.Inputs {
			if !g.Contains(n) {
				d.Dangling++
			}
		}
		for _, n := range c.Outputs {
			if !g.Contains(n) {
				d.Dangling++
			}
		}
	}
	if d.InputWires != d.OutputWires {
		d.Err = errors.New(errors.ErrCodeInconsistentAdjacency,
			"%d input wires but %d output wires", d.InputWires, d.OutputWires)
	}
	return d
}

// Stats is a structural summary of a graph.
type Stats struct {
	Components int
	ByKind     map[Kind]int
	Sources    int
	Sinks      int
	Isolated   int
	Wires      int
}

// Summarize counts components by kind and by interface role. Wires is half
// the total adjacency length, which equals the number of distinct wires
// once the graph is bridged.
func (g *Graph) Summarize() Stats {
	s := Stats{Components: g.Len(), ByKind: make(map[Kind]int)}
	total := 0
	for _, c := range g.All() {
		s.ByKind[c.Kind]++
		total += c.ConnectionCount()
		switch {
		case len(c.Inputs) == 0 && len(c.Outputs) == 0:
			s.Isolated++
		case len(c.Inputs) == 0:
			s.Sources++
		case len(c.Outputs) == 0:
			s.Sinks++
		}
	}
	s.Wires = total / 2
	return s
}
