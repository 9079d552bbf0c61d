package circuit

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// Handle refers to a component owned by a [Graph]. Handles carry a
// generation, so a handle to a removed component never resolves again even
// if its arena slot is reused. The zero Handle refers to nothing.
type Handle struct {
	slot uint32
	gen  uint32
}

// IsZero reports whether h is the zero Handle.
func (h Handle) IsZero() bool { return h.gen == 0 }

// Slot returns the arena slot of h. Live handles of one graph never share a
// slot, so it can key dense sets such as bitmaps.
func (h Handle) Slot() uint32 { return h.slot }

func (h Handle) String() string {
	if h.IsZero() {
		return "#none"
	}
	return fmt.Sprintf("#%d.%d", h.slot, h.gen)
}

// Component is a single node of a circuit graph.
//
// Inputs and Outputs are ordered, non-owning references to other components
// of the same Graph. Nothing forces them to be symmetric: a component may
// list B as an output while B does not list it as an input. [Graph.Bridge]
// restores symmetry after bulk edits.
type Component struct {
	Kind     Kind
	State    State
	Position r3.Vec
	Inputs   []Handle
	Outputs  []Handle
	Augments Augments
}

// NewComponent returns an OFF component of the given kind at pos with the
// kind's default augments and empty adjacency.
func NewComponent(kind Kind, pos r3.Vec) *Component {
	return &Component{
		Kind:     kind,
		Position: pos,
		Inputs:   []Handle{},
		Outputs:  []Handle{},
		Augments: DefaultAugments(kind),
	}
}

// ConnectionCount returns len(Inputs) + len(Outputs).
func (c *Component) ConnectionCount() int { return len(c.Inputs) + len(c.Outputs) }

// Clone returns a copy with its own adjacency slices. The handles inside
// still refer to the original graph's components.
func (c *Component) Clone() *Component {
	cp := *c
	cp.Inputs = slices.Clone(c.Inputs)
	cp.Outputs = slices.Clone(c.Outputs)
	if raw, ok := c.Augments.(RawAugments); ok {
		cp.Augments = RawAugments(raw.Values())
	}
	return &cp
}

func (c *Component) String() string {
	return fmt.Sprintf("<Component kind=%s state=%s>", c.Kind, c.State)
}
