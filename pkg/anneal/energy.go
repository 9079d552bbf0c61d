package anneal

import (
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/gonum/stat"

	"github.com/matzehuels/cmlayout/pkg/circuit"
)

// LocalEnergy returns the summed distance from pos to the current position of
// every input and output of h. Dangling references contribute nothing.
func LocalEnergy(g *circuit.Graph, h circuit.Handle, pos r3.Vec) float64 {
	c, ok := g.Component(h)
	if !ok {
		return 0
	}
	return localEnergy(g, c, pos)
}

func localEnergy(g *circuit.Graph, c *circuit.Component, pos r3.Vec) float64 {
	total := 0.0
	for _, list := range [2][]circuit.Handle{c.Outputs, c.Inputs} {
		for _, n := range list {
			if nc, ok := g.Component(n); ok {
				total += r3.Norm(r3.Sub(pos, nc.Position))
			}
		}
	}
	return total
}

// WireLength returns the summed length of every wire, counting each entry of
// every Outputs list once.
func WireLength(g *circuit.Graph) float64 {
	total := 0.0
	for _, c := range g.All() {
		for _, n := range c.Outputs {
			if nc, ok := g.Component(n); ok {
				total += r3.Norm(r3.Sub(c.Position, nc.Position))
			}
		}
	}
	return total
}

// RollingAverage is the mean of the most recent samples in a fixed window.
type RollingAverage struct {
	samples []float64
	next    int
	full    bool
}

// NewRollingAverage returns an empty average over size samples.
func NewRollingAverage(size int) *RollingAverage {
	return &RollingAverage{samples: make([]float64, max(size, 1))}
}

// Sample records v, evicting the oldest sample once the window is full.
func (r *RollingAverage) Sample(v float64) {
	r.samples[r.next] = v
	r.next++
	if r.next == len(r.samples) {
		r.next = 0
		r.full = true
	}
}

// Len returns the number of samples currently held.
func (r *RollingAverage) Len() int {
	if r.full {
		return len(r.samples)
	}
	return r.next
}

// Mean returns the average of the held samples, or 0 when there are none.
func (r *RollingAverage) Mean() float64 {
	n := r.Len()
	if n == 0 {
		return 0
	}
	return stat.Mean(r.samples[:n], nil)
}
