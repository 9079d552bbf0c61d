// Package geometry moves groups of circuit components as rigid bodies.
//
// Every function takes the graph and the handles of the group to transform.
// A nil or empty group means every component in the graph. Handles that do
// not resolve are ignored.
//
// Rotations produce non-integral positions; the codec's rounding policy
// snaps them back onto the grid when the graph is saved.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/cmlayout/pkg/circuit"
)

func members(g *circuit.Graph, group []circuit.Handle) []*circuit.Component {
	if len(group) == 0 {
		group = g.Handles()
	}
	seen := make(map[*circuit.Component]bool, len(group))
	out := make([]*circuit.Component, 0, len(group))
	for _, h := range group {
		c, ok := g.Component(h)
		if !ok || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the group's positions.
// ok is false for an empty group.
func Bounds(g *circuit.Graph, group []circuit.Handle) (box r3.Box, ok bool) {
	cs := members(g, group)
	if len(cs) == 0 {
		return r3.Box{}, false
	}
	box.Min, box.Max = cs[0].Position, cs[0].Position
	for _, c := range cs[1:] {
		p := c.Position
		box.Min = r3.Vec{X: math.Min(box.Min.X, p.X), Y: math.Min(box.Min.Y, p.Y), Z: math.Min(box.Min.Z, p.Z)}
		box.Max = r3.Vec{X: math.Max(box.Max.X, p.X), Y: math.Max(box.Max.Y, p.Y), Z: math.Max(box.Max.Z, p.Z)}
	}
	return box, true
}

// Translate moves every component of the group by d.
func Translate(g *circuit.Graph, group []circuit.Handle, d r3.Vec) {
	for _, c := range members(g, group) {
		c.Position = r3.Add(c.Position, d)
	}
}

// Anchor translates the group so the minimum corner of its bounding box
// lands on at.
func Anchor(g *circuit.Graph, group []circuit.Handle, at r3.Vec) {
	box, ok := Bounds(g, group)
	if !ok {
		return
	}
	Translate(g, group, r3.Sub(at, box.Min))
}

// Rotate turns the group about origin by the given angles in degrees,
// applied about the X axis first, then Y, then Z. Positive angles turn
// counterclockwise when looking down the axis towards the origin.
func Rotate(g *circuit.Graph, group []circuit.Handle, origin, degrees r3.Vec) {
	steps := []r3.Rotation{
		r3.NewRotation(degrees.X*math.Pi/180, r3.Vec{X: 1}),
		r3.NewRotation(degrees.Y*math.Pi/180, r3.Vec{Y: 1}),
		r3.NewRotation(degrees.Z*math.Pi/180, r3.Vec{Z: 1}),
	}
	for _, c := range members(g, group) {
		p := r3.Sub(c.Position, origin)
		for _, r := range steps {
			p = r.Rotate(p)
		}
		c.Position = r3.Add(p, origin)
	}
}

// Snap rounds every coordinate of the group to the nearest integer,
// resolving ties to even.
func Snap(g *circuit.Graph, group []circuit.Handle) {
	for _, c := range members(g, group) {
		c.Position = r3.Vec{
			X: math.RoundToEven(c.Position.X),
			Y: math.RoundToEven(c.Position.Y),
			Z: math.RoundToEven(c.Position.Z),
		}
	}
}
