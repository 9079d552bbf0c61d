package circuit_test

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/cmlayout/pkg/circuit"
)

func ExampleGraph_basic() {
	// A button driving an LED through a NOR gate
	g := circuit.New()
	btn := g.NewComponent(circuit.KindButton, r3.Vec{})
	nor := g.NewComponent(circuit.KindNOR, r3.Vec{X: 1})
	led := g.NewComponent(circuit.KindLED, r3.Vec{X: 2})
	_ = g.MakeConnection(btn, nor)
	_ = g.MakeConnection(nor, led)

	s := g.Summarize()
	fmt.Println("Components:", s.Components)
	fmt.Println("Wires:", s.Wires)
	fmt.Println("Sources:", s.Sources)
	fmt.Println("Sinks:", s.Sinks)
	// Output:
	// Components: 3
	// Wires: 2
	// Sources: 1
	// Sinks: 1
}

func ExampleGraph_Bridge() {
	// Direct edits can leave adjacency one-sided
	g := circuit.New()
	a := g.NewComponent(circuit.KindNode, r3.Vec{})
	b := g.NewComponent(circuit.KindNode, r3.Vec{X: 1})
	ca, _ := g.Component(a)
	ca.Outputs = append(ca.Outputs, b)

	fmt.Println("Consistent before:", g.Check().Consistent())
	fmt.Println("Repairs:", g.Bridge())
	fmt.Println("Consistent after:", g.Check().Consistent())
	// Output:
	// Consistent before: false
	// Repairs: 1
	// Consistent after: true
}

func ExampleGraph_Deduplicate() {
	g := circuit.New()
	c := circuit.NewComponent(circuit.KindDelay, r3.Vec{})
	g.Add(c)
	g.Add(c)

	fmt.Println("Removed:", g.Deduplicate())
	fmt.Println("Removed again:", g.Deduplicate())
	// Output:
	// Removed: 1
	// Removed again: 0
}
