package anneal_test

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/cmlayout/pkg/anneal"
	"github.com/matzehuels/cmlayout/pkg/circuit"
)

func ExampleOptimize() {
	// in -> a -> b -> out, with a and b placed the wrong way round
	g := circuit.New()
	in := g.NewComponent(circuit.KindButton, r3.Vec{X: 0})
	a := g.NewComponent(circuit.KindNOR, r3.Vec{X: 2})
	b := g.NewComponent(circuit.KindNOR, r3.Vec{X: 1})
	out := g.NewComponent(circuit.KindLED, r3.Vec{X: 3})
	_ = g.MakeConnection(in, a)
	_ = g.MakeConnection(a, b)
	_ = g.MakeConnection(b, out)

	cfg := anneal.DefaultConfig()
	cfg.Iterations = 100
	cfg.InitialTemperature = 0

	res, _ := anneal.Optimize(context.Background(), g, cfg)
	fmt.Println("Before:", res.InitialWireLength)
	fmt.Println("After:", res.FinalWireLength)
	// Output:
	// Before: 5
	// After: 3
}
