package geometry

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/cmlayout/pkg/circuit"
)

func square(t *testing.T) (*circuit.Graph, []circuit.Handle) {
	t.Helper()
	g := circuit.New()
	hs := []circuit.Handle{
		g.NewComponent(circuit.KindNode, r3.Vec{X: 2, Y: 1, Z: 3}),
		g.NewComponent(circuit.KindNode, r3.Vec{X: 4, Y: 1, Z: 3}),
		g.NewComponent(circuit.KindNode, r3.Vec{X: 2, Y: 5, Z: -1}),
	}
	return g, hs
}

func position(g *circuit.Graph, h circuit.Handle) r3.Vec {
	c, _ := g.Component(h)
	return c.Position
}

func TestBounds(t *testing.T) {
	g, hs := square(t)

	box, ok := Bounds(g, nil)
	if !ok {
		t.Fatal("Bounds() ok = false")
	}
	if box.Min != (r3.Vec{X: 2, Y: 1, Z: -1}) || box.Max != (r3.Vec{X: 4, Y: 5, Z: 3}) {
		t.Errorf("Bounds() = %v", box)
	}

	box, _ = Bounds(g, hs[:1])
	if box.Min != box.Max {
		t.Errorf("single member bounds = %v", box)
	}
	if _, ok := Bounds(circuit.New(), nil); ok {
		t.Error("empty graph should have no bounds")
	}
}

func TestAnchor(t *testing.T) {
	g, hs := square(t)

	Anchor(g, nil, r3.Vec{})

	if got := position(g, hs[0]); got != (r3.Vec{X: 0, Y: 0, Z: 4}) {
		t.Errorf("position = %v", got)
	}
	box, _ := Bounds(g, nil)
	if box.Min != (r3.Vec{}) {
		t.Errorf("Bounds().Min = %v, want origin", box.Min)
	}
}

func TestTranslate_Subset(t *testing.T) {
	g, hs := square(t)

	Translate(g, hs[1:2], r3.Vec{X: -4})

	if got := position(g, hs[1]); got != (r3.Vec{X: 0, Y: 1, Z: 3}) {
		t.Errorf("moved = %v", got)
	}
	if got := position(g, hs[0]); got != (r3.Vec{X: 2, Y: 1, Z: 3}) {
		t.Errorf("untouched = %v", got)
	}
}

func TestRotate(t *testing.T) {
	tests := []struct {
		name    string
		degrees r3.Vec
		in      r3.Vec
		want    r3.Vec
	}{
		{"z quarter turn", r3.Vec{Z: 90}, r3.Vec{X: 1}, r3.Vec{Y: 1}},
		{"y quarter turn", r3.Vec{Y: 90}, r3.Vec{Z: 1}, r3.Vec{X: 1}},
		{"x half turn", r3.Vec{X: 180}, r3.Vec{Y: 1, Z: 2}, r3.Vec{Y: -1, Z: -2}},
		{"full turn", r3.Vec{X: 360, Y: 360}, r3.Vec{X: 3, Y: 2, Z: 1}, r3.Vec{X: 3, Y: 2, Z: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := circuit.New()
			h := g.NewComponent(circuit.KindNode, tt.in)

			Rotate(g, nil, r3.Vec{}, tt.degrees)
			Snap(g, nil)

			if got := position(g, h); got != tt.want {
				t.Errorf("Rotate(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRotate_AboutOrigin(t *testing.T) {
	g := circuit.New()
	h := g.NewComponent(circuit.KindNode, r3.Vec{X: 6, Y: 5})

	Rotate(g, nil, r3.Vec{X: 5, Y: 5}, r3.Vec{Z: 180})
	Snap(g, nil)

	if got := position(g, h); got != (r3.Vec{X: 4, Y: 5}) {
		t.Errorf("position = %v, want (4,5,0)", got)
	}
}
