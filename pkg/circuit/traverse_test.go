package circuit

import (
	"slices"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/cmlayout/pkg/errors"
)

//	a → b → c
//	 \_____↗
func diamond(t *testing.T) (*Graph, Handle, Handle, Handle) {
	t.Helper()
	g := New()
	hs := chain(t, g, 3)
	if err := g.MakeConnection(hs[0], hs[2]); err != nil {
		t.Fatal(err)
	}
	return g, hs[0], hs[1], hs[2]
}

func TestReachable(t *testing.T) {
	g, a, b, c := diamond(t)
	g.NewComponent(KindNode, r3.Vec{Y: 9})

	visits, err := g.Reachable(a, Downstream)
	if err != nil {
		t.Fatalf("Reachable() error: %v", err)
	}

	depths := make(map[Handle]int)
	for _, v := range visits {
		if _, dup := depths[v.Handle]; dup {
			t.Errorf("%v visited twice", v.Handle)
		}
		depths[v.Handle] = v.Depth
	}
	want := map[Handle]int{a: 0, b: 1, c: 1}
	if len(depths) != len(want) {
		t.Fatalf("Reachable() = %v, want %v", depths, want)
	}
	for h, d := range want {
		if depths[h] != d {
			t.Errorf("depth(%v) = %d, want %d", h, depths[h], d)
		}
	}

	up, _ := g.Reachable(c, Upstream)
	if len(up) != 3 {
		t.Errorf("upstream from c reached %d components, want 3", len(up))
	}
}

func TestTopologicalOrder(t *testing.T) {
	g, a, b, c := diamond(t)

	order, err := g.TopologicalOrder(a, Downstream)
	if err != nil {
		t.Fatalf("TopologicalOrder() error: %v", err)
	}
	if !slices.Equal(order, []Handle{a, b, c}) {
		t.Errorf("TopologicalOrder() = %v", order)
	}

	n, err := g.LongestPath(a, Downstream)
	if err != nil || n != 2 {
		t.Errorf("LongestPath() = %d, %v; want 2", n, err)
	}
}

func TestTopologicalOrder_Cycle(t *testing.T) {
	g, a, _, c := diamond(t)
	_ = g.MakeConnection(c, a)

	if _, err := g.TopologicalOrder(a, Downstream); !errors.Is(err, errors.ErrCodeCycleDetected) {
		t.Errorf("TopologicalOrder() error = %v, want CYCLE_DETECTED", err)
	}
	if _, err := g.LongestPath(a, Downstream); !errors.Is(err, errors.ErrCodeCycleDetected) {
		t.Errorf("LongestPath() error = %v, want CYCLE_DETECTED", err)
	}
}

func TestTopologicalOrder_SelfLoop(t *testing.T) {
	g := New()
	a := g.NewComponent(KindFlipFlop, r3.Vec{})
	_ = g.MakeConnection(a, a)

	if _, err := g.TopologicalOrder(a, Downstream); !errors.Is(err, errors.ErrCodeCycleDetected) {
		t.Errorf("error = %v, want CYCLE_DETECTED", err)
	}
}

func TestTraversal_NotInGraph(t *testing.T) {
	g := New()
	if _, err := g.Reachable(Handle{}, Downstream); !errors.Is(err, errors.ErrCodeNotInGraph) {
		t.Errorf("Reachable() error = %v", err)
	}
	if _, err := g.TopologicalOrder(Handle{}, Upstream); !errors.Is(err, errors.ErrCodeNotInGraph) {
		t.Errorf("TopologicalOrder() error = %v", err)
	}
}
