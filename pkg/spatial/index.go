package spatial

import (
	"iter"
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/cmlayout/pkg/circuit"
)

// Cell is an integer grid coordinate.
type Cell [3]int

// CellOf truncates each coordinate of p toward zero.
func CellOf(p r3.Vec) Cell {
	return Cell{int(p.X), int(p.Y), int(p.Z)}
}

// Add returns c offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{c[0] + d[0], c[1] + d[1], c[2] + d[2]}
}

// Vec returns the cell's coordinates as a vector.
func (c Cell) Vec() r3.Vec {
	return r3.Vec{X: float64(c[0]), Y: float64(c[1]), Z: float64(c[2])}
}

// Index maps grid cells to the component handles occupying them.
// Index is not safe for concurrent use.
type Index struct {
	cells  map[Cell]circuit.Handle
	kernel Kernel
	rng    *rand.Rand
}

// New returns an empty index. A nil kernel selects [PlanarKernel]; a nil
// rng selects a generator with a fixed seed.
func New(kernel Kernel, rng *rand.Rand) *Index {
	if len(kernel) == 0 {
		kernel = PlanarKernel
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(0, 0xdeadbeef))
	}
	return &Index{
		cells:  make(map[Cell]circuit.Handle),
		kernel: kernel,
		rng:    rng,
	}
}

// Index records h as the occupant of pos's cell. It returns the previous
// occupant, if any, which is replaced.
func (ix *Index) Index(pos r3.Vec, h circuit.Handle) (circuit.Handle, bool) {
	c := CellOf(pos)
	prev, ok := ix.cells[c]
	ix.cells[c] = h
	return prev, ok
}

// Delete clears pos's cell and reports whether it was occupied.
func (ix *Index) Delete(pos r3.Vec) bool {
	c := CellOf(pos)
	_, ok := ix.cells[c]
	delete(ix.cells, c)
	return ok
}

// Value returns the occupant of pos's cell.
func (ix *Index) Value(pos r3.Vec) (circuit.Handle, bool) {
	h, ok := ix.cells[CellOf(pos)]
	return h, ok
}

// Swap exchanges the occupants of a's and b's cells. If one side is empty
// the other occupant moves into it.
func (ix *Index) Swap(a, b r3.Vec) {
	ca, cb := CellOf(a), CellOf(b)
	ha, okA := ix.cells[ca]
	hb, okB := ix.cells[cb]
	delete(ix.cells, ca)
	delete(ix.cells, cb)
	if okA {
		ix.cells[cb] = ha
	}
	if okB {
		ix.cells[ca] = hb
	}
}

// Len returns the number of occupied cells.
func (ix *Index) Len() int { return len(ix.cells) }

// Kernel returns the neighbor offsets in use.
func (ix *Index) Kernel() Kernel { return ix.kernel }

// All yields every occupied cell and its occupant in unspecified order.
func (ix *Index) All() iter.Seq2[Cell, circuit.Handle] {
	return func(yield func(Cell, circuit.Handle) bool) {
		for c, h := range ix.cells {
			if !yield(c, h) {
				return
			}
		}
	}
}

// OccupiedNeighbors yields the occupied cells around pos in random order.
// Each pass over the sequence draws a new order.
func (ix *Index) OccupiedNeighbors(pos r3.Vec) iter.Seq[Cell] {
	return ix.neighbors(pos, true)
}

// EmptyNeighbors yields the unoccupied cells around pos in random order.
func (ix *Index) EmptyNeighbors(pos r3.Vec) iter.Seq[Cell] {
	return ix.neighbors(pos, false)
}

func (ix *Index) neighbors(pos r3.Vec, occupied bool) iter.Seq[Cell] {
	origin := CellOf(pos)
	return func(yield func(Cell) bool) {
		for _, i := range ix.rng.Perm(len(ix.kernel)) {
			c := origin.Add(ix.kernel[i])
			if _, ok := ix.cells[c]; ok != occupied {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}
