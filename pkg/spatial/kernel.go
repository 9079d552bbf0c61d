package spatial

import (
	"slices"
	"strings"

	"github.com/matzehuels/cmlayout/pkg/errors"
)

// Kernel is a set of cell offsets that defines which cells neighbor each other.
type Kernel []Cell

var (
	// PlanarKernel connects horizontal face neighbors, the two diagonals
	// along X = -Z, and the cells directly above and below.
	PlanarKernel = Kernel{
		{-1, 0, 0}, {1, 0, 0},
		{0, 0, -1}, {0, 0, 1},
		{-1, 0, 1}, {1, 0, -1},
		{0, 1, 0}, {0, -1, 0},
	}

	// FaceKernel connects the six cells sharing a face.
	FaceKernel = Kernel{
		{-1, 0, 0}, {1, 0, 0},
		{0, -1, 0}, {0, 1, 0},
		{0, 0, -1}, {0, 0, 1},
	}

	// MooreKernel connects all 26 surrounding cells.
	MooreKernel = mooreKernel()
)

func mooreKernel() Kernel {
	k := make(Kernel, 0, 26)
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}
				k = append(k, Cell{x, y, z})
			}
		}
	}
	return k
}

var kernels = map[string]Kernel{
	"planar": PlanarKernel,
	"face":   FaceKernel,
	"moore":  MooreKernel,
}

// KernelNames returns the names accepted by [KernelByName], sorted.
func KernelNames() []string {
	names := make([]string, 0, len(kernels))
	for name := range kernels {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// KernelByName returns a copy of the named kernel.
func KernelByName(name string) (Kernel, error) {
	k, ok := kernels[strings.ToLower(name)]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown kernel %q (want one of %s)", name, strings.Join(KernelNames(), ", "))
	}
	return slices.Clone(k), nil
}
