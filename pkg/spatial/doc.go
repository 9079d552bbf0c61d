// Package spatial indexes circuit components by integer grid cell.
//
// An [Index] is a derived cache: component positions stay authoritative and
// the index can be rebuilt from them at any time. It assumes at most one
// occupant per cell; indexing a second component into an occupied cell
// replaces the first.
//
// Neighbor queries walk a [Kernel] of cell offsets in a fresh random order
// on every pass, so the first occupied neighbor a caller sees is a uniform
// pick among all occupied neighbors.
package spatial
