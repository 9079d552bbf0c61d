// Package nodelink renders circuit graphs as node-link diagrams.
//
// # Overview
//
// This package turns a circuit graph into Graphviz DOT and renders it to SVG
// in-process. It is the quickest way to eyeball a build before and after
// placement optimization.
//
// # Usage
//
// Convert a graph to DOT, then render to SVG:
//
//	dot, err := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.LayoutDot)
//
// # Options
//
// The [Options] struct controls diagram generation:
//
//   - Detailed: labels include the save-file index, state, position and any
//     non-default augments
//   - Pinned: nodes carry their X/Y build position as a fixed pos attribute,
//     so rendering with [LayoutNeato] draws the physical layout and its wire
//     lengths instead of a ranked diagram
//
// # DOT Format
//
// The generated DOT uses left-to-right ranking (rankdir=LR), so signal flows
// from sources on the left to sinks on the right. Boundary components are
// ellipses and ON components are filled gold.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
