// Package pkg provides the core libraries for cmlayout.
//
// # Overview
//
// cmlayout reads Circuit Maker 2 save strings, reports on their wiring, and
// rearranges component placement so wires get shorter. The pkg directory is
// organized into three areas:
//
//  1. Domain logic (circuit model, save codec, spatial index, optimizer)
//  2. Output (node-link JSON, Graphviz diagrams)
//  3. Infrastructure (pipeline, cache, config, errors, observability)
//
// # Architecture
//
// The typical data flow:
//
//	Save string
//	     ↓
//	[codec] package (deserialize into a circuit graph)
//	     ↓
//	[anneal] package (swap neighboring components, indexed by [spatial])
//	     ↓
//	[codec] package (serialize with compact fields and deduplicated wires)
//	     ↓
//	Save string, or DOT/SVG/JSON via [render/nodelink] and [io]
//
// # Quick Start
//
//	g, err := codec.ReadFile("build.txt")
//	if err != nil {
//	    return err
//	}
//	res, err := anneal.Optimize(ctx, g, anneal.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("wire length %.1f → %.1f\n", res.InitialWireLength, res.FinalWireLength)
//	return codec.WriteFile("build.opt.txt", g, codec.DefaultOptions())
//
// # Main Packages
//
// ## Domain Logic
//
// [circuit] - Components, kinds, augments and the graph that owns them.
// Components are stored in an arena and referenced by generation-checked
// handles, so the cyclic input/output wiring never owns anything. Includes
// deduplication, bridging, boundary classification, traversal and wiring
// diagnostics.
//
// [codec] - The save text format: components, wires and the custom section,
// with compact zero fields, wire deduplication and position rounding.
//
// [spatial] - Integer cell index over component positions with planar, face
// and Moore neighborhoods.
//
// [anneal] - Simulated annealing placement. Sources and sinks stay fixed;
// every other component may trade places with an occupied neighbor cell.
//
// [geometry] - Rigid moves of component groups: bounds, translation,
// anchoring, rotation and snapping.
//
// ## Output
//
// [io] - Node-link JSON import and export.
//
// [render/nodelink] - Graphviz DOT and SVG diagrams of the wiring.
//
// ## Infrastructure
//
// [pipeline] - Decode → optimize → encode and decode → render flows used by
// the CLI, with caching and codec metrics.
//
// [cache] - Content-addressed file cache for optimizer results and exports.
//
// [config] - TOML settings for the codec, optimizer and cache.
//
// [observability] - Optimizer, codec and cache hooks, with a Prometheus
// implementation in observability/prom.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/anneal/...   # Specific package
//	go test -run Example       # Examples only
//
// [circuit]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/circuit
// [codec]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/codec
// [spatial]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/spatial
// [anneal]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/anneal
// [geometry]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/geometry
// [io]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/cmlayout/pkg/errors
package pkg
