// Package anneal improves circuit placement by simulated annealing.
//
// # Overview
//
// The optimizer treats every component's position as a slot in a grid and
// repeatedly proposes swapping two neighboring components. A swap is scored
// by the change in local energy, the summed Euclidean length of the wires
// touching either component. Swaps that shorten wiring are always accepted;
// longer ones are accepted with a probability that falls as the temperature
// cools linearly towards zero.
//
// Sources and sinks (components wired on one side only) model fixed I/O pins
// and never move. They are left out of the spatial index entirely, so they
// can be neither a candidate nor a swap partner.
//
// # Usage
//
//	cfg := anneal.DefaultConfig()
//	cfg.Iterations = 200_000
//	res, err := anneal.Optimize(ctx, g, cfg, anneal.WithLogger(logger))
//
// For interactive use, create an [Optimizer] with [New] and drive it with
// [Optimizer.Step], reading [Optimizer.Progress] between batches.
//
// # Acceptance Criteria
//
// [CriterionMetropolis] accepts a worsening swap with probability
// exp(-d/T). [CriterionLegacy] reproduces the behavior of the original
// tooling, (-d/T)^2, which grows with d and is kept only for parity
// experiments. Under either criterion a temperature of zero accepts only
// strict improvements.
//
// # Concurrency
//
// An Optimizer mutates its graph in place and is not safe for concurrent use.
package anneal
