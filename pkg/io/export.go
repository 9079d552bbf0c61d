package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/cmlayout/pkg/circuit"
	"github.com/matzehuels/cmlayout/pkg/errors"
)

type graph struct {
	Nodes []node `json:"nodes"`
	Edges []edge `json:"edges"`
}

type node struct {
	ID       int        `json:"id"`
	Kind     string     `json:"kind"`
	State    string     `json:"state,omitempty"`
	Position [3]float64 `json:"position"`
	Augments []float64  `json:"augments,omitempty"`
}

type edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// WriteJSON encodes g as node-link JSON and writes it to w. g is
// deduplicated first. References to components g does not own fail with
// NOT_IN_GRAPH.
func WriteJSON(g *circuit.Graph, w io.Writer) error {
	g.Deduplicate()
	index := g.IndexMap()

	out := graph{Nodes: make([]node, 0, g.Len()), Edges: []edge{}}
	for h, c := range g.All() {
		id := index[h] + 1
		nd := node{
			ID:       id,
			Kind:     c.Kind.String(),
			Position: [3]float64{c.Position.X, c.Position.Y, c.Position.Z},
		}
		if c.State == circuit.On {
			nd.State = c.State.String()
		}
		if !circuit.IsDefaultAugments(c.Kind, c.Augments) {
			nd.Augments = c.Augments.Values()
		}
		out.Nodes = append(out.Nodes, nd)

		for _, o := range c.Outputs {
			to, ok := index[o]
			if !ok {
				return errors.New(errors.ErrCodeNotInGraph, "node %d: output %s not in graph", id, o)
			}
			out.Edges = append(out.Edges, edge{From: id, To: to + 1})
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(g *circuit.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(g, f)
}
