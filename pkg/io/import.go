package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/cmlayout/pkg/circuit"
	"github.com/matzehuels/cmlayout/pkg/errors"
)

// ReadJSON decodes a node-link JSON graph from r.
//
// kind accepts a name or a numeric code. state accepts "ON" or "OFF" and
// defaults to OFF. Missing augments take the kind's defaults.
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - A node has a duplicate id or an unknown kind or state
//   - A node's augments do not fit its kind
//   - An edge references an unknown node id
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*circuit.Graph, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	g := circuit.New()
	ids := make(map[int]circuit.Handle, len(data.Nodes))
	for _, n := range data.Nodes {
		if _, dup := ids[n.ID]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "node %d: duplicate id", n.ID)
		}
		c, err := decodeNode(n)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
		ids[n.ID] = g.Add(c)
	}
	for _, e := range data.Edges {
		from, ok := ids[e.From]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d->%d: unknown source", e.From, e.To)
		}
		to, ok := ids[e.To]
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "edge %d->%d: unknown target", e.From, e.To)
		}
		if err := g.MakeConnection(from, to); err != nil {
			return nil, fmt.Errorf("edge %d->%d: %w", e.From, e.To, err)
		}
	}
	return g, nil
}

func decodeNode(n node) (*circuit.Component, error) {
	kind, ok := circuit.ParseKind(n.Kind)
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown kind %q", n.Kind)
	}

	c := circuit.NewComponent(kind, r3.Vec{X: n.Position[0], Y: n.Position[1], Z: n.Position[2]})
	switch n.State {
	case "", "OFF", "off":
	case "ON", "on":
		c.State = circuit.On
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown state %q", n.State)
	}

	if n.Augments != nil {
		tokens := make([]string, len(n.Augments))
		for i, v := range n.Augments {
			tokens[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		aug, err := circuit.DecodeAugments(kind, tokens)
		if err != nil {
			return nil, err
		}
		c.Augments = aug
	}
	return c, nil
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
func ImportJSON(path string) (*circuit.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
