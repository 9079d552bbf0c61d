package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cmlayout/pkg/circuit"
	"github.com/matzehuels/cmlayout/pkg/errors"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the save-file index, state, position and non-default
	// augments to each label. When false, only the kind is shown.
	Detailed bool

	// Pinned places every node at its X/Y build position instead of letting
	// Graphviz rank the graph. Render pinned DOT with [LayoutNeato].
	Pinned bool

	// Scale converts build units to Graphviz inches when Pinned is set.
	// Zero means 1.
	Scale float64
}

// Layout selects the Graphviz layout engine.
type Layout = graphviz.Layout

const (
	LayoutDot   Layout = graphviz.DOT
	LayoutNeato Layout = graphviz.NEATO
)

// ToDOT converts a circuit graph to Graphviz DOT format. Nodes are named by
// their 1-based save-file index and each entry of a component's Outputs
// becomes one edge. g is deduplicated first.
//
// Boundary components are drawn as ellipses so fixed inputs and outputs
// stand out from the movable logic. Components that are ON are filled yellow.
func ToDOT(g *circuit.Graph, opts Options) (string, error) {
	g.Deduplicate()
	index := g.IndexMap()
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	if opts.Pinned {
		buf.WriteString("  splines=true;\n")
	}
	buf.WriteString("\n")

	for h, c := range g.All() {
		attrs := fmtAttrs(c, fmtLabel(index[h]+1, c, opts.Detailed))
		if opts.Pinned {
			attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", fmtFloat(c.Position.X*scale), fmtFloat(c.Position.Y*scale)))
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", index[h]+1, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for h, c := range g.All() {
		for _, o := range c.Outputs {
			to, ok := index[o]
			if !ok {
				return "", errors.New(errors.ErrCodeNotInGraph, "component %d: output %s not in graph", index[h]+1, o)
			}
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", index[h]+1, to+1)
		}
	}

	buf.WriteString("}\n")
	return buf.String(), nil
}

func fmtLabel(id int, c *circuit.Component, detailed bool) string {
	if !detailed {
		return c.Kind.String()
	}

	parts := []string{
		fmt.Sprintf("#%d %s", id, c.State),
		fmt.Sprintf("(%s, %s, %s)", fmtFloat(c.Position.X), fmtFloat(c.Position.Y), fmtFloat(c.Position.Z)),
	}
	if !circuit.IsDefaultAugments(c.Kind, c.Augments) {
		vals := c.Augments.Values()
		strs := make([]string, len(vals))
		for i, v := range vals {
			strs[i] = fmtFloat(v)
		}
		parts = append(parts, "["+strings.Join(strs, " ")+"]")
	}
	return c.Kind.String() + "\n" + strings.Join(parts, "\n")
}

func fmtAttrs(c *circuit.Component, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if circuit.IsBoundary(c) {
		attrs = append(attrs, "shape=ellipse")
	}
	if c.State == circuit.On {
		attrs = append(attrs, "fillcolor=gold")
	}
	return attrs
}

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderSVG renders a DOT graph to SVG using Graphviz with the given layout
// engine.
func RenderSVG(ctx context.Context, dot string, layout Layout) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(layout)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="(-?[0-9.]+)\s+(-?[0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root tag so the drawing starts at the origin
// and carries explicit pixel dimensions.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
