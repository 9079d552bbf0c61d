package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/cmlayout/pkg/circuit"
	graphio "github.com/matzehuels/cmlayout/pkg/io"
	"github.com/matzehuels/cmlayout/pkg/render/nodelink"
)

// Render writes g in opts.Format. Pinned SVG output is laid out with neato
// so the drawing follows the build positions.
func (r *Runner) Render(ctx context.Context, g *circuit.Graph, opts Options) ([]byte, error) {
	opts.SetDefaults()
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}

	switch opts.Format {
	case FormatSave:
		return r.Encode(ctx, g, opts.Codec)
	case FormatJSON:
		var buf bytes.Buffer
		if err := graphio.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}

	dot, err := nodelink.ToDOT(g, nodelink.Options{Detailed: opts.Detailed, Pinned: opts.Pinned})
	if err != nil {
		return nil, err
	}
	if opts.Format == FormatDOT {
		return []byte(dot), nil
	}
	layout := nodelink.LayoutDot
	if opts.Pinned {
		layout = nodelink.LayoutNeato
	}
	return nodelink.RenderSVG(ctx, dot, layout)
}
