package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/cmlayout/pkg/circuit"
	"github.com/matzehuels/cmlayout/pkg/codec"
	"github.com/matzehuels/cmlayout/pkg/errors"
	"github.com/matzehuels/cmlayout/pkg/geometry"
	graphio "github.com/matzehuels/cmlayout/pkg/io"
	"github.com/matzehuels/cmlayout/pkg/pipeline"
)

// fmtFlags holds the command-line flags for the fmt command.
type fmtFlags struct {
	compact       bool
	optimizeWires bool
	rounding      int
	output        string
	check         bool

	translate []float64
	anchor    []float64
	rotate    []float64
	snap      bool
}

// moves reports whether any geometry flag was given.
func (f fmtFlags) moves() bool {
	return f.translate != nil || f.anchor != nil || f.rotate != nil || f.snap
}

// fmtCommand creates the fmt command for re-encoding saves.
func (c *CLI) fmtCommand() *cobra.Command {
	var f fmtFlags
	def := codec.DefaultOptions()

	cmd := &cobra.Command{
		Use:   "fmt [save]",
		Short: "Rewrite a save with different encoding options",
		Long: `Rewrite a save with different encoding options.

--compact leaves zero states and coordinates empty, --optimize-wires drops
repeated wires, and --rounding sets the position rounding policy for
fractional coordinates (0 writes them unchanged, 1 rounds to whole cells,
n rounds to multiples of 1/n).

The whole build can be moved before it is written: --rotate turns it about
the minimum corner of its bounding box (degrees about X, then Y, then Z),
--anchor puts that corner at a position, --translate shifts it, and --snap
rounds every coordinate to the grid. They apply in that order.

A .json input is read as node-link JSON (see export -f json), so an edited
export can be turned back into a save.

With --check, nothing is written and the command fails if the save would
change.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.cfg.Codec
			changed := cmd.Flags().Changed
			if changed("compact") {
				opts.Compact = f.compact
			}
			if changed("optimize-wires") {
				opts.OptimizeWires = f.optimizeWires
			}
			if changed("rounding") {
				opts.Rounding = f.rounding
			}
			if err := opts.Validate(); err != nil {
				return err
			}
			for name, v := range map[string][]float64{"translate": f.translate, "anchor": f.anchor, "rotate": f.rotate} {
				if v != nil && len(v) != 3 {
					return errors.New(errors.ErrCodeInvalidInput, "--%s takes x,y,z, got %d values", name, len(v))
				}
			}
			return c.runFmt(cmd.Context(), args[0], opts, f)
		},
	}

	cmd.Flags().BoolVar(&f.compact, "compact", def.Compact, "leave zero fields empty")
	cmd.Flags().BoolVar(&f.optimizeWires, "optimize-wires", def.OptimizeWires, "drop repeated wires")
	cmd.Flags().IntVar(&f.rounding, "rounding", def.Rounding, "position rounding policy")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&f.check, "check", false, "fail if the save is not already formatted")

	cmd.Flags().Float64SliceVar(&f.translate, "translate", nil, "shift the build by x,y,z")
	cmd.Flags().Float64SliceVar(&f.anchor, "anchor", nil, "move the build's minimum corner to x,y,z")
	cmd.Flags().Float64SliceVar(&f.rotate, "rotate", nil, "rotate the build by x,y,z degrees")
	cmd.Flags().BoolVar(&f.snap, "snap", false, "round positions to whole cells")

	return cmd
}

// runFmt decodes the save, applies any moves and encodes it again with opts.
func (c *CLI) runFmt(ctx context.Context, input string, opts codec.Options, f fmtFlags) error {
	data, err := readSave(input)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	g, err := decodeInput(ctx, runner, input, data)
	if err != nil {
		return err
	}
	if f.moves() {
		move(g, f)
	}
	out, err := runner.Encode(ctx, g, opts)
	if err != nil {
		return err
	}

	if f.check {
		if !bytes.Equal(bytes.TrimSpace(data), out) {
			return errors.New(errors.ErrCodeInvalidInput, "%s is not formatted (%d bytes, formatted %d)", displayName(input), len(bytes.TrimSpace(data)), len(out))
		}
		printSuccess("%s is formatted", displayName(input))
		return nil
	}

	if err := c.writeOutput(f.output, out); err != nil {
		return err
	}
	c.Logger.Debug("formatted save", "components", g.Len(), "before", len(data), "after", len(out))
	if f.output != "" {
		printSuccess("Formatted %s", displayName(input))
		printFile(f.output)
		printDetail("%d → %d bytes", len(data), len(out))
	}
	return nil
}

// decodeInput parses node-link JSON for .json files and save text otherwise.
func decodeInput(ctx context.Context, runner *pipeline.Runner, input string, data []byte) (*circuit.Graph, error) {
	if strings.EqualFold(filepath.Ext(input), ".json") {
		return graphio.ReadJSON(bytes.NewReader(data))
	}
	return runner.Decode(ctx, data)
}

// move applies the geometry flags to every component of g.
func move(g *circuit.Graph, f fmtFlags) {
	if f.rotate != nil {
		if box, ok := geometry.Bounds(g, nil); ok {
			geometry.Rotate(g, nil, box.Min, vec(f.rotate))
		}
	}
	if f.anchor != nil {
		geometry.Anchor(g, nil, vec(f.anchor))
	}
	if f.translate != nil {
		geometry.Translate(g, nil, vec(f.translate))
	}
	if f.snap {
		geometry.Snap(g, nil)
	}
}

func vec(v []float64) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}
