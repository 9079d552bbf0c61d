package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cmlayout/pkg/pipeline"
)

// exportFlags holds the command-line flags for the export command.
type exportFlags struct {
	format         string
	output         string
	detailed       bool
	pinned         bool
	bridgeAntennas bool
	noCache        bool
}

// exportCommand creates the export command for rendering saves.
func (c *CLI) exportCommand() *cobra.Command {
	var f exportFlags

	cmd := &cobra.Command{
		Use:   "export [save]",
		Short: "Render a save as a wiring diagram",
		Long: `Render a save as a wiring diagram.

Formats:
  svg   Graphviz drawing (default)
  dot   Graphviz source
  json  node-link JSON with positions and augments
  save  the save string re-encoded with the configured codec options

Sources and sinks are drawn as ellipses, components that are ON are filled.
With --pinned, nodes are placed at their in-game X/Y position instead of
being laid out by Graphviz.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(f.format); err != nil {
				return err
			}
			opts := c.options()
			opts.Format = strings.ToLower(f.format)
			opts.Detailed = f.detailed
			opts.Pinned = f.pinned
			opts.BridgeAntennas = f.bridgeAntennas
			return c.runExport(cmd.Context(), args[0], opts, f)
		},
	}

	cmd.Flags().StringVarP(&f.format, "format", "f", pipeline.FormatSVG, "output format: svg, dot, json, save")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: input name with format extension, stdout for stdin)")
	cmd.Flags().BoolVar(&f.detailed, "detailed", false, "label nodes with state, position and augments")
	cmd.Flags().BoolVar(&f.pinned, "pinned", false, "place nodes at their in-game position")
	cmd.Flags().BoolVar(&f.bridgeAntennas, "bridge-antennas", false, "draw wireless antenna links as wires")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runExport renders one save and writes it to the output path.
func (c *CLI) runExport(ctx context.Context, input string, opts pipeline.Options, f exportFlags) error {
	data, err := readSave(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering "+opts.Format+"...")
	spinner.Start()
	out, cached, err := runner.Export(ctx, data, opts)
	spinner.Stop()
	if err != nil {
		return err
	}

	output := f.output
	if output == "" && input != "-" {
		output = exportPath(input, opts.Format)
	}
	if err := c.writeOutput(output, out); err != nil {
		return err
	}

	if cached {
		printSuccess("Exported %s (cached)", displayName(input))
	} else {
		printSuccess("Exported %s", displayName(input))
	}
	if output != "" {
		printFile(output)
	}
	return nil
}

// exportPath derives the default output file: the input path with its
// extension replaced by the format's.
func exportPath(input, format string) string {
	ext := "." + format
	if format == pipeline.FormatSave {
		ext = ".txt"
	}
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if base+ext == input {
		base += ".export"
	}
	return base + ext
}
