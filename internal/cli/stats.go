package cli

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cmlayout/pkg/anneal"
	"github.com/matzehuels/cmlayout/pkg/circuit"
	cmerrors "github.com/matzehuels/cmlayout/pkg/errors"
	"github.com/matzehuels/cmlayout/pkg/pipeline"
)

// saveReport is the analysis of one save file.
type saveReport struct {
	Path        string
	Stats       circuit.Stats
	Diagnostics circuit.Diagnostics
	WireLength  float64

	// Depth is the longest wire chain from any source. Cyclic is set when a
	// loop is reachable from a source, in which case Depth covers only the
	// acyclic sources.
	Depth  int
	Cyclic bool
}

// statsCommand creates the stats command for summarizing saves.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		byKind   bool
		parallel int
	)

	cmd := &cobra.Command{
		Use:   "stats [save...]",
		Short: "Summarize components and wiring of one or more saves",
		Long: `Summarize components and wiring of one or more saves.

For each save, stats counts components by interface role (sources, sinks,
isolated), counts distinct wires and the total wire length, and checks that
every wire is recorded on both of its ends.

Files are analyzed concurrently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, err := c.analyze(cmd.Context(), args, parallel)
			if err != nil {
				return err
			}
			for i, r := range reports {
				if i > 0 {
					printNewline()
				}
				printReport(r, byKind)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&byKind, "by-kind", false, "show a table of component counts per kind")
	cmd.Flags().IntVarP(&parallel, "parallel", "j", runtime.NumCPU(), "files analyzed at once")

	return cmd
}

// analyze decodes and summarizes every path, at most parallel at a time.
// Reports are returned in argument order.
func (c *CLI) analyze(ctx context.Context, paths []string, parallel int) ([]saveReport, error) {
	prog := newProgress(c.Logger)
	runner := pipeline.NewRunner(nil, nil, c.Logger)
	reports := make([]saveReport, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))
	for i, path := range paths {
		g.Go(func() error {
			data, err := readSave(path)
			if err != nil {
				return err
			}
			graph, err := decodeInput(ctx, runner, path, data)
			if err != nil {
				return fmt.Errorf("decode %s: %w", path, err)
			}
			reports[i] = saveReport{
				Path:        path,
				Stats:       graph.Summarize(),
				Diagnostics: graph.Check(),
				WireLength:  anneal.WireLength(graph),
			}
			reports[i].Depth, reports[i].Cyclic, err = propagationDepth(graph)
			if err != nil {
				return fmt.Errorf("depth of %s: %w", path, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Analyzed %d saves", len(paths)))
	return reports, nil
}

func printReport(r saveReport, byKind bool) {
	printSuccess("%s", displayName(r.Path))
	printKeyValue("Components", strconv.Itoa(r.Stats.Components))
	printKeyValue("Sources", strconv.Itoa(r.Stats.Sources))
	printKeyValue("Sinks", strconv.Itoa(r.Stats.Sinks))
	printKeyValue("Isolated", strconv.Itoa(r.Stats.Isolated))
	printKeyValue("Wires", strconv.Itoa(r.Stats.Wires))
	printKeyValue("Wire length", fmt.Sprintf("%.1f", r.WireLength))
	if r.Cyclic {
		printKeyValue("Depth", fmt.Sprintf("%d+ (contains loops)", r.Depth))
	} else {
		printKeyValue("Depth", strconv.Itoa(r.Depth))
	}

	if r.Diagnostics.Err != nil {
		printWarning("inconsistent wiring: %d input references, %d output references",
			r.Diagnostics.InputWires, r.Diagnostics.OutputWires)
	}
	if r.Diagnostics.Dangling > 0 {
		printWarning("%d dangling references", r.Diagnostics.Dangling)
	}

	if byKind && len(r.Stats.ByKind) > 0 {
		fmt.Fprintln(statusOut, kindTable(r.Stats.ByKind))
	}
}

// propagationDepth returns the longest downstream wire chain over every
// source of g. A source whose region loops back on itself sets cyclic
// instead of contributing to the depth.
func propagationDepth(g *circuit.Graph) (int, bool, error) {
	depth, cyclic := 0, false
	for h := range g.Sources() {
		n, err := g.LongestPath(h, circuit.Downstream)
		switch {
		case cmerrors.Is(err, cmerrors.ErrCodeCycleDetected):
			cyclic = true
		case err != nil:
			return 0, false, err
		default:
			depth = max(depth, n)
		}
	}
	return depth, cyclic, nil
}

// kindTable renders per-kind counts, most common first.
func kindTable(counts map[circuit.Kind]int) string {
	kinds := make([]circuit.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	slices.SortFunc(kinds, func(a, b circuit.Kind) int {
		if counts[a] != counts[b] {
			return counts[b] - counts[a]
		}
		return int(a) - int(b)
	})

	rows := make([][]string, len(kinds))
	for i, k := range kinds {
		rows[i] = []string{k.String(), strconv.Itoa(counts[k])}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Count").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorCyan).Align(lipgloss.Right)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
