package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cmlayout/pkg/anneal"
	cmerrors "github.com/matzehuels/cmlayout/pkg/errors"
	"github.com/matzehuels/cmlayout/pkg/observability"
	"github.com/matzehuels/cmlayout/pkg/observability/prom"
	"github.com/matzehuels/cmlayout/pkg/pipeline"
)

// optimizeFlags holds the command-line flags for the optimize command.
// Optimizer flags only override the config file when set explicitly.
type optimizeFlags struct {
	output      string
	noCache     bool
	refresh     bool
	tui         bool
	metricsFile string

	iterations  int
	temperature float64
	criterion   string
	kernel      string
	seed        uint64
	maxPicks    int
}

// optimizeCommand creates the optimize command for annealing placement.
func (c *CLI) optimizeCommand() *cobra.Command {
	var f optimizeFlags
	def := anneal.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "optimize [save]",
		Short: "Rearrange component placement to shorten wires",
		Long: `Rearrange component placement to shorten wires.

Optimize swaps the positions of neighboring components with simulated
annealing, accepting worse swaps with a probability that falls as the
temperature cools linearly to zero. Sources and sinks (components wired on
only one side) never move, so the build keeps its external interface.

The result is written as a save string to stdout, or to the file given with
-o. Results are cached by input and settings; use --refresh to recompute.

Use "-" to read the save from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options()
			f.apply(cmd, &opts.Optimize)
			opts.Refresh = f.refresh
			return c.runOptimize(cmd.Context(), args[0], opts, f)
		},
	}

	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&f.tui, "tui", false, "show a live annealing monitor")
	cmd.Flags().StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus metrics to this file when done")

	cmd.Flags().IntVarP(&f.iterations, "iterations", "n", def.Iterations, "iteration budget")
	cmd.Flags().Float64VarP(&f.temperature, "temperature", "t", def.InitialTemperature, "initial temperature")
	cmd.Flags().StringVar(&f.criterion, "criterion", string(def.Criterion), "acceptance rule: metropolis, legacy")
	cmd.Flags().StringVar(&f.kernel, "kernel", def.Kernel, "neighborhood: planar, face, moore")
	cmd.Flags().Uint64Var(&f.seed, "seed", def.Seed, "random seed")
	cmd.Flags().IntVar(&f.maxPicks, "max-picks", def.MaxPicks, "candidate draws per iteration before skipping")

	return cmd
}

// apply copies explicitly set optimizer flags over cfg.
func (f optimizeFlags) apply(cmd *cobra.Command, cfg *anneal.Config) {
	changed := cmd.Flags().Changed
	if changed("iterations") {
		cfg.Iterations = f.iterations
	}
	if changed("temperature") {
		cfg.InitialTemperature = f.temperature
	}
	if changed("criterion") {
		cfg.Criterion = anneal.Criterion(f.criterion)
	}
	if changed("kernel") {
		cfg.Kernel = f.kernel
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("max-picks") {
		cfg.MaxPicks = f.maxPicks
	}
}

// runOptimize reads the save, anneals it and writes the result.
func (c *CLI) runOptimize(ctx context.Context, input string, opts pipeline.Options, f optimizeFlags) error {
	data, err := readSave(input)
	if err != nil {
		return err
	}

	var metrics *prom.Metrics
	if f.metricsFile != "" {
		metrics = prom.New()
		observability.SetOptimizerHooks(metrics)
		observability.SetCodecHooks(metrics)
		observability.SetCacheHooks(metrics)
		defer observability.Reset()
	}

	runner, err := c.newRunner(f.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	var result *pipeline.Result
	if f.tui {
		result, err = c.runAnnealTUI(ctx, runner, data, opts, displayName(input))
	} else {
		result, err = c.optimizeWithSpinner(ctx, runner, data, opts)
	}

	if metrics != nil {
		if werr := metrics.WriteTextfile(f.metricsFile); werr != nil {
			c.Logger.Warn("write metrics", "path", f.metricsFile, "error", werr)
		}
	}

	if errors.Is(err, context.Canceled) {
		if result == nil || ctx.Err() != nil {
			printWarning("Interrupted; nothing written")
			return err
		}
		// Stopped from the monitor: keep the placement reached so far.
		printWarning("Stopped after %d of %d iterations", result.Anneal.Iterations, opts.Optimize.Iterations)
	} else if err != nil {
		return err
	}

	if err := c.writeOutput(f.output, result.Output); err != nil {
		return err
	}

	printSuccess("Optimized %s", displayName(input))
	if f.output != "" {
		printFile(f.output)
	}
	if !result.CacheHit {
		printKeyValue("Wire length", fmt.Sprintf("%.1f %s %.1f", result.Anneal.InitialWireLength, iconArrow, result.Anneal.FinalWireLength))
		printKeyValue("Accepted", fmt.Sprintf("%d of %d", result.Anneal.Accepted, result.Anneal.Iterations))
		printKeyValue("Duration", result.Stats.OptimizeTime.Round(time.Millisecond).String())
	}
	printGraphStats(result.Stats.Components, result.Graph.Summarize().Wires, result.CacheHit)
	if f.output != "" {
		printNewline()
		printNextStep("Inspect", appName+" export -f svg --pinned "+f.output)
	}
	return nil
}

// optimizeWithSpinner runs the optimizer behind a spinner that shows the
// current progress.
func (c *CLI) optimizeWithSpinner(ctx context.Context, runner *pipeline.Runner, data []byte, opts pipeline.Options) (*pipeline.Result, error) {
	spinner := newSpinnerWithContext(ctx, "Annealing...")
	opts.Hooks = spinnerHooks{OptimizerHooks: observability.Optimizer(), spinner: spinner}
	spinner.Start()
	defer spinner.Stop()
	return runner.Optimize(ctx, data, opts)
}

// spinnerHooks shows optimizer progress in a spinner message.
type spinnerHooks struct {
	observability.OptimizerHooks
	spinner *Spinner
}

func (h spinnerHooks) OnProgress(ctx context.Context, p observability.Progress) {
	h.OptimizerHooks.OnProgress(ctx, p)
	pct := 0.0
	if p.Total > 0 {
		pct = 100 * float64(p.Iteration) / float64(p.Total)
	}
	h.spinner.SetMessage(fmt.Sprintf("Annealing %3.0f%%  T=%.2f  loss=%.3f", pct, p.Temperature, p.AverageLoss))
}

// readSave reads a save file, or stdin when path is "-".
func readSave(path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	if err := cmerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, cmerrors.Wrap(cmerrors.ErrCodeFileNotFound, err, "save %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// writeOutput writes data to path, or to c.Out when path is empty.
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := c.Out.Write(data)
		if err == nil && len(data) > 0 && data[len(data)-1] != '\n' {
			_, err = io.WriteString(c.Out, "\n")
		}
		return err
	}
	if err := cmerrors.ValidatePath(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

func displayName(path string) string {
	if path == "-" {
		return "stdin"
	}
	return filepath.Base(path)
}
