// Package pipeline runs the decode → optimize → encode and decode → render
// flows shared by every cmlayout command.
//
// By centralizing these flows the CLI gets consistent caching, logging and
// codec metrics no matter which command is running.
//
// # Architecture
//
// A save passes through up to three stages:
//
//  1. Decode: parse the save text into a circuit graph
//  2. Optimize: anneal the placement of non-boundary components
//  3. Encode or Render: write the graph back as save text, DOT, SVG or JSON
//
// Optimize results and rendered artifacts are cached by the hash of the
// input text plus every option that changes the output.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Optimize: anneal.DefaultConfig(), Codec: codec.DefaultOptions()}
//	result, err := runner.Optimize(ctx, save, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.Stdout.Write(result.Output)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cmlayout/pkg/anneal"
	"github.com/matzehuels/cmlayout/pkg/cache"
	"github.com/matzehuels/cmlayout/pkg/circuit"
	"github.com/matzehuels/cmlayout/pkg/codec"
	"github.com/matzehuels/cmlayout/pkg/errors"
	"github.com/matzehuels/cmlayout/pkg/observability"
)

// Format constants for output formats.
const (
	FormatSave = "save"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatSave, FormatDOT, FormatSVG, FormatJSON}

// ValidateFormat checks that a format is valid. Case is ignored.
func ValidateFormat(format string) error {
	return errors.ValidateFormat(format, Formats...)
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Codec controls save-text output.
	Codec codec.Options `toml:"codec" json:"codec"`

	// Optimize controls the annealer.
	Optimize anneal.Config `toml:"optimize" json:"optimize"`

	// Render options
	Format         string `json:"format,omitempty"`
	Detailed       bool   `json:"detailed,omitempty"`
	Pinned         bool   `json:"pinned,omitempty"`
	BridgeAntennas bool   `json:"bridge_antennas,omitempty"`

	// Refresh skips cache reads but still writes the fresh result.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger                  `json:"-"`
	Hooks  observability.OptimizerHooks `json:"-"`
}

// DefaultOptions returns options with codec and optimizer defaults and save
// text output.
func DefaultOptions() Options {
	return Options{
		Codec:    codec.DefaultOptions(),
		Optimize: anneal.DefaultConfig(),
		Format:   FormatSave,
	}
}

// SetDefaults fills the output format and logger when unset.
func (o *Options) SetDefaults() {
	if o.Format == "" {
		o.Format = FormatSave
	}
	o.Format = strings.ToLower(o.Format)
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForOptimize validates the optimizer and codec settings.
func (o *Options) ValidateForOptimize() error {
	o.SetDefaults()
	if err := o.Optimize.Validate(); err != nil {
		return err
	}
	return o.Codec.Validate()
}

// ValidateForRender validates the output format.
func (o *Options) ValidateForRender() error {
	o.SetDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	return o.Codec.Validate()
}

// OptimizeKeyOpts returns cache key options for an optimization.
func (o *Options) OptimizeKeyOpts() cache.OptimizeKeyOpts {
	return cache.OptimizeKeyOpts{
		Iterations:    o.Optimize.Iterations,
		Temperature:   o.Optimize.InitialTemperature,
		Criterion:     string(o.Optimize.Criterion),
		Kernel:        o.Optimize.Kernel,
		Seed:          o.Optimize.Seed,
		MaxPicks:      o.Optimize.MaxPicks,
		Compact:       o.Codec.Compact,
		OptimizeWires: o.Codec.OptimizeWires,
		Rounding:      o.Codec.Rounding,
	}
}

// ArtifactKeyOpts returns cache key options for a rendered export.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:         o.Format,
		Detailed:       o.Detailed,
		Pinned:         o.Pinned,
		BridgeAntennas: o.BridgeAntennas,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result contains the outputs of an optimization.
type Result struct {
	// Graph is the optimized graph, decoded from the cache on a hit.
	Graph *circuit.Graph

	// InputHash is the content hash of the input save text.
	InputHash string

	// Output is the optimized save text.
	Output []byte

	// Anneal summarizes the run. It is zero on a cache hit.
	Anneal anneal.Result

	Stats    Stats
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Components   int
	DecodeTime   time.Duration
	OptimizeTime time.Duration
	EncodeTime   time.Duration
}

func (s Stats) String() string {
	return fmt.Sprintf("%d components, decode %s, optimize %s, encode %s",
		s.Components, s.DecodeTime.Round(time.Millisecond), s.OptimizeTime.Round(time.Millisecond), s.EncodeTime.Round(time.Millisecond))
}
