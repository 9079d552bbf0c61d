package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cmlayout/pkg/anneal"
	"github.com/matzehuels/cmlayout/pkg/cache"
	"github.com/matzehuels/cmlayout/pkg/circuit"
	"github.com/matzehuels/cmlayout/pkg/codec"
	"github.com/matzehuels/cmlayout/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can use the same Runner as long as they work on different
// graphs.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Decode parses save text and reports the outcome to the codec hooks.
func (r *Runner) Decode(ctx context.Context, data []byte) (*circuit.Graph, error) {
	start := time.Now()
	g, err := codec.Deserialize(strings.TrimSpace(string(data)))
	n := 0
	if g != nil {
		n = g.Len()
	}
	observability.Codec().OnDecode(ctx, n, len(data), time.Since(start), err)
	return g, err
}

// Encode serializes g and reports the outcome to the codec hooks.
func (r *Runner) Encode(ctx context.Context, g *circuit.Graph, opts codec.Options) ([]byte, error) {
	start := time.Now()
	text, err := codec.Serialize(g, opts)
	observability.Codec().OnEncode(ctx, g.Len(), len(text), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

// Optimize anneals the placement of the save in data and returns the
// re-serialized result. Results are cached by input hash and options.
//
// If ctx is canceled mid-run, the partial result is still encoded and
// returned together with the context error, but it is not cached.
func (r *Runner) Optimize(ctx context.Context, data []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForOptimize(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{InputHash: cache.Hash(data)}
	key := r.Keyer.OptimizeKey(result.InputHash, opts.OptimizeKeyOpts())

	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if g, err := r.Decode(ctx, cached); err == nil {
				result.Graph = g
				result.Output = cached
				result.CacheHit = true
				result.Stats.Components = g.Len()
				opts.Logger.Debug("optimize cache hit", "key", key)
				return result, nil
			}
		}
	}

	decodeStart := time.Now()
	g, err := r.Decode(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	result.Graph = g
	result.Stats.DecodeTime = time.Since(decodeStart)

	optStart := time.Now()
	annealOpts := []anneal.Option{anneal.WithLogger(opts.Logger)}
	if opts.Hooks != nil {
		annealOpts = append(annealOpts, anneal.WithHooks(opts.Hooks))
	}
	res, runErr := anneal.Optimize(ctx, g, opts.Optimize, annealOpts...)
	if runErr != nil && ctx.Err() == nil {
		return nil, fmt.Errorf("optimize: %w", runErr)
	}
	result.Anneal = res
	result.Stats.OptimizeTime = time.Since(optStart)
	result.Stats.Components = g.Len()

	opts.Logger.Info("optimized placement",
		"components", g.Len(),
		"iterations", res.Iterations,
		"wire_length", fmt.Sprintf("%.1f → %.1f", res.InitialWireLength, res.FinalWireLength),
		"duration", result.Stats.OptimizeTime)

	encodeStart := time.Now()
	out, err := r.Encode(ctx, g, opts.Codec)
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	result.Output = out
	result.Stats.EncodeTime = time.Since(encodeStart)

	if runErr != nil {
		return result, runErr
	}
	_ = r.Cache.Set(ctx, key, out, cache.TTLOptimize)
	return result, nil
}

// Export decodes the save in data and renders it in opts.Format. Rendered
// output is cached; the boolean reports a cache hit.
func (r *Runner) Export(ctx context.Context, data []byte, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}

	key := r.Keyer.ArtifactKey(cache.Hash(data), opts.ArtifactKeyOpts())
	if !opts.Refresh {
		if cached, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			return cached, true, nil
		}
	}

	g, err := r.Decode(ctx, data)
	if err != nil {
		return nil, false, fmt.Errorf("decode: %w", err)
	}
	if opts.BridgeAntennas {
		n := g.BridgeAntennas()
		opts.Logger.Debug("bridged antennas", "wires", n)
	}

	out, err := r.Render(ctx, g, opts)
	if err != nil {
		return nil, false, fmt.Errorf("render: %w", err)
	}
	_ = r.Cache.Set(ctx, key, out, cache.TTLArtifact)
	return out, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
