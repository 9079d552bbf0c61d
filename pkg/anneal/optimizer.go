package anneal

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/cmlayout/pkg/circuit"
	"github.com/matzehuels/cmlayout/pkg/errors"
	"github.com/matzehuels/cmlayout/pkg/observability"
	"github.com/matzehuels/cmlayout/pkg/spatial"
)

// Outcome is the result of a single iteration.
type Outcome uint8

const (
	Accepted Outcome = iota
	Rejected
	Skipped
	Done
)

func (o Outcome) String() string {
	switch o {
	case Accepted:
		return "accepted"
	case Rejected:
		return "rejected"
	case Skipped:
		return "skipped"
	default:
		return "done"
	}
}

// Result summarizes an optimization run.
type Result struct {
	Iterations int
	Accepted   int
	Rejected   int
	Skipped    int

	// EnergyDelta is the summed loss difference of accepted swaps.
	EnergyDelta float64

	// AverageLoss is the rolling average of candidate loss at the end.
	AverageLoss float64

	InitialWireLength float64
	FinalWireLength   float64
}

// Option configures an [Optimizer].
type Option func(*Optimizer)

// WithLogger sets the logger for setup warnings and progress. The default
// discards everything.
func WithLogger(l *log.Logger) Option {
	return func(o *Optimizer) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHooks overrides the globally registered optimizer hooks.
func WithHooks(h observability.OptimizerHooks) Option {
	return func(o *Optimizer) {
		if h != nil {
			o.hooks = h
		}
	}
}

// WithRand replaces the generator seeded from [Config.Seed].
func WithRand(r *rand.Rand) Option {
	return func(o *Optimizer) {
		if r != nil {
			o.rng = r
		}
	}
}

// Optimizer anneals the placement of one graph.
type Optimizer struct {
	g      *circuit.Graph
	cfg    Config
	rng    *rand.Rand
	logger *log.Logger
	hooks  observability.OptimizerHooks

	ix       *spatial.Index
	boundary *roaring.Bitmap
	movable  []circuit.Handle
	avg      *RollingAverage

	iter     int
	res      Result
	lastSkip error
}

// New prepares g for optimization. The graph is bridged and deduplicated,
// its sources and sinks are fixed in place, and every other component is
// indexed by grid cell. When several components share a cell only the last
// one indexed can move; the others stay where they are.
func New(g *circuit.Graph, cfg Config, opts ...Option) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	kernel, err := spatial.KernelByName(cfg.Kernel)
	if err != nil {
		return nil, err
	}

	o := &Optimizer{
		g:        g,
		cfg:      cfg,
		rng:      rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xdeadbeef)),
		logger:   log.NewWithOptions(io.Discard, log.Options{}),
		hooks:    observability.Optimizer(),
		boundary: roaring.New(),
	}
	for _, opt := range opts {
		opt(o)
	}

	bridged := g.Bridge()
	dupes := g.Deduplicate()
	if bridged > 0 || dupes > 0 {
		o.logger.Debug("normalized graph", "bridged", bridged, "duplicates", dupes)
	}

	o.ix = spatial.New(kernel, o.rng)
	var candidates []circuit.Handle
	collisions := 0
	for h, c := range g.All() {
		if circuit.IsBoundary(c) {
			o.boundary.Add(h.Slot())
			continue
		}
		if _, replaced := o.ix.Index(c.Position, h); replaced {
			collisions++
		}
		candidates = append(candidates, h)
	}
	for _, h := range candidates {
		c, _ := g.Component(h)
		if occ, _ := o.ix.Value(c.Position); occ == h {
			o.movable = append(o.movable, h)
		}
	}
	if collisions > 0 {
		o.logger.Warn("components share grid cells; shadowed components stay fixed", "collisions", collisions)
	}

	window := cfg.AverageWindow
	if window == 0 {
		window = g.Len()
	}
	o.avg = NewRollingAverage(window)
	o.res.InitialWireLength = WireLength(g)
	return o, nil
}

// Optimize runs a full optimization of g and returns its summary.
func Optimize(ctx context.Context, g *circuit.Graph, cfg Config, opts ...Option) (Result, error) {
	o, err := New(g, cfg, opts...)
	if err != nil {
		return Result{}, err
	}
	return o.Run(ctx)
}

// Run steps until the iteration budget is spent or ctx is canceled. On
// cancellation the graph keeps every swap accepted so far, which is always
// a valid placement.
func (o *Optimizer) Run(ctx context.Context) (Result, error) {
	start := time.Now()
	o.hooks.OnOptimizeStart(ctx, o.g.Len(), len(o.movable))
	o.logger.Debug("annealing", "components", o.g.Len(), "movable", len(o.movable),
		"iterations", o.cfg.Iterations, "criterion", o.cfg.Criterion)

	var err error
	for !o.Done() {
		if err = ctx.Err(); err != nil {
			break
		}
		o.Step()
	}

	res := o.Result()
	o.hooks.OnOptimizeComplete(ctx, observability.Summary{
		Iterations:  res.Iterations,
		Accepted:    res.Accepted,
		Rejected:    res.Rejected,
		Skipped:     res.Skipped,
		EnergyDelta: res.EnergyDelta,
	}, time.Since(start), err)
	return res, err
}

// Done reports whether the iteration budget is spent.
func (o *Optimizer) Done() bool { return o.iter >= o.cfg.Iterations }

// Temperature returns the temperature of iteration i.
func (o *Optimizer) Temperature(i int) float64 {
	if o.cfg.Iterations == 0 {
		return 0
	}
	return o.cfg.InitialTemperature * (1 - float64(i)/float64(o.cfg.Iterations))
}

// Step runs one iteration. When no candidate with an occupied neighbor is
// found the iteration is spent as [Skipped] and [Optimizer.LastSkip]
// describes why.
func (o *Optimizer) Step() Outcome {
	if o.Done() {
		return Done
	}
	i := o.iter
	o.iter++
	o.res.Iterations++

	out := o.step(o.Temperature(i))
	switch out {
	case Accepted:
		o.res.Accepted++
	case Rejected:
		o.res.Rejected++
	case Skipped:
		o.res.Skipped++
	}

	if i%o.cfg.ReportEvery == 0 {
		p := o.Progress()
		o.logger.Debug("progress", "iteration", i, "temperature", p.Temperature,
			"average", p.AverageLoss, "accepted", p.Accepted)
		o.hooks.OnProgress(context.Background(), p)
	}
	return out
}

func (o *Optimizer) step(t float64) Outcome {
	cand, cell, ok := o.pick()
	if !ok {
		return Skipped
	}
	partner, _ := o.ix.Value(cell.Vec())
	c, _ := o.g.Component(cand)
	p, _ := o.g.Component(partner)

	cpos, ppos := c.Position, p.Position
	current := localEnergy(o.g, c, cpos) + localEnergy(o.g, p, ppos)
	c.Position, p.Position = ppos, cpos
	proposed := localEnergy(o.g, c, ppos) + localEnergy(o.g, p, cpos)
	diff := proposed - current
	o.avg.Sample(current)

	if o.accept(diff, t) {
		o.ix.Swap(cpos, ppos)
		o.res.EnergyDelta += diff
		return Accepted
	}
	c.Position, p.Position = cpos, ppos
	return Rejected
}

// pick draws movable candidates until one has an occupied neighbor cell and
// returns it with a uniformly chosen such cell.
func (o *Optimizer) pick() (circuit.Handle, spatial.Cell, bool) {
	o.lastSkip = nil
	if len(o.movable) == 0 {
		o.lastSkip = errors.New(errors.ErrCodeEmptyNeighborhood, "no movable components")
		return circuit.Handle{}, spatial.Cell{}, false
	}
	for range o.cfg.MaxPicks {
		h := o.movable[o.rng.IntN(len(o.movable))]
		c, _ := o.g.Component(h)
		for cell := range o.ix.OccupiedNeighbors(c.Position) {
			return h, cell, true
		}
	}
	o.lastSkip = errors.New(errors.ErrCodeEmptyNeighborhood,
		"no candidate with an occupied neighbor in %d picks", o.cfg.MaxPicks)
	return circuit.Handle{}, spatial.Cell{}, false
}

func (o *Optimizer) accept(diff, t float64) bool {
	if diff < 0 {
		return true
	}
	if t <= 0 {
		return false
	}
	switch o.cfg.Criterion {
	case CriterionLegacy:
		x := -diff / t
		return o.rng.Float64() < x*x
	default:
		return o.rng.Float64() < math.Exp(-diff/t)
	}
}

// LastSkip returns the EMPTY_NEIGHBORHOOD diagnostic of the most recent
// skipped iteration, or nil if the most recent iteration found a candidate.
func (o *Optimizer) LastSkip() error { return o.lastSkip }

// Progress returns a snapshot of the run so far.
func (o *Optimizer) Progress() observability.Progress {
	return observability.Progress{
		Iteration:   o.iter,
		Total:       o.cfg.Iterations,
		Temperature: o.Temperature(o.iter),
		AverageLoss: o.avg.Mean(),
		Accepted:    o.res.Accepted,
		Rejected:    o.res.Rejected,
		Skipped:     o.res.Skipped,
	}
}

// Result returns the summary of the run so far.
func (o *Optimizer) Result() Result {
	res := o.res
	res.AverageLoss = o.avg.Mean()
	res.FinalWireLength = WireLength(o.g)
	return res
}

// Movable returns the components the optimizer may relocate.
func (o *Optimizer) Movable() []circuit.Handle {
	return append([]circuit.Handle(nil), o.movable...)
}

// IsBoundary reports whether h was fixed in place as a source or sink.
func (o *Optimizer) IsBoundary(h circuit.Handle) bool {
	return o.boundary.Contains(h.Slot())
}

// Index returns the spatial index of movable components.
func (o *Optimizer) Index() *spatial.Index { return o.ix }
