package anneal

import (
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/cmlayout/pkg/errors"
)

// Criterion names an acceptance rule for worsening swaps.
type Criterion string

const (
	CriterionMetropolis Criterion = "metropolis"
	CriterionLegacy     Criterion = "legacy"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	DefaultInitialTemperature = 100.0
	DefaultIterations         = 1_000_000
	DefaultCriterion          = CriterionMetropolis
	DefaultKernel             = "planar"
	DefaultSeed               = uint64(42)
	DefaultAverageWindow      = 1024
	DefaultReportEvery        = 1024
	DefaultMaxPicks           = 64
)

// Config controls an optimization run.
type Config struct {
	// InitialTemperature is T0 in T = T0 * (1 - i/N).
	InitialTemperature float64 `toml:"initial_temperature" json:"initial_temperature" validate:"gte=0"`

	// Iterations is the fixed budget N. There is no convergence stop.
	Iterations int `toml:"iterations" json:"iterations" validate:"gte=0"`

	Criterion Criterion `toml:"criterion" json:"criterion" validate:"oneof=metropolis legacy"`

	// Kernel names the neighbor offsets: planar, face or moore.
	Kernel string `toml:"kernel" json:"kernel" validate:"oneof=planar face moore"`

	Seed uint64 `toml:"seed" json:"seed"`

	// AverageWindow is the number of samples in the rolling loss average.
	// Zero sizes the window to the component count.
	AverageWindow int `toml:"average_window" json:"average_window" validate:"gte=0"`

	// ReportEvery is the progress reporting interval in iterations.
	ReportEvery int `toml:"report_every" json:"report_every" validate:"gte=1"`

	// MaxPicks bounds how many candidates one iteration may draw before it
	// gives up on finding one with an occupied neighbor.
	MaxPicks int `toml:"max_picks" json:"max_picks" validate:"gte=1,lte=65536"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		InitialTemperature: DefaultInitialTemperature,
		Iterations:         DefaultIterations,
		Criterion:          DefaultCriterion,
		Kernel:             DefaultKernel,
		Seed:               DefaultSeed,
		AverageWindow:      DefaultAverageWindow,
		ReportEvery:        DefaultReportEvery,
		MaxPicks:           DefaultMaxPicks,
	}
}

var validate = validator.New()

// Validate checks every field against its constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "optimizer config")
	}
	return nil
}
