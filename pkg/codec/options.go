package codec

import (
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/cmlayout/pkg/errors"
)

// Options control how [Serialize] writes a graph.
type Options struct {
	// Compact writes zero state and zero coordinates as empty fields.
	Compact bool `toml:"compact" json:"compact"`

	// OptimizeWires suppresses repeated source,target pairs.
	OptimizeWires bool `toml:"optimize_wires" json:"optimize_wires"`

	// Rounding is the position rounding policy for non-integral coordinates:
	// 0 writes them verbatim, 1 rounds to the nearest integer (ties to even),
	// and n > 1 rounds to the nearest multiple of 1/n.
	Rounding int `toml:"rounding" json:"rounding" validate:"gte=0,lte=1000000"`
}

// DefaultOptions returns the options the game itself expects: compact
// fields, deduplicated wires and integer positions.
func DefaultOptions() Options {
	return Options{Compact: true, OptimizeWires: true, Rounding: 1}
}

var validate = validator.New()

// Validate checks the rounding policy.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "codec options")
	}
	return nil
}
