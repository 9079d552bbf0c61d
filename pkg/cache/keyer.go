package cache

// Keyer generates cache keys for each kind of cached result.
type Keyer interface {
	// OptimizeKey keys an optimized save by its input hash and optimizer options.
	OptimizeKey(inputHash string, opts OptimizeKeyOpts) string

	// ArtifactKey keys a rendered export by its input hash and render options.
	ArtifactKey(inputHash string, opts ArtifactKeyOpts) string
}

// OptimizeKeyOpts holds every option that changes an optimization result.
type OptimizeKeyOpts struct {
	Iterations    int
	Temperature   float64
	Criterion     string
	Kernel        string
	Seed          uint64
	MaxPicks      int
	Compact       bool
	OptimizeWires bool
	Rounding      int
}

// ArtifactKeyOpts holds every option that changes a rendered export.
type ArtifactKeyOpts struct {
	Format         string
	Detailed       bool
	Pinned         bool
	BridgeAntennas bool
}

// DefaultKeyer hashes options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// OptimizeKey returns "optimize:<sha256>".
func (DefaultKeyer) OptimizeKey(inputHash string, opts OptimizeKeyOpts) string {
	return hashKey("optimize", inputHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", inputHash, opts)
}
