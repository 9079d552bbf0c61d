package cache

// ScopedKeyer wraps a Keyer with a prefix, so several tools or versions can
// share one cache directory without colliding.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "v2:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// OptimizeKey generates a prefixed key for optimizer results.
func (k *ScopedKeyer) OptimizeKey(inputHash string, opts OptimizeKeyOpts) string {
	return k.prefix + k.inner.OptimizeKey(inputHash, opts)
}

// ArtifactKey generates a prefixed key for rendered exports.
func (k *ScopedKeyer) ArtifactKey(inputHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(inputHash, opts)
}
