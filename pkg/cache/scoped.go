package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation. This
// keeps entries apart when several deployments or users share one cache
// backend.
//
// Example usage:
//
//	// Per-user keys for private circuits
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for shared circuits
//	globalKeyer := NewDefaultKeyer()
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

// DocumentKey generates a prefixed key for a stored circuit document.
func (k *ScopedKeyer) DocumentKey(name string) string {
	return k.prefix + k.inner.DocumentKey(name)
}

// ArtifactKey generates a prefixed key for a rendered artifact.
func (k *ScopedKeyer) ArtifactKey(circuitHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(circuitHash, opts)
}
