package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// This is useful when a shared Redis or MongoDB backend serves several
// users or deployments whose entries must not collide.
//
// Example usage:
//
//	// User-specific keys for private masks
//	userKeyer := NewScopedKeyer(NewDefaultKeyer(), "user:abc123:")
//
//	// Global keys for public inputs
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

// TraceKey generates a prefixed key for traced paths.
func (k *ScopedKeyer) TraceKey(maskHash string, opts TraceKeyOpts) string {
	return k.prefix + k.inner.TraceKey(maskHash, opts)
}

// RefineKey generates a prefixed key for refined paths.
func (k *ScopedKeyer) RefineKey(pathsHash string, opts RefineKeyOpts) string {
	return k.prefix + k.inner.RefineKey(pathsHash, opts)
}

// ArtifactKey generates a prefixed key for rendered artifacts.
func (k *ScopedKeyer) ArtifactKey(pathsHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(pathsHash, opts)
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}
