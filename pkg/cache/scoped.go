package cache

// ScopedKeyer wraps a Keyer with a prefix so several tenants can share one
// backend, for example two servers with different base stylesheets:
//
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "theme:dark:")
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

// SnapshotKey generates a prefixed snapshot key.
func (k *ScopedKeyer) SnapshotKey(contentHash string, opts SnapshotKeyOpts) string {
	return k.prefix + k.inner.SnapshotKey(contentHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(contentHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(contentHash, opts)
}
