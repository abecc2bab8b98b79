package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each deployment or user
// its own namespace inside a shared backend such as Redis.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "pairquest:v1:")
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

// ReportKey generates a prefixed key for report caching.
func (k *ScopedKeyer) ReportKey(pointsHash string, opts ReportKeyOpts) string {
	return k.prefix + k.inner.ReportKey(pointsHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(sceneHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(sceneHash, opts)
}
