package cache

// ScopedKeyer prefixes every grid, layout and artifact key, so preview
// servers with different key_prefix settings can share one cache (file,
// redis or mongo) without reading each other's renders.
//
//	[cache]
//	key_prefix = "staging:"
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

// GridKey generates a prefixed key for grid caching.
func (k *ScopedKeyer) GridKey(payload []byte, opts GridKeyOpts) string {
	return k.prefix + k.inner.GridKey(payload, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(gridHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(gridHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
