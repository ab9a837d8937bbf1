package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The server scopes keys per API version so that a format change never
// serves stale entries:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "v1:")
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

// IconKey generates a prefixed icon key.
func (k *ScopedKeyer) IconKey(source, key string) string {
	return k.prefix + k.inner.IconKey(source, key)
}

// LayoutKey generates a prefixed layout key.
func (k *ScopedKeyer) LayoutKey(definitionHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(definitionHash, opts)
}

// ArtifactKey generates a prefixed artifact key.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
