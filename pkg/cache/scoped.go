package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments can share
// one Redis instance without colliding.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// A nil inner keyer falls back to [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// RenderKey returns the prefixed render key.
func (k *ScopedKeyer) RenderKey(explanationHash string, opts RenderKeyOpts) string {
	return k.prefix + k.inner.RenderKey(explanationHash, opts)
}

// TreeKey returns the prefixed tree key.
func (k *ScopedKeyer) TreeKey(explanationHash string, opts TreeKeyOpts) string {
	return k.prefix + k.inner.TreeKey(explanationHash, opts)
}
