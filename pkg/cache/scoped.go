package cache

// ScopedKeyer wraps a Keyer with a prefix. The pipeline scopes keys by
// output directory so that exports to different directories never report
// each other's files as unchanged.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "dir:"+Hash([]byte(outDir))+":")
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

// DigestKey generates a prefixed digest key.
func (k *ScopedKeyer) DigestKey(source, selection string, opts DigestKeyOpts) string {
	return k.prefix + k.inner.DigestKey(source, selection, opts)
}
