package cache

// DigestKeyOpts are the export settings that change the document produced
// for the same source and selection.
type DigestKeyOpts struct {
	Format            string `json:"format"`
	IncludeTransform  bool   `json:"transform"`
	IncludeComponents bool   `json:"components"`
	IncludeMaterials  bool   `json:"materials"`
	IncludeInactive   bool   `json:"inactive"`
	IncludeChildren   bool   `json:"children"`
	MaxDepth          int    `json:"max_depth"`
}

// Keyer builds cache keys.
type Keyer interface {
	// DigestKey returns the key under which the digest of the last export
	// of selection from source is stored.
	DigestKey(source, selection string, opts DigestKeyOpts) string
}

// DefaultKeyer hashes every key component into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// DigestKey implements Keyer.
func (DefaultKeyer) DigestKey(source, selection string, opts DigestKeyOpts) string {
	return hashKey("digest", source, selection, opts)
}

var _ Keyer = DefaultKeyer{}
