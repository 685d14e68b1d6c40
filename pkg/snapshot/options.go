package snapshot

// Options is the export policy. It is read, never modified, during an
// export.
type Options struct {
	IncludeTransform       bool // write Position, Rotation and Scale
	IncludeComponents      bool // write the Components element
	IncludeMaterials       bool // write renderer Materials
	IncludeInactiveObjects bool // visit nodes whose own active flag is off
	IncludeChildObjects    bool // recurse below partition roots

	// MaxDepth bounds the number of parent-to-child edges below a root.
	// Roots are at depth 0. A negative value means unbounded.
	MaxDepth int
}

// DefaultOptions returns the default export policy: everything included
// except inactive objects, with unbounded depth.
func DefaultOptions() Options {
	return Options{
		IncludeTransform:       true,
		IncludeComponents:      true,
		IncludeMaterials:       true,
		IncludeInactiveObjects: false,
		IncludeChildObjects:    true,
		MaxDepth:               -1,
	}
}

// depthAllowed reports whether a node at depth may be visited.
func (o Options) depthAllowed(depth int) bool {
	return o.MaxDepth < 0 || depth <= o.MaxDepth
}
