package scene

// Vec3 is a three-component vector in host units.
type Vec3 struct {
	X, Y, Z float64
}

// Frame is the spatial frame attached to a node.
type Frame struct {
	LocalPosition Vec3 // position relative to the parent
	EulerAngles   Vec3 // world-space rotation in degrees
	LocalScale    Vec3 // scale relative to the parent
}

// Layer classifies a node. Name is the human-readable label and is empty
// when the host has no label for ID.
type Layer struct {
	ID   int
	Name string
}

// Node is a read-only handle to one node of the host graph.
//
// Implementations must return a stable InstanceID for the lifetime of the
// node; it is the identity used when subtracting partition roots from the
// global registry. Parent returns nil for roots.
//
// Frame and Components may fail when the host binding cannot read the node;
// callers treat such failures as local to that node.
type Node interface {
	InstanceID() int
	Name() string
	ActiveSelf() bool
	Layer() Layer
	Tag() string
	Parent() Node
	Children() []Node
	Frame() (Frame, error)
	Components() ([]Component, error)
}

// ChildCount returns the number of direct children of n.
func ChildCount(n Node) int {
	return len(n.Children())
}

// Path returns the slash-separated path from the root to n.
func Path(n Node) string {
	path := n.Name()
	for p := n.Parent(); p != nil; p = p.Parent() {
		path = p.Name() + "/" + path
	}
	return path
}
