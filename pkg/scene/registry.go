package scene

// Partition is a named collection of root nodes (a "scene").
// Handle identifies the partition within one host session.
type Partition struct {
	Handle int
	Name   string
	Path   string
	Loaded bool
	Roots  []Node
}

// AddRoot appends root nodes to the partition.
func (p *Partition) AddRoot(roots ...Node) *Partition {
	p.Roots = append(p.Roots, roots...)
	return p
}

// Registry is the read-only query surface of the host graph.
//
// Nodes enumerates every node the host knows about, whether or not it
// belongs to a partition. Partitions returns every partition the host
// tracks, loaded or not, in host order. ActivePartition returns the
// partition currently marked active, or nil when there is none.
//
// An error from Nodes or Partitions means the registry itself is
// unreachable; exports treat it as fatal.
type Registry interface {
	Version() string
	Nodes() ([]Node, error)
	Partitions() ([]*Partition, error)
	ActivePartition() (*Partition, error)
}

// MemoryRegistry is a Registry backed by in-memory Objects.
type MemoryRegistry struct {
	version    string
	nodes      []*Object
	partitions []*Partition
	active     *Partition
	nextID     int
	fault      error
}

// NewRegistry creates an empty registry reporting version as the host
// environment version.
func NewRegistry(version string) *MemoryRegistry {
	return &MemoryRegistry{version: version, nextID: 1}
}

// NewObject creates an object and registers it in the global registry.
func (r *MemoryRegistry) NewObject(name string) *Object {
	o := newObject(r.nextID, name)
	r.nextID++
	r.nodes = append(r.nodes, o)
	return o
}

// AddPartition registers a loaded partition. The first partition added
// becomes the active one until SetActive is called.
func (r *MemoryRegistry) AddPartition(name, path string) *Partition {
	p := &Partition{
		Handle: len(r.partitions) + 1,
		Name:   name,
		Path:   path,
		Loaded: true,
	}
	r.partitions = append(r.partitions, p)
	if r.active == nil {
		r.active = p
	}
	return p
}

// SetActive marks p as the active partition.
func (r *MemoryRegistry) SetActive(p *Partition) {
	r.active = p
}

// Fail makes Nodes and Partitions return err, simulating an unreachable
// registry. Pass nil to clear.
func (r *MemoryRegistry) Fail(err error) {
	r.fault = err
}

// Version implements Registry.
func (r *MemoryRegistry) Version() string { return r.version }

// Nodes implements Registry. Nodes are returned in creation order.
func (r *MemoryRegistry) Nodes() ([]Node, error) {
	if r.fault != nil {
		return nil, r.fault
	}
	out := make([]Node, len(r.nodes))
	for i, o := range r.nodes {
		out[i] = o
	}
	return out, nil
}

// Partitions implements Registry.
func (r *MemoryRegistry) Partitions() ([]*Partition, error) {
	if r.fault != nil {
		return nil, r.fault
	}
	return r.partitions, nil
}

// ActivePartition implements Registry.
func (r *MemoryRegistry) ActivePartition() (*Partition, error) {
	if r.fault != nil {
		return nil, r.fault
	}
	return r.active, nil
}

// Partition returns the first partition named name.
func (r *MemoryRegistry) Partition(name string) (*Partition, bool) {
	for _, p := range r.partitions {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Len returns the number of registered objects.
func (r *MemoryRegistry) Len() int { return len(r.nodes) }

var _ Registry = (*MemoryRegistry)(nil)
