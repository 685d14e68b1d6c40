// Package scene models the live host graph that snapshoot reads.
//
// The host environment (a game engine editor, a runtime, a test fixture) owns
// every node, partition and component; this package only describes the
// read-only surface the exporter consumes.
//
// # Graph Model
//
// A [Node] is an opaque handle into the host graph: it has a name, an active
// flag, a layer and tag, a spatial [Frame], an ordered list of attached
// [Component] values and an ordered list of children. A node has at most one
// parent; parent-less nodes are roots.
//
// A [Partition] (a "scene") is a named collection of root nodes. The host
// exposes zero or more partitions plus the currently active one through the
// [Registry] capability, together with a global registry of every node it
// knows about. Nodes that have no parent and belong to no partition are the
// untracked roots; they are computed by the snapshot package, not here.
//
// # Components
//
// Components form a closed tagged union dispatched on [Kind]: renderers carry
// material slots, scripts carry an enabled flag, and built-ins carry an
// optional enabled flag that is absent when the component type exposes no
// such property ([EnabledLookup] decides which types do).
//
// # In-Memory Registry
//
// [MemoryRegistry] is a complete Registry backed by plain structs. Tests use
// it as a fake host; the CLI fills it from a scene dump file with [LoadFile]:
//
//	reg, err := scene.LoadFile("dump.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	nodes, _ := reg.Nodes()
//
// # Concurrency
//
// Implementations are read during a single synchronous export. The host is
// responsible for not mutating the graph while an export runs.
package scene
