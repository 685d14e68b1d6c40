package snapshot

import (
	"github.com/matzehuels/snapshoot/pkg/errors"
	"github.com/matzehuels/snapshoot/pkg/scene"
)

// ResolveUntracked returns the roots that belong to no partition.
//
// It starts from every node in the registry, removes the direct roots of
// every partition the registry reports (loaded or not), and keeps the
// remaining nodes that have no parent. Registry order is preserved.
//
// A registry failure is returned as REGISTRY_UNAVAILABLE.
func ResolveUntracked(reg scene.Registry) ([]scene.Node, error) {
	all, err := reg.Nodes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryUnavailable, err, "enumerate nodes")
	}
	parts, err := reg.Partitions()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRegistryUnavailable, err, "enumerate partitions")
	}

	tracked := make(map[int]struct{})
	for _, p := range parts {
		for _, r := range p.Roots {
			if r != nil {
				tracked[r.InstanceID()] = struct{}{}
			}
		}
	}

	var out []scene.Node
	for _, n := range all {
		if n == nil {
			continue
		}
		if _, ok := tracked[n.InstanceID()]; ok {
			continue
		}
		if n.Parent() != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}
