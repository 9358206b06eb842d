package config

import "github.com/superhero/config/deep"

// LayerEntry pairs a layer identifier with the value that layer
// recorded at a queried path.
type LayerEntry struct {
	Identifier string
	Value      any
}

// layer is one recorded configuration source: an opaque identifier and
// the pristine tree it contributed.
type layer struct {
	identifier string
	tree       map[string]any
}

// layerRegistry keeps every assigned layer in declaration order while
// separately tracking recency. Re-recording an identifier replaces its
// content in place, preserving the original slot for forward
// iteration, and bumps the identifier to most recent for recency
// queries.
type layerRegistry struct {
	entries []layer
	recency []string
	byID    map[string]int
}

func newLayerRegistry() *layerRegistry {
	return &layerRegistry{byID: make(map[string]int)}
}

// record stores tree under identifier. The tree must already be a
// private clone; the registry takes ownership.
func (r *layerRegistry) record(identifier string, tree map[string]any) {
	if i, ok := r.byID[identifier]; ok {
		r.entries[i].tree = tree
		for j, id := range r.recency {
			if id == identifier {
				r.recency = append(r.recency[:j], r.recency[j+1:]...)
				break
			}
		}
		r.recency = append(r.recency, identifier)
		return
	}
	r.byID[identifier] = len(r.entries)
	r.entries = append(r.entries, layer{identifier: identifier, tree: tree})
	r.recency = append(r.recency, identifier)
}

// forward returns layers in declaration order, oldest first.
func (r *layerRegistry) forward() []layer {
	return r.entries
}

// reverse returns layers ordered most recently declared first.
func (r *layerRegistry) reverse() []layer {
	out := make([]layer, 0, len(r.recency))
	for i := len(r.recency) - 1; i >= 0; i-- {
		out = append(out, r.entries[r.byID[r.recency[i]]])
	}
	return out
}

func (r *layerRegistry) has(identifier string) bool {
	_, ok := r.byID[identifier]
	return ok
}

func (r *layerRegistry) count() int { return len(r.entries) }

// identifiers returns layer identifiers in declaration order.
func (r *layerRegistry) identifiers() []string {
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.identifier
	}
	return out
}

// clone returns an independent copy of the registry, deep-cloning
// every recorded tree.
func (r *layerRegistry) clone() *layerRegistry {
	out := &layerRegistry{
		entries: make([]layer, len(r.entries)),
		recency: append([]string(nil), r.recency...),
		byID:    make(map[string]int, len(r.byID)),
	}
	for i, e := range r.entries {
		out.entries[i] = layer{identifier: e.identifier, tree: deep.CloneMap(e.tree)}
	}
	for id, i := range r.byID {
		out.byID[id] = i
	}
	return out
}
