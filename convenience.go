package config

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/superhero/config/deep"
)

// Quick builds a store from a defaults tree plus any of the given
// directories or files that resolve to a configuration source. Absent
// sources are tolerated; defaults alone still produce a working store.
func Quick(defaults map[string]any, paths ...string) (*Config, error) {
	b := NewBuilder().WithDefaults(defaults)
	for _, p := range paths {
		b.WithOptionalFile(p)
	}
	return b.Build()
}

// MustQuick is Quick panicking on error.
func MustQuick(defaults map[string]any, paths ...string) *Config {
	c, err := Quick(defaults, paths...)
	if err != nil {
		panic(fmt.Sprintf("config initialization failed: %v", err))
	}
	return c
}

// Clone returns an independent unfrozen copy of the store carrying
// the same merged tree, layers, and options.
func (c *Config) Clone() *Config {
	return &Config{
		tree:     deep.CloneMap(c.tree),
		layers:   c.layers.clone(),
		delims:   c.delims,
		resolver: c.resolver,
	}
}

// Dump renders the merged tree as indented JSON for debugging.
func (c *Config) Dump() (string, error) {
	data, err := json.MarshalIndent(c.tree, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render configuration: %w", err)
	}
	return string(data), nil
}

// Paths returns every defined leaf path in the merged tree, sorted,
// with delimiter occurrences inside keys escaped so each result can
// be passed straight back to Find.
func (c *Config) Paths() []string {
	var paths []string
	c.appendPaths("", c.tree, &paths)
	sort.Strings(paths)
	return paths
}

func (c *Config) appendPaths(prefix string, tree map[string]any, out *[]string) {
	for k, v := range tree {
		p := escapeSegment(k, c.delims)
		if prefix != "" {
			p = prefix + string(c.delims[0]) + p
		}
		if sub, ok := v.(map[string]any); ok && len(sub) > 0 {
			c.appendPaths(p, sub, out)
			continue
		}
		*out = append(*out, p)
	}
}

// Layers returns the identifiers of every recorded layer in
// declaration order.
func (c *Config) Layers() []string {
	return c.layers.identifiers()
}

// HasLayer reports whether a layer with the given identifier has been
// recorded.
func (c *Config) HasLayer(identifier string) bool {
	return c.layers.has(identifier)
}
