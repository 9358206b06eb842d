// Package config implements a layered configuration store. Trees of
// settings are assigned in order and deep-merged into a single view;
// the store remembers every contributing layer for provenance queries
// and can be permanently frozen once composition is complete.
//
// Values are addressed with delimited paths, "/" and "." by default:
//
//	c := config.New()
//	c.Assign(map[string]any{"server": map[string]any{"port": 3000}}, "defaults")
//	port, _ := c.Int64("server/port")
//
// A backslash escapes a delimiter inside a key, so the path "a\\/b"
// addresses the literal key "a/b".
//
// Configuration files are discovered by naming convention through a
// Resolver. For a directory, candidates named config.<ext> and
// .config.<ext> are probed per format, or config-<branch>.<ext> when
// a branch variant is requested, with TOML and YAML ahead of the JSON
// fallback. Additional formats, such as the sandboxed Lua loader in
// the lua subpackage, plug in as FileLoader implementations.
//
// The store performs no internal locking. Callers serialize mutation;
// once Freeze has been called the tree is immutable and reads are
// safe from any number of goroutines.
package config
