package config

import (
	"fmt"

	"github.com/superhero/config/deep"
)

// Options configures a Config instance. The zero value selects the
// default delimiters and the default file resolver.
type Options struct {
	// Delimiters holds the characters that separate path segments.
	// Empty selects the default "/." set.
	Delimiters string

	// Resolver locates and parses configuration sources for Load,
	// LoadBranch, and Resolve. Nil selects a FileResolver with the
	// built-in TOML, YAML, and JSON loaders.
	Resolver Resolver
}

// Config is a layered configuration store. Trees of settings are
// assigned in order and deep-merged into a single view; the store
// remembers which layer contributed which value and can be permanently
// frozen once composition is complete.
//
// Config performs no internal locking. Mutations (Assign, Set, Load,
// Freeze) must be serialized by the caller; once frozen, or between
// mutations, any number of readers may run concurrently.
type Config struct {
	tree     map[string]any
	layers   *layerRegistry
	frozen   bool
	delims   string
	resolver Resolver
}

// New returns an empty unfrozen store with default options.
func New() *Config {
	return NewWithOptions(Options{})
}

// NewWithOptions returns an empty unfrozen store configured by opts.
func NewWithOptions(opts Options) *Config {
	delims := opts.Delimiters
	if delims == "" {
		delims = defaultDelimiters
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = NewFileResolver()
	}
	return &Config{
		tree:     make(map[string]any),
		layers:   newLayerRegistry(),
		delims:   delims,
		resolver: resolver,
	}
}

// Assign deep-merges tree into the store as a new layer. Trees merge
// recursively with the incoming value winning collisions; scalars and
// sequences replace the previous value wholesale. The input is cloned
// before use, so callers may freely reuse or mutate it afterwards.
//
// identifier names the layer for provenance queries; the empty string
// records an anonymous programmatic layer. Re-assigning an existing
// identifier replaces that layer's recorded content and marks it most
// recently declared.
func (c *Config) Assign(tree map[string]any, identifier string) error {
	if c.frozen {
		return fmt.Errorf("%w: cannot assign layer", ErrFrozen)
	}
	pristine := deep.CloneMap(tree)
	c.tree = deep.Merge(c.tree, pristine)
	c.layers.record(identifier, pristine)
	return nil
}

// Set assigns a single value at path as an anonymous layer, creating
// intermediate trees along the way.
func (c *Config) Set(path string, value any) error {
	return c.Assign(buildTree(splitPath(path, c.delims), value), "")
}

// Find returns the merged value at path. Composite values come back as
// deep clones, so callers can never alias store state. The second
// return reports whether the path is defined; Find never fails.
func (c *Config) Find(path string) (any, bool) {
	v, ok := traverse(c.tree, splitPath(path, c.delims))
	if !ok {
		return nil, false
	}
	return deep.Clone(v), true
}

// FindOr returns the merged value at path, defaulted against fallback.
// An undefined path returns fallback exactly as given. When the found
// value and fallback are both trees or both sequences they merge
// recursively with the found value winning and fallback supplying
// missing keys or elements; any other found value is returned alone.
func (c *Config) FindOr(path string, fallback any) any {
	v, ok := traverse(c.tree, splitPath(path, c.delims))
	if !ok {
		return fallback
	}
	return deep.Defaults(v, fallback)
}

// Tree returns a deep clone of the entire merged tree.
func (c *Config) Tree() map[string]any {
	return deep.CloneMap(c.tree)
}

// Freeze permanently seals the store. Subsequent Assign, Set, and Load
// calls fail with ErrFrozen; repeated calls are no-ops. The merged
// tree is detached into a final snapshot at freeze time.
func (c *Config) Freeze() {
	if c.frozen {
		return
	}
	c.tree = deep.CloneMap(c.tree)
	c.frozen = true
}

// IsFrozen reports whether Freeze has been called.
func (c *Config) IsFrozen() bool {
	return c.frozen
}

// Resolve locates the configuration source for startPath and branch
// without assigning it, returning the absolute path of the winning
// source and its parsed tree. All failures come back as a
// *ResolveError; errors.Is(err, ErrNotFound) distinguishes a
// convention miss from an I/O or parse failure.
func (c *Config) Resolve(startPath, branch string) (string, map[string]any, error) {
	identifier, tree, err := c.resolver.Resolve(startPath, branch)
	if err != nil {
		return "", nil, &ResolveError{Path: startPath, Branch: branch, Err: err}
	}
	if identifier == "" {
		return "", nil, &ResolveError{Path: startPath, Branch: branch, Err: ErrNotFound}
	}
	return identifier, tree, nil
}

// Load resolves startPath and assigns the discovered source as a
// layer identified by its absolute path.
func (c *Config) Load(startPath string) error {
	return c.LoadBranch(startPath, "")
}

// LoadBranch is Load for a branch variant, so a branch of
// "production" matches sources named config-production.* instead of
// config.*.
func (c *Config) LoadBranch(startPath, branch string) error {
	if c.frozen {
		return fmt.Errorf("%w: cannot load '%s'", ErrFrozen, startPath)
	}
	identifier, tree, err := c.Resolve(startPath, branch)
	if err != nil {
		return err
	}
	return c.Assign(tree, identifier)
}
