package config

import (
	"errors"
	"fmt"
	"os"
)

// Builder assembles a Config fluently. Construction errors accumulate
// and surface from Build, so call sites chain without intermediate
// checks.
type Builder struct {
	opts     Options
	loaders  []FileLoader
	defaults map[string]any
	trees    []namedTree
	files    []builderFile
	branch   string
	freeze   bool
	errs     []error
}

type namedTree struct {
	identifier string
	tree       map[string]any
}

type builderFile struct {
	path     string
	optional bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithDelimiters sets the path delimiter characters.
func (b *Builder) WithDelimiters(delims string) *Builder {
	if delims == "" {
		b.errs = append(b.errs, errors.New("delimiters cannot be empty"))
		return b
	}
	b.opts.Delimiters = delims
	return b
}

// WithResolver sets the resolver used for file loading.
func (b *Builder) WithResolver(r Resolver) *Builder {
	if r == nil {
		b.errs = append(b.errs, errors.New("resolver cannot be nil"))
		return b
	}
	b.opts.Resolver = r
	return b
}

// WithLoader registers an additional file loader at the highest
// priority on the file resolver.
func (b *Builder) WithLoader(l FileLoader) *Builder {
	if l == nil {
		b.errs = append(b.errs, errors.New("loader cannot be nil"))
		return b
	}
	b.loaders = append(b.loaders, l)
	return b
}

// WithDefaults assigns tree as the first layer, recorded under the
// identifier "defaults".
func (b *Builder) WithDefaults(tree map[string]any) *Builder {
	b.defaults = tree
	return b
}

// WithTree assigns tree as a layer under the given identifier, after
// defaults and before any files.
func (b *Builder) WithTree(identifier string, tree map[string]any) *Builder {
	b.trees = append(b.trees, namedTree{identifier: identifier, tree: tree})
	return b
}

// WithBranch sets the branch variant applied when resolving files, so
// a branch of "production" matches config-production.* sources.
func (b *Builder) WithBranch(branch string) *Builder {
	b.branch = branch
	return b
}

// WithFile resolves and assigns the configuration source at path. A
// resolution miss fails Build; use WithOptionalFile for sources that
// may legitimately be absent.
func (b *Builder) WithFile(path string) *Builder {
	b.files = append(b.files, builderFile{path: path})
	return b
}

// WithOptionalFile is WithFile for sources that may be absent; a
// convention miss or missing start path is skipped silently.
func (b *Builder) WithOptionalFile(path string) *Builder {
	b.files = append(b.files, builderFile{path: path, optional: true})
	return b
}

// WithFrozen freezes the store as the final build step.
func (b *Builder) WithFrozen() *Builder {
	b.freeze = true
	return b
}

// Build constructs the Config, applying defaults, then explicit trees,
// then files, then the optional freeze. The first accumulated or
// build-time error aborts construction.
func (b *Builder) Build() (*Config, error) {
	if len(b.errs) > 0 {
		return nil, fmt.Errorf("builder configuration failed: %w", errors.Join(b.errs...))
	}

	opts := b.opts
	if len(b.loaders) > 0 {
		fr, ok := opts.Resolver.(*FileResolver)
		if opts.Resolver == nil {
			fr = NewFileResolver()
		} else if !ok {
			return nil, errors.New("WithLoader requires a FileResolver")
		}
		for _, l := range b.loaders {
			fr.Register(l)
		}
		opts.Resolver = fr
	}

	c := NewWithOptions(opts)
	if b.defaults != nil {
		if err := c.Assign(b.defaults, "defaults"); err != nil {
			return nil, err
		}
	}
	for _, nt := range b.trees {
		if err := c.Assign(nt.tree, nt.identifier); err != nil {
			return nil, err
		}
	}
	for _, f := range b.files {
		if err := c.LoadBranch(f.path, b.branch); err != nil {
			if f.optional && (errors.Is(err, ErrNotFound) || errors.Is(err, os.ErrNotExist)) {
				continue
			}
			return nil, fmt.Errorf("failed to load '%s': %w", f.path, err)
		}
	}
	if b.freeze {
		c.Freeze()
	}
	return c, nil
}

// MustBuild is Build panicking on error, for initialization paths
// where a broken configuration is unrecoverable.
func (b *Builder) MustBuild() *Config {
	c, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("config build failed: %v", err))
	}
	return c
}
