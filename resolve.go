package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Resolver locates and parses a configuration source. Implementations
// return the source's canonical identifier and its parsed tree, or an
// empty identifier with a nil error when no source exists by
// convention. Any returned error signals a hard failure such as a
// missing start path, an unreadable file, or a parse error.
type Resolver interface {
	Resolve(startPath, branch string) (identifier string, tree map[string]any, err error)
}

// FileLoader parses one configuration file format. Loaders report the
// file extensions they claim, without the leading dot.
type FileLoader interface {
	Extensions() []string
	Load(path string) (map[string]any, error)
}

// FileResolver resolves directories and files to configuration
// sources by naming convention. For a directory it probes, per loader
// in priority order, the candidates config.<ext> and .config.<ext>,
// or config-<branch>.<ext> and .config-<branch>.<ext> when a branch
// is given. A file start path resolves through its containing
// directory. The first candidate present on disk wins and its parse
// outcome is final.
type FileResolver struct {
	loaders []FileLoader
}

// NewFileResolver returns a FileResolver using the given loaders in
// priority order. Without arguments it installs the built-in loaders:
// TOML first, then YAML, with JSON as the conventional fallback.
func NewFileResolver(loaders ...FileLoader) *FileResolver {
	if len(loaders) == 0 {
		loaders = []FileLoader{TOMLLoader{}, YAMLLoader{}, JSONLoader{}}
	}
	return &FileResolver{loaders: loaders}
}

// Register installs an additional loader ahead of every existing one.
// Scriptable module loaders plug in here so their sources win over
// the declarative formats.
func (r *FileResolver) Register(l FileLoader) {
	r.loaders = append([]FileLoader{l}, r.loaders...)
}

// Resolve implements Resolver.
func (r *FileResolver) Resolve(startPath, branch string) (string, map[string]any, error) {
	dir, err := r.startDir(startPath)
	if err != nil {
		return "", nil, err
	}
	base := "config"
	if branch != "" {
		base = "config-" + branch
	}
	for _, loader := range r.loaders {
		for _, ext := range loader.Extensions() {
			for _, name := range []string{base + "." + ext, "." + base + "." + ext} {
				candidate := filepath.Join(dir, name)
				if _, err := os.Stat(candidate); err != nil {
					continue
				}
				tree, err := loader.Load(candidate)
				if err != nil {
					return "", nil, err
				}
				return candidate, tree, nil
			}
		}
	}
	return "", nil, nil
}

// startDir normalizes startPath to the absolute directory to probe.
func (r *FileResolver) startDir(startPath string) (string, error) {
	abs, err := filepath.Abs(startPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve start path '%s': %w", startPath, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("failed to access start path '%s': %w", startPath, err)
	}
	if !info.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}
