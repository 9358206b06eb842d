package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SearchPaths returns the conventional directories to probe for an
// application's configuration, in priority order: the current
// directory, the XDG user config directory, the XDG system config
// directories, and /etc.
func SearchPaths(appName string) []string {
	paths := []string{"."}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, appName))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName))
	}

	if dirs := os.Getenv("XDG_CONFIG_DIRS"); dirs != "" {
		for _, dir := range strings.Split(dirs, ":") {
			if dir != "" {
				paths = append(paths, filepath.Join(dir, appName))
			}
		}
	} else {
		paths = append(paths, filepath.Join("/etc/xdg", appName))
	}

	return append(paths, filepath.Join("/etc", appName))
}

// LoadFirst probes dirs in order and assigns the first one that
// resolves to a configuration source, returning the winning
// identifier. Directories that are missing or resolve to nothing move
// the search along; any other failure stops it.
func (c *Config) LoadFirst(branch string, dirs ...string) (string, error) {
	if c.frozen {
		return "", fmt.Errorf("%w: cannot load", ErrFrozen)
	}
	for _, dir := range dirs {
		identifier, tree, err := c.Resolve(dir, branch)
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, os.ErrNotExist) {
				continue
			}
			return "", err
		}
		return identifier, c.Assign(tree, identifier)
	}
	return "", &ResolveError{Path: strings.Join(dirs, ", "), Branch: branch, Err: ErrNotFound}
}
