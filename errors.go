package config

import (
	"errors"
	"fmt"
)

// ErrFrozen is returned by mutating operations after Freeze has been
// called. The condition is permanent for the lifetime of the store.
var ErrFrozen = errors.New("configuration is frozen")

// ErrNotFound reports that a lookup or resolution completed without
// locating any configuration.
var ErrNotFound = errors.New("configuration not found")

// ErrFileSize reports a configuration file exceeding the size limit.
var ErrFileSize = errors.New("configuration file exceeds size limit")

// ResolveError wraps any failure raised while resolving a start path
// to a configuration source. Check errors.Is(err, ErrNotFound) to
// distinguish a convention miss from an I/O or parse failure.
type ResolveError struct {
	Path   string
	Branch string
	Err    error
}

func (e *ResolveError) Error() string {
	if e.Branch != "" {
		return fmt.Sprintf("failed to resolve configuration at '%s' (branch '%s'): %v", e.Path, e.Branch, e.Err)
	}
	return fmt.Sprintf("failed to resolve configuration at '%s': %v", e.Path, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }
