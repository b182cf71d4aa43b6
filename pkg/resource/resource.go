// Package resource resolves "namespace:relative/path" resource locations
// against registered assets folders.
package resource

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"github.com/magcot/magcot/pkg/core"
	"github.com/mitchellh/go-homedir"
)

// Location is a parsed resource location.
type Location struct {
	Namespace string
	Path      string
}

func (l Location) String() string {
	return l.Namespace + ":" + l.Path
}

// IsLocation reports whether s looks like a resource location: exactly one
// ":" that is not followed by a slash or a backslash.
func IsLocation(s string) bool {
	if strings.Count(s, ":") != 1 {
		return false
	}
	return !strings.Contains(s, ":/") && !strings.Contains(s, `:\`)
}

// Parse splits a resource location. The second result is false when s is a
// plain filesystem path.
func Parse(s string) (Location, bool) {
	if !IsLocation(s) {
		return Location{}, false
	}
	ns, rest, _ := strings.Cut(s, ":")
	return Location{Namespace: ns, Path: rest}, true
}

// Registry maps namespaces to their assets folders.
type Registry struct {
	mu         sync.RWMutex
	namespaces map[string]string
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{namespaces: make(map[string]string)}
}

// Default is the process-wide registry used by the CLI and by textures that
// were not given a registry explicitly.
var Default = NewRegistry()

// DefineNamespace registers ns in the Default registry.
func DefineNamespace(ns, assetsDir string) error {
	return Default.Define(ns, assetsDir)
}

// Define registers a namespace. assetsDir must be an existing folder named
// "assets"; ns must only use [0-9a-z._-].
func (r *Registry) Define(ns, assetsDir string) error {
	dir, err := homedir.Expand(assetsDir)
	if err != nil {
		return fmt.Errorf("%w: expanding %q: %v", core.ErrValidation, assetsDir, err)
	}
	if filepath.Base(dir) != "assets" {
		return fmt.Errorf("%w: %q must be an 'assets' folder", core.ErrValidation, assetsDir)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return &core.NotFoundError{What: "assets folder", Key: assetsDir}
	}
	if !validNamespace(ns) {
		return fmt.Errorf("%w: bad namespace name %q", core.ErrValidation, ns)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.namespaces[ns] = filepath.ToSlash(dir)
	return nil
}

// Lookup returns the assets folder of ns.
func (r *Registry) Lookup(ns string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	dir, ok := r.namespaces[ns]
	if !ok {
		return "", &core.NotFoundError{What: "namespace", Key: ns}
	}
	return dir, nil
}

// Namespaces returns the registered namespace names.
func (r *Registry) Namespaces() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.namespaces))
	for ns := range r.namespaces {
		names = append(names, ns)
	}
	return names
}

// Resolve expands p when it is a resource location, appending ext when the
// path has no extension and inserting infix (e.g. "textures") between the
// namespace folder and the path. Plain paths are returned unaltered apart
// from "~" expansion.
func (r *Registry) Resolve(p, ext, infix string) (string, error) {
	loc, ok := Parse(p)
	if !ok {
		expanded, err := homedir.Expand(p)
		if err != nil {
			return "", fmt.Errorf("%w: expanding %q: %v", core.ErrValidation, p, err)
		}
		return expanded, nil
	}
	rest := loc.Path
	if path.Ext(rest) == "" {
		rest += ext
	}
	dir, err := r.Lookup(loc.Namespace)
	if err != nil {
		return "", err
	}
	parts := []string{dir, loc.Namespace}
	if infix != "" {
		parts = append(parts, infix)
	}
	parts = append(parts, rest)
	return strings.ReplaceAll(strings.Join(parts, "/"), `\`, "/"), nil
}

func validNamespace(ns string) bool {
	if ns == "" {
		return false
	}
	for _, r := range ns {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'z':
		case r == '-', r == '_', r == '.':
		default:
			return false
		}
	}
	return true
}
