package ggscript

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// BackendFactory returns a fresh, unstarted backend. The interpreter calls
// Begin on it at the start of each pass.
type BackendFactory func() Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]BackendFactory)
)

// Register makes a backend available to NewBackend under name. The
// backends in this module register from init, so a blank import is
// enough to select one by name:
//
//	import _ "github.com/gogpu/ggscript/backends/raster" // "raster"
//	import _ "github.com/gogpu/ggscript/backends/trace"  // "trace"
//
// Register panics on a nil factory or a name taken by another backend.
func Register(name string, factory BackendFactory) {
	if factory == nil {
		panic("ggscript: nil factory for backend " + name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := backends[name]; dup {
		panic("ggscript: backend " + name + " registered twice")
	}
	backends[name] = factory
}

// Unregister drops name. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	delete(backends, name)
	registryMu.Unlock()
}

// NewBackend returns a new backend registered under name, as the
// ggscript command does for its -trace switch. An unknown name reports
// the registered ones so a missing blank import is easy to spot.
func NewBackend(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("ggscript: unknown backend %q (registered: %s; forgotten import?)",
			name, strings.Join(Backends(), ", "))
	}
	return factory(), nil
}

// Backends lists the registered backend names in order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether NewBackend(name) would succeed.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}
