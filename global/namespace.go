package global

import (
	"sort"
	"sync"

	"github.com/rickchristie/wphook"
)

// RegistryName is the name the registry itself is installed under.
const RegistryName = "hooks"

// Namespace is a set of named bindings that Install can publish into.
type Namespace interface {
	// Lookup returns the value bound to name, if any.
	Lookup(name string) (any, bool)

	// Set binds name to value.
	Set(name string, value any)

	// SetIfAbsent binds name to value unless name is already bound, and
	// reports whether it did. The check and the bind are one step.
	SetIfAbsent(name string, value any) bool
}

// Install publishes the operations of r, and r itself under [RegistryName],
// into ns. A name that is already bound is skipped.
//
// Returns the names that were installed, sorted.
func Install(ns Namespace, r *wphook.Registry) []string {
	var installed []string
	for name, value := range Bindings(r) {
		if ns.SetIfAbsent(name, value) {
			installed = append(installed, name)
		}
	}
	sort.Strings(installed)
	return installed
}

// Bindings returns the operations of r keyed by their conventional names
// (addAction, applyFilters, ...) plus r under [RegistryName].
func Bindings(r *wphook.Registry) map[string]any {
	return map[string]any{
		"addHook":      r.AddHook,
		"doHook":       r.DoHook,
		"removeHook":   r.RemoveHook,
		"addAction":    r.AddAction,
		"doAction":     r.DoAction,
		"removeAction": r.RemoveAction,
		"addFilter":    r.AddFilter,
		"applyFilters": r.ApplyFilters,
		"removeFilter": r.RemoveFilter,
		RegistryName:   r,
	}
}

// MapNamespace is a Namespace backed by a map. It is safe for concurrent use.
type MapNamespace struct {
	mu       sync.RWMutex
	bindings map[string]any
}

// NewMapNamespace creates an empty MapNamespace.
func NewMapNamespace() *MapNamespace {
	return &MapNamespace{bindings: make(map[string]any)}
}

// Lookup implements Namespace.
func (m *MapNamespace) Lookup(name string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.bindings[name]
	return v, ok
}

// Set implements Namespace.
func (m *MapNamespace) Set(name string, value any) {
	m.mu.Lock()
	m.bindings[name] = value
	m.mu.Unlock()
}

// SetIfAbsent implements Namespace.
func (m *MapNamespace) SetIfAbsent(name string, value any) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bindings[name]; ok {
		return false
	}
	m.bindings[name] = value
	return true
}

// Len returns the number of bindings.
func (m *MapNamespace) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.bindings)
}

// Compile-time check that MapNamespace implements Namespace.
var _ Namespace = (*MapNamespace)(nil)
