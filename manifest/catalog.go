package manifest

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rickchristie/wphook"
)

// ActionFactory builds an action from the args of a manifest entry.
type ActionFactory func(args []any) (wphook.ActionFunc, error)

// FilterFactory builds a filter from the args of a manifest entry.
type FilterFactory func(args []any) (wphook.FilterFunc, error)

// Catalog maps callback names to factories. Actions and filters have separate
// namespaces. Catalog is safe for concurrent use.
type Catalog struct {
	mu      sync.RWMutex
	actions map[string]ActionFactory
	filters map[string]FilterFactory
}

// NewCatalog creates an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		actions: make(map[string]ActionFactory),
		filters: make(map[string]FilterFactory),
	}
}

// RegisterAction adds or replaces the action factory for name.
func (c *Catalog) RegisterAction(name string, f ActionFactory) *Catalog {
	c.mu.Lock()
	c.actions[name] = f
	c.mu.Unlock()
	return c
}

// RegisterFilter adds or replaces the filter factory for name.
func (c *Catalog) RegisterFilter(name string, f FilterFactory) *Catalog {
	c.mu.Lock()
	c.filters[name] = f
	c.mu.Unlock()
	return c
}

// Names returns the callback names available for hookType, sorted.
func (c *Catalog) Names(hookType wphook.HookType) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var names []string
	switch hookType {
	case wphook.Action:
		for name := range c.actions {
			names = append(names, name)
		}
	case wphook.Filter:
		for name := range c.filters {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Build returns the callback called name for hookType, built with args.
func (c *Catalog) Build(hookType wphook.HookType, name string, args ...any) (wphook.Func, error) {
	return c.build(hookType, name, args)
}

func (c *Catalog) build(hookType wphook.HookType, name string, args []any) (wphook.Func, error) {
	c.mu.RLock()
	action, isAction := c.actions[name]
	filter, isFilter := c.filters[name]
	c.mu.RUnlock()

	switch {
	case hookType == wphook.Action && isAction:
		fn, err := action(args)
		if err != nil {
			return nil, fmt.Errorf("callback %q: %w", name, err)
		}
		return fn.Func(), nil
	case hookType == wphook.Filter && isFilter:
		fn, err := filter(args)
		if err != nil {
			return nil, fmt.Errorf("callback %q: %w", name, err)
		}
		return fn.Func(), nil
	}
	return nil, fmt.Errorf("%w %q for %s hooks", ErrUnknownCallback, name, hookType)
}
