package global

import (
	"sync"

	"github.com/rickchristie/wphook"
)

var (
	defaultRegistry *wphook.Registry
	defaultOnce     sync.Once
)

// Default returns the process-wide Registry, creating it on first use.
func Default() *wphook.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = wphook.NewRegistry()
	})
	return defaultRegistry
}

// Init sets the registry returned by Default. Only the first call to Init or
// Default has any effect; Init reports whether r was installed. A nil r
// installs a new empty Registry.
func Init(r *wphook.Registry) bool {
	if r == nil {
		r = wphook.NewRegistry()
	}
	installed := false
	defaultOnce.Do(func() {
		defaultRegistry = r
		installed = true
	})
	return installed
}

// reset clears the default registry. Tests only.
func reset() {
	defaultOnce = sync.Once{}
	defaultRegistry = nil
}

// AddHook registers fn on the default registry.
func AddHook(hookType wphook.HookType, name string, fn wphook.Func, tag ...string) {
	Default().AddHook(hookType, name, fn, tag...)
}

// RemoveHook removes hooks from the default registry.
func RemoveHook(hookType wphook.HookType, name string, tag ...string) {
	Default().RemoveHook(hookType, name, tag...)
}

// DoHook dispatches a hook on the default registry.
func DoHook(hookType wphook.HookType, name string, value any, args ...any) any {
	return Default().DoHookArgs(hookType, name, value, args)
}

// DoHookArgs dispatches a hook on the default registry with an explicit
// argument list.
func DoHookArgs(hookType wphook.HookType, name string, value any, args []any) any {
	return Default().DoHookArgs(hookType, name, value, args)
}

// AddAction registers an action on the default registry.
func AddAction(name string, fn wphook.ActionFunc, tag ...string) {
	Default().AddAction(name, fn, tag...)
}

// DoAction runs the actions registered under name on the default registry.
func DoAction(name string, args ...any) {
	Default().DoActionArgs(name, args)
}

// DoActionArgs is DoAction with an explicit argument list.
func DoActionArgs(name string, args []any) {
	Default().DoActionArgs(name, args)
}

// RemoveAction removes actions from the default registry.
func RemoveAction(name string, tag ...string) {
	Default().RemoveAction(name, tag...)
}

// AddFilter registers a filter on the default registry.
func AddFilter(name string, fn wphook.FilterFunc, tag ...string) {
	Default().AddFilter(name, fn, tag...)
}

// ApplyFilters filters value through the default registry.
func ApplyFilters(name string, value any, args ...any) any {
	return Default().ApplyFiltersArgs(name, value, args)
}

// ApplyFiltersArgs is ApplyFilters with an explicit argument list.
func ApplyFiltersArgs(name string, value any, args []any) any {
	return Default().ApplyFiltersArgs(name, value, args)
}

// RemoveFilter removes filters from the default registry.
func RemoveFilter(name string, tag ...string) {
	Default().RemoveFilter(name, tag...)
}
