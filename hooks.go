package wphook

import "fmt"

// HookType selects which table of a Registry an operation acts on.
type HookType string

const (
	// Action hooks are invoked for side effects. Return values are discarded.
	Action HookType = "action"

	// Filter hooks transform a value. Each callback receives the value returned
	// by the previous one as its first argument.
	Filter HookType = "filter"
)

// Valid reports whether t is one of the known hook types.
func (t HookType) Valid() bool {
	return t == Action || t == Filter
}

// String implements fmt.Stringer.
func (t HookType) String() string {
	return string(t)
}

// ParseHookType converts a string into a HookType.
// Returns an error if s is not "action" or "filter".
func ParseHookType(s string) (HookType, error) {
	t := HookType(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown hook type %q (want %q or %q)", s, Action, Filter)
	}
	return t, nil
}

// mustValid panics when t is not a known hook type. Passing anything else is a
// programming error, not a runtime condition callers should handle.
func mustValid(t HookType) {
	if !t.Valid() {
		panic(fmt.Sprintf("wphook: invalid hook type %q", string(t)))
	}
}

// -----------------------------------------------------------------------------
// Callbacks
// -----------------------------------------------------------------------------

// Func is the uniform callback shape stored by the Registry.
//
// For actions, args is the forwarded argument list and the return value is
// ignored. For filters, args[0] is the running value and args[1:] is the
// forwarded argument list; the return value becomes the next running value.
type Func func(args ...any) any

// ActionFunc is a callback registered with [Registry.AddAction].
type ActionFunc func(args ...any)

// FilterFunc is a callback registered with [Registry.AddFilter].
// It returns the transformed value.
type FilterFunc func(value any, args ...any) any

// Func adapts the action into the uniform callback shape.
func (f ActionFunc) Func() Func {
	if f == nil {
		return nil
	}
	return func(args ...any) any {
		f(args...)
		return nil
	}
}

// Func adapts the filter into the uniform callback shape.
func (f FilterFunc) Func() Func {
	if f == nil {
		return nil
	}
	return func(args ...any) any {
		if len(args) == 0 {
			return f(nil)
		}
		return f(args[0], args[1:]...)
	}
}

// Entry is a single registered callback.
type Entry struct {
	// Tag identifies the callback within its hook name for targeted removal.
	// Tags are unique by convention only.
	Tag string

	// Func is the callback itself.
	Func Func
}
