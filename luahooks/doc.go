// Package luahooks exposes a wphook.Registry to Lua scripts running on
// gopher-lua.
//
// [Install] binds the hook operations as Lua globals:
//
//	addAction(name, fn [, tag])          doAction(name, ...)
//	addFilter(name, fn [, tag])          applyFilters(name, value, ...) -> value
//	addHook(type, name, fn [, tag])      doHook(type, name, value, ...) -> value
//	removeAction(name [, tag])           doActionArgs(name, {args})
//	removeFilter(name [, tag])           applyFiltersArgs(name, value, {args}) -> value
//	removeHook(type, name [, tag])       doHookArgs(type, name, value, {args}) -> value
//
// and a "hooks" table holding the same functions plus the constants
// hooks.ACTION and hooks.FILTER. A global that is already set (to anything
// other than nil) is never overwritten.
//
// Lua functions registered this way become ordinary registry callbacks, so Go
// code can dispatch hooks that scripts registered and scripts can dispatch
// hooks that Go code registered. Values cross the boundary as follows:
// nil, booleans, strings and numbers map to their Go counterparts (whole
// numbers become int), array-like tables become []any, other tables become
// map[string]any, and Go values with no Lua equivalent travel as userdata and
// come back unchanged.
//
// A Lua callback that raises an error panics out of the dispatch with a
// *lua.ApiError. When the dispatch was started from Lua the panic is caught
// by the enclosing protected call (DoString, PCall) and reported as an error.
//
// gopher-lua states are not goroutine-safe: hooks registered from a state must
// only be dispatched from the goroutine that owns it.
package luahooks
