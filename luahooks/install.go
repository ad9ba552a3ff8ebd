package luahooks

import (
	"sort"

	"github.com/rickchristie/wphook"
	lua "github.com/yuin/gopher-lua"
)

// RegistryName is the global the hooks table is installed under.
const RegistryName = "hooks"

// Install binds the operations of r as globals of L. Globals that are already
// set are left untouched.
//
// Returns the names of the globals that were installed, sorted.
func Install(L *lua.LState, r *wphook.Registry) []string {
	b := &binding{L: L, r: r}
	funcs := b.functions()

	var installed []string
	for name, fn := range funcs {
		if L.GetGlobal(name) != lua.LNil {
			continue
		}
		L.SetGlobal(name, L.NewFunction(fn))
		installed = append(installed, name)
	}

	if L.GetGlobal(RegistryName) == lua.LNil {
		L.SetGlobal(RegistryName, b.table(funcs))
		installed = append(installed, RegistryName)
	}

	sort.Strings(installed)
	return installed
}

type binding struct {
	L *lua.LState
	r *wphook.Registry
}

func (b *binding) functions() map[string]lua.LGFunction {
	return map[string]lua.LGFunction{
		"addHook":          b.addHook,
		"doHook":           b.doHook,
		"doHookArgs":       b.doHookArgs,
		"removeHook":       b.removeHook,
		"addAction":        b.addTyped(wphook.Action),
		"doAction":         b.doAction,
		"doActionArgs":     b.doActionArgs,
		"removeAction":     b.removeTyped(wphook.Action),
		"addFilter":        b.addTyped(wphook.Filter),
		"applyFilters":     b.applyFilters,
		"applyFiltersArgs": b.applyFiltersArgs,
		"removeFilter":     b.removeTyped(wphook.Filter),
	}
}

func (b *binding) table(funcs map[string]lua.LGFunction) *lua.LTable {
	t := b.L.NewTable()
	for name, fn := range funcs {
		t.RawSetString(name, b.L.NewFunction(fn))
	}
	t.RawSetString("ACTION", lua.LString(wphook.Action))
	t.RawSetString("FILTER", lua.LString(wphook.Filter))
	return t
}

// -----------------------------------------------------------------------------
// Registration
// -----------------------------------------------------------------------------

// addHook(type, name, fn [, tag])
func (b *binding) addHook(L *lua.LState) int {
	hookType := checkHookType(L, 1)
	b.add(L, hookType, 2)
	return 0
}

// addAction(name, fn [, tag]) / addFilter(name, fn [, tag])
func (b *binding) addTyped(hookType wphook.HookType) lua.LGFunction {
	return func(L *lua.LState) int {
		b.add(L, hookType, 1)
		return 0
	}
}

// add reads name, fn and an optional tag starting at stack index pos.
func (b *binding) add(L *lua.LState, hookType wphook.HookType, pos int) {
	name := L.CheckString(pos)
	fn := L.CheckFunction(pos + 1)
	callback := b.callback(fn)

	if tag, ok := optTag(L, pos+2); ok {
		b.r.AddHook(hookType, name, callback, tag)
		return
	}
	b.r.AddHook(hookType, name, callback)
}

// removeHook(type, name [, tag])
func (b *binding) removeHook(L *lua.LState) int {
	hookType := checkHookType(L, 1)
	b.remove(L, hookType, 2)
	return 0
}

// removeAction(name [, tag]) / removeFilter(name [, tag])
func (b *binding) removeTyped(hookType wphook.HookType) lua.LGFunction {
	return func(L *lua.LState) int {
		b.remove(L, hookType, 1)
		return 0
	}
}

func (b *binding) remove(L *lua.LState, hookType wphook.HookType, pos int) {
	name := L.CheckString(pos)
	if tag, ok := optTag(L, pos+1); ok {
		b.r.RemoveHook(hookType, name, tag)
		return
	}
	b.r.RemoveHook(hookType, name)
}

// callback wraps a Lua function as a registry callback. The function is
// called with the dispatch arguments and its first result is returned.
func (b *binding) callback(fn *lua.LFunction) wphook.Func {
	L := b.L
	return func(args ...any) any {
		largs := make([]lua.LValue, len(args))
		for i, a := range args {
			largs[i] = toLua(L, a)
		}

		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, largs...); err != nil {
			panic(err)
		}
		ret := L.Get(-1)
		L.Pop(1)
		return toGo(ret)
	}
}

// -----------------------------------------------------------------------------
// Dispatch
// -----------------------------------------------------------------------------

// doHook(type, name, value, ...) -> value
func (b *binding) doHook(L *lua.LState) int {
	hookType := checkHookType(L, 1)
	name := L.CheckString(2)
	value := toGo(L.Get(3))
	return b.push(L, hookType, b.r.DoHookArgs(hookType, name, value, varargs(L, 4)))
}

// doHookArgs(type, name, value, {args}) -> value
func (b *binding) doHookArgs(L *lua.LState) int {
	hookType := checkHookType(L, 1)
	name := L.CheckString(2)
	value := toGo(L.Get(3))
	return b.push(L, hookType, b.r.DoHookArgs(hookType, name, value, listArg(L, 4)))
}

// doAction(name, ...)
func (b *binding) doAction(L *lua.LState) int {
	b.r.DoActionArgs(L.CheckString(1), varargs(L, 2))
	return 0
}

// doActionArgs(name, {args})
func (b *binding) doActionArgs(L *lua.LState) int {
	b.r.DoActionArgs(L.CheckString(1), listArg(L, 2))
	return 0
}

// applyFilters(name, value, ...) -> value
func (b *binding) applyFilters(L *lua.LState) int {
	name := L.CheckString(1)
	value := toGo(L.Get(2))
	return b.push(L, wphook.Filter, b.r.ApplyFiltersArgs(name, value, varargs(L, 3)))
}

// applyFiltersArgs(name, value, {args}) -> value
func (b *binding) applyFiltersArgs(L *lua.LState) int {
	name := L.CheckString(1)
	value := toGo(L.Get(2))
	return b.push(L, wphook.Filter, b.r.ApplyFiltersArgs(name, value, listArg(L, 3)))
}

// push returns the dispatch result to Lua. Actions return nothing.
func (b *binding) push(L *lua.LState, hookType wphook.HookType, result any) int {
	if hookType == wphook.Action {
		return 0
	}
	L.Push(toLua(L, result))
	return 1
}

// -----------------------------------------------------------------------------
// Arguments
// -----------------------------------------------------------------------------

func checkHookType(L *lua.LState, n int) wphook.HookType {
	hookType, err := wphook.ParseHookType(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return hookType
}

// optTag returns the tag at n, if one was passed. nil counts as omitted.
func optTag(L *lua.LState, n int) (string, bool) {
	if L.Get(n) == lua.LNil {
		return "", false
	}
	return L.CheckString(n), true
}

// varargs converts the arguments from n to the top of the stack.
func varargs(L *lua.LState, n int) []any {
	top := L.GetTop()
	if top < n {
		return nil
	}
	out := make([]any, 0, top-n+1)
	for i := n; i <= top; i++ {
		out = append(out, toGo(L.Get(i)))
	}
	return out
}

// listArg converts the array table at n into an argument list. nil means no
// arguments.
func listArg(L *lua.LState, n int) []any {
	if L.Get(n) == lua.LNil {
		return nil
	}
	t := L.CheckTable(n)
	out := make([]any, 0, t.Len())
	for i := 1; i <= t.Len(); i++ {
		out = append(out, toGo(t.RawGetInt(i)))
	}
	return out
}
