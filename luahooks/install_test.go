package luahooks

import (
	"testing"

	"github.com/rickchristie/wphook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

var allNames = []string{
	"addAction",
	"addFilter",
	"addHook",
	"applyFilters",
	"applyFiltersArgs",
	"doAction",
	"doActionArgs",
	"doHook",
	"doHookArgs",
	"hooks",
	"removeAction",
	"removeFilter",
	"removeHook",
}

func newState(t *testing.T) (*lua.LState, *wphook.Registry) {
	t.Helper()
	L := lua.NewState()
	t.Cleanup(L.Close)
	r := wphook.NewRegistry()
	Install(L, r)
	return L, r
}

func global(L *lua.LState, name string) any {
	return toGo(L.GetGlobal(name))
}

// -----------------------------------------------------------------------------
// Install
// -----------------------------------------------------------------------------

func TestInstall_EmptyState(t *testing.T) {
	L := lua.NewState()
	defer L.Close()

	installed := Install(L, wphook.NewRegistry())

	assert.Equal(t, allNames, installed)
	for _, name := range allNames {
		assert.NotEqual(t, lua.LNil, L.GetGlobal(name), name)
	}
}

func TestInstall_FirstWriterWins(t *testing.T) {
	L := lua.NewState()
	defer L.Close()
	require.NoError(t, L.DoString(`
		doAction = "host"
		hooks = 42
	`))

	installed := Install(L, wphook.NewRegistry())

	assert.NotContains(t, installed, "doAction")
	assert.NotContains(t, installed, "hooks")
	assert.Len(t, installed, len(allNames)-2)
	assert.Equal(t, "host", global(L, "doAction"))
	assert.Equal(t, 42, global(L, "hooks"))

	assert.Empty(t, Install(L, wphook.NewRegistry()), "second install changes nothing")
}

func TestInstall_HooksTable(t *testing.T) {
	L, r := newState(t)

	require.NoError(t, L.DoString(`
		hooks.addFilter("price", function(v) return v * 3 end)
		kinds = hooks.ACTION .. "," .. hooks.FILTER
	`))

	assert.Equal(t, 30, r.ApplyFilters("price", 10))
	assert.Equal(t, "action,filter", global(L, "kinds"))
}

// -----------------------------------------------------------------------------
// Lua to Registry
// -----------------------------------------------------------------------------

func TestLua_FiltersEndToEnd(t *testing.T) {
	L, r := newState(t)

	require.NoError(t, L.DoString(`
		addFilter("price", function(x) return x * 2 end)
		addFilter("price", function(x) return x + 1 end)
		result = applyFilters("price", 10)
	`))

	assert.Equal(t, 21, global(L, "result"))
	assert.Equal(t, 21, r.ApplyFilters("price", 10), "Go sees Lua filters")
}

func TestLua_ActionsEndToEnd(t *testing.T) {
	L, _ := newState(t)

	require.NoError(t, L.DoString(`
		results = {}
		addAction("log", function(a, b) table.insert(results, a + b) end)
		doAction("log", 2, 3)
		doAction("log", 4, 4)
	`))

	assert.Equal(t, []any{5, 8}, global(L, "results"))
}

func TestLua_FilterReceivesForwardedArgs(t *testing.T) {
	L, _ := newState(t)

	require.NoError(t, L.DoString(`
		addFilter("calc", function(v, a, b) return v * a + b end)
		addFilter("calc", function(v, a, b) return v * a + b end)
		variadic = applyFilters("calc", 3, 2, 1)
		list = applyFiltersArgs("calc", 3, {2, 1})
	`))

	assert.Equal(t, 15, global(L, "variadic"))
	assert.Equal(t, 15, global(L, "list"))
}

func TestLua_DoHook(t *testing.T) {
	L, _ := newState(t)

	require.NoError(t, L.DoString(`
		seen = {}
		addHook("action", "save", function(a) table.insert(seen, a) end)
		addHook("filter", "title", function(v, s) return v .. s end, "suffix")
		actionResult = doHook("action", "save", "ignored", "doc")
		doHookArgs("action", "save", nil, {"list"})
		filtered = doHook("filter", "title", "a", "!")
		filteredList = doHookArgs("filter", "title", "b", {"?"})
		unknown = applyFilters("missing", "same")
	`))

	assert.Nil(t, global(L, "actionResult"))
	assert.Equal(t, []any{"doc", "list"}, global(L, "seen"))
	assert.Equal(t, "a!", global(L, "filtered"))
	assert.Equal(t, "b?", global(L, "filteredList"))
	assert.Equal(t, "same", global(L, "unknown"))
}

func TestLua_RemoveByTag(t *testing.T) {
	L, r := newState(t)

	require.NoError(t, L.DoString(`
		addFilter("price", function(x) return x * 2 end, "double")
		addFilter("price", function(x) return x + 1 end)
		addFilter("price", function(x) return x - 100 end, "drop")
		removeFilter("price", "drop")
		removeFilter("price", "drop")
		afterTag = applyFilters("price", 10)
		removeHook("filter", "price", "price_1")
		afterHook = applyFilters("price", 10)
		removeFilter("price")
		afterAll = applyFilters("price", 10)

		addAction("log", function() end)
		removeAction("log", nil)
	`))

	assert.Equal(t, 21, global(L, "afterTag"))
	assert.Equal(t, 20, global(L, "afterHook"))
	assert.Equal(t, 10, global(L, "afterAll"))
	assert.Equal(t, 10, r.ApplyFilters("price", 10))
}

func TestLua_ArgumentErrors(t *testing.T) {
	tests := []struct {
		name        string
		code        string
		errContains string
	}{
		{name: "bad hook type", code: `addHook("event", "x", function() end)`, errContains: "unknown hook type"},
		{name: "missing callback", code: `addAction("x")`, errContains: "function expected"},
		{name: "non-string name", code: `addFilter({}, function() end)`, errContains: "string expected"},
		{name: "args not a table", code: `doActionArgs("x", 5)`, errContains: "table expected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			L, _ := newState(t)

			err := L.DoString(tt.code)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

// -----------------------------------------------------------------------------
// Registry to Lua
// -----------------------------------------------------------------------------

func TestGo_DispatchesLuaCallbacks(t *testing.T) {
	L, r := newState(t)
	r.AddFilter("title", func(v any, _ ...any) any { return v.(string) + "-go" })

	require.NoError(t, L.DoString(`
		addFilter("title", function(v, n) return v .. "-lua" .. n end)
		received = nil
		addAction("saved", function(doc) received = doc end)
	`))

	assert.Equal(t, "x-go-lua1", r.ApplyFilters("title", "x", 1))

	r.DoAction("saved", map[string]any{"id": 7, "tags": []any{"a", "b"}})
	assert.Equal(t, map[string]any{"id": 7, "tags": []any{"a", "b"}}, global(L, "received"))
}

func TestGo_OpaqueValuesRoundTrip(t *testing.T) {
	L, r := newState(t)
	type doc struct{ ID int }

	require.NoError(t, L.DoString(`addFilter("doc", function(v) return v end)`))

	in := &doc{ID: 3}
	assert.Same(t, in, r.ApplyFilters("doc", in))
}

func TestGo_LuaErrorPanics(t *testing.T) {
	L, r := newState(t)
	require.NoError(t, L.DoString(`addAction("boom", function() error("kaboom") end)`))

	defer func() {
		rcv := recover()
		require.NotNil(t, rcv)
		err, ok := rcv.(*lua.ApiError)
		require.True(t, ok)
		assert.Contains(t, err.Error(), "kaboom")
	}()
	r.DoAction("boom")
}

func TestLua_ErrorInsideLuaDispatchIsReturned(t *testing.T) {
	L, _ := newState(t)

	err := L.DoString(`
		addAction("boom", function() error("kaboom") end)
		doAction("boom")
	`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
}
