package manifest

import (
	"bytes"
	"errors"
	"testing"

	"github.com/rickchristie/wphook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Names(t *testing.T) {
	c := Builtins(&bytes.Buffer{})

	assert.Equal(t, []string{"print"}, c.Names(wphook.Action))
	assert.Equal(t, []string{
		"add", "double", "increment", "lower", "multiply",
		"prefix", "suffix", "trim", "upper",
	}, c.Names(wphook.Filter))
	assert.Empty(t, c.Names(wphook.HookType("event")))
}

func TestCatalog_RegisterReplaces(t *testing.T) {
	c := NewCatalog().
		RegisterFilter("id", func([]any) (wphook.FilterFunc, error) {
			return func(v any, _ ...any) any { return "first" }, nil
		}).
		RegisterFilter("id", func([]any) (wphook.FilterFunc, error) {
			return func(v any, _ ...any) any { return "second" }, nil
		})

	fn, err := c.Build(wphook.Filter, "id")

	require.NoError(t, err)
	assert.Equal(t, "second", fn("x"))
}

func TestCatalog_Build_FactoryError(t *testing.T) {
	boom := errors.New("boom")
	c := NewCatalog().RegisterAction("fail", func([]any) (wphook.ActionFunc, error) {
		return nil, boom
	})

	_, err := c.Build(wphook.Action, "fail")

	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `callback "fail"`)
}

func TestBuiltins_Filters(t *testing.T) {
	type input struct {
		callback string
		args     []any
		value    any
	}

	tests := []struct {
		name     string
		input    input
		expected any
	}{
		{name: "double int", input: input{callback: "double", value: 21}, expected: 42},
		{name: "double float", input: input{callback: "double", value: 1.5}, expected: 3.0},
		{name: "double int64", input: input{callback: "double", value: int64(4)}, expected: 8},
		{name: "double string passes", input: input{callback: "double", value: "x"}, expected: "x"},
		{name: "increment", input: input{callback: "increment", value: 9}, expected: 10},
		{name: "add int", input: input{callback: "add", args: []any{5}, value: 1}, expected: 6},
		{name: "add fraction to int", input: input{callback: "add", args: []any{0.5}, value: 1}, expected: 1.5},
		{name: "multiply", input: input{callback: "multiply", args: []any{3}, value: 4}, expected: 12},
		{name: "multiply nil passes", input: input{callback: "multiply", args: []any{3}, value: nil}, expected: nil},
		{name: "upper", input: input{callback: "upper", value: "abc"}, expected: "ABC"},
		{name: "lower", input: input{callback: "lower", value: "ABC"}, expected: "abc"},
		{name: "trim", input: input{callback: "trim", value: "  a  "}, expected: "a"},
		{name: "upper int passes", input: input{callback: "upper", value: 3}, expected: 3},
		{name: "prefix", input: input{callback: "prefix", args: []any{"> "}, value: "a"}, expected: "> a"},
		{name: "suffix", input: input{callback: "suffix", args: []any{"!"}, value: "a"}, expected: "a!"},
	}

	c := Builtins(&bytes.Buffer{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := c.Build(wphook.Filter, tt.input.callback, tt.input.args...)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, fn(tt.input.value))
		})
	}
}

func TestBuiltins_ArgErrors(t *testing.T) {
	tests := []struct {
		name     string
		hookType wphook.HookType
		callback string
		args     []any
	}{
		{name: "double takes none", hookType: wphook.Filter, callback: "double", args: []any{1}},
		{name: "add needs one", hookType: wphook.Filter, callback: "add"},
		{name: "add needs number", hookType: wphook.Filter, callback: "add", args: []any{"1"}},
		{name: "prefix needs string", hookType: wphook.Filter, callback: "prefix", args: []any{1}},
		{name: "print label must be string", hookType: wphook.Action, callback: "print", args: []any{1}},
		{name: "print takes one", hookType: wphook.Action, callback: "print", args: []any{"a", "b"}},
	}

	c := Builtins(&bytes.Buffer{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Build(tt.hookType, tt.callback, tt.args...)

			assert.ErrorIs(t, err, errArgs)
		})
	}
}

func TestBuiltins_Print(t *testing.T) {
	var out bytes.Buffer
	c := Builtins(&out)

	plain, err := c.Build(wphook.Action, "print")
	require.NoError(t, err)
	labeled, err := c.Build(wphook.Action, "print", "log:")
	require.NoError(t, err)

	plain("a", 1, true)
	labeled()

	assert.Equal(t, "a 1 true\nlog:\n", out.String())
}
