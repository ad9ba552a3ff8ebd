package wphook

import (
	"strings"
	"testing"

	"github.com/rickchristie/wphook/internal/tt"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_ApplyFilters_Price(t *testing.T) {
	r := NewRegistry()
	r.AddFilter("price", func(v any, _ ...any) any { return v.(int) * 2 })
	r.AddFilter("price", func(v any, _ ...any) any { return v.(int) + 1 })

	assert.Equal(t, 21, r.ApplyFilters("price", 10))
}

func TestRegistry_ApplyFilters_ComposesWithArgs(t *testing.T) {
	r := NewRegistry()
	// f(v, a, b) = v*a + b, so f2(f1(v, a, b), a, b) = (v*a+b)*a + b.
	f := func(v any, args ...any) any {
		return v.(int)*args[0].(int) + args[1].(int)
	}
	r.AddFilter("calc", f)
	r.AddFilter("calc", f)

	assert.Equal(t, (3*2+1)*2+1, r.ApplyFilters("calc", 3, 2, 1))
}

func TestRegistry_ApplyFilters(t *testing.T) {
	type input struct {
		filters []func(value any, args ...any) any
		value   any
		args    []any
	}

	tests := []struct {
		name     string
		input    input
		expected any
	}{
		{
			name:     "no filters returns value",
			input:    input{value: "unchanged"},
			expected: "unchanged",
		},
		{
			name:     "nil value with no filters",
			input:    input{value: nil},
			expected: nil,
		},
		{
			name: "string pipeline",
			input: input{
				filters: []func(value any, args ...any) any{
					func(v any, _ ...any) any { return strings.TrimSpace(v.(string)) },
					func(v any, _ ...any) any { return strings.ToUpper(v.(string)) },
					func(v any, args ...any) any { return args[0].(string) + v.(string) },
				},
				value: "  hello ",
				args:  []any{"> "},
			},
			expected: "> HELLO",
		},
		{
			name: "filter may change the value type",
			input: input{
				filters: []func(value any, args ...any) any{
					func(v any, _ ...any) any { return len(v.(string)) },
					tt.Double,
				},
				value: "abc",
			},
			expected: 6,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := NewRegistry()
			for _, f := range tc.input.filters {
				r.AddFilter("text", f)
			}

			assert.Equal(t, tc.expected, r.ApplyFilters("text", tc.input.value, tc.input.args...))
			assert.Equal(t, tc.expected, r.ApplyFiltersArgs("text", tc.input.value, tc.input.args))
		})
	}
}

func TestRegistry_RemoveFilter_All(t *testing.T) {
	r := NewRegistry()
	r.AddFilter("price", tt.Double)
	r.AddFilter("price", tt.AddInt)

	r.RemoveFilter("price")

	assert.Equal(t, 10, r.ApplyFilters("price", 10))
}

func TestRegistry_RemoveFilter_ByTagKeepsOrder(t *testing.T) {
	r := NewRegistry()
	rec := tt.NewRecorder()
	r.AddFilter("price", rec.Filter("a", tt.AddInt), "a")
	r.AddFilter("price", rec.Filter("b", tt.Double), "b")
	r.AddFilter("price", rec.Filter("c", tt.Double), "c")
	r.AddFilter("price", rec.Filter("d", tt.AddInt), "d")

	r.RemoveFilter("price", "b")

	// ((1+1)*2)+1
	assert.Equal(t, 5, r.ApplyFilters("price", 1))
	assert.Equal(t, []string{"a", "c", "d"}, rec.Names())
}
