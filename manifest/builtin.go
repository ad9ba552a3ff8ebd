package manifest

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rickchristie/wphook"
)

// Builtins returns a Catalog with generic callbacks:
//
// Filters (values of the wrong type pass through unchanged):
//   - double, increment: numeric
//   - add, multiply: numeric, one numeric arg
//   - upper, lower, trim: string
//   - prefix, suffix: string, one string arg
//
// Actions:
//   - print: writes the dispatch args to w, space separated, one line per call.
//     An optional string arg is written first as a label.
func Builtins(w io.Writer) *Catalog {
	return NewCatalog().
		RegisterFilter("double", noArgs(func(v any) any { return scale(v, 2) })).
		RegisterFilter("increment", noArgs(func(v any) any { return offset(v, 1) })).
		RegisterFilter("add", numberArg(offset)).
		RegisterFilter("multiply", numberArg(scale)).
		RegisterFilter("upper", noArgs(mapString(strings.ToUpper))).
		RegisterFilter("lower", noArgs(mapString(strings.ToLower))).
		RegisterFilter("trim", noArgs(mapString(strings.TrimSpace))).
		RegisterFilter("prefix", stringArg(func(s, p string) string { return p + s })).
		RegisterFilter("suffix", stringArg(func(s, p string) string { return s + p })).
		RegisterAction("print", printAction(w))
}

var errArgs = errors.New("invalid args")

func noArgs(fn func(v any) any) FilterFactory {
	return func(args []any) (wphook.FilterFunc, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: takes no args, got %d", errArgs, len(args))
		}
		return func(value any, _ ...any) any { return fn(value) }, nil
	}
}

func numberArg(fn func(v any, n float64) any) FilterFactory {
	return func(args []any) (wphook.FilterFunc, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: takes 1 numeric arg, got %d", errArgs, len(args))
		}
		n, ok := toFloat(args[0])
		if !ok {
			return nil, fmt.Errorf("%w: %v is not a number", errArgs, args[0])
		}
		return func(value any, _ ...any) any { return fn(value, n) }, nil
	}
}

func stringArg(fn func(s, arg string) string) FilterFactory {
	return func(args []any) (wphook.FilterFunc, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("%w: takes 1 string arg, got %d", errArgs, len(args))
		}
		arg, ok := args[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: %v is not a string", errArgs, args[0])
		}
		return func(value any, _ ...any) any {
			s, ok := value.(string)
			if !ok {
				return value
			}
			return fn(s, arg)
		}, nil
	}
}

func mapString(fn func(string) string) func(any) any {
	return func(v any) any {
		s, ok := v.(string)
		if !ok {
			return v
		}
		return fn(s)
	}
}

func printAction(w io.Writer) ActionFactory {
	return func(args []any) (wphook.ActionFunc, error) {
		label := ""
		switch len(args) {
		case 0:
		case 1:
			s, ok := args[0].(string)
			if !ok {
				return nil, fmt.Errorf("%w: label %v is not a string", errArgs, args[0])
			}
			label = s
		default:
			return nil, fmt.Errorf("%w: takes at most 1 arg, got %d", errArgs, len(args))
		}

		return func(callArgs ...any) {
			parts := make([]string, 0, len(callArgs)+1)
			if label != "" {
				parts = append(parts, label)
			}
			for _, a := range callArgs {
				parts = append(parts, fmt.Sprint(a))
			}
			fmt.Fprintln(w, strings.Join(parts, " "))
		}, nil
	}
}

// -----------------------------------------------------------------------------
// Numbers
// -----------------------------------------------------------------------------

// scale multiplies v by n. Integers stay integers when n is whole.
func scale(v any, n float64) any {
	if i, ok := toInt(v); ok && n == float64(int64(n)) {
		return i * int(n)
	}
	if f, ok := toFloat(v); ok {
		return f * n
	}
	return v
}

// offset adds n to v. Integers stay integers when n is whole.
func offset(v any, n float64) any {
	if i, ok := toInt(v); ok && n == float64(int64(n)) {
		return i + int(n)
	}
	if f, ok := toFloat(v); ok {
		return f + n
	}
	return v
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	}
	return 0, false
}

func toFloat(v any) (float64, bool) {
	if i, ok := toInt(v); ok {
		return float64(i), true
	}
	switch n := v.(type) {
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
