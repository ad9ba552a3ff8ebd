// Package wphook provides named action and filter hooks: extension points that
// other code registers callbacks against and then triggers by name.
//
// Actions run their callbacks for side effects. Filters thread a value through
// their callbacks, each one receiving the previous callback's result.
//
// # Quick Start
//
//	registry := wphook.NewRegistry()
//
//	// Filters transform a value.
//	registry.AddFilter("price", func(v any, _ ...any) any { return v.(int) * 2 })
//	registry.AddFilter("price", func(v any, _ ...any) any { return v.(int) + 1 })
//	registry.ApplyFilters("price", 10) // 21
//
//	// Actions run for side effects.
//	var results []int
//	registry.AddAction("log", func(args ...any) {
//	    results = append(results, args[0].(int)+args[1].(int))
//	})
//	registry.DoAction("log", 2, 3)
//	registry.DoAction("log", 4, 4) // results == [5 8]
//
// # Tags
//
// Every callback carries a tag used to remove it later. Pass one explicitly,
// or let the registry derive it from the hook name and the number of callbacks
// already registered: "log_0", "log_1", and so on.
//
//	registry.AddFilter("title", upper, "upper") // tag "upper"
//	registry.AddFilter("title", trim)           // tag "title_1"
//	registry.RemoveFilter("title", "upper")     // removes upper only
//	registry.RemoveFilter("title")              // removes every title filter
//
// # Calling Conventions
//
// Every dispatch operation comes in two forms: a variadic form
// ([Registry.DoAction], [Registry.ApplyFilters], [Registry.DoHook]) and an
// explicit list form ([Registry.DoActionArgs], [Registry.ApplyFiltersArgs],
// [Registry.DoHookArgs]) for callers that already hold the arguments in a slice.
//
// # Typed Filters
//
// [AddTypedFilter] and [ApplyTypedFilters] wrap the untyped API with a type
// parameter so callers don't repeat type assertions:
//
//	wphook.AddTypedFilter(registry, "price", func(v int, _ ...any) int { return v * 2 })
//	total := wphook.ApplyTypedFilters(registry, "price", 10) // int
//
// # Related Packages
//
//   - global: a shared process-wide Registry and an installer for namespaces
//   - manifest: declarative hook registration from YAML
//   - luahooks: exposes a Registry to Lua scripts
package wphook
