package wphook

// AddTypedFilter registers a filter that operates on values of type T.
//
// When the running value is not a T (another filter on the same hook returned
// something else), fn is skipped and the value passes through unchanged.
func AddTypedFilter[T any](r *Registry, name string, fn func(value T, args ...any) T, tag ...string) {
	var wrapped FilterFunc
	if fn != nil {
		wrapped = func(value any, args ...any) any {
			v, ok := value.(T)
			if !ok {
				return value
			}
			return fn(v, args...)
		}
	}
	r.AddFilter(name, wrapped, tag...)
}

// ApplyTypedFilters runs the filters registered under name on value and
// returns the result as a T.
//
// If the chain produces a value that is not a T, value is returned.
func ApplyTypedFilters[T any](r *Registry, name string, value T, args ...any) T {
	out, ok := r.ApplyFiltersArgs(name, value, args).(T)
	if !ok {
		return value
	}
	return out
}
