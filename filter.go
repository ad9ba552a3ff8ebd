package wphook

// AddFilter registers fn under the filter hook name.
// See [Registry.AddHook] for how tags are assigned.
func (r *Registry) AddFilter(name string, fn FilterFunc, tag ...string) {
	r.AddHook(Filter, name, fn.Func(), tag...)
}

// ApplyFilters passes value through every filter registered under name and
// returns the result. Each filter is called as f(current, args...).
//
// With filters f1 then f2 registered, ApplyFilters(name, v, a, b) returns
// f2(f1(v, a, b), a, b). Returns value unchanged when no filters exist.
func (r *Registry) ApplyFilters(name string, value any, args ...any) any {
	return r.DoHookArgs(Filter, name, value, args)
}

// ApplyFiltersArgs is ApplyFilters with an explicit argument list.
func (r *Registry) ApplyFiltersArgs(name string, value any, args []any) any {
	return r.DoHookArgs(Filter, name, value, args)
}

// RemoveFilter removes filters registered under name. Without a tag, all of
// them are removed.
func (r *Registry) RemoveFilter(name string, tag ...string) {
	r.RemoveHook(Filter, name, tag...)
}
