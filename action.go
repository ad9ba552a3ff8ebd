package wphook

// AddAction registers fn under the action hook name.
// See [Registry.AddHook] for how tags are assigned.
func (r *Registry) AddAction(name string, fn ActionFunc, tag ...string) {
	r.AddHook(Action, name, fn.Func(), tag...)
}

// DoAction calls every action registered under name with args, in
// registration order.
func (r *Registry) DoAction(name string, args ...any) {
	r.DoHookArgs(Action, name, nil, args)
}

// DoActionArgs is DoAction with an explicit argument list.
func (r *Registry) DoActionArgs(name string, args []any) {
	r.DoHookArgs(Action, name, nil, args)
}

// RemoveAction removes actions registered under name. Without a tag, all of
// them are removed.
func (r *Registry) RemoveAction(name string, tag ...string) {
	r.RemoveHook(Action, name, tag...)
}
