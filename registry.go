package wphook

import (
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Registry holds the action and filter tables.
//
// # Overview
//
// Each table maps a hook name to the ordered list of callbacks registered under
// it. Registration order is invocation order. A hook name with no entries is
// absent from its table; it is created by the first registration and dropped
// again once its last entry is removed.
//
// # Creating and Using
//
//	registry := wphook.NewRegistry()
//
//	registry.AddFilter("price", func(v any, _ ...any) any { return v.(int) * 2 })
//	registry.AddFilter("price", func(v any, _ ...any) any { return v.(int) + 1 })
//	price := registry.ApplyFilters("price", 10) // 21
//
//	registry.AddAction("saved", func(args ...any) {
//	    log.Printf("saved %v", args[0])
//	}, "audit")
//	registry.DoAction("saved", doc)
//	registry.RemoveAction("saved", "audit")
//
// # Missing Hooks
//
// No operation fails because a hook name or tag is unknown. Dispatching a hook
// with no entries is a no-op for actions and returns the initial value for
// filters. Removing an unknown hook or tag does nothing.
//
// Passing a HookType other than [Action] or [Filter] panics.
//
// # Thread Safety
//
// Registry is safe for concurrent use. Dispatch takes a snapshot of the entry
// list before invoking any callback and runs callbacks without holding a lock,
// so a callback may add or remove hooks, including the one being dispatched.
// Such changes are visible to the next dispatch, never to the one in flight.
//
// # Dispatch Depth
//
// A callback may dispatch hooks itself. With [WithMaxDepth], a dispatch that
// would exceed the limit panics instead of recursing without bound. The limit
// counts every dispatch in flight on the registry, nested or concurrent.
type Registry struct {
	mu       sync.RWMutex
	tables   map[HookType]map[string][]Entry
	logger   *zap.Logger
	maxDepth int
	depth    atomic.Int64
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to record registrations and removals.
// Passing nil keeps the no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxDepth limits how many dispatches may be in flight at once. Zero or a
// negative value means no limit, which is the default.
func WithMaxDepth(max int) Option {
	return func(r *Registry) {
		r.maxDepth = max
	}
}

// NewRegistry creates a Registry with empty action and filter tables.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		tables: map[HookType]map[string][]Entry{
			Action: make(map[string][]Entry),
			Filter: make(map[string][]Entry),
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddHook appends fn to the callbacks of hook name under hookType.
//
// The optional tag identifies the callback for [Registry.RemoveHook]. Only the
// first tag value is used. When omitted, the tag defaults to name + "_" + n,
// where n is the number of entries registered under name before this call
// (save_0, save_1, ...). Tags are not checked for uniqueness.
func (r *Registry) AddHook(hookType HookType, name string, fn Func, tag ...string) {
	mustValid(hookType)

	r.mu.Lock()
	table := r.tables[hookType]
	entries := table[name]
	t := defaultTag(name, len(entries), tag)
	table[name] = append(entries, Entry{Tag: t, Func: fn})
	r.mu.Unlock()

	r.logger.Debug("hook added",
		zap.Stringer("hook_type", hookType),
		zap.String("hook", name),
		zap.String("tag", t),
	)
}

// RemoveHook removes callbacks from hook name under hookType.
//
// With a tag, only entries whose own tag equals it are removed; the rest keep
// their relative order. Without a tag, every entry for name is removed.
// Unknown names and tags are ignored, so calling RemoveHook repeatedly is safe.
func (r *Registry) RemoveHook(hookType HookType, name string, tag ...string) {
	mustValid(hookType)

	r.mu.Lock()
	table := r.tables[hookType]
	entries, ok := table[name]
	if !ok {
		r.mu.Unlock()
		return
	}

	var kept []Entry
	if len(tag) > 0 {
		kept = make([]Entry, 0, len(entries))
		for _, e := range entries {
			if e.Tag != tag[0] {
				kept = append(kept, e)
			}
		}
	}
	removed := len(entries) - len(kept)
	if len(kept) == 0 {
		delete(table, name)
	} else {
		table[name] = kept
	}
	r.mu.Unlock()

	r.logger.Debug("hook removed",
		zap.Stringer("hook_type", hookType),
		zap.String("hook", name),
		zap.Strings("tag", tag),
		zap.Int("removed", removed),
	)
}

// DoHook dispatches hook name under hookType, forwarding args to every
// callback. See [Registry.DoHookArgs] for the dispatch rules.
func (r *Registry) DoHook(hookType HookType, name string, value any, args ...any) any {
	return r.DoHookArgs(hookType, name, value, args)
}

// DoHookArgs dispatches hook name under hookType with an explicit argument
// list.
//
// Callbacks run synchronously in registration order:
//   - Action: each callback is called with args. value is ignored and DoHookArgs
//     returns nil.
//   - Filter: each callback is called with (current, args...) and its result
//     becomes current for the next callback. The final current value is
//     returned; that is value itself when no callbacks are registered.
//
// Entries registered with a nil Func are skipped. Exceeding the limit set by
// [WithMaxDepth] panics.
func (r *Registry) DoHookArgs(hookType HookType, name string, value any, args []any) any {
	mustValid(hookType)

	if r.maxDepth > 0 {
		r.enter(hookType, name)
		defer r.depth.Add(-1)
	}

	entries := r.snapshot(hookType, name)

	if hookType == Action {
		for _, e := range entries {
			if e.Func != nil {
				e.Func(args...)
			}
		}
		return nil
	}

	current := value
	for _, e := range entries {
		if e.Func == nil {
			continue
		}
		call := make([]any, 0, len(args)+1)
		call = append(call, current)
		call = append(call, args...)
		current = e.Func(call...)
	}
	return current
}

// enter counts a dispatch in flight and panics if that exceeds maxDepth.
func (r *Registry) enter(hookType HookType, name string) {
	depth := r.depth.Add(1)
	if depth > int64(r.maxDepth) {
		r.depth.Add(-1)
		panic(fmt.Sprintf("wphook: dispatch depth %d exceeds limit %d (%s hook %q)",
			depth, r.maxDepth, hookType, name))
	}
}

// snapshot copies the entry list for name so dispatch can run unlocked.
func (r *Registry) snapshot(hookType HookType, name string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.tables[hookType][name]
	if len(entries) == 0 {
		return nil
	}
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// tags returns the tags registered under name, in order. Used by tests.
func (r *Registry) tags(hookType HookType, name string) []string {
	entries := r.snapshot(hookType, name)
	if entries == nil {
		return nil
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Tag
	}
	return out
}

// has reports whether name has a table entry under hookType. Used by tests.
func (r *Registry) has(hookType HookType, name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tables[hookType][name]
	return ok
}

func defaultTag(name string, count int, tag []string) string {
	if len(tag) > 0 {
		return tag[0]
	}
	return name + "_" + strconv.Itoa(count)
}
