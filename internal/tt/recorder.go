// Package tt holds helpers shared by the package tests.
//
// Callbacks are returned as plain func types so that tests inside the wphook
// package can use them without an import cycle; they are assignable to
// wphook.ActionFunc and wphook.FilterFunc.
package tt

import "sync"

// Call is one recorded callback invocation.
type Call struct {
	Name string
	Args []any
}

// Recorder records callback invocations in the order they happen.
// It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Action returns an action callback that records its arguments under name.
func (r *Recorder) Action(name string) func(args ...any) {
	return func(args ...any) {
		r.record(name, args)
	}
}

// Filter returns a filter callback that records (value, args...) under name
// and returns fn(value, args...). A nil fn returns value unchanged.
func (r *Recorder) Filter(name string, fn func(value any, args ...any) any) func(value any, args ...any) any {
	return func(value any, args ...any) any {
		all := append([]any{value}, args...)
		r.record(name, all)
		if fn == nil {
			return value
		}
		return fn(value, args...)
	}
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Names returns the callback names in call order.
func (r *Recorder) Names() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Name
	}
	return out
}

// Reset discards recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func (r *Recorder) record(name string, args []any) {
	cp := make([]any, len(args))
	copy(cp, args)
	r.mu.Lock()
	r.calls = append(r.calls, Call{Name: name, Args: cp})
	r.mu.Unlock()
}

// AddInt is a filter that adds its first forwarded int argument (or 1) to an
// int value.
func AddInt(value any, args ...any) any {
	delta := 1
	if len(args) > 0 {
		if d, ok := args[0].(int); ok {
			delta = d
		}
	}
	return value.(int) + delta
}

// Double is a filter that doubles an int value.
func Double(value any, _ ...any) any {
	return value.(int) * 2
}
