package mats

import "slices"

type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeLocal
	ScopeLoop
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeLocal:
		return "local"
	case ScopeLoop:
		return "loop"
	default:
		return "scope"
	}
}

type frame[T any] struct {
	kind   ScopeKind
	values map[string]T
}

// Env is a stack of scope frames. The checker instantiates it with Type and
// the interpreter with Value; both follow the same rules: lookups walk from the
// innermost frame out, and assigning a visible name updates the frame that
// owns it.
type Env[T any] struct {
	frames []frame[T]
}

// NewEnv returns an environment holding only the global frame.
func NewEnv[T any]() *Env[T] {
	return &Env[T]{frames: []frame[T]{{kind: ScopeGlobal, values: make(map[string]T)}}}
}

func (e *Env[T]) Lookup(name string) (T, bool) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if v, ok := e.frames[i].values[name]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// Bind defines name in the innermost frame, shadowing outer bindings.
func (e *Env[T]) Bind(name string, v T) {
	e.frames[len(e.frames)-1].values[name] = v
}

// Assign overwrites name where it is visible, or binds it in the innermost
// frame.
func (e *Env[T]) Assign(name string, v T) {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if _, ok := e.frames[i].values[name]; ok {
			e.frames[i].values[name] = v
			return
		}
	}
	e.Bind(name, v)
}

func (e *Env[T]) Enter(kind ScopeKind) {
	e.frames = append(e.frames, frame[T]{kind: kind, values: make(map[string]T)})
}

// Exit pops the innermost frame. The global frame is never popped.
func (e *Env[T]) Exit() {
	if len(e.frames) > 1 {
		e.frames = e.frames[:len(e.frames)-1]
	}
}

// InLoop reports whether any active frame belongs to a loop.
func (e *Env[T]) InLoop() bool {
	for i := len(e.frames) - 1; i >= 0; i-- {
		if e.frames[i].kind == ScopeLoop {
			return true
		}
	}
	return false
}

func (e *Env[T]) Depth() int {
	return len(e.frames)
}

// Names returns every visible name in sorted order.
func (e *Env[T]) Names() []string {
	seen := make(map[string]struct{})
	var names []string
	for _, f := range e.frames {
		for name := range f.values {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Reset drops every frame above the global one.
func (e *Env[T]) Reset() {
	e.frames = e.frames[:1]
}
