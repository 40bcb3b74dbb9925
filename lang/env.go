package lang

import (
	"iter"
	"slices"
	"strings"
)

type binding struct {
	key, value Expr
}

// Env is a frame of bindings chained to an optional parent. Any expression
// may be a key; keys compare by [Equal].
//
// An Env is not safe for concurrent use.
type Env struct {
	frame  map[string]binding
	parent *Env
}

// NewEnv returns an empty root frame. See [NewRootEnv] for a frame holding
// the builtin operators.
func NewEnv() *Env {
	return &Env{frame: make(map[string]binding)}
}

// Fork returns a new empty frame whose parent is e.
func (e *Env) Fork() *Env {
	return &Env{frame: make(map[string]binding), parent: e}
}

// Parent returns the enclosing frame, or nil for a root.
func (e *Env) Parent() *Env { return e.parent }

// Define binds k to v in this frame, shadowing any binding in a parent.
func (e *Env) Define(k, v Expr) {
	e.frame[Key(k)] = binding{k, v}
}

// Assign rebinds k in the nearest frame that defines it, or defines it in
// this frame if none does.
func (e *Env) Assign(k, v Expr) {
	key := Key(k)

	for f := e; f != nil; f = f.parent {
		if _, ok := f.frame[key]; ok {
			f.frame[key] = binding{k, v}

			return
		}
	}

	e.frame[key] = binding{k, v}
}

// Resolve returns the value bound to k by the nearest frame defining it.
func (e *Env) Resolve(k Expr) (Expr, bool) {
	key := Key(k)

	for f := e; f != nil; f = f.parent {
		if b, ok := f.frame[key]; ok {
			return b.value, true
		}
	}

	return nil, false
}

// Lookup returns the value bound to k, or k itself when unbound.
func (e *Env) Lookup(k Expr) Expr {
	if v, ok := e.Resolve(k); ok {
		return v
	}

	return k
}

// Local iterates the bindings of this frame only, ordered by key.
func (e *Env) Local() iter.Seq2[Expr, Expr] {
	return func(yield func(Expr, Expr) bool) {
		keys := make([]string, 0, len(e.frame))
		for k := range e.frame {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		for _, k := range keys {
			b := e.frame[k]
			if !yield(b.key, b.value) {
				return
			}
		}
	}
}

// Symbols returns the sorted names of every symbol visible from e. Names
// with a leading ':' are reserved for metadata and omitted.
func (e *Env) Symbols() []string {
	seen := make(map[string]struct{})

	for f := e; f != nil; f = f.parent {
		for _, b := range f.frame {
			if s, ok := b.key.(Symbol); ok && !strings.HasPrefix(string(s), ":") {
				seen[string(s)] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for s := range seen {
		names = append(names, s)
	}

	slices.Sort(names)

	return names
}
