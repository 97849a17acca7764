// Package environment implements the lexical scope chain `define`/`get`/
// `assign` operate over.
//
// A frame is a bindings map plus a pointer to its enclosing frame. Closures
// keep a live *Environment pointer to whatever frame was innermost at their
// definition site, so later mutations through that pointer (or any of its
// descendants) are visible everywhere the frame is shared, the way lexical
// closures require. Snapshotting bindings by value instead would break
// mutual recursion and shared-counter closures.
package environment

import "github.com/brightlex/golox/value"

// Environment is one frame of the scope chain: a set of bindings plus a
// pointer to the enclosing frame. A nil Enclosing marks the global frame.
type Environment struct {
	values    map[string]value.Value
	Enclosing *Environment
}

// New creates a fresh frame enclosed by parent. Pass nil to create the
// global frame.
func New(parent *Environment) *Environment {
	return &Environment{values: make(map[string]value.Value), Enclosing: parent}
}

// Define binds name to v in this frame only, overwriting any existing
// binding of the same name in this frame. It never touches an outer frame,
// even if the name is already defined there (redeclaration and shadowing
// are indistinguishable at this layer).
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get searches this frame and, failing that, each enclosing frame in turn,
// returning the first binding found.
func (e *Environment) Get(name string) (value.Value, bool) {
	for env := e; env != nil; env = env.Enclosing {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return value.Value{}, false
}

// Assign replaces the value of an existing binding, searching this frame
// outward and updating the frame that owns the name. It never creates a new
// binding; assigning to a name nobody defined reports ok=false.
func (e *Environment) Assign(name string, v value.Value) bool {
	for env := e; env != nil; env = env.Enclosing {
		if _, ok := env.values[name]; ok {
			env.values[name] = v
			return true
		}
	}
	return false
}
