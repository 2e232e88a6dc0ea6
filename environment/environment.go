// Package environment implements the chained lexical scope that the
// evaluator reads and writes bindings through.
package environment

import "github.com/kvist-lang/kvist/value"

// Environment is one frame of bindings plus a link to its enclosing frame.
// A lookup that misses in the current frame walks outward; a write always
// lands in the innermost frame, shadowing any outer binding of the same
// name for the lifetime of this frame.
type Environment struct {
	store map[string]value.Value
	outer *Environment
}

// New creates a top-level environment with no enclosing scope.
func New() *Environment {
	return &Environment{store: make(map[string]value.Value)}
}

// Fork creates a child environment whose outer scope is e. Function calls
// and §-sections each evaluate in a fresh fork of the environment active at
// the point they were entered.
func (e *Environment) Fork() *Environment {
	return &Environment{store: make(map[string]value.Value), outer: e}
}

// Get looks up name in this frame, then in each enclosing frame in turn.
func (e *Environment) Get(name string) (value.Value, bool) {
	for frame := e; frame != nil; frame = frame.outer {
		if v, ok := frame.store[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set binds name to v in this frame only. It never reaches into an outer
// frame, even if name is already bound there. A closure sharing this exact
// frame by reference (not a fork of it) observes the new binding on its
// next lookup — this is how two closures over the same Set end up seeing
// each other's writes.
func (e *Environment) Set(name string, v value.Value) {
	e.store[name] = v
}
