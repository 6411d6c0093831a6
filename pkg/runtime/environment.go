package runtime

import "sort"

// Environment is the single flat scope of a wordLang program: every name
// lives in one global namespace and there is no shadowing.
type Environment struct {
	values map[string]int64
}

// NewEnvironment creates an empty environment.
func NewEnvironment() *Environment {
	return &Environment{values: make(map[string]int64)}
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]int64 {
	out := make(map[string]int64, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// Define binds name to value, overwriting any earlier binding.
func (e *Environment) Define(name string, value int64) {
	e.values[name] = value
}

// Assign stores value under name. Assignment to an undeclared name creates
// it, exactly like Define.
func (e *Environment) Assign(name string, value int64) {
	e.values[name] = value
}

// Lookup reports the binding and whether it exists.
func (e *Environment) Lookup(name string) (int64, bool) {
	v, ok := e.values[name]
	return v, ok
}

// Len reports the number of bindings.
func (e *Environment) Len() int {
	return len(e.values)
}

// Keys returns the bindings in sorted order (useful for determinism in tests).
func (e *Environment) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
