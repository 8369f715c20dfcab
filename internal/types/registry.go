package types

import (
	"fmt"
	"sort"
	"strings"
)

// Binding ties a variable name to a type. Explicit bindings come from
// declarations and outrank guessed ones from inference; Sites records every
// line index that declared or retyped the variable.
type Binding struct {
	Type     TypeID
	Explicit bool
	Sites    []int
}

// Registry is a document's mutable name table: declared type names and
// variable bindings, both additive during parsing. It is handed explicitly
// into every call that needs it; there is no ambient document state.
type Registry struct {
	arena *Arena
	types map[string]TypeID
	order []string
	vars  map[string]*Binding
}

// NewRegistry returns an empty registry with its own arena.
func NewRegistry() *Registry {
	return &Registry{
		arena: NewArena(),
		types: make(map[string]TypeID),
		vars:  make(map[string]*Binding),
	}
}

// Arena exposes the registry's type arena.
func (r *Registry) Arena() *Arena { return r.arena }

func typeKey(name string) string { return strings.ToLower(name) }

// Define registers a completed type under a name. Redefining an existing
// name is rejected; the caller decides whether that is an error worth a
// diagnostic or a reload artifact worth ignoring.
func (r *Registry) Define(name string, t Type) (TypeID, error) {
	if _, exists := r.types[typeKey(name)]; exists {
		return NoType, fmt.Errorf("type %q is already defined", name)
	}
	t.Name = name
	id := r.arena.New(t)
	r.types[typeKey(name)] = id
	r.order = append(r.order, name)
	return id, nil
}

// Reserve registers a placeholder record so its own components can resolve
// the name while the definition is still being parsed.
func (r *Registry) Reserve(name string) (TypeID, error) {
	if _, exists := r.types[typeKey(name)]; exists {
		return NoType, fmt.Errorf("type %q is already defined", name)
	}
	id := r.arena.Reserve(name)
	r.types[typeKey(name)] = id
	r.order = append(r.order, name)
	return id, nil
}

// Complete fills in a type reserved earlier.
func (r *Registry) Complete(id TypeID, t Type) { r.arena.Complete(id, t) }

// Discard drops a reserved name again, for definitions that fail halfway.
func (r *Registry) Discard(name string) {
	key := typeKey(name)
	if _, ok := r.types[key]; !ok {
		return
	}
	delete(r.types, key)
	for i, n := range r.order {
		if typeKey(n) == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// Lookup resolves a type name: declared names first, then the built-in
// scalars and their aliases, then the explicit unknown "???".
func (r *Registry) Lookup(name string) (TypeID, bool) {
	if id, ok := r.types[typeKey(name)]; ok {
		return id, true
	}
	if p, ok := primitiveByName(strings.ToLower(name)); ok {
		return r.arena.Primitive(p), true
	}
	if name == "???" {
		return r.arena.DummyType(), true
	}
	return NoType, false
}

// TypeNames returns the declared type names in definition order.
func (r *Registry) TypeNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// BindVar records a variable's type. An explicit binding replaces anything;
// a guessed one never downgrades an explicit binding and never overwrites a
// guess with unknown.
func (r *Registry) BindVar(name string, id TypeID, site int, explicit bool) {
	b, ok := r.vars[name]
	if !ok {
		r.vars[name] = &Binding{Type: id, Explicit: explicit, Sites: []int{site}}
		return
	}
	b.Sites = append(b.Sites, site)
	switch {
	case explicit:
		b.Type = id
		b.Explicit = true
	case b.Explicit:
		// keep the declared type
	case id != NoType:
		b.Type = id
	}
}

// VarType returns the bound type of a variable, NoType when unknown.
func (r *Registry) VarType(name string) TypeID {
	if b, ok := r.vars[name]; ok {
		return b.Type
	}
	return NoType
}

// VarBinding returns the full binding of a variable.
func (r *Registry) VarBinding(name string) (Binding, bool) {
	if b, ok := r.vars[name]; ok {
		return *b, true
	}
	return Binding{}, false
}

// VarNames returns all bound variable names, sorted.
func (r *Registry) VarNames() []string {
	out := make([]string, 0, len(r.vars))
	for name := range r.vars {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
