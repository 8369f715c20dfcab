package types

// Arena owns all type entries of one document. Entry zero is a sentinel so
// TypeID zero can mean "no type". Primitives and the dummy are pre-seeded
// and shared; composite entries are appended as declarations arrive.
type Arena struct {
	entries []Type
	prims   map[Primitive]TypeID
	dummy   TypeID
}

// NewArena returns an arena seeded with the built-in types.
func NewArena() *Arena {
	a := &Arena{
		entries: make([]Type, 1, 16), // reserve the zero sentinel
		prims:   make(map[Primitive]TypeID, 9),
	}
	for p := PrimByte; p <= PrimBool; p++ {
		a.prims[p] = a.add(primitive(p))
	}
	a.dummy = a.add(Dummy())
	return a
}

func (a *Arena) add(t Type) TypeID {
	a.entries = append(a.entries, t)
	return TypeID(len(a.entries) - 1)
}

// Get returns the entry for an id. The zero id yields an invalid entry.
func (a *Arena) Get(id TypeID) Type {
	if id == NoType || int(id) >= len(a.entries) {
		return Type{}
	}
	return a.entries[id]
}

// Primitive returns the shared id of a built-in scalar.
func (a *Arena) Primitive(p Primitive) TypeID { return a.prims[p] }

// DummyType returns the shared id of the explicit unknown.
func (a *Arena) DummyType() TypeID { return a.dummy }

// New appends a completed type entry and returns its id.
func (a *Arena) New(t Type) TypeID { return a.add(t) }

// Reserve appends a placeholder record entry under the given name. The id
// is valid immediately, so the record's own components can refer to it
// before Complete fills the entry in.
func (a *Arena) Reserve(name string) TypeID {
	return a.add(Type{Kind: KindRecord, Name: name})
}

// Complete replaces a reserved entry with its final shape. The name set at
// reservation wins over the one in t.
func (a *Arena) Complete(id TypeID, t Type) {
	if id == NoType || int(id) >= len(a.entries) {
		return
	}
	if name := a.entries[id].Name; name != "" {
		t.Name = name
	}
	a.entries[id] = t
}

// Len returns the number of live entries, sentinel excluded.
func (a *Arena) Len() int { return len(a.entries) - 1 }
